package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jafarshop/storefront/internal/auth"
)

func main() {
	apiKeyFlag := flag.String("api-key", "", "Admin API key to hash (save it; it cannot be retrieved later)")
	flag.Parse()

	apiKey := *apiKeyFlag
	if apiKey == "" && flag.NArg() >= 1 {
		apiKey = flag.Arg(0)
	}
	if apiKey == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/hash-api-key/main.go --api-key \"your-admin-key\"")
		fmt.Println("  go run cmd/hash-api-key/main.go \"your-admin-key\"")
		os.Exit(1)
	}

	// /auth/token trims the presented key too
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		fmt.Fprintf(os.Stderr, "Error: API key cannot be empty after trimming.\n")
		os.Exit(1)
	}
	if len(apiKey) > 72 {
		fmt.Fprintf(os.Stderr, "Error: API key must be at most 72 bytes (bcrypt limit).\n")
		os.Exit(1)
	}

	hash, err := auth.HashAPIKey(apiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Add this to your environment or .env file:")
	fmt.Printf("ADMIN_API_KEY_HASH=%s\n", hash)
}
