package service

// ProductRequest is the admin create/update payload
type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Size        string   `json:"size"`
	Color       string   `json:"color"`
	Stock       *int     `json:"stock"`
}
