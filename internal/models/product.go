package models

// DefaultProductImage is the sentinel asset used when a product is created
// without an uploaded image.
const DefaultProductImage = "default-product.jpg"

// Product mirrors the products table. ImageRef holds the stored file name,
// not a servable path; handlers rewrite it under the asset prefix.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageRef    string  `json:"-"`
}

type ProductResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    string   `json:"image_url"`
}

type CreateProductResponse struct {
	Msg      string `json:"msg"`
	ID       int    `json:"id"`
	ImageURL string `json:"image_url"`
}
