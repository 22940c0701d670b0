package dto

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Subwarehouse string `json:"subwarehouse"`
}

// UpdateProductRequest body para PUT /api/products/:id. El código no se edita.
type UpdateProductRequest struct {
	Name         string `json:"name"`
	Subwarehouse string `json:"subwarehouse"`
}
