package entity

// Product representa un ítem del catálogo del almacén.
// ID es el código de ítem: clave única y estable, no se edita después de creado.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Subwarehouse string `json:"subwarehouse"`
}
