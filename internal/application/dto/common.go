package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListResponse envoltorio de listados: los items y si el servicio opera degradado.
type ListResponse[T any] struct {
	Items    []T  `json:"items"`
	Total    int  `json:"total"`
	Degraded bool `json:"degraded,omitempty"`
}
