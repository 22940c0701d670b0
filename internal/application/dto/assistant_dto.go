package dto

// AskRequest body para POST /api/assistant/ask.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse respuesta del asistente.
type AskResponse struct {
	Answer string `json:"answer"`
}
