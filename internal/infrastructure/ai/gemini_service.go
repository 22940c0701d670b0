package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa LLMService.
var _ ports.LLMService = (*GeminiService)(nil)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiService adaptador que implementa LLMService llamando a la API REST de Google Gemini.
// Usa únicamente la librería estándar de Go (net/http) para no añadir dependencias externas.
type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-2.5-flash".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 25 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// WithBaseURL cambia la URL base de la API (proxies, tests).
func (s *GeminiService) WithBaseURL(url string) *GeminiService {
	s.baseURL = strings.TrimRight(url, "/")
	return s
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// AnswerInventoryQuestion envía la instantánea y la pregunta a Gemini.
func (s *GeminiService) AnswerInventoryQuestion(ctx context.Context, inv ports.InventoryContext, question string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: AI_GEMINI_API_KEY no configurado")
	}

	system, user, err := buildPrompt(inv, question)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: user}}}},
		GenerationConfig:  genConfig{Temperature: 0.7, MaxOutputTokens: 1024},
	})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}
	if len(gemResp.Candidates) == 0 {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	var text strings.Builder
	for _, p := range gemResp.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	answer := cleanAnswer(text.String())
	if answer == "" {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	return answer, nil
}
