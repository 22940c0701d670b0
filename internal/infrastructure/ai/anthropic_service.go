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

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
)

// AnthropicService adaptador que implementa LLMService usando la API REST de Anthropic (Claude).
// Usa net/http de la librería estándar de Go; no requiere el SDK oficial.
type AnthropicService struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador.
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey:   apiKey,
		model:    model,
		endpoint: anthropicMessagesURL,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el use case impone además su propio context.WithTimeout.
			Timeout: 25 * time.Second,
		},
	}
}

// WithEndpoint cambia la URL de la API (proxies, tests).
func (s *AnthropicService) WithEndpoint(url string) *AnthropicService {
	s.endpoint = url
	return s
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// AnswerInventoryQuestion envía la instantánea y la pregunta a Claude.
func (s *AnthropicService) AnswerInventoryQuestion(ctx context.Context, inv ports.InventoryContext, question string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: AI_ANTHROPIC_API_KEY no configurado")
	}

	system, user, err := buildPrompt(inv, question)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

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
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d", resp.StatusCode)
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}

	var text strings.Builder
	for _, c := range anthResp.Content {
		if c.Type == "text" {
			text.WriteString(c.Text)
		}
	}
	answer := cleanAnswer(text.String())
	if answer == "" {
		return "", fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return answer, nil
}
