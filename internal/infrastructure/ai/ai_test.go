package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/ports"
)

func sampleInventory() ports.InventoryContext {
	return ports.InventoryContext{
		Warehouse: "Almacén Central",
		Stock:     []ports.StockItem{{ID: "A", Name: "Alcohol", Stock: 5}},
		History: []ports.HistoryItem{{
			ID: "t1", Type: "Entrada", ProductID: "A", ProductName: "Alcohol",
			Quantity: 5, Date: "2/1/2024, 08:00:00", Batch: "N/A", Notes: "N/A",
		}},
	}
}

func TestBuildPrompt(t *testing.T) {
	system, user, err := buildPrompt(sampleInventory(), "¿Cuánto alcohol hay?")
	require.NoError(t, err)

	assert.Contains(t, system, `"Almacén Central"`)
	assert.Contains(t, user, `"producto_nombre":"Alcohol"`)
	assert.Contains(t, user, `"id_transaccion":"t1"`)
	assert.True(t, strings.HasSuffix(user, "Pregunta: ¿Cuánto alcohol hay?"))
}

func TestAnthropicService_Answer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "clave", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "claude-test", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "Pregunta: hola")

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"¡Hay **5** unidades!"}]}`))
	}))
	defer srv.Close()

	svc := NewAnthropicService("clave", "claude-test").WithEndpoint(srv.URL)
	answer, err := svc.AnswerInventoryQuestion(context.Background(), sampleInventory(), "hola")
	require.NoError(t, err)
	assert.Equal(t, "¡Hay 5 unidades!", answer)
}

func TestAnthropicService_Errores(t *testing.T) {
	_, err := NewAnthropicService("", "m").AnswerInventoryQuestion(context.Background(), sampleInventory(), "hola")
	assert.ErrorContains(t, err, "AI_ANTHROPIC_API_KEY")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"despacio"}}`))
	}))
	defer srv.Close()

	_, err = NewAnthropicService("k", "m").WithEndpoint(srv.URL).AnswerInventoryQuestion(context.Background(), sampleInventory(), "hola")
	assert.ErrorContains(t, err, "rate_limit_error")
}

func TestGeminiService_Answer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "clave", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		require.NotNil(t, req.SystemInstruction)
		assert.Contains(t, req.SystemInstruction.Parts[0].Text, "Almacén Central")

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Quedan "},{"text":"5."}]}}]}`))
	}))
	defer srv.Close()

	svc := NewGeminiService("clave", "gemini-test").WithBaseURL(srv.URL + "/")
	answer, err := svc.AnswerInventoryQuestion(context.Background(), sampleInventory(), "hola")
	require.NoError(t, err)
	assert.Equal(t, "Quedan 5.", answer)
}

func TestGeminiService_SinCandidatos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := NewGeminiService("k", "m").WithBaseURL(srv.URL).AnswerInventoryQuestion(context.Background(), sampleInventory(), "hola")
	assert.ErrorContains(t, err, "vacía")
}

func TestGeminiService_Cancelado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGeminiService("k", "m").WithBaseURL(srv.URL).AnswerInventoryQuestion(ctx, sampleInventory(), "hola")
	assert.ErrorIs(t, err, context.Canceled)
}
