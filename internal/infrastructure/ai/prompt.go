package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/almacen-api/internal/application/ports"
)

// systemPrompt define el rol del asistente. %s = nombre del almacén.
const systemPrompt = `Eres un asistente de inventario para el almacén "%s".
Tu personalidad es entusiasta, enérgica y con buen sentido del humor; hablas en español latinoamericano coloquial y amigable.
Tu conocimiento se limita exclusivamente a los datos de stock actual y al historial de movimientos (entradas y salidas) que se te proporcionan.
Responde siempre en español, de forma breve y directa. Al dar detalles de un movimiento incluye la fecha, la cantidad y el nombre del producto.
Si la pregunta no se relaciona con el inventario, indica amablemente que solo puedes responder sobre ese tema.
No inventes información: basa tus respuestas únicamente en los datos proporcionados.`

// buildPrompt devuelve (system, user). Los datos viajan como JSON dentro del mensaje del usuario.
func buildPrompt(inv ports.InventoryContext, question string) (string, string, error) {
	stock, err := json.Marshal(inv.Stock)
	if err != nil {
		return "", "", fmt.Errorf("AI: serializar stock: %w", err)
	}
	history, err := json.Marshal(inv.History)
	if err != nil {
		return "", "", fmt.Errorf("AI: serializar historial: %w", err)
	}

	var b strings.Builder
	b.WriteString("Datos de stock actual:\n")
	b.Write(stock)
	fmt.Fprintf(&b, "\n\nHistorial de movimientos (los %d más recientes):\n", len(inv.History))
	b.Write(history)
	b.WriteString("\n\nPregunta: ")
	b.WriteString(question)

	return fmt.Sprintf(systemPrompt, inv.Warehouse), b.String(), nil
}

// cleanAnswer quita los asteriscos de markdown: la respuesta se muestra como texto plano.
func cleanAnswer(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "*", ""))
}
