package ports

import "context"

// LLMService define el puerto de salida para el asistente conversacional.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta interfaz.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type LLMService interface {
	// AnswerInventoryQuestion responde usando únicamente los datos de inv.
	AnswerInventoryQuestion(ctx context.Context, inv InventoryContext, question string) (string, error)
}

// InventoryContext es la instantánea de solo lectura que recibe el modelo.
type InventoryContext struct {
	Warehouse string
	Stock     []StockItem
	History   []HistoryItem // movimientos más recientes, en orden cronológico
}

// StockItem stock actual de un producto.
type StockItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// HistoryItem movimiento tal como se le presenta al modelo.
type HistoryItem struct {
	ID          string `json:"id_transaccion"`
	Type        string `json:"tipo"`
	ProductID   string `json:"producto_id"`
	ProductName string `json:"producto_nombre"`
	Quantity    int    `json:"cantidad"`
	Date        string `json:"fecha"`
	Batch       string `json:"lote"`
	Notes       string `json:"notas"`
}
