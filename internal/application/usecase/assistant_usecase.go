package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// historyDateLayout fecha y hora legibles para el modelo.
const historyDateLayout = "2/1/2006, 15:04:05"

// AssistantUseCase responde preguntas sobre el inventario a partir de una
// instantánea de solo lectura. Aplica un timeout de 15 s a cada llamada al LLM.
type AssistantUseCase struct {
	llm          ports.LLMService
	inventory    *inventory.Service
	warehouse    string
	historyLimit int
}

// NewAssistantUseCase construye el caso de uso. llm nil = asistente deshabilitado.
func NewAssistantUseCase(llm ports.LLMService, inv *inventory.Service, warehouse string, historyLimit int) *AssistantUseCase {
	if historyLimit <= 0 {
		historyLimit = 200
	}
	return &AssistantUseCase{llm: llm, inventory: inv, warehouse: warehouse, historyLimit: historyLimit}
}

// Ask arma el contexto del inventario y delega al LLM.
func (uc *AssistantUseCase) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", domain.ErrInvalidInput
	}
	if uc.llm == nil {
		return "", domain.ErrAssistantUnavailable
	}

	inv := BuildInventoryContext(uc.inventory.Recompute(ctx), uc.warehouse, uc.historyLimit)

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	answer, err := uc.llm.AnswerInventoryQuestion(ctx, inv, question)
	if err != nil {
		return "", fmt.Errorf("asistente: %w", err)
	}
	return answer, nil
}

// BuildInventoryContext toma el stock de todo el catálogo y los últimos limit
// movimientos. Los lotes y notas vacíos se presentan como "N/A".
func BuildInventoryContext(snap inventory.Snapshot, warehouse string, limit int) ports.InventoryContext {
	names := make(map[string]string, len(snap.Products))
	stock := make([]ports.StockItem, 0, len(snap.Products))
	for _, p := range snap.Products {
		names[p.ID] = p.Name
		stock = append(stock, ports.StockItem{ID: p.ID, Name: p.Name, Stock: snap.Stock[p.ID]})
	}

	txs := snap.Transactions
	if len(txs) > limit {
		txs = txs[len(txs)-limit:]
	}
	history := make([]ports.HistoryItem, 0, len(txs))
	for _, t := range txs {
		history = append(history, historyItem(t, names))
	}

	return ports.InventoryContext{Warehouse: warehouse, Stock: stock, History: history}
}

func historyItem(t *entity.Transaction, names map[string]string) ports.HistoryItem {
	name, ok := names[t.ProductID]
	if !ok {
		name = "Desconocido"
	}
	return ports.HistoryItem{
		ID:          t.ID,
		Type:        string(t.Type),
		ProductID:   t.ProductID,
		ProductName: name,
		Quantity:    t.Quantity,
		Date:        t.Date.Format(historyDateLayout),
		Batch:       orNA(t.Batch),
		Notes:       orNA(t.Notes),
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
