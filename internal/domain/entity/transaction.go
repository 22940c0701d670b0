package entity

import "time"

// TransactionType distingue entradas y salidas. Los valores coinciden con los
// persistidos por la versión anterior del sistema.
type TransactionType string

// Tipos de movimiento del log.
const (
	TransactionEntry TransactionType = "Entrada" // aumenta el stock
	TransactionExit  TransactionType = "Salida"  // disminuye el stock; exige lote
)

// Valid indica si t es un tipo de movimiento conocido.
func (t TransactionType) Valid() bool {
	return t == TransactionEntry || t == TransactionExit
}

// Transaction es un movimiento del log append-only. La única mutación permitida es
// el borrado por ID; no hay ediciones en sitio.
type Transaction struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	Type         TransactionType `json:"type"`
	Quantity     int             `json:"quantity"`
	Date         time.Time       `json:"date"`
	Batch        string          `json:"batch,omitempty"`
	Subwarehouse string          `json:"subwarehouse,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// TransactionDraft es un movimiento candidato: ID y fecha se asignan al confirmar.
type TransactionDraft struct {
	ProductID    string          `json:"productId"`
	Type         TransactionType `json:"type"`
	Quantity     int             `json:"quantity"`
	Batch        string          `json:"batch,omitempty"`
	Subwarehouse string          `json:"subwarehouse,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// Commit materializa el borrador con el ID y la fecha asignados en el límite de la llamada.
func (d TransactionDraft) Commit(id string, at time.Time) *Transaction {
	return &Transaction{
		ID:           id,
		ProductID:    d.ProductID,
		Type:         d.Type,
		Quantity:     d.Quantity,
		Date:         at,
		Batch:        d.Batch,
		Subwarehouse: d.Subwarehouse,
		Notes:        d.Notes,
	}
}
