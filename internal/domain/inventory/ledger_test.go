package inventory_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

func entry(id, productID string, qty int) *entity.Transaction {
	return &entity.Transaction{ID: id, ProductID: productID, Type: entity.TransactionEntry, Quantity: qty, Date: time.Now()}
}

func exit(id, productID string, qty int, batch string) *entity.Transaction {
	return &entity.Transaction{ID: id, ProductID: productID, Type: entity.TransactionExit, Quantity: qty, Batch: batch, Date: time.Now()}
}

// Escenario A: entrada de 10 y salida de 3 sobre A; B sin movimientos.
func TestComputeStock_EscenarioA(t *testing.T) {
	products := []*entity.Product{{ID: "A"}, {ID: "B"}}
	txs := []*entity.Transaction{
		entry("t1", "A", 10),
		exit("t2", "A", 3, "L1"),
	}

	stock := inventory.ComputeStock(products, txs)

	assert.Equal(t, map[string]int{"A": 7, "B": 0}, stock)
}

func TestComputeStock_ProductoDesconocidoNoAparece(t *testing.T) {
	products := []*entity.Product{{ID: "A"}}
	txs := []*entity.Transaction{
		entry("t1", "A", 4),
		entry("t2", "Z", 50),
	}

	stock := inventory.ComputeStock(products, txs)

	assert.Len(t, stock, 1)
	assert.Equal(t, 4, stock["A"])
	_, ok := stock["Z"]
	assert.False(t, ok, "Z no pertenece al catálogo")
}

func TestComputeStock_SinProductos(t *testing.T) {
	stock := inventory.ComputeStock(nil, []*entity.Transaction{entry("t1", "A", 1)})
	assert.Empty(t, stock)
}

// La suma es independiente del orden y coincide con Σ entradas − Σ salidas.
func TestComputeStock_PropiedadSuma(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ids := []string{"A", "B", "C", "D"}
	products := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		products = append(products, &entity.Product{ID: id})
	}

	for round := 0; round < 50; round++ {
		var txs []*entity.Transaction
		want := map[string]int{"A": 0, "B": 0, "C": 0, "D": 0}
		n := rng.Intn(40)
		for i := 0; i < n; i++ {
			pid := ids[rng.Intn(len(ids))]
			qty := rng.Intn(20) + 1
			if rng.Intn(2) == 0 {
				txs = append(txs, entry("e", pid, qty))
				want[pid] += qty
			} else {
				txs = append(txs, exit("s", pid, qty, "L"))
				want[pid] -= qty
			}
		}

		assert.Equal(t, want, inventory.ComputeStock(products, txs))

		rng.Shuffle(len(txs), func(i, j int) { txs[i], txs[j] = txs[j], txs[i] })
		assert.Equal(t, want, inventory.ComputeStock(products, txs), "el orden no debe importar")
	}
}

// Borrar un movimiento y recalcular equivale a que nunca hubiera existido.
func TestComputeStock_BorrarSinResiduo(t *testing.T) {
	products := []*entity.Product{{ID: "A"}}
	base := []*entity.Transaction{entry("t1", "A", 10), exit("t2", "A", 2, "L1")}
	extra := entry("t3", "A", 5)

	withExtra := append(append([]*entity.Transaction{}, base...), extra)
	assert.Equal(t, 13, inventory.ComputeStock(products, withExtra)["A"])

	var afterDelete []*entity.Transaction
	for _, tx := range withExtra {
		if tx.ID != "t3" {
			afterDelete = append(afterDelete, tx)
		}
	}
	assert.Equal(t, inventory.ComputeStock(products, base), inventory.ComputeStock(products, afterDelete))
}

func TestStockOf(t *testing.T) {
	txs := []*entity.Transaction{
		entry("t1", "A", 10),
		exit("t2", "A", 3, "L1"),
		entry("t3", "B", 8),
	}
	assert.Equal(t, 7, inventory.StockOf("A", txs))
	assert.Equal(t, 8, inventory.StockOf("B", txs))
	assert.Equal(t, 0, inventory.StockOf("C", txs))
}
