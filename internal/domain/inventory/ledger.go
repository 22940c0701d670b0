package inventory

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ComputeStock deriva el stock actual de cada producto a partir del log completo
// (servicio de dominio, sin efectos).
//
// Todo producto conocido inicia en 0, de modo que un producto sin movimientos
// aparece con stock 0. Los movimientos de productos que no están en el catálogo
// no aparecen en el resultado: el dominio de salida es exactamente el conjunto de IDs.
// El orden de transactions es irrelevante (la suma es conmutativa).
func ComputeStock(products []*entity.Product, transactions []*entity.Transaction) map[string]int {
	stock := make(map[string]int, len(products))
	for _, p := range products {
		stock[p.ID] = 0
	}
	for _, tx := range transactions {
		current, known := stock[tx.ProductID]
		if !known {
			continue
		}
		stock[tx.ProductID] = current + signedQuantity(tx)
	}
	return stock
}

// StockOf calcula el stock de un solo producto recorriendo el log.
func StockOf(productID string, transactions []*entity.Transaction) int {
	total := 0
	for _, tx := range transactions {
		if tx.ProductID == productID {
			total += signedQuantity(tx)
		}
	}
	return total
}

// signedQuantity: positivo para entradas, negativo para salidas.
func signedQuantity(tx *entity.Transaction) int {
	switch tx.Type {
	case entity.TransactionEntry:
		return tx.Quantity
	case entity.TransactionExit:
		return -tx.Quantity
	}
	return 0
}
