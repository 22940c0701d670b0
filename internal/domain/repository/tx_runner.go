package repository

import "context"

// TxRunner ejecuta una función dentro de una transacción del almacenamiento, pasando
// repositorios atados a esa transacción. Si fn devuelve error no se persiste nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(products ProductRepository, transactions TransactionRepository) error) error
}
