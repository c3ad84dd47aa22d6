package domain

import "context"

// TransactionManager runs a function within one storage transaction.
// Repositories participate by reading the transaction out of the context.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
