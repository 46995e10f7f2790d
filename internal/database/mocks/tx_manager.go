// Package mocks provides test doubles for database transaction management.
package mocks

import (
	"context"
)

// TxManagerPassthrough is a TxManager test double that runs functions directly
// without opening a database transaction.
type TxManagerPassthrough struct{}

// WithTx executes fn immediately with the given context.
func (TxManagerPassthrough) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// WithReadTx executes fn immediately with the given context.
func (TxManagerPassthrough) WithReadTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
