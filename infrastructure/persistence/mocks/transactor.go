package mocks

import "context"

// NoopTransactor pass-through transactor for tests; the mock
// repositories have no real transactions to join
type NoopTransactor struct{}

func (NoopTransactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
