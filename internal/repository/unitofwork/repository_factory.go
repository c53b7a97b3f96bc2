package unitofwork

import "context"

// RepositoryFactory hands out fresh units of work, one per request or
// message being processed.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
