package unitofwork

import (
	"context"

	"shadowwork-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ContentChunkRepository() contract.ContentChunkRepository
	SessionStateRepository() contract.SessionStateRepository
}
