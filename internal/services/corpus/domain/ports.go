package domain

import (
	"context"

	"phishguard/internal/core/corpus"
)

// LoaderPort reads the whole corpus into memory for one training run
type LoaderPort interface {
	Load(ctx context.Context) (*corpus.Dataset, error)
}

// ImporterPort copies a dataset into the corpus table
type ImporterPort interface {
	Import(ctx context.Context, ds *corpus.Dataset) (int, error)
}
