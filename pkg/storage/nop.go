package storage

import (
	"context"

	"github.com/ekiara/windows-utils/pkg/domain"
)

// NopRunRepository is the journal used when run history is disabled: every
// call succeeds without touching any storage, so nothing outlives the run.
type NopRunRepository struct{}

func (NopRunRepository) Create(_ context.Context, run domain.Run) (domain.Run, error) {
	return run, nil
}

func (NopRunRepository) Update(context.Context, domain.Run) error {
	return nil
}

func (NopRunRepository) FindRecent(context.Context, int) ([]domain.Run, error) {
	return nil, nil
}
