package driving

import (
	"context"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

// StatsService derives aggregate views over the store.
type StatsService interface {
	// Stats recomputes the full report. Read-only.
	Stats(ctx context.Context) (*domain.StatsReport, error)
}
