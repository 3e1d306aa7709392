package driving

import (
	"context"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

// MergeReport summarises a batch deduplication pass.
type MergeReport struct {
	// Groups is the number of duplicate groups found.
	Groups int

	// Removed lists ids deleted in favour of a higher-quality member.
	Removed []string

	// Kept lists the surviving ids, parallel to the groups.
	Kept []string
}

// DedupeService is the opt-in batch duplicate detector. Normal
// ingestion only dedups by exact content id; this service additionally
// groups resources sharing a source URL or a normalised title, and
// merges each group into its highest-quality member.
type DedupeService interface {
	// FindDuplicates returns groups of probable duplicates. Groups
	// always have at least two members.
	FindDuplicates(ctx context.Context) ([][]domain.Resource, error)

	// Merge collapses every duplicate group, unioning tags and
	// recording the discarded ids on the survivor, then saves.
	// With dryRun set, nothing is mutated.
	Merge(ctx context.Context, dryRun bool) (*MergeReport, error)
}
