package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driving"
	"github.com/custodia-labs/knowbase-cli/internal/logger"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// recentAdditionsLimit is how many entries the recency view carries.
const recentAdditionsLimit = 5

// StatsService derives aggregate views over the store.
type StatsService struct {
	store driven.ResourceStore
}

// NewStatsService creates a stats service.
func NewStatsService(store driven.ResourceStore) *StatsService {
	return &StatsService{store: store}
}

// Stats recomputes the full report from the current store contents.
func (s *StatsService) Stats(ctx context.Context) (*domain.StatsReport, error) {
	resources, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}

	logger.Debug("Computing stats over %d resources", len(resources))

	report := &domain.StatsReport{
		TotalResources: len(resources),
		BySource: map[string]domain.SourceBucket{
			domain.BucketYouTube:  {},
			domain.BucketDailyDev: {},
			domain.BucketPDF:      {},
			domain.BucketOther:    {},
		},
		ByAuthor: make(map[string]int),
		ByTags:   make(map[string]int),
		Topics:   make([]string, 0, len(resources)),
	}

	for i := range resources {
		res := &resources[i]
		chunks := res.EffectiveChunkCount()
		report.TotalChunks += chunks

		bucket := s.bucketFor(res)
		b := report.BySource[bucket]
		b.Count++
		b.Chunks += chunks
		report.BySource[bucket] = b

		report.ByAuthor[res.Uploader()]++
		for _, tag := range res.Metadata.Tags {
			report.ByTags[tag]++
		}
		report.Topics = append(report.Topics, res.Metadata.Title)
	}

	sort.Strings(report.Topics)
	report.RecentAdditions = recentAdditions(resources)

	return report, nil
}

// bucketFor maps a resource to its stats bucket. Resources tagged
// "daily.dev" land in the dailydev bucket regardless of source type,
// so re-imported legacy records group with their siblings.
func (s *StatsService) bucketFor(res *domain.Resource) string {
	bucket := res.Metadata.SourceType.StatsBucket()
	if bucket == domain.BucketOther && res.HasTag("daily.dev") {
		return domain.BucketDailyDev
	}
	return bucket
}

// recentAdditions returns the newest resources first. DateAdded is
// ISO-8601 so lexicographic order is chronological order.
func recentAdditions(resources []domain.Resource) []domain.RecentAddition {
	sorted := make([]*domain.Resource, len(resources))
	for i := range resources {
		sorted[i] = &resources[i]
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Metadata.DateAdded > sorted[j].Metadata.DateAdded
	})

	n := len(sorted)
	if n > recentAdditionsLimit {
		n = recentAdditionsLimit
	}

	out := make([]domain.RecentAddition, 0, n)
	for _, res := range sorted[:n] {
		out = append(out, domain.RecentAddition{
			Title:      res.Metadata.Title,
			SourceType: res.Metadata.SourceType,
			Author:     res.Uploader(),
			DateAdded:  res.Metadata.DateAdded,
		})
	}
	return out
}
