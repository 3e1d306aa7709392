package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driving"
	"github.com/custodia-labs/knowbase-cli/internal/logger"
)

// Ensure DedupeService implements the interface.
var _ driving.DedupeService = (*DedupeService)(nil)

// DedupeService finds and merges probable duplicates that exact-id
// dedup missed: same URL under different titles, or same title under
// different URLs.
type DedupeService struct {
	store driven.ResourceStore
}

// NewDedupeService creates a dedupe service.
func NewDedupeService(store driven.ResourceStore) *DedupeService {
	return &DedupeService{store: store}
}

// FindDuplicates returns groups of probable duplicates, each with at
// least two members, highest quality first within a group.
func (s *DedupeService) FindDuplicates(ctx context.Context) ([][]domain.Resource, error) {
	resources, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}

	// Deterministic input order so group membership and survivors are
	// reproducible across runs.
	sort.Slice(resources, func(i, j int) bool {
		return resources[i].ID() < resources[j].ID()
	})

	// Union-find over shared URL or normalised title. Two resources
	// sharing either key belong to the same group.
	parent := make([]int, len(resources))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		parent[find(a)] = find(b)
	}

	byURL := make(map[string]int)
	byTitle := make(map[string]int)
	for i := range resources {
		if url := strings.TrimSpace(resources[i].Metadata.SourceURL); url != "" {
			if first, ok := byURL[url]; ok {
				union(i, first)
			} else {
				byURL[url] = i
			}
		}
		if title := normaliseTitle(resources[i].Metadata.Title); title != "" {
			if first, ok := byTitle[title]; ok {
				union(i, first)
			} else {
				byTitle[title] = i
			}
		}
	}

	members := make(map[int][]int)
	for i := range resources {
		root := find(i)
		members[root] = append(members[root], i)
	}

	var groups [][]domain.Resource
	roots := make([]int, 0, len(members))
	for root := range members {
		roots = append(roots, root)
	}
	sort.Ints(roots)

	for _, root := range roots {
		idx := members[root]
		if len(idx) < 2 {
			continue
		}

		group := make([]domain.Resource, 0, len(idx))
		for _, i := range idx {
			group = append(group, resources[i])
		}
		sort.SliceStable(group, func(a, b int) bool {
			return group[a].Metadata.QualityScore > group[b].Metadata.QualityScore
		})
		groups = append(groups, group)
	}

	logger.Debug("Found %d duplicate groups", len(groups))
	return groups, nil
}

// Merge collapses every duplicate group into its highest-quality
// member, then saves. With dryRun set, nothing is mutated.
func (s *DedupeService) Merge(ctx context.Context, dryRun bool) (*driving.MergeReport, error) {
	logger.Section("Duplicate Merge")

	groups, err := s.FindDuplicates(ctx)
	if err != nil {
		return nil, err
	}

	report := &driving.MergeReport{Groups: len(groups)}

	for _, group := range groups {
		survivor := group[0]
		report.Kept = append(report.Kept, survivor.ID())

		for _, dup := range group[1:] {
			report.Removed = append(report.Removed, dup.ID())

			// Tags from discarded members survive on the winner.
			for _, tag := range dup.Metadata.Tags {
				survivor.AddTag(tag)
			}
			survivor.Metadata.MergedFrom = append(survivor.Metadata.MergedFrom, dup.ID())
		}
		survivor.Metadata.DuplicateCount += len(group) - 1
		survivor.AddNote(fmt.Sprintf("merged %d duplicates", len(group)-1))

		if dryRun {
			continue
		}

		for _, dup := range group[1:] {
			if err := s.store.Delete(ctx, dup.ID()); err != nil {
				return nil, fmt.Errorf("delete duplicate %s: %w", dup.ID(), err)
			}
		}
		if err := s.store.Put(ctx, &survivor); err != nil {
			return nil, fmt.Errorf("store merged resource %s: %w", survivor.ID(), err)
		}

		logger.Info("Merged %d duplicates into %s (%q)",
			len(group)-1, survivor.ID(), survivor.Metadata.Title)
	}

	if !dryRun && len(groups) > 0 {
		if err := s.store.Save(ctx); err != nil {
			return nil, fmt.Errorf("save store: %w", err)
		}
	}

	return report, nil
}

// normaliseTitle lowercases and collapses whitespace so cosmetic
// variations compare equal.
func normaliseTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
