package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driving"
	"github.com/custodia-labs/knowbase-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultAutosaveInterval is the number of added resources between
// intermediate saves during a batch. Bounds the loss window if a long
// batch is interrupted.
const DefaultAutosaveInterval = 25

// IngestService normalises raw records and stores them.
type IngestService struct {
	store    driven.ResourceStore
	registry driven.NormaliserRegistry
	chunker  driven.Chunker
	history  driven.HistoryStore // optional

	autosaveEvery int
	newRunID      func() string
	now           func() time.Time
}

// IngestOption configures an IngestService.
type IngestOption func(*IngestService)

// WithHistory enables run auditing. History failures are logged, never
// fatal; auditing must not block ingestion.
func WithHistory(h driven.HistoryStore) IngestOption {
	return func(s *IngestService) { s.history = h }
}

// WithAutosaveInterval overrides the number of added resources between
// intermediate saves. Values below one disable autosaving (the final
// save still happens).
func WithAutosaveInterval(n int) IngestOption {
	return func(s *IngestService) { s.autosaveEvery = n }
}

// NewIngestService creates an ingest service.
func NewIngestService(
	store driven.ResourceStore,
	registry driven.NormaliserRegistry,
	chunker driven.Chunker,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		store:         store,
		registry:      registry,
		chunker:       chunker,
		autosaveEvery: DefaultAutosaveInterval,
		newRunID:      uuid.NewString,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IngestRecord normalises and stores a single record without saving.
func (s *IngestService) IngestRecord(ctx context.Context, raw *domain.RawRecord) (string, error) {
	res, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("normalise record: %w", err)
	}

	// Exact-id dedup: identical URL+title means identical id, and
	// ingestion never overwrites.
	if _, err := s.store.Get(ctx, res.ID()); err == nil {
		logger.Debug("Duplicate id %s (%q), skipping", res.ID(), res.Metadata.Title)
		return res.ID(), domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("check existing resource: %w", err)
	}

	if err := s.store.Put(ctx, res); err != nil {
		return "", fmt.Errorf("store resource: %w", err)
	}

	logger.Debug("Ingested %s (%q, %d chunks)", res.ID(), res.Metadata.Title, res.ChunkCount)
	return res.ID(), nil
}

// IngestBatch ingests records best-effort and always saves at the end.
func (s *IngestService) IngestBatch(
	ctx context.Context, source string, records []domain.RawRecord,
) (*driving.IngestReport, error) {
	logger.Section("Batch Ingestion")
	logger.Info("Ingesting %d records from %s", len(records), source)

	report := &driving.IngestReport{RunID: s.newRunID()}
	started := s.now()

	var runErr error

	for i := range records {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		id, err := s.IngestRecord(ctx, &records[i])
		switch {
		case err == nil:
			report.Added++
			report.AddedIDs = append(report.AddedIDs, id)
		case errors.Is(err, domain.ErrAlreadyExists):
			report.Skipped++
		default:
			// Malformed or unsupported records are counted, never fatal.
			// Batches come from unreliable scraped dumps.
			logger.Warn("Record %d failed: %v", i, err)
			report.Failed++
			continue
		}

		if s.autosaveEvery > 0 && report.Added > 0 && report.Added%s.autosaveEvery == 0 {
			if err := s.store.Save(ctx); err != nil {
				logger.Warn("Autosave failed: %v", err)
			} else {
				logger.Debug("Autosaved after %d additions", report.Added)
			}
		}
	}

	// The final save is mandatory. Without it a batch that added fewer
	// than autosaveEvery resources would never hit disk.
	if err := s.store.Save(ctx); err != nil {
		return report, fmt.Errorf("save store: %w", err)
	}

	s.recordRun(ctx, source, started, report, runErr)

	logger.Info("Batch done: %d added, %d skipped, %d failed",
		report.Added, report.Skipped, report.Failed)

	if runErr != nil {
		return report, fmt.Errorf("batch aborted: %w", runErr)
	}
	return report, nil
}

// recordRun writes the audit row. Best-effort.
func (s *IngestService) recordRun(
	ctx context.Context, source string, started time.Time,
	report *driving.IngestReport, runErr error,
) {
	if s.history == nil {
		return
	}

	run := domain.IngestRun{
		ID:        report.RunID,
		Source:    source,
		StartedAt: started,
		EndedAt:   s.now(),
		Added:     report.Added,
		Skipped:   report.Skipped,
		Failed:    report.Failed,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	if err := s.history.RecordRun(ctx, &run); err != nil {
		logger.Warn("Recording ingest run failed: %v", err)
	}
}

// Update applies a partial update and saves.
func (s *IngestService) Update(ctx context.Context, id string, patch driving.ResourcePatch) error {
	res, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get resource: %w", err)
	}

	if patch.Title != nil {
		res.Metadata.Title = *patch.Title
	}
	if patch.Description != nil {
		res.Metadata.Description = *patch.Description
	}
	if patch.Author != nil {
		res.Metadata.Author = *patch.Author
	}
	for _, tag := range patch.Tags {
		res.AddTag(tag)
	}

	if patch.Content != nil && *patch.Content != res.Content {
		res.Content = *patch.Content
		res.SetChunks(s.chunker.Chunk(res.Content))
		res.AddNote("content updated, chunks regenerated")
		logger.Debug("Rechunked %s into %d chunks", id, res.ChunkCount)
	}

	if err := s.store.Put(ctx, res); err != nil {
		return fmt.Errorf("store resource: %w", err)
	}
	if err := s.store.Save(ctx); err != nil {
		return fmt.Errorf("save store: %w", err)
	}
	return nil
}

// Remove deletes a resource and saves.
func (s *IngestService) Remove(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if err := s.store.Save(ctx); err != nil {
		return fmt.Errorf("save store: %w", err)
	}
	logger.Info("Removed resource %s", id)
	return nil
}
