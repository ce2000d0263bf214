// Package ingest drives a full parse cycle: clear the session, call the
// extraction engine, normalize and enrich the drafts, and publish the
// result atomically.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/niems-digital/emslog/internal/extract"
	"github.com/niems-digital/emslog/internal/metrics"
	"github.com/niems-digital/emslog/internal/models"
	"github.com/niems-digital/emslog/internal/pipeline"
	"github.com/niems-digital/emslog/internal/registry"
	"github.com/niems-digital/emslog/internal/session"
)

// ErrParseInFlight is returned when a parse cycle is requested while a
// prior one has not finished. The engine exposes no cancellation
// primitive, so cycles are serialized at this boundary instead.
var ErrParseInFlight = errors.New("ingest: a parse cycle is already in flight")

// Ingestor runs parse cycles against one engine, registry, and store.
type Ingestor struct {
	engine   extract.Engine
	registry *registry.Registry
	store    *session.Store
	logger   *slog.Logger
	busy     atomic.Bool
}

// New creates an ingestor.
func New(engine extract.Engine, reg *registry.Registry, store *session.Store, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{
		engine:   engine,
		registry: reg,
		store:    store,
		logger:   logger,
	}
}

// Parse runs one full cycle over the raw log text. The session store is
// cleared before the engine call, so a failed cycle leaves the session
// empty rather than showing results from a prior success. Records become
// visible only after the whole batch is sanitized and enriched.
func (in *Ingestor) Parse(ctx context.Context, rawText string) ([]models.Activity, error) {
	if !in.busy.CompareAndSwap(false, true) {
		return nil, ErrParseInFlight
	}
	defer in.busy.Store(false)

	metrics.Inc(metrics.ParseTotal)
	in.store.Clear()

	drafts, err := in.engine.Extract(ctx, rawText)
	if err != nil {
		metrics.Inc(metrics.ParseFailures)
		return nil, fmt.Errorf("ingest: extraction failed: %w", err)
	}

	records := pipeline.Normalize(drafts, in.registry, in.logger)
	in.store.ReplaceAll(records)
	metrics.RecordsIngested.Add(int64(len(records)))

	in.logger.Info("parse cycle complete",
		"drafts", len(drafts), "records", len(records))
	return records, nil
}

// Store exposes the session store for read access and edits.
func (in *Ingestor) Store() *session.Store { return in.store }
