// =============================================================================
// PWD Works Red Flag Analyzer - Analysis Engine
// =============================================================================
//
// The engine ties the detectors together: single-record rules fan out over
// a bounded worker pool, the two cross-record detectors run concurrently,
// and the classifier merges everything into the final red/green partition.
// Output is deterministic for a given record set and evaluation instant.
//
// =============================================================================

package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pwdaudit/redflag/internal/types"
)

// ErrNoRecords means the engine was handed an empty record set. An empty
// register is a caller problem to surface, never an empty report.
var ErrNoRecords = errors.New("no records to analyze")

// =============================================================================
// ENGINE
// =============================================================================

// Engine evaluates a batch of work records against the flag catalogue.
type Engine struct {
	logger      *zap.Logger
	concurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithConcurrency bounds the single-record evaluation workers. Values
// below 1 fall back to the default.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.concurrency = n
		}
	}
}

// WithLogger attaches a logger; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New builds an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:      zap.NewNop(),
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run analyzes the given records at the given evaluation instant. The
// instant is fixed for the whole run so time-dependent rules see one
// consistent "now". Run fails only on an empty record set or a cancelled
// context; malformed records degrade to green, never to failure.
func (e *Engine) Run(ctx context.Context, records []*types.WorkRecord, now time.Time) (*types.AnalysisResult, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	e.logger.Info("starting analysis",
		zap.Int("records", len(records)),
		zap.Time("as_of", now))

	perRecord, err := e.evaluateRecords(ctx, records, now)
	if err != nil {
		return nil, err
	}

	var overlaps, splits []types.BatchFinding
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		overlaps = DetectOverlaps(records)
		return nil
	})
	g.Go(func() error {
		splits = DetectSplitting(records)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	classifier := NewClassifier(records)
	for i, r := range records {
		for _, f := range perRecord[i] {
			classifier.Apply(r.RecordIndex, f)
		}
	}
	for _, bf := range overlaps {
		classifier.ApplyBatch(bf)
	}
	for _, bf := range splits {
		classifier.ApplyBatch(bf)
	}

	red, green := classifier.Finalize()
	summary := Summarize(red)

	e.logger.Info("analysis complete",
		zap.Int("red_flagged", len(red)),
		zap.Int("green_flagged", len(green)),
		zap.Int("overlap_findings", len(overlaps)),
		zap.Int("splitting_findings", len(splits)))

	return &types.AnalysisResult{
		TotalRecords: len(records),
		RedFlagged:   red,
		GreenFlagged: green,
		FlagSummary:  summary,
		Timestamp:    now.Format(time.RFC3339),
	}, nil
}

// evaluateRecords runs the single-record rules over a bounded worker pool.
// Results land in a slice parallel to the input so ordering is preserved
// no matter which worker finishes first.
func (e *Engine) evaluateRecords(ctx context.Context, records []*types.WorkRecord, now time.Time) ([][]types.Finding, error) {
	results := make([][]types.Finding, len(records))

	jobs := make(chan int, len(records))
	for i := range records {
		jobs <- i
	}
	close(jobs)

	workers := e.concurrency
	if workers > len(records) {
		workers = len(records)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = EvaluateRecord(records[i], now)
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
