package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-flowfeat/features"
)

// Applier adds one feature column per extractor for every requested
// sequence column: "stft_<col>" and "dwt_<col>" by default.
type Applier struct {
	extractors []features.Extractor
	specs      map[string]features.Spec
	workers    int
	policy     Policy
	sentinel   float64
	logger     *zap.Logger
}

// Option configures an Applier.
type Option func(*Applier)

// WithWorkers bounds the number of rows extracted concurrently. Values
// below 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(a *Applier) {
		a.workers = n
	}
}

// WithPolicy sets the row failure policy.
func WithPolicy(p Policy) Option {
	return func(a *Applier) {
		a.policy = p
	}
}

// WithSentinel sets the fill value used by FillSentinel.
func WithSentinel(v float64) Option {
	return func(a *Applier) {
		a.sentinel = v
	}
}

// WithLogger sets the logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(a *Applier) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithExtractors replaces the default spectrogram and wavelet extractors.
func WithExtractors(ex ...features.Extractor) Option {
	return func(a *Applier) {
		a.extractors = ex
	}
}

// WithSpec sets the statistics computed by the extractor with the given
// name. Extractors without a spec use their default.
func WithSpec(extractor string, spec features.Spec) Option {
	return func(a *Applier) {
		a.specs[extractor] = spec
	}
}

// NewApplier returns an Applier. Without WithExtractors it uses
// features.NewSpectrogramExtractor and features.NewWaveletExtractor with
// their defaults.
func NewApplier(opts ...Option) (*Applier, error) {
	a := &Applier{
		specs:  make(map[string]features.Spec),
		policy: FailBatch,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	if a.workers < 1 {
		a.workers = runtime.GOMAXPROCS(0)
	}

	switch a.policy {
	case FailBatch, SkipRow, FillSentinel:
	default:
		return nil, fmt.Errorf("batch: unknown policy %d", int(a.policy))
	}

	if a.extractors == nil {
		stft, err := features.NewSpectrogramExtractor(features.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}

		dwt, err := features.NewWaveletExtractor(features.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}

		a.extractors = []features.Extractor{stft, dwt}
	}

	return a, nil
}

// Apply extracts features for each column of columns present in ds and
// stores them as new columns named "<extractor>_<column>". Absent columns
// are skipped. Row order is preserved; rows are processed concurrently.
//
// Under FailBatch the first row failure is returned and the current input
// column gets no feature columns. Under SkipRow and FillSentinel all
// columns are added and the failures are returned as *RowErrors together
// with ds. A cancelled context stops scheduling and returns its error.
func (a *Applier) Apply(ctx context.Context, ds Dataset, columns []string) (Dataset, error) {
	var rowErrs error

	for _, col := range columns {
		if !ds.HasColumn(col) {
			a.logger.Debug("skipping missing column", zap.String("column", col))
			continue
		}

		cells, err := ds.Column(col)
		if err != nil {
			return ds, err
		}

		outs := make([][][]float64, len(a.extractors))
		for k, ex := range a.extractors {
			res, errs, err := a.run(ctx, ex, col, cells)
			if err != nil {
				return ds, err
			}

			rowErrs = multierr.Append(rowErrs, multierr.Combine(errs...))
			outs[k] = res
		}

		for k, ex := range a.extractors {
			if err := ds.SetColumn(ex.Name()+"_"+col, outs[k]); err != nil {
				return ds, err
			}
		}

		a.logger.Debug("applied features",
			zap.String("column", col),
			zap.Int("rows", len(cells)),
			zap.Int("extractors", len(a.extractors)))
	}

	if rowErrs != nil {
		return ds, &RowErrors{err: rowErrs}
	}

	return ds, nil
}

// run extracts every cell with a bounded worker pool. Row errors tolerated
// by the policy are returned in row order; the final error is fatal.
func (a *Applier) run(ctx context.Context, ex features.Extractor, col string, cells [][]float64) ([][]float64, []error, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	spec := a.specs[ex.Name()]
	results := make([][]float64, len(cells))
	failed := make([]error, len(cells))

	work := make(chan int)

	var wg sync.WaitGroup
	for range min(a.workers, len(cells)) {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range work {
				v, err := ex.Extract(cells[i], spec)
				if err != nil {
					failed[i] = &RowError{Column: col, Extractor: ex.Name(), Row: i, Err: err}
					if a.policy == FailBatch {
						cancel()
					}

					continue
				}

				results[i] = v
			}
		}()
	}

feed:
	for i := range cells {
		select {
		case work <- i:
		case <-runCtx.Done():
			break feed
		}
	}

	close(work)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var errs []error
	for i, err := range failed {
		if err == nil {
			continue
		}

		if a.policy == FailBatch {
			return nil, nil, err
		}

		a.logger.Warn("row extraction failed",
			zap.String("column", col),
			zap.String("extractor", ex.Name()),
			zap.Int("row", i),
			zap.Error(err))

		errs = append(errs, err)
		results[i] = a.fill(ex, spec, len(cells[i]))
	}

	return results, errs, nil
}

func (a *Applier) fill(ex features.Extractor, spec features.Spec, n int) []float64 {
	if a.policy != FillSentinel {
		return []float64{}
	}

	out := make([]float64, ex.Length(n, spec))
	for i := range out {
		out[i] = a.sentinel
	}

	return out
}
