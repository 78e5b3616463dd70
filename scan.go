package polyreg

import (
	"context"
	"math"
	"runtime"
	"sync"
)

// ParallelConfig controls parallel batch evaluation.
type ParallelConfig struct {
	Workers  int // Number of worker goroutines (0 = NumCPU)
	MinBatch int // Below this input size, run sequentially
}

// DefaultParallelConfig returns sensible defaults. The sequential cutoff
// is generous: a single sinc evaluation is tens of nanoseconds, so small
// batches lose more to goroutine fan-out than they gain.
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		Workers:  runtime.NumCPU(),
		MinBatch: 4096,
	}
}

// ComputeBatchParallel evaluates the response over a large momentum slice
// using a chunked worker pool. The result is elementwise identical to
// ComputeBatch: parallelism changes the schedule, never the values.
//
// Validation remains all-or-nothing — any out-of-domain element fails the
// whole call. Cancellation via ctx is checked between chunks; a cancelled
// call returns ctx.Err() and no partial result.
func ComputeBatchParallel(ctx context.Context, mu float64, kSquared []float64, cfg ParallelConfig) ([]float64, error) {
	if err := validateScale(mu); err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if len(kSquared) < cfg.MinBatch || workers == 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return ComputeBatch(mu, kSquared)
	}

	out := make([]float64, len(kSquared))

	// Static partition: worker i owns [i*chunk, (i+1)*chunk). Workers
	// write disjoint ranges of out, so no synchronization on the data.
	chunk := (len(kSquared) + workers - 1) / workers

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(kSquared) {
			break
		}
		hi := lo + chunk
		if hi > len(kSquared) {
			hi = len(kSquared)
		}

		wg.Add(1)
		go func(worker, lo, hi int) {
			defer wg.Done()

			for i := lo; i < hi; i++ {
				// Cancellation probe: cheap enough every 1024 elements,
				// responsive enough for multi-million-point batches.
				if i&1023 == 0 {
					if err := ctx.Err(); err != nil {
						errs[worker] = err
						return
					}
				}

				k2 := kSquared[i]
				if err := validateMomentum(k2); err != nil {
					errs[worker] = err
					return
				}

				s := Sinc(mu * math.Sqrt(k2))
				out[i] = mu * mu * s * s
			}
		}(w, lo, hi)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}
