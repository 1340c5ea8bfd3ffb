package embedify

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/mdbook-embedify/internal/mdbook"
	"github.com/alnah/mdbook-embedify/internal/pipeline"
)

// Worker sizing constants.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps concurrent chapter transforms.
	MaxWorkers = 256
)

// Transformer rewrites chapter content: expands embed markers outside
// ignore regions and appends enabled global snippets.
// A Transformer is safe for concurrent use.
type Transformer struct {
	engine  *pipeline.Engine
	workers int
	logger  zerolog.Logger
}

// Transform returns content with markers expanded and global snippets
// appended. Content without markers and with no globals enabled is
// returned unchanged.
func (t *Transformer) Transform(content string) string {
	return t.engine.Transform(content)
}

// TransformAll transforms each document concurrently and returns the
// results in input order. Stops early and returns ctx.Err() on cancellation.
func (t *Transformer) TransformAll(ctx context.Context, docs []string) ([]string, error) {
	out := make([]string, len(docs))
	copy(out, docs)

	ptrs := make([]*string, len(out))
	for i := range out {
		ptrs[i] = &out[i]
	}

	if err := t.transformInPlace(ctx, ptrs); err != nil {
		return nil, err
	}
	return out, nil
}

// Workers returns the resolved worker count.
func (t *Transformer) Workers() int {
	return ResolveWorkers(t.workers)
}

// transformChapters rewrites chapter content in place.
func (t *Transformer) transformChapters(ctx context.Context, chapters []*mdbook.Chapter) error {
	ptrs := make([]*string, len(chapters))
	for i, ch := range chapters {
		ptrs[i] = &ch.Content
	}

	if t.logger.GetLevel() <= zerolog.DebugLevel {
		for _, ch := range chapters {
			t.logger.Debug().Str("chapter", ch.Path()).Int("bytes", len(ch.Content)).Msg("chapter queued")
		}
	}

	start := time.Now()
	if err := t.transformInPlace(ctx, ptrs); err != nil {
		return err
	}

	t.logger.Debug().
		Int("chapters", len(chapters)).
		Dur("elapsed", time.Since(start)).
		Msg("chapters transformed")
	return nil
}

// transformInPlace runs Transform over docs with a bounded worker pool.
// Each job writes only its own slot, so no locking is needed.
func (t *Transformer) transformInPlace(ctx context.Context, docs []*string) error {
	if len(docs) == 0 {
		return ctx.Err()
	}

	workers := min(ResolveWorkers(t.workers), len(docs))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	jobs := make(chan int, len(docs))

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					continue
				}
				if err := t.transformOne(docs[idx]); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}()
	}

	for i := range docs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// transformOne rewrites a single document, turning a renderer panic into an
// error since it would otherwise kill the process from a worker goroutine.
func (t *Transformer) transformOne(doc *string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()
	*doc = t.engine.Transform(*doc)
	return nil
}

// ResolveWorkers determines the worker count.
// Priority: explicit workers > GOMAXPROCS.
// Exported for use by CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return min(workers, MaxWorkers)
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers
	n := runtime.GOMAXPROCS(0)
	if n < MinWorkers {
		return MinWorkers
	}
	return min(n, MaxWorkers)
}
