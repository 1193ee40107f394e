// Package aggregate fans out one task per source identifier and merges the results.
// Tasks are unbounded, a slow or failing source delays only the completion callback,
// never other tasks.
package aggregate

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"
)

// Func fetches results for a single source id. A returned error drops that source's
// contribution, the rest of the aggregation is unaffected.
type Func[T any] func(ctx context.Context, id string) ([]T, error)

type options[T any] struct {
	less func(a, b T) bool
	name string
}

// Option configures aggregation
type Option[T any] func(o *options[T])

// WithSort orders the merged collection before delivery, stable with respect to merge order
func WithSort[T any](less func(a, b T) bool) Option[T] {
	return func(o *options[T]) { o.less = less }
}

// WithName sets the aggregation name used in log messages
func WithName[T any](name string) Option[T] {
	return func(o *options[T]) { o.name = name }
}

// FetchAll runs fn for every id concurrently and calls onComplete exactly once with the merged
// results after all tasks finished. It returns immediately. For an empty ids list onComplete
// is called synchronously with an empty slice and nothing is started.
func FetchAll[T any](ctx context.Context, ids []string, fn Func[T], onComplete func([]T), opts ...Option[T]) {
	if len(ids) == 0 {
		onComplete([]T{})
		return
	}
	go func() {
		onComplete(Collect(ctx, ids, fn, opts...))
	}()
}

// Collect is the blocking form of FetchAll, it returns merged results once every task finished.
// Results are appended in completion order unless WithSort is set.
func Collect[T any](ctx context.Context, ids []string, fn Func[T], opts ...Option[T]) []T {
	o := options[T]{name: "sources"}
	for _, opt := range opts {
		opt(&o)
	}

	res := []T{}
	if len(ids) == 0 {
		return res
	}

	var mu sync.Mutex
	var g errgroup.Group // plain group, a failed task must not cancel the others
	for _, id := range ids {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic: %v", r)
				}
				if err != nil {
					lgr.Printf("[WARN] %s task %q failed: %v", o.name, id, err)
				}
			}()

			items, err := fn(ctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			res = append(res, items...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // failures are logged per task

	if o.less != nil {
		sort.SliceStable(res, func(i, j int) bool { return o.less(res[i], res[j]) })
	}
	lgr.Printf("[DEBUG] %s aggregation completed, %d sources, %d results", o.name, len(ids), len(res))
	return res
}
