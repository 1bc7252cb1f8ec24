package report

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/ccmbio/wes-report/internal/table"
)

// Classifier derives one group from a variant table. It must not modify
// the table.
type Classifier func(t *table.Table) (*table.Table, error)

// WorkItem is one group to classify.
type WorkItem struct {
	Seq      int
	Name     string
	Classify Classifier
}

// WorkResult holds the classified rows of one group.
type WorkResult struct {
	Seq   int
	Name  string
	Table *table.Table
	Err   error
}

// ParallelClassify runs the classifiers of items against t using a pool of
// workers. Results are sent to the returned channel in arrival order (not
// sequence order). Use OrderedCollect to consume results in sequence-number
// order. If workers is 0, runtime.NumCPU() is used.
func ParallelClassify(ctx context.Context, t *table.Table, items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				r := WorkResult{Seq: item.Seq, Name: item.Name}
				if err := ctx.Err(); err != nil {
					r.Err = err
				} else {
					r.Table, r.Err = item.Classify(t)
				}
				results <- r
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// It buffers out-of-order results in a pending map and emits them
// as soon as the next expected sequence number is available.
// Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}

// job pairs a group name with its classifier.
type job struct {
	name     string
	classify Classifier
}

// classify runs jobs concurrently and returns their groups in job order.
func (a *Assembler) classify(ctx context.Context, t *table.Table, jobs []job) ([]Group, error) {
	items := make(chan WorkItem, len(jobs))
	for i, j := range jobs {
		items <- WorkItem{Seq: i, Name: j.name, Classify: j.classify}
	}
	close(items)

	groups := make([]Group, 0, len(jobs))
	err := OrderedCollect(ParallelClassify(ctx, t, items, a.workers), func(r WorkResult) error {
		if r.Err != nil {
			return fmt.Errorf("classify %s: %w", r.Name, r.Err)
		}
		a.logger.Info("classified group",
			zap.String("group", r.Name),
			zap.Int("rows", r.Table.Len()))
		groups = append(groups, Group{Name: r.Name, Table: r.Table})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}
