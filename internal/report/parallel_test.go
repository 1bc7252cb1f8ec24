package report

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ccmbio/wes-report/internal/table"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// makeItems returns n items; item i keeps the first i rows.
func makeItems(n int) <-chan WorkItem {
	ch := make(chan WorkItem, n)
	for i := range n {
		ch <- WorkItem{
			Seq:  i,
			Name: fmt.Sprintf("group%d", i),
			Classify: func(t *table.Table) (*table.Table, error) {
				return headN(t, i), nil
			},
		}
	}
	close(ch)
	return ch
}

func headN(t *table.Table, n int) *table.Table {
	seen := 0
	return t.Filter(func([]string) bool {
		seen++
		return seen <= n
	})
}

func numberedTable(t *testing.T, n int) *table.Table {
	t.Helper()
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{fmt.Sprint(i)}
	}
	tbl, err := table.New([]string{"id"}, rows)
	require.NoError(t, err)
	return tbl
}

func TestParallelClassify_OrderPreservation(t *testing.T) {
	tbl := numberedTable(t, 200)
	results := ParallelClassify(context.Background(), tbl, makeItems(200), 8)

	var collected []int
	err := OrderedCollect(results, func(r WorkResult) error {
		require.NoError(t, r.Err)
		collected = append(collected, r.Seq)
		assert.Equal(t, r.Seq, r.Table.Len())
		assert.Equal(t, fmt.Sprintf("group%d", r.Seq), r.Name)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, collected, 200)
	for i, seq := range collected {
		assert.Equal(t, i, seq, "result %d out of order", i)
	}
}

func TestParallelClassify_SingleWorker(t *testing.T) {
	tbl := numberedTable(t, 10)
	results := ParallelClassify(context.Background(), tbl, makeItems(50), 1)

	var collected []int
	err := OrderedCollect(results, func(r WorkResult) error {
		collected = append(collected, r.Seq)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, collected, 50)
	for i, seq := range collected {
		assert.Equal(t, i, seq)
	}
}

func TestParallelClassify_EmptyInput(t *testing.T) {
	ch := make(chan WorkItem)
	close(ch)
	results := ParallelClassify(context.Background(), numberedTable(t, 1), ch, 4)

	count := 0
	err := OrderedCollect(results, func(r WorkResult) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestParallelClassify_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := ParallelClassify(ctx, numberedTable(t, 1), makeItems(5), 2)

	err := OrderedCollect(results, func(r WorkResult) error {
		assert.ErrorIs(t, r.Err, context.Canceled)
		assert.Nil(t, r.Table)
		return nil
	})
	require.NoError(t, err)
}

func TestParallelClassify_SharedTableUnchanged(t *testing.T) {
	tbl := numberedTable(t, 20)
	results := ParallelClassify(context.Background(), tbl, makeItems(20), 4)
	require.NoError(t, OrderedCollect(results, func(WorkResult) error { return nil }))

	ids, err := tbl.Column("id")
	require.NoError(t, err)
	assert.Len(t, ids, 20)
	assert.Equal(t, "0", ids[0])
	assert.Equal(t, "19", ids[19])
}

func TestOrderedCollect_EarlyError(t *testing.T) {
	results := ParallelClassify(context.Background(), numberedTable(t, 1), makeItems(100), 4)

	count := 0
	err := OrderedCollect(results, func(r WorkResult) error {
		count++
		if count == 5 {
			return fmt.Errorf("stop at 5")
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 5, count)
}

func TestAssemblerClassify_ErrorNamesGroup(t *testing.T) {
	tbl := numberedTable(t, 3)
	jobs := []job{
		{"ok", func(t *table.Table) (*table.Table, error) { return t, nil }},
		{"broken", func(*table.Table) (*table.Table, error) { return nil, fmt.Errorf("boom") }},
	}

	_, err := NewAssembler(2).classify(context.Background(), tbl, jobs)
	require.Error(t, err)
	assert.Equal(t, "classify broken: boom", err.Error())
}
