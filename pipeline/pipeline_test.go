package pipeline

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFromSlice(t *testing.T) {
	p := FromSlice([]int{1, 2, 3})
	got, err := Collect(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestCollectEmpty(t *testing.T) {
	p := FromSlice([]int(nil))
	got, err := Collect(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMapPreservesOrder(t *testing.T) {
	p := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, v int) (string, error) {
		return strconv.Itoa(v * 10), nil
	})
	got, err := Collect(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "20", "30"}, got)
}

func TestMapErrorStopsPipeline(t *testing.T) {
	boom := errors.New("boom")
	p := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, v int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v, nil
	})
	got, err := Collect(context.Background(), p)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1}, got)
}

func TestFilter(t *testing.T) {
	p := Filter(FromSlice([]int{1, 2, 3, 4, 5}), func(v int) bool { return v%2 == 0 })
	got, err := Collect(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, got)
}

func TestTapSeesEveryValue(t *testing.T) {
	var seen []int
	p := Tap(FromSlice([]int{1, 2, 3}), func(_ context.Context, v int) error {
		seen = append(seen, v)
		return nil
	})
	got, err := Collect(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestTapErrorPropagates(t *testing.T) {
	boom := errors.New("tap failed")
	p := Tap(FromSlice([]int{1}), func(_ context.Context, v int) error {
		return boom
	})
	_, err := Collect(context.Background(), p)
	assert.ErrorIs(t, err, boom)
}

func TestForEachSinkError(t *testing.T) {
	boom := errors.New("sink failed")
	err := ForEach(context.Background(), FromSlice([]int{1, 2}), func(_ context.Context, v int) error {
		if v == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestBufferPassesAllValues(t *testing.T) {
	p := Buffer(FromSlice([]int{1, 2, 3, 4}), 2)
	got, err := Collect(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestParallelProcessesAll(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	var calls int32
	p := Parallel(FromSlice(items), 4, func(_ context.Context, v int) (int, error) {
		atomic.AddInt32(&calls, 1)
		return v * 2, nil
	})

	got, err := Collect(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, got, 50)
	assert.Equal(t, int32(50), atomic.LoadInt32(&calls))

	// Order is not guaranteed, so compare sorted.
	sort.Ints(got)
	for i, v := range got {
		assert.Equal(t, i*2, v)
	}
}

func TestParallelErrorCancelsWork(t *testing.T) {
	boom := errors.New("worker failed")
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	p := Parallel(FromSlice(items), 2, func(ctx context.Context, v int) (int, error) {
		if v == 3 {
			return 0, boom
		}
		return v, nil
	})

	_, err := Collect(context.Background(), p)
	assert.ErrorIs(t, err, boom)
}

type blockingIter struct{}

func (blockingIter) Next(ctx context.Context) (int, bool, error) {
	<-ctx.Done()
	return 0, false, ctx.Err()
}

func (blockingIter) Close() error { return nil }

func TestCollectRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := Buffer(From[int](blockingIter{}), 1)
	_, err := Collect(ctx, p)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIterManualPull(t *testing.T) {
	it := FromSlice([]string{"a", "b"}).Iter(context.Background())
	defer it.Close()

	v, ok, err := it.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok, err = it.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok, err = it.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
