package concurrent

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	wp := NewWorkerPool[int, int](4, 100)
	for i := 0; i < 100; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Start(context.Background(), func(job int) int { return job * job })
	wp.Wait()

	got := make([]int, 0, 100)
	for r := range wp.CollectResults() {
		got = append(got, r)
	}
	sort.Ints(got)

	assert.Len(t, got, 100)
	for i, r := range got {
		assert.Equal(t, i*i, r)
	}
}

func TestWorkerPoolCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wp := NewWorkerPool[int, int](2, 10)
	for i := 0; i < 10; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Start(ctx, func(job int) int { return job })
	wp.Wait()

	count := 0
	for range wp.CollectResults() {
		count++
	}
	assert.Zero(t, count)
}
