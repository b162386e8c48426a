package vmcore

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyQueuePopsHighestPriorityFirst(t *testing.T) {
	q := make(readyQueue, 0, 4)
	low := newTCB(10, PriorityLow, nil, nil, 0)
	high := newTCB(11, PriorityHigh, nil, nil, 0)
	normal := newTCB(12, PriorityNormal, nil, nil, 0)

	heap.Push(&q, low)
	heap.Push(&q, high)
	heap.Push(&q, normal)

	require.Equal(t, high, heap.Pop(&q).(*tcb))
	require.Equal(t, normal, heap.Pop(&q).(*tcb))
	require.Equal(t, low, heap.Pop(&q).(*tcb))
}

func TestReadyQueueSwapUpdatesIndex(t *testing.T) {
	q := make(readyQueue, 0, 4)
	a := newTCB(1, PriorityLow, nil, nil, 0)
	b := newTCB(2, PriorityHigh, nil, nil, 0)
	heap.Push(&q, a)
	heap.Push(&q, b)

	for i, t2 := range q {
		assert.Equal(t, i, t2.rqIndex)
	}
}

func TestDrainDeadOnlyRemovesFromTop(t *testing.T) {
	q := make(readyQueue, 0, 4)
	a := newTCB(1, PriorityNormal, nil, nil, 0)
	a.state = Dead
	b := newTCB(2, PriorityNormal, nil, nil, 0)
	b.state = Ready

	heap.Push(&q, a)
	heap.Push(&q, b)

	drainDead(&q)
	top := q.peekTop()
	require.NotNil(t, top)
	assert.Equal(t, Ready, top.state)
}

func TestPopOnEmptyReadyQueuePeekTopReturnsNil(t *testing.T) {
	q := make(readyQueue, 0, 0)
	assert.Nil(t, q.peekTop())
}
