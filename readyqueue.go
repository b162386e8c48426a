package vmcore

import "container/heap"

// readyQueue is a priority max-heap of runnable threads, grounded on the
// eventloop package's timerHeap pattern (a plain heap.Interface slice
// type with Push/Pop adjusting an index field for O(log n) removal).
//
// Dead entries are never removed eagerly; see the lazy-skip rule on
// drainDead, the only place this heap is pruned.
type readyQueue []*tcb

func (q readyQueue) Len() int { return len(q) }

func (q readyQueue) Less(i, j int) bool {
	// Max-heap: higher priority sorts first.
	return q[i].priority > q[j].priority
}

func (q readyQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].rqIndex = i
	q[j].rqIndex = j
}

func (q *readyQueue) Push(x any) {
	t := x.(*tcb)
	t.rqIndex = len(*q)
	*q = append(*q, t)
}

func (q *readyQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.rqIndex = -1
	*q = old[:n-1]
	return t
}

// drainDead implements the lazy-skip rule: the only place Dead entries
// are removed from the ready queue is here, invoked before every
// consultation of the ready-queue top.
func drainDead(q *readyQueue) {
	for q.Len() > 0 && (*q)[0].state == Dead {
		heap.Pop(q)
	}
}

// peekTop returns the highest-priority live entry without removing it.
// Callers must have called drainDead first.
func (q readyQueue) peekTop() *tcb {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}
