package vmcore

import "container/heap"

// sleepQueue is a min-heap on wake-tick, grounded on the same
// heap.Interface shape as readyQueue (itself grounded on the eventloop
// package's timerHeap). It hosts both plain thread_sleep parks and
// mutex-acquire timeout deadlines: mutex_acquire registers a second,
// independent entry here keyed on the absolute deadline tick, so a
// waiter with a finite timeout wakes even if it is never chosen as the
// new mutex owner. See mutex.go for the lazy-skip tolerance this
// implies on the mutex waiter heap.
type sleepQueue []*tcb

func (q sleepQueue) Len() int { return len(q) }

func (q sleepQueue) Less(i, j int) bool {
	return q[i].wakeTick < q[j].wakeTick
}

func (q sleepQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].slIndex = i
	q[j].slIndex = j
}

func (q *sleepQueue) Push(x any) {
	t := x.(*tcb)
	t.slIndex = len(*q)
	*q = append(*q, t)
}

func (q *sleepQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.slIndex = -1
	*q = old[:n-1]
	return t
}

func (q sleepQueue) peekTop() *tcb {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}

// popExpired drains every entry whose wake_tick is <= now, in
// ascending order, per the alarm handler's "loop until the condition
// fails" instruction for correctness under catch-up.
func popExpired(q *sleepQueue, now Ticks) []*tcb {
	var woken []*tcb
	for q.Len() > 0 && (*q)[0].wakeTick <= now {
		woken = append(woken, heap.Pop(q).(*tcb))
	}
	return woken
}
