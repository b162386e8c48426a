package vmcore

import (
	"container/heap"
	"runtime"
)

// reason is the suspension reason passed to schedule, per §4.4.
type reason int

const (
	reasonPriority reason = iota
	reasonYield
	reasonSleep
	reasonIoWait
	reasonMutexWait
	reasonTerminated
)

// scheduleCooperative implements schedule(reason) for the cooperative
// entry points: explicit API calls that suspend (sleep, file I/O,
// mutex acquire/release, thread_activate). It is always called on the
// goroutine belonging to the thread that is currently Running, and it
// always returns only once that same thread has been scheduled Running
// again (or never returns at all, for reasonTerminated).
//
// The guard must be held on entry; scheduleCooperative releases it
// before the context switch, per the design note that the mask is
// released before switching out so the incoming thread runs with
// signals enabled.
func (vm *VM) scheduleCooperative(r reason) {
	old := vm.current
	drainDead(&vm.ready)
	top := vm.ready.peekTop()

	var next *tcb

	switch r {
	case reasonPriority:
		if top == nil || top.priority <= old.priority {
			vm.guard.unlock()
			return
		}
		old.state = Ready
		heap.Push(&vm.ready, old)
		next = heap.Pop(&vm.ready).(*tcb)
	case reasonYield:
		// thread_sleep(0): §8's boundary behavior is looser than
		// thread_activate/mutex_release — a peer at the SAME priority
		// also gets the processor, not just a strictly higher one.
		if top == nil || top.priority < old.priority {
			vm.guard.unlock()
			return
		}
		old.state = Ready
		heap.Push(&vm.ready, old)
		next = heap.Pop(&vm.ready).(*tcb)
	case reasonSleep, reasonIoWait, reasonMutexWait, reasonTerminated:
		next = heap.Pop(&vm.ready).(*tcb)
	default:
		panic("vmcore: unknown schedule reason")
	}

	next.state = Running
	vm.current = next
	vm.guard.unlock()

	if next.id != idleThreadID {
		next.resumeCh <- struct{}{}
	}

	if r == reasonTerminated {
		// One-way switch: old's context is discarded and its goroutine
		// exits here, running only its deferred calls.
		runtime.Goexit()
	}

	// old is never the idle thread: idle never calls an API that
	// suspends, so it is always safe to park here and wait to be
	// resumed.
	<-old.resumeCh
}

// scheduleExternal implements schedule(Priority) as invoked from the
// alarm handler and the file-completion callback, both of which run on
// a goroutine other than the one currently holding the baton (the
// alarm ticker goroutine, or a per-call completion goroutine). Such a
// caller cannot forcibly preempt a genuinely running, non-yielding
// goroutine — Go has no such primitive — so a real switch only happens
// when current is idle (meaning, in truth, nothing is executing).
// Otherwise the newly-ready thread is left in the ready queue and the
// actual switch is deferred to the running thread's own next
// cooperative yield, which is exactly how the spec's own scenarios
// (periodic sleep(0)) are written.
//
// The guard must be held on entry; scheduleExternal always releases it
// before returning.
func (vm *VM) scheduleExternal() {
	drainDead(&vm.ready)
	top := vm.ready.peekTop()
	cur := vm.current

	if top == nil || top.priority <= cur.priority {
		vm.guard.unlock()
		return
	}

	if cur.id != idleThreadID {
		// A higher-priority thread is ready, but the current runner
		// is a live goroutine we cannot preempt from here.
		vm.guard.unlock()
		return
	}

	next := heap.Pop(&vm.ready).(*tcb)

	// cur is idle and is about to stop being current: per §4.4, idle
	// must always remain in the ready queue whenever it is not the
	// one running, so the lazy skip never exhausts it.
	cur.state = Ready
	heap.Push(&vm.ready, cur)

	next.state = Running
	vm.current = next
	vm.guard.unlock()

	next.resumeCh <- struct{}{}
}
