package vmcore

import "container/heap"

// runAlarmTick implements the §4.5 alarm handler body. It is invoked
// from the alarm ticker goroutine (substrate-driven in production,
// test-driven in unit tests), never from a thread's own goroutine.
func (vm *VM) runAlarmTick() {
	vm.guard.lock()
	vm.clock.current++
	now := vm.clock.current

	for {
		top := vm.sleep.peekTop()
		if top == nil || top.wakeTick > now {
			break
		}
		t := heap.Pop(&vm.sleep).(*tcb)
		if t.state != Waiting {
			// Lazy tombstone: the thread's wait was already resolved
			// by something else (e.g. it reacquired a mutex and this
			// deadline entry should have been removed but a race in
			// bookkeeping left it; tolerate it defensively).
			continue
		}
		t.state = Ready
		t.wait = waitNone
		t.hasDeadline = false
		heap.Push(&vm.ready, t)
	}

	vm.logEvent(LevelDebug, "alarm", "tick", nil)
	vm.scheduleExternal()
}
