package vmcore

import "container/heap"

// ThreadCreate allocates a control block; state is Dead until
// ThreadActivate. It does not schedule.
func (vm *VM) ThreadCreate(entry EntryFunc, arg any, stackSize int, priority Priority, out *ThreadID) Status {
	if entry == nil || out == nil {
		return InvalidParameter
	}
	vm.guard.lock()
	id := vm.threads.allocID()
	t := newTCB(id, priority, entry, arg, stackSize)
	vm.threads.insert(t)
	vm.guard.unlock()
	*out = id
	return Success
}

// ThreadActivate requires the target to be Dead; it spawns the
// thread's goroutine, marks it Ready, and yields to it immediately if
// it outranks the caller.
func (vm *VM) ThreadActivate(id ThreadID) Status {
	vm.guard.lock()
	t, ok := vm.threads.get(id)
	if !ok {
		vm.guard.unlock()
		return InvalidId
	}
	if t.state != Dead {
		vm.guard.unlock()
		return InvalidState
	}

	t.state = Ready
	heap.Push(&vm.ready, t)
	vm.spawn(t)

	vm.scheduleCooperative(reasonPriority)
	return Success
}

// ThreadTerminate marks the target Dead. If it is the current runner,
// the scheduler performs a one-way switch into another thread and
// this call never returns to its caller, per §8's boundary behavior.
// If it is not the current runner, it remains wherever it is queued;
// the next lazy-skip drops it.
func (vm *VM) ThreadTerminate(id ThreadID) Status {
	vm.guard.lock()
	t, ok := vm.threads.get(id)
	if !ok {
		vm.guard.unlock()
		return InvalidId
	}
	if t.state == Dead {
		vm.guard.unlock()
		return InvalidState
	}

	t.state = Dead

	if t == vm.current {
		vm.scheduleCooperative(reasonTerminated)
		// unreachable: the caller's goroutine exits inside
		// scheduleCooperative for reasonTerminated.
		return Success
	}

	vm.guard.unlock()
	return Success
}

// ThreadDelete requires the target to be Dead; it removes the control
// block entirely.
func (vm *VM) ThreadDelete(id ThreadID) Status {
	vm.guard.lock()
	defer vm.guard.unlock()
	t, ok := vm.threads.get(id)
	if !ok {
		return InvalidId
	}
	if t.state != Dead {
		return InvalidState
	}
	vm.threads.delete(id)
	return Success
}

// ThreadID returns the current runner's id.
func (vm *VM) ThreadID() ThreadID {
	vm.guard.lock()
	defer vm.guard.unlock()
	return vm.current.id
}

// ThreadState returns the target's lifecycle state.
func (vm *VM) ThreadState(id ThreadID, out *ThreadState) Status {
	if out == nil {
		return InvalidParameter
	}
	vm.guard.lock()
	defer vm.guard.unlock()
	t, ok := vm.threads.get(id)
	if !ok {
		return InvalidId
	}
	*out = t.state
	return Success
}

// ThreadSleep parks the current runner for the given number of ticks.
// ticks == Infinite is rejected outright. ticks == Immediate yields
// the processor but keeps the caller Ready, per §4.3/§8.
func (vm *VM) ThreadSleep(ticks Ticks) Status {
	if ticks == Infinite {
		return InvalidParameter
	}

	vm.guard.lock()
	self := vm.current

	if ticks == Immediate {
		vm.scheduleCooperative(reasonYield)
		return Success
	}

	self.state = Waiting
	self.wait = waitSleep
	self.wakeTick = vm.clock.current + ticks
	heap.Push(&vm.sleep, self)
	vm.scheduleCooperative(reasonSleep)
	return Success
}
