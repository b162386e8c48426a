package vmcore

import (
	"container/heap"
	"os"
)

// parkForIO enrolls the caller on an I/O wait and invokes
// schedule(IoWait), per §4.6: the caller yields; the substrate's
// completion callback later sets file_result, marks the caller Ready,
// and invokes schedule(Priority) via scheduleExternal.
//
// The guard must already be held by the caller, and the completion
// callback must already be registered with the substrate, before this
// is called — otherwise the completion could race the park and find
// the thread still marked Running. See completeIO.
func (vm *VM) parkForIO() {
	self := vm.current
	self.state = Waiting
	self.wait = waitIO
	vm.scheduleCooperative(reasonIoWait)
}

// completeIO is the shared tail of every substrate completion
// callback: it runs on the substrate's own completion goroutine, never
// on the parked thread's goroutine. Acquiring the guard here is what
// serializes it against parkForIO: the callback may fire before the
// parking thread has reached parkForIO, but it cannot proceed past
// this lock until that thread's scheduleCooperative call has released
// the guard, by which point the thread is already marked Waiting.
func (vm *VM) completeIO(t *tcb, result int) {
	vm.guard.lock()
	t.fileResult = result
	t.state = Ready
	t.wait = waitNone
	heap.Push(&vm.ready, t)
	vm.scheduleExternal()
}

// FileOpen issues an async open and blocks the caller until it
// completes. fd is written to *out only on Success.
func (vm *VM) FileOpen(name string, flag int, perm os.FileMode, out *int) Status {
	if out == nil {
		return InvalidParameter
	}
	vm.guard.lock()
	self := vm.current
	vm.substrate.FileOpen(name, flag, perm, func(result int) {
		vm.completeIO(self, result)
	})
	vm.parkForIO()
	if self.fileResult < 0 {
		return Failure
	}
	*out = self.fileResult
	return Success
}

// FileClose issues an async close and blocks the caller until it
// completes.
func (vm *VM) FileClose(fd int) Status {
	vm.guard.lock()
	self := vm.current
	vm.substrate.FileClose(fd, func(result int) {
		vm.completeIO(self, result)
	})
	vm.parkForIO()
	if self.fileResult < 0 {
		return Failure
	}
	return Success
}

// FileSeek issues an async seek and blocks the caller until it
// completes. The new offset is written to *out only on Success.
func (vm *VM) FileSeek(fd int, offset int64, whence int, out *int64) Status {
	if out == nil {
		return InvalidParameter
	}
	vm.guard.lock()
	self := vm.current
	vm.substrate.FileSeek(fd, offset, whence, func(result int64) {
		vm.completeIO(self, int(result))
	})
	vm.parkForIO()
	if self.fileResult < 0 {
		return Failure
	}
	*out = int64(self.fileResult)
	return Success
}

// FileRead reads len(buf) bytes via the bounce-buffer pool, chunking
// the transfer across multiple round-trips when it exceeds the
// 512-byte chunk size, per §4.6. The total transferred length is
// written to *out only on Success.
func (vm *VM) FileRead(fd int, buf []byte, out *int) Status {
	if out == nil {
		return InvalidParameter
	}
	var total int
	for total < len(buf) {
		want := len(buf) - total
		if want > bounceChunkSize {
			want = bounceChunkSize
		}

		chunk := vm.acquireBounceChunk()

		vm.guard.lock()
		self := vm.current
		vm.substrate.FileRead(fd, chunk[:want], func(result int) {
			vm.completeIO(self, result)
		})
		vm.parkForIO()

		n := self.fileResult
		if n < 0 {
			vm.releaseBounceChunk(chunk)
			return Failure
		}
		copy(buf[total:total+n], chunk[:n])
		vm.releaseBounceChunk(chunk)
		total += n
		if n == 0 {
			break // short read: substrate has no more data
		}
		if n < want {
			break // short read: stop chunking
		}
	}
	*out = total
	return Success
}

// FileWrite writes buf via the bounce-buffer pool, chunking the
// transfer as FileRead does. The total transferred length is written
// to *out only on Success.
func (vm *VM) FileWrite(fd int, buf []byte, out *int) Status {
	if out == nil {
		return InvalidParameter
	}
	var total int
	for total < len(buf) {
		want := len(buf) - total
		if want > bounceChunkSize {
			want = bounceChunkSize
		}

		chunk := vm.acquireBounceChunk()
		copy(chunk[:want], buf[total:total+want])

		vm.guard.lock()
		self := vm.current
		vm.substrate.FileWrite(fd, chunk[:want], func(result int) {
			vm.completeIO(self, result)
		})
		vm.parkForIO()

		n := self.fileResult
		vm.releaseBounceChunk(chunk)
		if n < 0 {
			return Failure
		}
		total += n
		if n < want {
			break
		}
	}
	*out = total
	return Success
}

// acquireBounceChunk acquires a chunk under the signal guard. If the
// pool is exhausted, it blocks the caller until one frees up rather
// than failing the transfer outright — the allowed extension named in
// §4.6.
func (vm *VM) acquireBounceChunk() []byte {
	for {
		vm.guard.lock()
		chunk := vm.pool.acquire()
		if chunk != nil {
			vm.guard.unlock()
			return chunk
		}
		self := vm.current
		self.state = Waiting
		self.wait = waitIO
		vm.poolWaiters = append(vm.poolWaiters, self)
		vm.scheduleCooperative(reasonIoWait)
	}
}

func (vm *VM) releaseBounceChunk(chunk []byte) {
	vm.guard.lock()
	vm.pool.release(chunk)
	var woken *tcb
	if len(vm.poolWaiters) > 0 {
		woken = vm.poolWaiters[0]
		vm.poolWaiters = vm.poolWaiters[1:]
	}
	if woken == nil {
		vm.guard.unlock()
		return
	}
	woken.state = Ready
	woken.wait = waitNone
	heap.Push(&vm.ready, woken)
	vm.scheduleExternal()
}
