// Package vmcore implements the core of a small user-space operating
// system abstraction layer: a cooperative, priority-scheduled thread
// model, a priority-inheritance-free mutex, and a synchronous-over-
// asynchronous file I/O bridge with a bounce-buffer pool, hosted atop
// a pluggable [Substrate].
//
// # Architecture
//
// A [VM] owns the scheduler's entire mutable state — the ready queue,
// sleep queue, thread table, mutex table, and bounce-buffer pool —
// behind a single critical section ([signalGuard]) standing in for
// the original design's process-wide signal mask. The only
// involuntary control transfers are the periodic alarm tick and file
// I/O completion, both delivered as asynchronous callbacks from the
// [Substrate] and funneled back through that same critical section.
//
// Threads are modeled as one goroutine each, parked on a private
// channel between scheduling decisions; the scheduler's "context
// switch" is a baton hand-off over that channel rather than a manual
// stack swap. The idle thread (tid 0) is the one exception: it never
// blocks or yields, so it is represented purely by the scheduler's
// current-thread pointer referencing it, with no goroutine of its own.
//
// # Suspension Points
//
// A context switch can occur only at the closed set of points named
// in the design: thread_sleep, the five file operations, mutex_acquire
// on a locked mutex, mutex_release when it unblocks a higher-priority
// waiter, thread_activate when the new thread outranks the caller, the
// tick alarm, and the file-completion callback. There is no
// timer-slice preemption of a running thread; the alarm and
// I/O-completion paths can only force a switch when nothing is
// actually running (current is idle) — otherwise they mark the new
// arrival Ready and defer the actual switch to the running thread's
// own next voluntary suspension point, exactly as the specification's
// periodic-yield test scenarios assume.
//
// # Error Handling
//
// Every exported operation returns a [Status] value rather than a Go
// error: Success, Failure, InvalidParameter, InvalidId, InvalidState.
// There is no ambient exception channel.
//
// # Usage
//
//	loader := vmcore.NewInMemoryModuleLoader()
//	loader.Register("myapp", func(vm *vmcore.VM, arg any) {
//	    // module main, running on tid 1
//	})
//	status, err := vmcore.Start(10, 64*1024, []string{"myapp"},
//	    vmcore.WithModuleLoader(loader))
package vmcore
