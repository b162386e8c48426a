package vmcore

import "sync"

// signalGuard models the substrate's process-wide suspend_signals /
// resume_signals pair (§4.1) as a plain mutex. Unlike the substrate's
// mask, which is process-wide and non-nesting, real concurrency exists
// in this translation: the alarm goroutine and file-completion
// goroutines genuinely race with the thread currently holding the
// baton. A mutex gives the same mutual-exclusion guarantee the
// original signal mask gave against reentrant delivery, without the
// nesting hazard: every mutation path takes the guard, through lock/
// unlock or withGuard, and no path acquires it while already holding
// it.
type signalGuard struct {
	mu sync.Mutex
}

// withGuard runs fn with the guard held, mirroring a scoped
// suspend_signals/resume_signals pair that always unmasks on every
// exit path (including panics).
func (g *signalGuard) withGuard(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}

// lock/unlock are exposed for the scheduler's few call paths that must
// span a guarded section across a function return (e.g. mutex_acquire's
// loop, which re-tests state after parking). Prefer withGuard where the
// critical section is a single block.
func (g *signalGuard) lock()   { g.mu.Lock() }
func (g *signalGuard) unlock() { g.mu.Unlock() }
