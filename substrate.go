package vmcore

import "os"

// Substrate is the machine substrate the core consumes, per §6. The
// spec describes it as synchronous-looking syscalls paired with
// callback completion (`file_open(name, flags, mode, cb, calldata)`
// and friends); this is its direct Go-idiomatic rendering: every
// operation takes a completion callback and returns immediately, and
// the callback is always invoked from a goroutine distinct from the
// caller's, matching "the substrate provides only asynchronous,
// callback-driven operations."
//
// The spec's context_create/context_switch primitive and its
// suspend_signals/resume_signals pair have no place in this interface:
// Go's goroutine scheduler already supplies a machine context per
// thread, and signalGuard (see signalguard.go) supplies the critical
// section the mask gave the original substrate. Only the parts of the
// substrate contract that a hosted module can actually observe —
// alarm delivery and file I/O — are modeled here.
type Substrate interface {
	// RequestAlarm installs a periodic callback firing every periodMS
	// milliseconds until the returned stop function is called.
	RequestAlarm(periodMS uint32, cb func()) (stop func())

	// Every callback carries a single signed result, matching the
	// spec's file_result convention: negative is a failure code,
	// non-negative is the fd (open), the new offset (seek), or the
	// transferred length (read/write).
	FileOpen(name string, flag int, perm os.FileMode, cb func(result int))
	FileClose(fd int, cb func(result int))
	FileRead(fd int, buf []byte, cb func(result int))
	FileWrite(fd int, buf []byte, cb func(result int))
	FileSeek(fd int, offset int64, whence int, cb func(result int64))
}

// Whence values for FileSeek, matching os.Seek's.
const (
	SeekStart   = 0
	SeekCurrent = 1
	SeekEnd     = 2
)
