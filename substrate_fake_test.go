package vmcore

import (
	"os"
	"sync"
)

// fakeSubstrate is a deterministic, in-memory Substrate double for tests.
// Every async operation still completes on a goroutine distinct from the
// caller (matching the real contract) but against an in-memory file table
// instead of the OS, and the alarm tick is driven manually via Tick()
// rather than a wall-clock ticker.
type fakeSubstrate struct {
	mu    sync.Mutex
	files map[int]*fakeFile
	named map[string]*fakeFileData
	next  int

	alarmMu sync.Mutex
	alarmCB func()
	stopped bool
}

// fakeFileData is a named file's backing bytes, shared by every fd opened
// against that name — a real filesystem shares content across opens of
// the same path even though each open gets its own cursor.
type fakeFileData struct {
	data []byte
}

// fakeFile is one open file descriptor: its own read/write cursor over a
// possibly-shared fakeFileData.
type fakeFile struct {
	backing *fakeFileData
	offset  int64
	closed  bool
}

func newFakeSubstrate() *fakeSubstrate {
	return &fakeSubstrate{
		files: make(map[int]*fakeFile),
		named: make(map[string]*fakeFileData),
		next:  3,
	}
}

func (s *fakeSubstrate) RequestAlarm(periodMS uint32, cb func()) (stop func()) {
	s.alarmMu.Lock()
	s.alarmCB = cb
	s.alarmMu.Unlock()
	return func() {
		s.alarmMu.Lock()
		s.stopped = true
		s.alarmMu.Unlock()
	}
}

// Tick fires one alarm synchronously on the calling goroutine, standing in
// for the wall-clock ticker in substrate_unix.go/substrate_other.go — the
// real substrate always calls back from a distinct goroutine, but the
// scheduler's guard makes that distinction invisible to correctness.
func (s *fakeSubstrate) Tick() {
	s.alarmMu.Lock()
	cb, stopped := s.alarmCB, s.stopped
	s.alarmMu.Unlock()
	if cb != nil && !stopped {
		cb()
	}
}

func (s *fakeSubstrate) FileOpen(name string, flag int, perm os.FileMode, cb func(result int)) {
	go func() {
		s.mu.Lock()
		backing, ok := s.named[name]
		if !ok {
			backing = &fakeFileData{}
			s.named[name] = backing
		}
		fd := s.next
		s.next++
		s.files[fd] = &fakeFile{backing: backing}
		s.mu.Unlock()
		cb(fd)
	}()
}

func (s *fakeSubstrate) FileClose(fd int, cb func(result int)) {
	go func() {
		s.mu.Lock()
		f, ok := s.files[fd]
		if ok {
			f.closed = true
		}
		s.mu.Unlock()
		if !ok {
			cb(-1)
			return
		}
		cb(0)
	}()
}

func (s *fakeSubstrate) FileRead(fd int, buf []byte, cb func(result int)) {
	go func() {
		s.mu.Lock()
		f, ok := s.files[fd]
		if !ok {
			s.mu.Unlock()
			cb(-1)
			return
		}
		n := copy(buf, f.backing.data[f.offset:])
		f.offset += int64(n)
		s.mu.Unlock()
		cb(n)
	}()
}

func (s *fakeSubstrate) FileWrite(fd int, buf []byte, cb func(result int)) {
	go func() {
		s.mu.Lock()
		f, ok := s.files[fd]
		if !ok {
			s.mu.Unlock()
			cb(-1)
			return
		}
		end := f.offset + int64(len(buf))
		if int64(len(f.backing.data)) < end {
			grown := make([]byte, end)
			copy(grown, f.backing.data)
			f.backing.data = grown
		}
		copy(f.backing.data[f.offset:end], buf)
		f.offset = end
		s.mu.Unlock()
		cb(len(buf))
	}()
}

func (s *fakeSubstrate) FileSeek(fd int, offset int64, whence int, cb func(result int64)) {
	go func() {
		s.mu.Lock()
		f, ok := s.files[fd]
		if !ok {
			s.mu.Unlock()
			cb(-1)
			return
		}
		var newOff int64
		switch whence {
		case SeekStart:
			newOff = offset
		case SeekCurrent:
			newOff = f.offset + offset
		case SeekEnd:
			newOff = int64(len(f.backing.data)) + offset
		}
		f.offset = newOff
		s.mu.Unlock()
		cb(newOff)
	}()
}
