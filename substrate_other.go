//go:build !linux && !darwin

package vmcore

import (
	"os"
	"sync"
	"time"
)

// fdTable hands out small integer fds for *os.File handles, since the
// os package itself only exposes Fd() on Unix-like platforms.
type fdTable struct {
	mu   sync.Mutex
	next int
	byFD map[int]*os.File
}

func newFDTable() *fdTable {
	return &fdTable{byFD: make(map[int]*os.File)}
}

func (t *fdTable) add(f *os.File) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	fd := t.next
	t.next++
	t.byFD[fd] = f
	return fd
}

func (t *fdTable) get(fd int) (*os.File, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.byFD[fd]
	return f, ok
}

func (t *fdTable) remove(fd int) (*os.File, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.byFD[fd]
	delete(t.byFD, fd)
	return f, ok
}

// osSubstrate is the default Substrate on platforms without the
// golang.org/x/sys/unix raw syscall surface (e.g. Windows); it uses
// the standard os package instead, preserving the same
// goroutine-per-call asynchrony contract as unixSubstrate.
type osSubstrate struct{}

// NewOSSubstrate returns the default Substrate backed by the os
// package.
func NewOSSubstrate() Substrate {
	return osSubstrate{}
}

func (osSubstrate) RequestAlarm(periodMS uint32, cb func()) (stop func()) {
	ticker := time.NewTicker(time.Duration(periodMS) * time.Millisecond)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				cb()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}

var openFiles = newFDTable()

func (osSubstrate) FileOpen(name string, flag int, perm os.FileMode, cb func(result int)) {
	go func() {
		f, err := os.OpenFile(name, flag, perm)
		if err != nil {
			cb(-1)
			return
		}
		cb(openFiles.add(f))
	}()
}

func (osSubstrate) FileClose(fd int, cb func(result int)) {
	go func() {
		f, ok := openFiles.remove(fd)
		if !ok {
			cb(-1)
			return
		}
		if err := f.Close(); err != nil {
			cb(-1)
			return
		}
		cb(0)
	}()
}

func (osSubstrate) FileRead(fd int, buf []byte, cb func(result int)) {
	go func() {
		f, ok := openFiles.get(fd)
		if !ok {
			cb(-1)
			return
		}
		n, err := f.Read(buf)
		if err != nil && n == 0 {
			cb(-1)
			return
		}
		cb(n)
	}()
}

func (osSubstrate) FileWrite(fd int, buf []byte, cb func(result int)) {
	go func() {
		f, ok := openFiles.get(fd)
		if !ok {
			cb(-1)
			return
		}
		n, err := f.Write(buf)
		if err != nil {
			cb(-1)
			return
		}
		cb(n)
	}()
}

func (osSubstrate) FileSeek(fd int, offset int64, whence int, cb func(result int64)) {
	go func() {
		f, ok := openFiles.get(fd)
		if !ok {
			cb(-1)
			return
		}
		off, err := f.Seek(offset, whence)
		if err != nil {
			cb(-1)
			return
		}
		cb(off)
	}()
}
