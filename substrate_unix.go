//go:build linux || darwin

package vmcore

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// unixSubstrate is the default real-OS-backed Substrate on unix
// platforms, grounded on the teacher's wakeup_linux.go/poller_linux.go
// use of golang.org/x/sys/unix for raw syscalls. It issues the actual
// blocking syscall on a dedicated goroutine per call, so the VM's
// caller-facing contract (park-then-resume via completion callback)
// matches the spec's asynchronous substrate even though the real
// kernel call beneath it is synchronous, exactly as a real substrate's
// worker-thread-backed async file API would look from the VM's side.
type unixSubstrate struct{}

// NewOSSubstrate returns the default Substrate backed directly by
// unix file syscalls.
func NewOSSubstrate() Substrate {
	return unixSubstrate{}
}

func (unixSubstrate) RequestAlarm(periodMS uint32, cb func()) (stop func()) {
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

func (unixSubstrate) FileOpen(name string, flag int, perm os.FileMode, cb func(result int)) {
	go func() {
		fd, err := unix.Open(name, flag, uint32(perm.Perm()))
		if err != nil {
			cb(-1)
			return
		}
		cb(fd)
	}()
}

func (unixSubstrate) FileClose(fd int, cb func(result int)) {
	go func() {
		if err := unix.Close(fd); err != nil {
			cb(-1)
			return
		}
		cb(0)
	}()
}

func (unixSubstrate) FileRead(fd int, buf []byte, cb func(result int)) {
	go func() {
		n, err := unix.Read(fd, buf)
		if err != nil {
			cb(-1)
			return
		}
		cb(n)
	}()
}

func (unixSubstrate) FileWrite(fd int, buf []byte, cb func(result int)) {
	go func() {
		n, err := unix.Write(fd, buf)
		if err != nil {
			cb(-1)
			return
		}
		cb(n)
	}()
}

func (unixSubstrate) FileSeek(fd int, offset int64, whence int, cb func(result int64)) {
	go func() {
		off, err := unix.Seek(fd, offset, whence)
		if err != nil {
			cb(-1)
			return
		}
		cb(off)
	}()
}
