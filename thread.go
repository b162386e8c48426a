package vmcore

// ThreadID uniquely identifies a thread for the lifetime of the VM. Ids
// are assigned monotonically starting at 0; id 0 is always the idle
// thread and id 1 is always the module-main placeholder.
type ThreadID uint32

// InvalidThreadID is the sentinel returned where the spec calls for an
// "invalid-thread-id sentinel": mutex_query reports it for an unlocked
// mutex. Operations that fail leave their out-parameter untouched
// rather than writing this value.
const InvalidThreadID ThreadID = ^ThreadID(0)

const (
	idleThreadID ThreadID = 0
	mainThreadID ThreadID = 1
)

// Priority is a small integer priority; larger values run first. The
// spec requires at least four levels; four are provided and the type
// is open for a host application to define more.
type Priority int

const (
	PriorityIdle Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
)

// Ticks counts alarm periods since VM start.
type Ticks uint64

// Sleep/timeout sentinels, per spec §6.
const (
	// Immediate is a zero timeout: never park, test-and-return.
	Immediate Ticks = 0
	// Infinite disables the deadline; thread_sleep(Infinite) is
	// rejected outright (there is no way to wake an infinite sleep
	// other than termination, which the spec does not provide).
	Infinite Ticks = ^Ticks(0)
)

// ThreadState is one of the four lifecycle states from the data model.
// Waiting subsumes sleep-wait, I/O-wait and mutex-wait; which queue a
// thread resides on disambiguates.
type ThreadState int

const (
	Dead ThreadState = iota
	Ready
	Running
	Waiting
)

func (s ThreadState) String() string {
	switch s {
	case Dead:
		return "Dead"
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Waiting:
		return "Waiting"
	default:
		return "Unknown"
	}
}

// waitReason records why a Waiting thread is parked, so the scheduler
// and the lazy-skip checks on each heap know which structure currently
// "owns" the thread's wakeup.
type waitReason int

const (
	waitNone waitReason = iota
	waitSleep
	waitIO
	waitMutex
)

// EntryFunc is a module thread's entry point. vm is the owning VM, the
// module's only handle onto the API surface (ThreadCreate, MutexAcquire,
// FileRead, ...); arg is the opaque parameter passed to thread_create (or,
// for the initial main thread, the module's own argv).
type EntryFunc func(vm *VM, arg any)

// tcb is the thread control block. Every field is guarded by the
// scheduler's signal guard except resumeCh, which is both sent to and
// received from only after the guard has been released, so neither the
// parking goroutine nor the one handing over the baton blocks while
// holding the lock.
type tcb struct {
	id        ThreadID
	priority  Priority
	state     ThreadState
	entry     EntryFunc
	arg       any
	stackSize int

	wait        waitReason
	wakeTick    Ticks
	deadline    Ticks
	hasDeadline bool
	waitMutex   MutexID

	fileResult int

	resumeCh chan struct{}

	rqIndex int // index in the ready heap, -1 when absent
	slIndex int // index in the sleep heap, -1 when absent
	mwIndex int // index in a mutex waiter heap, -1 when absent
}

func newTCB(id ThreadID, priority Priority, entry EntryFunc, arg any, stackSize int) *tcb {
	return &tcb{
		id:        id,
		priority:  priority,
		state:     Dead,
		entry:     entry,
		arg:       arg,
		stackSize: stackSize,
		resumeCh:  make(chan struct{}),
		rqIndex:   -1,
		slIndex:   -1,
		mwIndex:   -1,
	}
}
