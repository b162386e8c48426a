package vmcore

import (
	"container/heap"
	"sync"
)

// VM is the scheduler core: the single-threaded critical section
// described in §9's "Signal-guarded global state → explicit owner"
// design note, owning the ready queue, sleep queue, thread table,
// mutex table and bounce-buffer pool. Every field below is scheduler
// data and is mutated only under guard, per §5.
type VM struct {
	guard signalGuard

	clock   *tickClock
	threads *threadTable
	ready   readyQueue
	sleep   sleepQueue

	mutexes     map[MutexID]*mutexObj
	nextMutexID MutexID

	pool        *bouncePool
	poolWaiters []*tcb

	current *tcb
	idle    *tcb

	substrate Substrate
	loader    ModuleLoader
	logger    Logger

	stopAlarm func()
	wg        sync.WaitGroup
}

// Start boots a VM per §6's launcher contract: `start(tick_ms,
// shared_size, argv)`. It loads the named module, runs its main
// function on the tid-1 placeholder thread, and blocks until that
// thread and every thread it transitively activated have run to
// completion, i.e. until the VM has nothing left to schedule but
// idle.
//
// argv[0] is the module path passed to the module loader; the
// remaining elements are the module's own arguments.
func Start(tickMS uint32, sharedSize int, argv []string, opts ...Option) (Status, error) {
	if tickMS == 0 || sharedSize <= 0 || len(argv) == 0 {
		return InvalidParameter, nil
	}

	cfg := resolveOptions(opts)

	vm := &VM{
		clock:       newTickClock(tickMS),
		threads:     newThreadTable(),
		mutexes:     make(map[MutexID]*mutexObj),
		pool:        newBouncePool(sharedSize),
		substrate:   cfg.substrate,
		loader:      cfg.loader,
		logger:      cfg.logger,
		ready:       make(readyQueue, 0, 8),
		sleep:       make(sleepQueue, 0, 8),
		nextMutexID: 1,
	}

	entry, err := vm.loader.Load(argv[0])
	if err != nil {
		return Failure, err
	}
	defer vm.loader.Unload()

	idle := newTCB(idleThreadID, PriorityIdle, nil, nil, 0)
	idle.state = Running
	vm.threads.insert(idle)
	vm.idle = idle
	vm.current = idle

	main := newTCB(mainThreadID, PriorityNormal, entry, argv[1:], 0)
	main.state = Ready
	vm.threads.insert(main)

	vm.spawn(main)

	vm.guard.lock()
	heap.Push(&vm.ready, main)
	vm.guard.unlock()

	vm.stopAlarm = vm.substrate.RequestAlarm(tickMS, func() {
		vm.runAlarmTick()
	})
	defer vm.stopAlarm()

	vm.guard.lock()
	vm.scheduleExternal()

	vm.wg.Wait()
	return Success, nil
}

// spawn starts the goroutine backing a newly activated thread and
// registers it with the VM's completion tracker, so Start can block
// until every thread it transitively creates has terminated.
func (vm *VM) spawn(t *tcb) {
	vm.wg.Add(1)
	go vm.runThread(t)
}

// runThread is the goroutine body for every non-idle thread: it waits
// to be scheduled Running for the first time, runs the entry function,
// then self-terminates with a one-way switch.
func (vm *VM) runThread(t *tcb) {
	defer vm.wg.Done()

	<-t.resumeCh
	t.entry(vm, t.arg)

	vm.guard.lock()
	t.state = Dead
	vm.scheduleCooperative(reasonTerminated)
}
