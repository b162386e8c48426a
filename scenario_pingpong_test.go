package vmcore

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driveTicks fires the fake substrate's alarm callback on a fixed cadence
// until stop is closed, standing in for the wall-clock ticker a real
// Substrate would run. Mirrors spec.md §8 scenario driving: "after N
// ticks".
func driveTicks(sub *fakeSubstrate, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			sub.Tick()
		}
	}
}

// TestScenarioPingPong implements spec.md §8 scenario 1: two high-priority
// threads contend a shared mutex to increment a shared counter, each
// sleeping 1 tick between iterations, for 100 ticks.
func TestScenarioPingPong(t *testing.T) {
	sub := newFakeSubstrate()
	loader := NewInMemoryModuleLoader()

	var mu sync.Mutex
	var n int
	var mid MutexID

	worker := func(vm *VM, arg any) {
		for {
			var tick Ticks
			vm.CurrentTick(&tick)
			if tick >= 100 {
				return
			}
			assert.True(t, vm.MutexAcquire(mid, Infinite).Ok())
			mu.Lock()
			n++
			mu.Unlock()
			assert.True(t, vm.MutexRelease(mid).Ok())
			vm.ThreadSleep(1)
		}
	}

	loader.Register("pingpong", func(vm *VM, arg any) {
		assert.True(t, vm.MutexCreate(&mid).Ok())

		var p, c ThreadID
		assert.True(t, vm.ThreadCreate(worker, nil, 0, PriorityHigh, &p).Ok())
		assert.True(t, vm.ThreadCreate(worker, nil, 0, PriorityHigh, &c).Ok())
		assert.True(t, vm.ThreadActivate(p).Ok())
		assert.True(t, vm.ThreadActivate(c).Ok())
	})

	stop := make(chan struct{})
	go driveTicks(sub, stop)

	status, err := Start(1, 4*bounceChunkSize, []string{"pingpong"}, WithSubstrate(sub), WithModuleLoader(loader))
	close(stop)

	require.NoError(t, err)
	assert.True(t, status.Ok())

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, n, 50)
	assert.LessOrEqual(t, n, 200)
}
