package universe

import (
	"sync"
	"time"
)

//Clock arms recurring callbacks, the Universe uses it to drive the running simulation
//tests can replace it with a manual implementation and fire ticks directly
type Clock interface {
	Every(d time.Duration, fn func()) Ticker
}

//Ticker is an armed recurring callback
type Ticker interface {
	//Reset changes the period without disarming
	Reset(d time.Duration)
	//Stop disarms the ticker, a tick racing with Stop may still be delivered once
	//the Universe ignores such ticks, see BaseUniverse.tick
	Stop()
}

//RealClock is the Clock based on time.Ticker
type RealClock struct{}

func (RealClock) Every(d time.Duration, fn func()) Ticker {
	t := &realTicker{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go t.loop(fn)
	return t
}

type realTicker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
	mu     sync.Mutex
	closed bool
}

func (t *realTicker) loop(fn func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			//Stop may have been called while this tick was pending
			t.mu.Lock()
			closed := t.closed
			t.mu.Unlock()
			if closed {
				return
			}
			fn()
		}
	}
}

func (t *realTicker) Reset(d time.Duration) {
	t.ticker.Reset(d)
}

func (t *realTicker) Stop() {
	t.once.Do(func() {
		t.mu.Lock()
		t.closed = true
		t.mu.Unlock()
		t.ticker.Stop()
		close(t.done)
	})
}
