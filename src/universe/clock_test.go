package universe

import (
	"sync"
	"testing"
	"time"
)

//manualClock is the Clock whose tickers are fired by the test
type manualClock struct {
	sync.Mutex
	tickers []*manualTicker
}

type manualTicker struct {
	sync.Mutex
	period  time.Duration
	fn      func()
	stopped bool
	resets  int
}

func (c *manualClock) Every(d time.Duration, fn func()) Ticker {
	t := &manualTicker{period: d, fn: fn}
	c.Lock()
	c.tickers = append(c.tickers, t)
	c.Unlock()
	return t
}

//last returns the most recently armed ticker
func (c *manualClock) last() *manualTicker {
	c.Lock()
	defer c.Unlock()
	if len(c.tickers) == 0 {
		return nil
	}
	return c.tickers[len(c.tickers)-1]
}

func (c *manualClock) armed() int {
	c.Lock()
	defer c.Unlock()
	return len(c.tickers)
}

func (t *manualTicker) Reset(d time.Duration) {
	t.Lock()
	t.period = d
	t.resets++
	t.Unlock()
}

func (t *manualTicker) Stop() {
	t.Lock()
	t.stopped = true
	t.Unlock()
}

//fire calls the callback like a real ticker would do unless the ticker is stopped
func (t *manualTicker) fire() {
	t.Lock()
	stopped := t.stopped
	t.Unlock()
	if !stopped {
		t.fn()
	}
}

//fireStale calls the callback regardless of the stopped flag, as a tick racing with Stop would do
func (t *manualTicker) fireStale() {
	t.fn()
}

func (t *manualTicker) Period() time.Duration {
	t.Lock()
	defer t.Unlock()
	return t.period
}

func TestRealClock_TicksUntilStopped(t *testing.T) {
	ticks := make(chan struct{}, 100)
	tk := RealClock{}.Every(time.Millisecond, func() {
		ticks <- struct{}{}
	})
	for i := 0; i < 3; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatalf("tick %d was not delivered", i)
		}
	}
	tk.Stop()
	tk.Stop() //second Stop is a no-op
	//drain what was delivered around Stop
	time.Sleep(5 * time.Millisecond)
	for len(ticks) > 0 {
		<-ticks
	}
	select {
	case <-ticks:
		t.Fatal("tick delivered after Stop")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestRealClock_Reset(t *testing.T) {
	ticks := make(chan struct{}, 100)
	tk := RealClock{}.Every(time.Hour, func() {
		ticks <- struct{}{}
	})
	defer tk.Stop()
	tk.Reset(time.Millisecond)
	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("tick was not delivered after Reset")
	}
}
