package universe

import "sync"

//Property names the attribute of the Universe which was changed
type Property string

const (
	PropertyCellState     Property = "CellState"
	PropertyIsGameRunning Property = "IsGameRunning"
	PropertyStepInterval  Property = "StepIntervalMilliseconds"
	PropertyGridCells     Property = "GridCells"
	PropertyGeneration    Property = "Generation"
)

//Change describes one change notification
//Index and State are set for PropertyCellState only, Index is -1 for other properties
type Change struct {
	Property Property
	Index    int
	State    CellState
}

//Observer is notified synchronously on every change of the Universe
//the Observer may read the Universe but must not call its mutating methods from Notify
type Observer interface {
	Notify(c Change)
}

//ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(c Change)

func (f ObserverFunc) Notify(c Change) {
	f(c)
}

type observers struct {
	sync.RWMutex
	next int
	list map[int]Observer
	ids  []int //subscription order
}

func (o *observers) subscribe(obs Observer) (unsubscribe func()) {
	o.Lock()
	defer o.Unlock()
	if o.list == nil {
		o.list = map[int]Observer{}
	}
	id := o.next
	o.next++
	o.list[id] = obs
	o.ids = append(o.ids, id)
	var once sync.Once
	return func() {
		once.Do(func() {
			o.Lock()
			defer o.Unlock()
			delete(o.list, id)
			for i, v := range o.ids {
				if v == id {
					o.ids = append(o.ids[:i], o.ids[i+1:]...)
					break
				}
			}
		})
	}
}

//notify delivers the changes to all observers in subscription order
func (o *observers) notify(changes ...Change) {
	if len(changes) == 0 {
		return
	}
	o.RLock()
	list := make([]Observer, 0, len(o.ids))
	for _, id := range o.ids {
		list = append(list, o.list[id])
	}
	o.RUnlock()
	for _, c := range changes {
		for _, obs := range list {
			obs.Notify(c)
		}
	}
}

func propertyChange(p Property) Change {
	return Change{Property: p, Index: -1}
}
