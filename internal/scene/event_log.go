package scene

import (
	"sort"
	"sync"

	"github.com/golang/glog"

	"github.com/lukaszgryglicki/miroir/internal/miroir"
)

// Event is the outcome of one simulated ray.
type Event struct {
	Ray    int
	Status miroir.Status
	Steps  int
	Length float64
	Period int // 0 unless the path looped
}

// EventLog collects path outcomes by status. It is safe for concurrent use.
type EventLog struct {
	mu     sync.Mutex
	events map[miroir.Status][]Event
}

func NewEventLog() *EventLog {
	return &EventLog{events: make(map[miroir.Status][]Event)}
}

// Record logs the outcome of ray i.
func (l *EventLog) Record(i int, res miroir.Result) {
	e := Event{Ray: i, Status: res.Status, Steps: len(res.Rays) - 1, Length: res.Length()}
	if res.Looped() {
		e.Period = res.Loop.Period()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events[e.Status] = append(l.events[e.Status], e)
}

// Events returns the logged events with the given status, ordered by ray.
func (l *EventLog) Events(s miroir.Status) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := append([]Event(nil), l.events[s]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Ray < out[j].Ray })
	return out
}

// Stats returns the number of events per status name.
func (l *EventLog) Stats() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]int, len(l.events))
	for s, es := range l.events {
		out[s.String()] = len(es)
	}
	return out
}

// LogStats prints a summary line per status.
func (l *EventLog) LogStats() {
	for _, s := range []miroir.Status{miroir.Escaped, miroir.MaxStepsReached, miroir.LoopDetected} {
		es := l.Events(s)
		if len(es) == 0 {
			continue
		}
		steps := 0
		for _, e := range es {
			steps += e.Steps
		}
		glog.Infof("%s: %d rays, %d reflections", s, len(es), steps)
	}
}
