package input

import "sync"

// Monitors are handed to the OS callback as a numeric id rather than a
// pointer; the callback looks the live monitor up here.
var registry = struct {
	sync.RWMutex
	next     uint64
	monitors map[uint64]*Monitor
}{monitors: make(map[uint64]*Monitor)}

func register(m *Monitor) uint64 {
	registry.Lock()
	defer registry.Unlock()
	registry.next++
	registry.monitors[registry.next] = m
	return registry.next
}

func unregister(id uint64) {
	registry.Lock()
	delete(registry.monitors, id)
	registry.Unlock()
}

func lookup(id uint64) *Monitor {
	registry.RLock()
	defer registry.RUnlock()
	return registry.monitors[id]
}

// dispatch routes ev to the monitor registered under id and returns ev
// unchanged. Unknown ids are forwarded untouched.
func dispatch(id uint64, ev Event) Event {
	m := lookup(id)
	if m == nil {
		return ev
	}
	return m.Deliver(ev)
}
