package grid

import "sync"

// Select subscribes a derived projection of the state. selector runs on every
// notification; onChange is called only when equal reports that the new
// projection differs from the last one delivered. The initial projection is
// computed immediately and is not delivered.
func Select[T any](s *Store, selector func(*State) T, equal func(a, b T) bool, onChange func(T)) (unsubscribe func()) {
	var mu sync.Mutex
	last := selector(s.Snapshot())

	return s.Subscribe(func(st *State) {
		v := selector(st)
		mu.Lock()
		if equal(last, v) {
			mu.Unlock()
			return
		}
		last = v
		mu.Unlock()
		onChange(v)
	})
}
