package resilience

import "golang.org/x/sync/singleflight"

// SingleFlight collapses concurrent loads of the same key into one call.
type SingleFlight[V any] struct {
	group singleflight.Group
}

func (g *SingleFlight[V]) Do(key string, fn func() (V, error)) (V, error, bool) {
	value, err, shared := g.group.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero V
		return zero, err, shared
	}
	return value.(V), nil, shared
}

func (g *SingleFlight[V]) Forget(key string) {
	g.group.Forget(key)
}
