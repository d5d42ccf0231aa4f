package machine

import "github.com/enetx/g"

// Constructors is a map backed Resolver. It is useful when state factories
// live outside the machine configuration, e.g. when they close over
// dependencies assembled by the application.
type Constructors[S, T comparable, C any] g.Map[S, Factory[S, T, C]]

// NewConstructors creates an empty registry.
func NewConstructors[S, T comparable, C any]() Constructors[S, T, C] {
	return Constructors[S, T, C](g.NewMap[S, Factory[S, T, C]]())
}

// Provide registers factory for id, replacing any previous one.
func (cs Constructors[S, T, C]) Provide(id S, factory Factory[S, T, C]) Constructors[S, T, C] {
	cs[id] = factory
	return cs
}

// Resolve builds the state registered for id.
func (cs Constructors[S, T, C]) Resolve(id S) (State[S, T, C], error) {
	factory, ok := cs[id]
	if !ok || factory == nil {
		return nil, &ErrNoConstructor{State: id}
	}

	return factory(), nil
}
