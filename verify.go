package machine

import (
	"log/slog"

	"github.com/enetx/g"
)

// Verify checks the configuration without firing any trigger. Every
// registered state must be constructible through the resolver, and every
// state except the initial one must be the target of at least one transition.
func (m *Machine[S, T, C]) Verify() error {
	if m.configErr != nil {
		return m.configErr
	}

	refs := g.NewMap[S, int]()
	for _, id := range m.order {
		refs[id] = 0
	}

	if m.initial.IsSome() {
		refs[m.initial.Some()] = 1
	}

	for _, id := range m.order {
		if _, err := m.resolve(id); err != nil {
			return err
		}

		for _, target := range m.states[id].targets() {
			refs[target]++
		}
	}

	for _, id := range m.order {
		if refs[id] == 0 {
			m.logger.Debug("orphaned state", slog.Any("state", id))
			return &ErrOrphanedState{State: id}
		}
	}

	return nil
}
