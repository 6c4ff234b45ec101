package system

// Ensemble is an ordered, immutable-after-construction collection of system
// realizations. Members own their cache slots independently, so they can be
// evaluated concurrently without sharing state with each other or with the
// container.
type Ensemble struct {
	systems []*System
}

// NewEnsemble copies the given slice; later mutation of the argument does not
// affect the ensemble.
func NewEnsemble(systems ...*System) Ensemble {
	s := make([]*System, len(systems))
	copy(s, systems)
	return Ensemble{systems: s}
}

func (e Ensemble) Len() int { return len(e.systems) }

func (e Ensemble) At(i int) *System { return e.systems[i] }

// Systems returns a copy of the member list.
func (e Ensemble) Systems() []*System {
	s := make([]*System, len(e.systems))
	copy(s, e.systems)
	return s
}
