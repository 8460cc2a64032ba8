/*
Package game
File: ledger.go
Description:
    The resource ledger: a per-operator, depletable copy of an asteroid
    template. Templates are never mutated; every operator mines their own
    clone, so one operator emptying an asteroid does not affect anyone else.
*/

package game

import (
	"fmt"
	"math/rand"
	"time"
)

// NewID builds a short runtime identifier with a type prefix,
// e.g. "MSN-48213-552".
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, rand.Intn(99999), time.Now().UnixNano()%1000)
}

// Clone creates a fresh mined-asteroid ledger for one operator from an
// immutable template. The element list is copied by value so later depletion
// never reaches back into the template.
func Clone(template Asteroid, operator string) MinedAsteroid {
	elements := make([]ElementStock, len(template.Elements))
	copy(elements, template.Elements)

	total := int64(0)
	for _, e := range elements {
		total += e.MassKg
	}

	return MinedAsteroid{
		ID:          NewID("LGR"),
		AsteroidID:  template.ID,
		FullName:    template.FullName,
		Operator:    operator,
		Elements:    elements,
		TotalMassKg: total,
	}
}

// RemainingMass reports the summed element mass, which must always match
// TotalMassKg. Exposed for invariant checks and tests.
func (m *MinedAsteroid) RemainingMass() int64 {
	total := int64(0)
	for _, e := range m.Elements {
		total += e.MassKg
	}
	return total
}

// Depleted reports whether nothing mineable remains.
func (m *MinedAsteroid) Depleted() bool {
	return m.TotalMassKg <= 0
}

// ApplyDepletion subtracts the given per-element masses from the ledger.
// Every delta is validated before any mutation: if one delta exceeds its
// element's remaining mass, the whole call fails with ErrInvalidDepletion
// and the ledger is untouched. Elements stay in the list at zero mass for
// history; they are never removed.
func (m *MinedAsteroid) ApplyDepletion(deltas map[string]int64, now time.Time) error {
	for name, delta := range deltas {
		if delta < 0 {
			return fmt.Errorf("%w: negative delta %d for %s", ErrInvalidDepletion, delta, name)
		}
		idx := m.elementIndex(name)
		if idx < 0 {
			return fmt.Errorf("%w: unknown element %s", ErrInvalidDepletion, name)
		}
		if delta > m.Elements[idx].MassKg {
			return fmt.Errorf("%w: %d kg requested, %d kg remaining of %s",
				ErrInvalidDepletion, delta, m.Elements[idx].MassKg, name)
		}
	}

	for name, delta := range deltas {
		idx := m.elementIndex(name)
		m.Elements[idx].MassKg -= delta
		m.TotalMassKg -= delta
		m.MinedMassKg += delta
	}
	m.LastMined = now
	return nil
}

func (m *MinedAsteroid) elementIndex(name string) int {
	for i := range m.Elements {
		if m.Elements[i].Name == name {
			return i
		}
	}
	return -1
}

// CargoMass sums the mass currently held in a cargo manifest.
func CargoMass(cargo []ElementStock) int64 {
	total := int64(0)
	for _, e := range cargo {
		total += e.MassKg
	}
	return total
}

// AddToCargo merges mined stock into a cargo manifest, keeping one entry per
// element name.
func AddToCargo(cargo []ElementStock, mined []ElementStock) []ElementStock {
	for _, m := range mined {
		found := false
		for i := range cargo {
			if cargo[i].Name == m.Name {
				cargo[i].MassKg += m.MassKg
				found = true
				break
			}
		}
		if !found {
			cargo = append(cargo, ElementStock{Name: m.Name, MassKg: m.MassKg})
		}
	}
	return cargo
}
