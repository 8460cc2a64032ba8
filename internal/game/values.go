/*
Package game
File: values.go
Description: Market value lookup for elements, built once from configuration.
*/

package game

// ElementIndex maps element name -> market record for fast lookups during
// advancement and leaderboard aggregation.
type ElementIndex map[string]ElementValue

// NewElementIndex builds the lookup from the configured value list.
func NewElementIndex(values []ElementValue) ElementIndex {
	ix := make(ElementIndex, len(values))
	for _, v := range values {
		ix[v.Name] = v
	}
	return ix
}

// ValuePerKg returns the market value of one kilogram of the named element.
// Unlisted elements are worth nothing.
func (ix ElementIndex) ValuePerKg(name string) int64 {
	return ix[name].ValuePerKg
}

// Uses returns the industrial use cases the named element feeds.
func (ix ElementIndex) Uses(name string) []string {
	return ix[name].Uses
}
