/*
Package game
File: catalog.go
Description:
    Lookup surface over the asteroid templates loaded from configuration.
    Supports exact and fuzzy name resolution plus travel-day sampling for
    the mission-planning screen.
*/

package game

import (
	"math/rand"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Catalog indexes the immutable asteroid templates.
type Catalog struct {
	asteroids []Asteroid
}

// NewCatalog wraps a template list. The slice is retained, not copied;
// templates are reference data and nothing in the engine mutates them.
func NewCatalog(asteroids []Asteroid) *Catalog {
	return &Catalog{asteroids: asteroids}
}

// All returns every template in catalog order.
func (c *Catalog) All() []Asteroid {
	return c.asteroids
}

// FindByID resolves a template by its catalog id.
func (c *Catalog) FindByID(id string) (Asteroid, error) {
	for _, a := range c.asteroids {
		if a.ID == id {
			return a, nil
		}
	}
	return Asteroid{}, ErrMissingTarget
}

// FindByFullName resolves a template by its exact full name.
func (c *Catalog) FindByFullName(fullName string) (Asteroid, error) {
	for _, a := range c.asteroids {
		if a.FullName == fullName {
			return a, nil
		}
	}
	return Asteroid{}, ErrMissingTarget
}

// Search resolves a template by name, tolerating typos. Exact full-name
// matches win; otherwise the closest full name within maxDistance edits
// (case-insensitive) is returned. Anything further away is a miss.
func (c *Catalog) Search(name string, maxDistance int) (Asteroid, error) {
	if a, err := c.FindByFullName(name); err == nil {
		return a, nil
	}

	needle := strings.ToLower(name)
	best := -1
	bestDist := maxDistance + 1
	for i, a := range c.asteroids {
		dist := levenshtein.ComputeDistance(needle, strings.ToLower(a.FullName))
		if short := levenshtein.ComputeDistance(needle, strings.ToLower(a.Name)); short < dist {
			dist = short
		}
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	if best < 0 {
		return Asteroid{}, ErrMissingTarget
	}
	return c.asteroids[best], nil
}

// SampleByTravelDays returns up to limit random templates whose closest
// approach matches the requested travel time. An empty result is not an
// error: it just means nothing is reachable in that window.
func (c *Catalog) SampleByTravelDays(travelDays, limit int, rng *rand.Rand) []Asteroid {
	matching := []Asteroid{}
	for _, a := range c.asteroids {
		if a.MoidDays == travelDays {
			matching = append(matching, a)
		}
	}
	if len(matching) <= limit {
		return matching
	}

	rng.Shuffle(len(matching), func(i, j int) {
		matching[i], matching[j] = matching[j], matching[i]
	})
	return matching[:limit]
}
