/*
Package game
File: mining.go
Description:
    The extraction engine. One call simulates a single hour of mining a
    ledger under two constraints: the ship's extraction rate and the cargo
    headroom it has left.
*/

package game

import "time"

// ExtractStep simulates one hour of extraction against a ledger.
//
// Elements are visited in stored order, so first-listed elements exhaust
// first when the rate is the binding constraint. For each element the hour
// takes min(remaining mass, rateKg, headroom). The rate is a per-element cap
// re-applied to every element, not a shared pool for the hour: with several
// elements present an hour can yield more than rateKg in total. That
// matches the historical extractor and is covered by tests; do not "fix" it
// without retuning the economy.
//
// A zero headroom or a depleted ledger returns an empty result with no
// error — exhaustion is a normal terminal signal. The returned total never
// exceeds the supplied headroom and no returned mass is negative.
func ExtractStep(ledger *MinedAsteroid, rateKg, headroomKg int64, now time.Time) []ElementStock {
	if rateKg <= 0 || headroomKg <= 0 || ledger.Depleted() {
		return nil
	}

	mined := []ElementStock{}
	deltas := map[string]int64{}
	remaining := headroomKg

	for _, e := range ledger.Elements {
		if remaining <= 0 {
			break
		}
		if e.MassKg <= 0 {
			continue
		}
		take := e.MassKg
		if rateKg < take {
			take = rateKg
		}
		if remaining < take {
			take = remaining
		}
		mined = append(mined, ElementStock{Name: e.Name, MassKg: take})
		deltas[e.Name] += take
		remaining -= take
	}

	if len(mined) == 0 {
		return nil
	}

	// Deltas were computed from the ledger's own masses, so this cannot fail.
	if err := ledger.ApplyDepletion(deltas, now); err != nil {
		panic("extract step produced an invalid depletion: " + err.Error())
	}
	return mined
}
