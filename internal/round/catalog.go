package round

import (
	"fmt"
	"math/rand"
)

// Catalog holds the authored round definitions and the current session's
// shuffled order.
type Catalog struct {
	entries  []Definition
	shuffled []Definition
}

// NewCatalog validates entries and copies them into a catalog.
func NewCatalog(entries []Definition) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("round: %w: catalog is empty", ErrConfiguration)
	}
	c := &Catalog{entries: make([]Definition, len(entries))}
	for i, d := range entries {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("round: catalog entry %d: %w", i+1, err)
		}
		c.entries[i] = d.clone()
	}
	return c, nil
}

// Shuffle builds a fresh Fisher-Yates permutation of the entries. Each
// shuffled entry is a deep copy.
func (c *Catalog) Shuffle(rng *rand.Rand) {
	n := len(c.entries)
	shuffled := make([]Definition, n)
	for i, d := range c.entries {
		shuffled[i] = d.clone()
	}
	for i := 0; i < n-1; i++ {
		j := i + rng.Intn(n-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	c.shuffled = shuffled
}

// Len returns the number of rounds in a session.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Round returns a copy of the shuffled entry at index.
func (c *Catalog) Round(index int) (Definition, error) {
	if c.shuffled == nil {
		return Definition{}, fmt.Errorf("round: %w: catalog not shuffled", ErrRange)
	}
	if index < 0 || index >= len(c.shuffled) {
		return Definition{}, fmt.Errorf("round: %w: index %d outside [0, %d)", ErrRange, index, len(c.shuffled))
	}
	return c.shuffled[index].clone(), nil
}

// Entries returns a copy of the authored entries in authored order.
func (c *Catalog) Entries() []Definition {
	out := make([]Definition, len(c.entries))
	for i, d := range c.entries {
		out[i] = d.clone()
	}
	return out
}
