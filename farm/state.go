package farm

import (
	"sort"
	"time"
)

// Inventory maps item ids to quantities. Methods never modify the receiver;
// they return a new map.
type Inventory map[string]int

// Count returns the quantity held of item.
func (inv Inventory) Count(item string) int { return inv[item] }

// Has reports whether inv holds at least every quantity in need.
func (inv Inventory) Has(need []ItemQty) bool {
	total := make(map[string]int, len(need))
	for _, q := range need {
		total[q.Item] += q.Qty
	}
	for item, qty := range total {
		if inv[item] < qty {
			return false
		}
	}
	return true
}

// Add returns a copy of inv with items added.
func (inv Inventory) Add(items []ItemQty) Inventory {
	out := inv.clone()
	for _, q := range items {
		out[q.Item] += q.Qty
	}
	return out
}

// Remove returns a copy of inv with items taken out, and false if inv does
// not hold enough. Items that reach zero are deleted.
func (inv Inventory) Remove(items []ItemQty) (Inventory, bool) {
	if !inv.Has(items) {
		return inv, false
	}
	out := inv.clone()
	for _, q := range items {
		out[q.Item] -= q.Qty
		if out[q.Item] == 0 {
			delete(out, q.Item)
		}
	}
	return out, true
}

// Items returns the item ids held, sorted.
func (inv Inventory) Items() []string {
	ids := make([]string, 0, len(inv))
	for id := range inv {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (inv Inventory) clone() Inventory {
	out := make(Inventory, len(inv)+1)
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// CraftingEntry is a timed recipe in progress. Its inputs were deducted when
// it was started.
type CraftingEntry struct {
	ID          string    `json:"id"`
	RecipeID    string    `json:"recipeId"`
	StartedAt   time.Time `json:"startedAt"`
	CompletesAt time.Time `json:"completesAt"`
}

// Remaining returns how long until the entry completes, never negative.
func (e CraftingEntry) Remaining(now time.Time) time.Duration {
	if d := e.CompletesAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// State is the whole persistent game state.
type State struct {
	Cows      []Cow           `json:"cows"`
	Inventory Inventory       `json:"inventory"`
	Queue     []CraftingEntry `json:"queue"`
	XP        int             `json:"xp"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{XP: s.XP, Inventory: s.Inventory.clone()}
	if s.Cows != nil {
		out.Cows = make([]Cow, len(s.Cows))
		copy(out.Cows, s.Cows)
	}
	if s.Queue != nil {
		out.Queue = make([]CraftingEntry, len(s.Queue))
		copy(out.Queue, s.Queue)
	}
	return out
}

// Cow returns the cow with the given id.
func (s State) Cow(id string) (Cow, bool) {
	if i := s.cowIndex(id); i >= 0 {
		return s.Cows[i], true
	}
	return Cow{}, false
}

// CowsIn returns the ids of the cows in the given state, in herd order.
func (s State) CowsIn(state CowState) []string {
	var ids []string
	for _, c := range s.Cows {
		if c.State == state {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Level returns the player level for the accumulated XP.
func (s State) Level() int { return LevelForXP(s.XP) }

func (s State) cowIndex(id string) int {
	for i := range s.Cows {
		if s.Cows[i].ID == id {
			return i
		}
	}
	return -1
}
