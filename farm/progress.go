package farm

import (
	"time"
)

// Rules are the time constants of the farm.
type Rules struct {
	// ProductionDuration is how long a fed cow takes to become full.
	ProductionDuration time.Duration `yaml:"production_duration" json:"production_duration" validate:"gt=0"`
	// BreedCooldown is how long a parent must wait before breeding again.
	BreedCooldown time.Duration `yaml:"breed_cooldown" json:"breed_cooldown" validate:"gte=0"`
	// MilkYield is how many milk items one milking gives.
	MilkYield int `yaml:"milk_yield" json:"milk_yield" validate:"gte=1"`
}

// DefaultRules returns the standard farm timings.
func DefaultRules() Rules {
	return Rules{
		ProductionDuration: 30 * time.Second,
		BreedCooldown:      60 * time.Second,
		MilkYield:          1,
	}
}

// Fullness returns min(1, (now - lastFedAt) / d) for a fed cow and 0 for a
// cow that has not been fed. It depends only on its arguments, so it is
// correct however rarely it is called.
func Fullness(c Cow, now time.Time, d time.Duration) float64 {
	if c.LastFedAt == nil {
		return 0
	}
	if d <= 0 {
		return 1
	}
	elapsed := now.Sub(*c.LastFedAt)
	if elapsed <= 0 {
		return 0
	}
	f := float64(elapsed) / float64(d)
	if f > 1 {
		return 1
	}
	return f
}

// FullAt returns when a producing cow becomes full.
func FullAt(c Cow, d time.Duration) (time.Time, bool) {
	if c.LastFedAt == nil {
		return time.Time{}, false
	}
	return c.LastFedAt.Add(d), true
}

// AdvanceCow recomputes a producing cow's fullness at now and moves it to
// Full once fullness reaches 1. Fullness never decreases, even if now is
// earlier than a previous call. Cows in other states are returned as is.
func AdvanceCow(c Cow, now time.Time, d time.Duration) Cow {
	if c.State != CowProducing {
		return c
	}
	if f := Fullness(c, now, d); f > c.Fullness {
		c.Fullness = f
	}
	if c.Fullness >= 1 {
		c.Fullness = 1
		c.State = CowFull
	}
	return c
}

// BreedReadyAt returns the earliest time c may breed again.
func BreedReadyAt(c Cow, cooldown time.Duration) time.Time {
	if c.LastBredAt.IsZero() {
		return time.Time{}
	}
	return c.LastBredAt.Add(cooldown)
}

// CanBreed reports whether c is full and out of its breeding cooldown.
func CanBreed(c Cow, now time.Time, cooldown time.Duration) bool {
	if c.State != CowFull {
		return false
	}
	return !now.Before(BreedReadyAt(c, cooldown))
}

// CompleteDue grants the outputs of every queued entry with now >= CompletesAt
// and removes it from the queue. Entries whose recipe is unknown to recipes
// are removed without output. The input state is not modified.
func CompleteDue(s State, recipes *Catalog, now time.Time) (State, []CraftingEntry) {
	var done []CraftingEntry
	for _, e := range s.Queue {
		if !now.Before(e.CompletesAt) {
			done = append(done, e)
		}
	}
	if len(done) == 0 {
		return s, nil
	}

	out := s.Clone()
	out.Queue = out.Queue[:0]
	for _, e := range s.Queue {
		if now.Before(e.CompletesAt) {
			out.Queue = append(out.Queue, e)
		}
	}
	for _, e := range done {
		r, ok := recipes.Lookup(e.RecipeID)
		if !ok {
			continue
		}
		out.Inventory = out.Inventory.Add(r.Outputs)
		out.XP += XPFor(ActionCraft)
	}
	return out, done
}
