package farm

import "time"

// Event is a domain transition request. The concrete types are FeedCow,
// MilkCow, BreedCows, MoveCow, StartCraft and Tick.
type Event interface {
	eventName() string
}

// FeedCow starts production on a hungry cow.
type FeedCow struct {
	CowID string
	At    time.Time
}

// MilkCow empties a full cow into the inventory.
type MilkCow struct {
	CowID string
	At    time.Time
}

// BreedCows breeds two full cows out of cooldown. ChildID is the id of the
// calf; it is chosen by the caller so Apply stays deterministic.
type BreedCows struct {
	ParentA, ParentB string
	ChildID          string
	At               time.Time
}

// MoveCow records where a cow was dropped.
type MoveCow struct {
	CowID       string
	Position    Point
	FacingRight bool
}

// StartCraft deducts a recipe's inputs and queues it, or completes it at
// once if the recipe is instant. EntryID names the queue entry.
type StartCraft struct {
	RecipeID string
	EntryID  string
	At       time.Time
}

// Tick advances every time-dependent quantity to Now.
type Tick struct {
	Now time.Time
}

func (FeedCow) eventName() string    { return "feed_cow" }
func (MilkCow) eventName() string    { return "milk_cow" }
func (BreedCows) eventName() string  { return "breed_cows" }
func (MoveCow) eventName() string    { return "move_cow" }
func (StartCraft) eventName() string { return "start_craft" }
func (Tick) eventName() string       { return "tick" }

// EventName returns a stable lower-case name for ev, for logs and metrics.
func EventName(ev Event) string {
	if ev == nil {
		return "none"
	}
	return ev.eventName()
}

// Reducer applies events to a State.
type Reducer struct {
	Rules   Rules
	Recipes *Catalog
}

// Apply returns the state after ev and whether ev was legal. An illegal
// event (unknown cow, wrong state, cooldown, missing inventory, unknown
// recipe) returns s unchanged and false. s itself is never modified.
func (r Reducer) Apply(s State, ev Event) (State, bool) {
	switch e := ev.(type) {
	case FeedCow:
		return r.feed(s, e)
	case MilkCow:
		return r.milk(s, e)
	case BreedCows:
		return r.breed(s, e)
	case MoveCow:
		return r.move(s, e)
	case StartCraft:
		return r.startCraft(s, e)
	case Tick:
		return r.tick(s, e.Now)
	default:
		return s, false
	}
}

func (r Reducer) feed(s State, e FeedCow) (State, bool) {
	i := s.cowIndex(e.CowID)
	if i < 0 || s.Cows[i].State != CowHungry {
		return s, false
	}
	out := s.Clone()
	c := &out.Cows[i]
	at := e.At
	c.State = CowProducing
	c.LastFedAt = &at
	c.Fullness = 0
	out.XP += XPFor(ActionFeed)
	return out, true
}

func (r Reducer) milk(s State, e MilkCow) (State, bool) {
	i := s.cowIndex(e.CowID)
	if i < 0 {
		return s, false
	}
	// A cow whose fullness reached 1 before the last tick still counts.
	c := AdvanceCow(s.Cows[i], e.At, r.Rules.ProductionDuration)
	if c.State != CowFull {
		return s, false
	}
	out := s.Clone()
	c.State = CowHungry
	c.LastFedAt = nil
	c.Fullness = 0
	out.Cows[i] = c
	yield := r.Rules.MilkYield
	if yield < 1 {
		yield = 1
	}
	out.Inventory = out.Inventory.Add([]ItemQty{{Item: MilkItem(c.Color), Qty: yield}})
	out.XP += XPFor(ActionMilk)
	return out, true
}

func (r Reducer) breed(s State, e BreedCows) (State, bool) {
	if e.ParentA == e.ParentB || e.ChildID == "" || s.cowIndex(e.ChildID) >= 0 {
		return s, false
	}
	ia, ib := s.cowIndex(e.ParentA), s.cowIndex(e.ParentB)
	if ia < 0 || ib < 0 {
		return s, false
	}
	d := r.Rules.ProductionDuration
	a := AdvanceCow(s.Cows[ia], e.At, d)
	b := AdvanceCow(s.Cows[ib], e.At, d)
	if !CanBreed(a, e.At, r.Rules.BreedCooldown) || !CanBreed(b, e.At, r.Rules.BreedCooldown) {
		return s, false
	}

	out := s.Clone()
	a.LastBredAt = e.At
	b.LastBredAt = e.At
	out.Cows[ia] = a
	out.Cows[ib] = b
	pos := Point{
		X: (a.Position.X + b.Position.X) / 2,
		Y: (a.Position.Y + b.Position.Y) / 2,
	}
	out.Cows = append(out.Cows, NewCow(e.ChildID, OffspringColor(a.Color, b.Color), pos, e.At))
	out.XP += XPFor(ActionBreed)
	return out, true
}

func (r Reducer) move(s State, e MoveCow) (State, bool) {
	i := s.cowIndex(e.CowID)
	if i < 0 {
		return s, false
	}
	c := s.Cows[i]
	if c.Position == e.Position && c.FacingRight == e.FacingRight {
		return s, true
	}
	out := s.Clone()
	out.Cows[i].Position = e.Position
	out.Cows[i].FacingRight = e.FacingRight
	return out, true
}

func (r Reducer) startCraft(s State, e StartCraft) (State, bool) {
	recipe, ok := r.Recipes.Lookup(e.RecipeID)
	if !ok {
		return s, false
	}
	inv, ok := s.Inventory.Remove(recipe.Inputs)
	if !ok {
		return s, false
	}
	out := s.Clone()
	out.Inventory = inv
	if recipe.Instant() {
		out.Inventory = out.Inventory.Add(recipe.Outputs)
		out.XP += XPFor(ActionCraft)
		return out, true
	}
	if e.EntryID == "" {
		return s, false
	}
	out.Queue = append(out.Queue, CraftingEntry{
		ID:          e.EntryID,
		RecipeID:    recipe.ID,
		StartedAt:   e.At,
		CompletesAt: e.At.Add(recipe.Duration()),
	})
	return out, true
}

// tick reports true when anything changed.
func (r Reducer) tick(s State, now time.Time) (State, bool) {
	changed := false
	out := s
	for i, c := range s.Cows {
		next := AdvanceCow(c, now, r.Rules.ProductionDuration)
		if next.Fullness == c.Fullness && next.State == c.State {
			continue
		}
		if !changed {
			out = s.Clone()
			changed = true
		}
		out.Cows[i] = next
	}
	out, done := CompleteDue(out, r.Recipes, now)
	return out, changed || len(done) > 0
}
