package farm

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReducer() Reducer {
	return Reducer{Rules: DefaultRules(), Recipes: DefaultCatalog()}
}

func herd(cows ...Cow) State {
	return State{Cows: cows, Inventory: Inventory{}}
}

func TestApply_FeedThenMilk(t *testing.T) {
	r := newReducer()
	s := herd(NewCow("a", ColorBrown, Point{}, t0))

	s, ok := r.Apply(s, FeedCow{CowID: "a", At: t0})
	require.True(t, ok)
	c, _ := s.Cow("a")
	assert.Equal(t, CowProducing, c.State)

	_, ok = r.Apply(s, FeedCow{CowID: "a", At: t0})
	assert.False(t, ok, "feeding a producing cow is illegal")

	_, ok = r.Apply(s, MilkCow{CowID: "a", At: t0.Add(10 * time.Second)})
	assert.False(t, ok, "cow is not full yet")

	s, ok = r.Apply(s, MilkCow{CowID: "a", At: t0.Add(31 * time.Second)})
	require.True(t, ok)
	c, _ = s.Cow("a")
	assert.Equal(t, CowHungry, c.State)
	assert.Nil(t, c.LastFedAt)
	assert.Equal(t, 0.0, c.Fullness)
	assert.Equal(t, 1, s.Inventory.Count(MilkItem(ColorBrown)))
	assert.Equal(t, XPFor(ActionFeed)+XPFor(ActionMilk), s.XP)
}

func TestApply_MilkTwiceIsNoop(t *testing.T) {
	r := newReducer()
	s := herd(fedCow(t0))
	at := t0.Add(time.Minute)

	s, ok := r.Apply(s, MilkCow{CowID: "c1", At: at})
	require.True(t, ok)
	again, ok := r.Apply(s, MilkCow{CowID: "c1", At: at})
	assert.False(t, ok)
	assert.Equal(t, s, again)
}

func TestApply_UnknownCow(t *testing.T) {
	r := newReducer()
	s := herd()
	for _, ev := range []Event{
		FeedCow{CowID: "x", At: t0},
		MilkCow{CowID: "x", At: t0},
		MoveCow{CowID: "x"},
	} {
		_, ok := r.Apply(s, ev)
		assert.False(t, ok, EventName(ev))
	}
}

func fullCow(id string, color Color) Cow {
	c := fedCow(t0.Add(-time.Hour))
	c.ID = id
	c.Color = color
	c.State = CowFull
	c.Fullness = 1
	return c
}

func TestApply_BreedCooldown(t *testing.T) {
	r := newReducer()
	s := herd(fullCow("a", ColorWhite), fullCow("b", ColorBrown), fullCow("c", ColorWhite))

	s, ok := r.Apply(s, BreedCows{ParentA: "a", ParentB: "b", ChildID: "calf1", At: t0})
	require.True(t, ok)
	require.Len(t, s.Cows, 4)
	calf, ok := s.Cow("calf1")
	require.True(t, ok)
	assert.Equal(t, CowHungry, calf.State)
	assert.Equal(t, ColorSpotted, calf.Color)

	// Neither parent may breed again before the cooldown, with any partner.
	before := t0.Add(r.Rules.BreedCooldown - time.Second)
	for _, ev := range []BreedCows{
		{ParentA: "a", ParentB: "b", ChildID: "calf2", At: before},
		{ParentA: "a", ParentB: "c", ChildID: "calf2", At: before},
		{ParentA: "c", ParentB: "b", ChildID: "calf2", At: before},
	} {
		out, ok := r.Apply(s, ev)
		assert.False(t, ok)
		assert.Len(t, out.Cows, 4, "no calf may be created")
		assert.Equal(t, s, out, "state must not be consumed")
	}

	s, ok = r.Apply(s, BreedCows{ParentA: "a", ParentB: "b", ChildID: "calf2", At: t0.Add(r.Rules.BreedCooldown)})
	assert.True(t, ok)
	assert.Len(t, s.Cows, 5)
}

func TestApply_BreedRejectsBadInput(t *testing.T) {
	r := newReducer()
	s := herd(fullCow("a", ColorWhite), fullCow("b", ColorWhite), NewCow("h", ColorBlack, Point{}, t0))

	cases := map[string]BreedCows{
		"self":           {ParentA: "a", ParentB: "a", ChildID: "x", At: t0},
		"no child id":    {ParentA: "a", ParentB: "b", At: t0},
		"child id taken": {ParentA: "a", ParentB: "b", ChildID: "h", At: t0},
		"hungry parent":  {ParentA: "a", ParentB: "h", ChildID: "x", At: t0},
		"missing parent": {ParentA: "a", ParentB: "zz", ChildID: "x", At: t0},
	}
	for name, ev := range cases {
		_, ok := r.Apply(s, ev)
		assert.False(t, ok, name)
	}
}

func TestApply_Move(t *testing.T) {
	r := newReducer()
	s := herd(NewCow("a", ColorWhite, Point{}, t0))

	s, ok := r.Apply(s, MoveCow{CowID: "a", Position: Point{X: 10, Y: 20}, FacingRight: false})
	require.True(t, ok)
	c, _ := s.Cow("a")
	assert.Equal(t, Point{X: 10, Y: 20}, c.Position)
	assert.False(t, c.FacingRight)
}

func TestApply_StartCraft(t *testing.T) {
	r := newReducer()
	s := herd()
	s.Inventory = Inventory{MilkItem(ColorWhite): 3, MilkItem(ColorBrown): 1}

	_, ok := r.Apply(s, StartCraft{RecipeID: "nope", EntryID: "e", At: t0})
	assert.False(t, ok, "unknown recipe")

	_, ok = r.Apply(s, StartCraft{RecipeID: "cheese", EntryID: "e", At: t0})
	assert.False(t, ok, "insufficient inventory")

	s, ok = r.Apply(s, StartCraft{RecipeID: "butter", EntryID: "e1", At: t0})
	require.True(t, ok)
	assert.Equal(t, 1, s.Inventory.Count(MilkItem(ColorWhite)))
	require.Len(t, s.Queue, 1)
	assert.Equal(t, t0.Add(20*time.Second), s.Queue[0].CompletesAt)

	s, ok = r.Apply(s, StartCraft{RecipeID: "chocolate_milk", At: t0})
	require.True(t, ok, "instant recipes need no entry id")
	assert.Equal(t, 1, s.Inventory.Count("chocolate_milk"))
	assert.Equal(t, 0, s.Inventory.Count(MilkItem(ColorBrown)))
	assert.Len(t, s.Queue, 1)
}

func TestApply_TickCompletesAndFills(t *testing.T) {
	r := newReducer()
	s := herd(fedCow(t0))
	s.Inventory = Inventory{MilkItem(ColorWhite): 2}
	s, ok := r.Apply(s, StartCraft{RecipeID: "butter", EntryID: "e1", At: t0})
	require.True(t, ok)

	mid, changed := r.Apply(s, Tick{Now: t0.Add(10 * time.Second)})
	assert.True(t, changed)
	c, _ := mid.Cow("c1")
	assert.InDelta(t, 1.0/3, c.Fullness, 1e-9)
	assert.Len(t, mid.Queue, 1)

	end, changed := r.Apply(mid, Tick{Now: t0.Add(31 * time.Second)})
	assert.True(t, changed)
	c, _ = end.Cow("c1")
	assert.Equal(t, CowFull, c.State)
	assert.Empty(t, end.Queue)
	assert.Equal(t, 1, end.Inventory.Count("butter"))

	_, changed = r.Apply(end, Tick{Now: t0.Add(40 * time.Second)})
	assert.False(t, changed)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	r := newReducer()
	s := herd(NewCow("a", ColorWhite, Point{}, t0))
	s.Inventory = Inventory{MilkItem(ColorWhite): 2}
	snapshot, err := json.Marshal(s)
	require.NoError(t, err)

	for _, ev := range []Event{
		FeedCow{CowID: "a", At: t0},
		StartCraft{RecipeID: "butter", EntryID: "e1", At: t0},
		MoveCow{CowID: "a", Position: Point{X: 1}},
		Tick{Now: t0.Add(time.Minute)},
	} {
		_, _ = r.Apply(s, ev)
	}

	after, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, string(snapshot), string(after))
}

func TestState_JSONRoundTrip(t *testing.T) {
	r := newReducer()
	s := herd(NewCow("a", ColorGolden, Point{X: 3, Y: 4}, t0))
	s, _ = r.Apply(s, FeedCow{CowID: "a", At: t0})

	data, err := json.Marshal(s)
	require.NoError(t, err)
	var back State
	require.NoError(t, json.Unmarshal(data, &back))

	c, ok := back.Cow("a")
	require.True(t, ok)
	require.NotNil(t, c.LastFedAt)
	assert.True(t, c.LastFedAt.Equal(t0))
	assert.Equal(t, CowProducing, c.State)
}
