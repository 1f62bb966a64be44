package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/pasture"
	"github.com/phanxgames/pasture/farm"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type recordingSink struct {
	events  []farm.Event
	applied []bool
}

func (r *recordingSink) Observe(ev farm.Event, ok bool, _ farm.State) {
	if _, tick := ev.(farm.Tick); tick {
		return
	}
	r.events = append(r.events, ev)
	r.applied = append(r.applied, ok)
}

type recordingStore struct {
	events []pasture.InteractionEvent
}

func (r *recordingStore) EmitEvent(ev pasture.InteractionEvent) {
	r.events = append(r.events, ev)
}

func newTestGame(t *testing.T, opts ...Option) (*Game, *pasture.ManualClock) {
	t.Helper()
	clock := pasture.NewManualClock(t0)
	opts = append([]Option{WithClock(clock), WithIDs(seqIDs())}, opts...)
	g, err := New(DefaultConfig(), opts...)
	require.NoError(t, err)
	return g, clock
}

func frames(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.Update()
	}
}

func cowPos(t *testing.T, g *Game, id string) pasture.Vec2 {
	t.Helper()
	c, ok := g.State().Cow(id)
	require.True(t, ok)
	return toVec(c.Position)
}

func TestNew_SeedsHerd(t *testing.T) {
	g, _ := newTestGame(t)

	s := g.State()
	require.Len(t, s.Cows, 2)
	assert.Equal(t, "id-1", s.Cows[0].ID)
	assert.Equal(t, farm.ColorWhite, s.Cows[0].Color)
	assert.Equal(t, farm.ColorBrown, s.Cows[1].Color)
	for _, c := range s.Cows {
		assert.Equal(t, farm.CowHungry, c.State)
		assert.NotNil(t, g.Scene.Body(c.ID))
	}
	assert.NotNil(t, g.Scene.Body(BucketID))
	assert.NotNil(t, g.Scene.Body(FeedBagID))
	_, ok := g.Scene.Spatial().Bounds(StationID)
	assert.True(t, ok)
	assert.Equal(t, "butter", g.Selected())
}

func TestNew_RejectsUnknownStationRecipe(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Station.Recipe = "soup"
	_, err := New(cfg)
	assert.ErrorIs(t, err, pasture.ErrInvalidConfig)
}

func TestNew_RestoresState(t *testing.T) {
	saved := farm.State{
		Cows: []farm.Cow{farm.NewCow("bessie", farm.ColorGolden, farm.Point{X: 300, Y: 300}, t0)},
		XP:   42,
	}
	g, _ := newTestGame(t, WithState(saved))

	s := g.State()
	require.Len(t, s.Cows, 1)
	assert.Equal(t, "bessie", s.Cows[0].ID)
	assert.Equal(t, 42, s.XP)
	assert.NotNil(t, s.Inventory)
	assert.Equal(t, pasture.Vec2{X: 300, Y: 300}, g.Scene.Body("bessie").Position())
}

func TestFeedBag_FeedsHungryCow(t *testing.T) {
	g, _ := newTestGame(t)
	pos := cowPos(t, g, "id-1")
	rope := g.cfg.FeedBag.Rope.Length

	g.Scene.InjectHover(pos.X, pos.Y-rope)
	g.Update()
	require.True(t, g.ActivateFeedBag(true))
	g.Update()

	c, _ := g.State().Cow("id-1")
	assert.Equal(t, farm.CowProducing, c.State)
	assert.Equal(t, farm.XPFor(farm.ActionFeed), g.State().XP)

	other, _ := g.State().Cow("id-2")
	assert.Equal(t, farm.CowHungry, other.State, "the far cow is out of range")

	require.True(t, g.ActivateFeedBag(false))
	assert.Equal(t, pasture.ModeIdle, g.Scene.Body(FeedBagID).Mode())
}

func TestBucket_MilksFullCow(t *testing.T) {
	g, clock := newTestGame(t)
	require.True(t, g.Feed("id-1"))
	clock.Advance(31 * time.Second)
	g.Update()

	c, _ := g.State().Cow("id-1")
	require.Equal(t, farm.CowFull, c.State)

	pos := cowPos(t, g, "id-1")
	g.Scene.InjectHover(pos.X, pos.Y-g.cfg.Bucket.Rope.Length)
	g.Update()
	require.True(t, g.ActivateBucket(true))
	g.Update()

	s := g.State()
	c, _ = s.Cow("id-1")
	assert.Equal(t, farm.CowHungry, c.State)
	assert.Equal(t, 1, s.Inventory.Count(farm.MilkItem(farm.ColorWhite)))

	cow := g.Scene.Body("id-1")
	assert.True(t, cow.Pulsing())
	assert.Equal(t, pulsePeak, cow.Scale())
	assert.Equal(t, 1.0, g.Scene.Body("id-2").Scale(), "only the milked cow pulses")

	clock.Advance(pulseDuration)
	g.Update()
	assert.False(t, cow.Pulsing())
	assert.Equal(t, 1.0, cow.Scale())
}

func TestBucket_IgnoresProducingCow(t *testing.T) {
	g, clock := newTestGame(t)
	require.True(t, g.Feed("id-1"))
	clock.Advance(10 * time.Second)

	pos := cowPos(t, g, "id-1")
	g.Scene.InjectHover(pos.X, pos.Y-g.cfg.Bucket.Rope.Length)
	g.Update()
	require.True(t, g.ActivateBucket(true))
	g.Update()

	c, _ := g.State().Cow("id-1")
	assert.Equal(t, farm.CowProducing, c.State)
	assert.Empty(t, g.State().Inventory.Items())
}

func TestCows_BreedWhenDraggedTogether(t *testing.T) {
	g, clock := newTestGame(t)
	require.True(t, g.Feed("id-1"))
	require.True(t, g.Feed("id-2"))
	clock.Advance(31 * time.Second)

	a := cowPos(t, g, "id-1")
	b := cowPos(t, g, "id-2")
	rope := g.cfg.Cow.Rope.Length

	g.Scene.InjectPress(a.X, a.Y)
	g.Update()
	require.Equal(t, pasture.ModeHeld, g.Scene.Body("id-1").Mode())

	g.Scene.InjectMove(b.X, b.Y-rope)
	// Hanging from above the other cow, the swing has to pass over it.
	frames(g, 300)

	s := g.State()
	require.Len(t, s.Cows, 3)
	calf, ok := s.Cow("id-3")
	require.True(t, ok)
	assert.Equal(t, farm.ColorSpotted, calf.Color)
	assert.NotNil(t, g.Scene.Body("id-3"))
	assert.Equal(t, farm.XPFor(farm.ActionFeed)*2+farm.XPFor(farm.ActionBreed), s.XP)

	// Parents are on cooldown now.
	assert.Empty(t, g.breedTargets("id-1"))
}

func TestCow_DropMovesCow(t *testing.T) {
	sink := &recordingSink{}
	g, _ := newTestGame(t, WithSink(sink))
	a := cowPos(t, g, "id-1")

	g.Scene.InjectDrag(a.X, a.Y, a.X+100, a.Y-50, 6)
	frames(g, 6)
	for i := 0; i < 2000 && g.Scene.Body("id-1").Mode() != pasture.ModeIdle; i++ {
		g.Update()
	}
	body := g.Scene.Body("id-1")
	require.Equal(t, pasture.ModeIdle, body.Mode())

	c, _ := g.State().Cow("id-1")
	assert.Equal(t, toPoint(body.Position()), c.Position)
	assert.Equal(t, body.Position(), body.Rest)

	require.NotEmpty(t, sink.events)
	last := sink.events[len(sink.events)-1]
	move, ok := last.(farm.MoveCow)
	require.True(t, ok)
	assert.Equal(t, "id-1", move.CowID)
}

func TestStation_CraftsFromDroppedItems(t *testing.T) {
	saved := farm.State{Inventory: farm.Inventory{"milk:white": 2}}
	g, clock := newTestGame(t, WithState(saved))

	first, err := g.SpawnItem("milk:white")
	require.NoError(t, err)
	second, err := g.SpawnItem("milk:white")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	_, err = g.SpawnItem("milk:white")
	assert.ErrorIs(t, err, ErrNoSpareItem)
	_, err = g.SpawnItem("milk:brown")
	assert.ErrorIs(t, err, ErrNoSpareItem)

	rest := g.Scene.Body(first).Rest
	st := g.cfg.Station
	over := pasture.Vec2{X: st.X + st.Width/2, Y: st.Y + st.Height/2 - g.cfg.Item.Rope.Length}

	deliver := func() {
		g.Scene.InjectPress(rest.X, rest.Y)
		g.Update()
		g.Scene.InjectMove(over.X, over.Y)
		g.Update()
		g.Scene.InjectRelease(over.X, over.Y)
		g.Update()
	}

	deliver()
	assert.Equal(t, 1, g.Tray().Count("milk:white"))
	assert.Len(t, g.State().Queue, 0)

	deliver()
	assert.Nil(t, g.Scene.Body(first))
	assert.Nil(t, g.Scene.Body(second))
	assert.Empty(t, g.Tray().Items())

	s := g.State()
	require.Len(t, s.Queue, 1)
	assert.Equal(t, "butter", s.Queue[0].RecipeID)
	assert.Equal(t, 0, s.Inventory.Count("milk:white"))

	clock.Advance(20 * time.Second)
	g.Update()
	s = g.State()
	assert.Empty(t, s.Queue)
	assert.Equal(t, 1, s.Inventory.Count("butter"))
}

func TestSelectRecipe(t *testing.T) {
	g, _ := newTestGame(t)
	assert.False(t, g.SelectRecipe("soup"))
	assert.Equal(t, "butter", g.Selected())
	assert.True(t, g.SelectRecipe("cheese"))
	assert.Equal(t, "cheese", g.Selected())
}

func TestStartCraft_Instant(t *testing.T) {
	saved := farm.State{Inventory: farm.Inventory{"milk:brown": 1}}
	g, _ := newTestGame(t, WithState(saved))

	assert.True(t, g.StartCraft("chocolate_milk"))
	assert.False(t, g.StartCraft("chocolate_milk"), "no milk left")
	assert.Equal(t, 1, g.State().Inventory.Count("chocolate_milk"))
}

func TestSinks_SeeLegalAndIllegalEvents(t *testing.T) {
	sink := &recordingSink{}
	g, _ := newTestGame(t, WithSink(sink))

	assert.True(t, g.Feed("id-1"))
	assert.False(t, g.Feed("id-1"))
	assert.False(t, g.Milk("nobody"))

	require.Len(t, sink.events, 3)
	assert.Equal(t, []bool{true, false, false}, sink.applied)
	assert.Equal(t, "feed_cow", farm.EventName(sink.events[0]))
	assert.Equal(t, "milk_cow", farm.EventName(sink.events[2]))
}

func TestEntityStores_ReceiveInteractions(t *testing.T) {
	a, b := &recordingStore{}, &recordingStore{}
	g, _ := newTestGame(t, WithEntityStore(a), WithEntityStore(b))

	require.True(t, g.ActivateBucket(true))
	require.True(t, g.ActivateBucket(false))

	for _, store := range []*recordingStore{a, b} {
		require.Len(t, store.events, 2)
		assert.Equal(t, pasture.EventPickup, store.events[0].Kind)
		assert.Equal(t, BucketID, store.events[0].BodyID)
		assert.Equal(t, pasture.EventDrop, store.events[1].Kind)
		assert.Equal(t, uint64(1), store.events[1].Episode)
	}
}
