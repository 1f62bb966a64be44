// Package game wires the interaction engine to the farm rules: cows are
// bodies that breed when thrown at each other, the bucket milks full cows,
// the feed bag feeds hungry ones, and ingredients dropped on the station
// start the selected recipe.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phanxgames/pasture"
	"github.com/phanxgames/pasture/farm"
)

// Fixed body and target ids.
const (
	BucketID  = "bucket"
	FeedBagID = "feed_bag"
	StationID = "station"
)

const itemPrefix = "item:"

// Sink observes every domain event the game tries to apply, legal or not,
// together with the state after it.
type Sink interface {
	Observe(ev farm.Event, applied bool, s farm.State)
}

// Option customises New.
type Option func(*Game)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option { return func(g *Game) { g.log = l } }

// WithClock sets the clock driving ticks and event timestamps.
func WithClock(c pasture.Clock) Option { return func(g *Game) { g.clock = c } }

// WithIDs replaces the id generator used for calves and crafting entries.
func WithIDs(fn func() string) Option { return func(g *Game) { g.newID = fn } }

// WithState starts from a saved state instead of seeding a new herd.
func WithState(s farm.State) Option {
	return func(g *Game) {
		g.state = s.Clone()
		g.restored = true
	}
}

// WithSink adds an observer of domain events.
func WithSink(s Sink) Option { return func(g *Game) { g.sinks = append(g.sinks, s) } }

// WithEntityStore adds a receiver of interaction events.
func WithEntityStore(s pasture.EntityStore) Option {
	return func(g *Game) { g.stores = append(g.stores, s) }
}

// Game is one running farm.
type Game struct {
	Scene *pasture.Scene

	cfg      Config
	reducer  farm.Reducer
	state    farm.State
	restored bool
	log      *zap.Logger
	clock    pasture.Clock
	newID    func() string
	sinks    []Sink
	stores   []pasture.EntityStore

	selected string
	tray     farm.Inventory
}

// New builds a game from cfg. cfg must be valid.
func New(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		cfg:      cfg,
		log:      zap.NewNop(),
		clock:    pasture.SystemClock{},
		newID:    func() string { return uuid.New().String() },
		selected: cfg.Station.Recipe,
		tray:     farm.Inventory{},
	}
	for _, opt := range opts {
		opt(g)
	}

	catalog := farm.DefaultCatalog()
	if cfg.Recipes != "" {
		c, err := farm.LoadCatalog(cfg.Recipes)
		if err != nil {
			return nil, err
		}
		catalog = c
	}
	if g.selected != "" {
		if _, ok := catalog.Lookup(g.selected); !ok {
			return nil, fmt.Errorf("%w: station recipe %q not in catalog", pasture.ErrInvalidConfig, g.selected)
		}
	}
	g.reducer = farm.Reducer{Rules: cfg.Rules, Recipes: catalog}

	s := pasture.NewScene()
	s.SetLogger(g.log)
	s.SetClock(g.clock)
	s.SetViewport(pasture.Rect{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height})
	switch len(g.stores) {
	case 0:
	case 1:
		s.SetEntityStore(g.stores[0])
	default:
		s.SetEntityStore(multiStore(g.stores))
	}
	g.Scene = s

	if !g.restored {
		g.state = g.seedHerd()
	}
	if g.state.Inventory == nil {
		g.state.Inventory = farm.Inventory{}
	}
	for _, c := range g.state.Cows {
		if err := g.addCowBody(c); err != nil {
			return nil, err
		}
	}
	if err := g.addTools(); err != nil {
		return nil, err
	}
	st := cfg.Station
	s.Spatial().Publish(StationID, pasture.Rect{X: st.X, Y: st.Y, Width: st.Width, Height: st.Height})

	s.OnTick(g.onTick)
	g.log.Info("farm ready",
		zap.Int("cows", len(g.state.Cows)),
		zap.Int("recipes", catalog.Len()),
		zap.Bool("restored", g.restored))
	return g, nil
}

// State returns a copy of the current game state.
func (g *Game) State() farm.State { return g.state.Clone() }

// Catalog returns the recipes in use.
func (g *Game) Catalog() *farm.Catalog { return g.reducer.Recipes }

// Now returns the game clock's current time.
func (g *Game) Now() time.Time { return g.clock.Now() }

// Update runs one frame.
func (g *Game) Update() { g.Scene.Update() }

// ActivateBucket picks up or puts down the milking bucket.
func (g *Game) ActivateBucket(active bool) bool { return g.Scene.Activate(BucketID, active) }

// ActivateFeedBag picks up or puts down the feed bag.
func (g *Game) ActivateFeedBag(active bool) bool { return g.Scene.Activate(FeedBagID, active) }

// Feed feeds a cow directly.
func (g *Game) Feed(cowID string) bool {
	return g.apply(farm.FeedCow{CowID: cowID, At: g.Now()})
}

// Milk milks a cow directly.
func (g *Game) Milk(cowID string) bool {
	return g.apply(farm.MilkCow{CowID: cowID, At: g.Now()})
}

// Breed breeds two cows directly. The calf gets a body next to its parents.
func (g *Game) Breed(a, b string) bool {
	return g.breed(a, b)
}

// StartCraft starts a recipe from inventory. Unknown recipes and missing
// ingredients return false.
func (g *Game) StartCraft(recipeID string) bool {
	return g.apply(farm.StartCraft{RecipeID: recipeID, EntryID: g.newID(), At: g.Now()})
}

// SelectRecipe chooses what the station crafts when ingredients are dropped
// on it.
func (g *Game) SelectRecipe(recipeID string) bool {
	if _, ok := g.reducer.Recipes.Lookup(recipeID); !ok {
		return false
	}
	g.selected = recipeID
	g.tray = farm.Inventory{}
	return true
}

// Selected returns the station's current recipe.
func (g *Game) Selected() string { return g.selected }

// Tray returns the ingredients dropped on the station for the current recipe.
func (g *Game) Tray() farm.Inventory { return g.tray.Add(nil) }

// apply runs ev through the reducer, keeps the result if legal and tells
// every sink.
func (g *Game) apply(ev farm.Event) bool {
	next, ok := g.reducer.Apply(g.state, ev)
	if ok {
		g.state = next
	}
	if _, isTick := ev.(farm.Tick); !isTick || ok {
		g.log.Debug("farm event", zap.String("event", farm.EventName(ev)), zap.Bool("applied", ok))
	}
	for _, s := range g.sinks {
		s.Observe(ev, ok, g.state)
	}
	return ok
}

func (g *Game) onTick(t pasture.Tick) {
	g.apply(farm.Tick{Now: t.Now})
}

func (g *Game) seedHerd() farm.State {
	s := farm.State{Inventory: farm.Inventory{}}
	n := g.cfg.Herd.InitialCows
	colors := g.cfg.Herd.Colors
	if len(colors) == 0 {
		colors = farm.Colors
	}
	now := g.Now()
	vp := g.cfg.Viewport
	for i := 0; i < n; i++ {
		pos := farm.Point{
			X: vp.Width * float64(i+1) / float64(n+1),
			Y: vp.Height * 0.6,
		}
		s.Cows = append(s.Cows, farm.NewCow(g.newID(), colors[i%len(colors)], pos, now))
	}
	return s
}

// multiStore fans interaction events out to several stores.
type multiStore []pasture.EntityStore

func (m multiStore) EmitEvent(ev pasture.InteractionEvent) {
	for _, s := range m {
		s.EmitEvent(ev)
	}
}
