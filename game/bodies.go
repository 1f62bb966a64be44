package game

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/phanxgames/pasture"
	"github.com/phanxgames/pasture/farm"
)

// ErrNoSpareItem is returned by SpawnItem when every unit of the item held
// is already on screen or on the station tray.
var ErrNoSpareItem = errors.New("no spare item in inventory")

// A cow reached by a working tool pops to pulsePeak and eases back.
const (
	pulsePeak     = 1.2
	pulseDuration = 200 * time.Millisecond
)

func toVec(p farm.Point) pasture.Vec2   { return pasture.Vec2{X: p.X, Y: p.Y} }
func toPoint(v pasture.Vec2) farm.Point { return farm.Point{X: v.X, Y: v.Y} }

// addCowBody gives c a draggable body. Thrown at another cow that is ready,
// it breeds; wherever it lands becomes its new position.
func (g *Game) addCowBody(c farm.Cow) error {
	b := pasture.NewBody(c.ID, toVec(c.Position), g.cfg.Cow)
	b.UserData = c.ID
	b.Proximity = &pasture.ProximityRule{
		Targets: func() []string { return g.breedTargets(c.ID) },
		OnCollide: func(target string, _ pasture.Vec2) {
			g.breed(c.ID, target)
		},
	}
	b.OnDrop = func(b *pasture.Body, pos pasture.Vec2) {
		b.Rest = pos
		g.apply(farm.MoveCow{CowID: c.ID, Position: toPoint(pos), FacingRight: b.FacingRight()})
	}
	return g.Scene.AddBody(b)
}

// breedTargets lists the cows id could breed with right now. It is empty
// while id itself is on cooldown.
func (g *Game) breedTargets(id string) []string {
	now := g.Now()
	rules := g.reducer.Rules
	ready := func(c farm.Cow) bool {
		c = farm.AdvanceCow(c, now, rules.ProductionDuration)
		return farm.CanBreed(c, now, rules.BreedCooldown)
	}
	self, ok := g.state.Cow(id)
	if !ok || !ready(self) {
		return nil
	}
	var out []string
	for _, c := range g.state.Cows {
		if c.ID != id && ready(c) {
			out = append(out, c.ID)
		}
	}
	return out
}

func (g *Game) breed(a, b string) bool {
	child := g.newID()
	if !g.apply(farm.BreedCows{ParentA: a, ParentB: b, ChildID: child, At: g.Now()}) {
		return false
	}
	calf, _ := g.state.Cow(child)
	if err := g.addCowBody(calf); err != nil {
		g.log.Error("add calf body", zap.String("cow", child), zap.Error(err))
		return true
	}
	g.log.Info("calf born",
		zap.String("cow", child),
		zap.String("color", string(calf.Color)),
		zap.String("parentA", a),
		zap.String("parentB", b))
	return true
}

// addTools adds the bucket and the feed bag, resting in the top left corner.
func (g *Game) addTools() error {
	bucket := pasture.NewBody(BucketID, pasture.Vec2{X: 60, Y: 60}, g.cfg.Bucket)
	bucket.Proximity = &pasture.ProximityRule{
		Targets: func() []string { return g.cowsWhere(farm.CowFull) },
		OnCollide: func(target string, _ pasture.Vec2) {
			if g.Milk(target) {
				g.pulse(target)
			}
		},
	}
	feed := pasture.NewBody(FeedBagID, pasture.Vec2{X: 140, Y: 60}, g.cfg.FeedBag)
	feed.Proximity = &pasture.ProximityRule{
		Targets: func() []string { return g.cowsWhere(farm.CowHungry) },
		OnCollide: func(target string, _ pasture.Vec2) {
			if g.Feed(target) {
				g.pulse(target)
			}
		},
	}
	if err := g.Scene.AddBody(bucket); err != nil {
		return err
	}
	return g.Scene.AddBody(feed)
}

func (g *Game) pulse(id string) {
	if b := g.Scene.Body(id); b != nil {
		b.Pulse(pulsePeak, pulseDuration)
	}
}

// cowsWhere lists the cows in st as of now, which may be ahead of the last
// tick.
func (g *Game) cowsWhere(st farm.CowState) []string {
	now := g.Now()
	var out []string
	for _, c := range g.state.Cows {
		if farm.AdvanceCow(c, now, g.reducer.Rules.ProductionDuration).State == st {
			out = append(out, c.ID)
		}
	}
	return out
}

// SpawnItem puts a draggable ingredient on screen next to the station. The
// inventory must hold more of item than is already on screen or on the
// station tray. It returns the new body's id.
func (g *Game) SpawnItem(item string) (string, error) {
	have := g.state.Inventory.Count(item)
	if have <= g.tray.Count(item)+g.itemsOut(item) {
		return "", fmt.Errorf("%w: %q", ErrNoSpareItem, item)
	}
	id := itemPrefix + item + ":" + g.newID()
	st := g.cfg.Station
	rest := pasture.Vec2{X: st.X - g.cfg.Item.Width, Y: st.Y + st.Height/2}
	b := pasture.NewBody(id, rest, g.cfg.Item)
	b.UserData = item
	b.Proximity = &pasture.ProximityRule{
		Threshold: math.Max(st.Width, st.Height)/2 + g.cfg.Item.CollisionDistance/2,
		Targets:   func() []string { return []string{StationID} },
		OnCollide: func(string, pasture.Vec2) {
			g.deposit(id, item)
		},
	}
	if err := g.Scene.AddBody(b); err != nil {
		return "", err
	}
	return id, nil
}

func (g *Game) itemsOut(item string) int {
	n := 0
	for _, b := range g.Scene.Bodies() {
		if strings.HasPrefix(b.ID, itemPrefix) && b.UserData == item && g.Scene.Body(b.ID) == b {
			n++
		}
	}
	return n
}

// deposit moves an item body onto the station tray. Once the tray holds the
// selected recipe's inputs the craft starts and the tray empties.
func (g *Game) deposit(bodyID, item string) {
	g.Scene.RemoveBody(bodyID)
	g.tray = g.tray.Add([]farm.ItemQty{{Item: item, Qty: 1}})
	g.log.Debug("item deposited", zap.String("item", item), zap.String("recipe", g.selected))

	recipe, ok := g.reducer.Recipes.Lookup(g.selected)
	if !ok || !g.tray.Has(recipe.Inputs) {
		return
	}
	if g.StartCraft(recipe.ID) {
		g.tray = farm.Inventory{}
	}
}
