package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/pasture"
	"github.com/phanxgames/pasture/farm"
)

// InteractionEventType is the Donburi event type for pasture interaction
// events. Subscribe to this in your ECS systems to receive pickup, drop and
// collide events.
var InteractionEventType = events.NewEventType[pasture.InteractionEvent]()

// FarmEvent is a domain event as seen by a HerdMirror.
type FarmEvent struct {
	Name    string
	Event   farm.Event
	Applied bool
}

// FarmEventType is the Donburi event type for farm events.
var FarmEventType = events.NewEventType[FarmEvent]()

// CowComponent holds the latest state of one cow.
var CowComponent = donburi.NewComponentType[farm.Cow]()

var cowQuery = donburi.NewQuery(filter.Contains(CowComponent))

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) pasture.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event pasture.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// HerdMirror keeps the world's cow entities in step with the farm state.
type HerdMirror struct {
	world    donburi.World
	entities map[string]donburi.Entity
}

// NewHerdMirror returns a mirror writing into world.
func NewHerdMirror(world donburi.World) *HerdMirror {
	return &HerdMirror{world: world, entities: make(map[string]donburi.Entity)}
}

// Observe publishes ev and, when it was applied, syncs the cow entities
// with s. Tick events are only published when they changed something.
func (m *HerdMirror) Observe(ev farm.Event, applied bool, s farm.State) {
	if _, tick := ev.(farm.Tick); !tick || applied {
		FarmEventType.Publish(m.world, FarmEvent{Name: farm.EventName(ev), Event: ev, Applied: applied})
	}
	if applied || len(m.entities) == 0 {
		m.Sync(s)
	}
}

// Sync creates, updates and removes cow entities to match s.
func (m *HerdMirror) Sync(s farm.State) {
	seen := make(map[string]struct{}, len(s.Cows))
	for _, c := range s.Cows {
		seen[c.ID] = struct{}{}
		e, ok := m.entities[c.ID]
		if !ok || !m.world.Valid(e) {
			e = m.world.Create(CowComponent)
			m.entities[c.ID] = e
		}
		CowComponent.SetValue(m.world.Entry(e), c)
	}
	for id, e := range m.entities {
		if _, ok := seen[id]; ok {
			continue
		}
		if m.world.Valid(e) {
			m.world.Remove(e)
		}
		delete(m.entities, id)
	}
}

// Entity returns the entity mirroring the cow with the given id.
func (m *HerdMirror) Entity(cowID string) (donburi.Entity, bool) {
	e, ok := m.entities[cowID]
	return e, ok
}

// Cows returns every mirrored cow in world.
func Cows(world donburi.World) []farm.Cow {
	var out []farm.Cow
	cowQuery.Each(world, func(entry *donburi.Entry) {
		out = append(out, *CowComponent.Get(entry))
	})
	return out
}
