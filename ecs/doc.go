// Package ecs provides ECS adapters for pasture's interaction and farm
// events.
//
// [NewDonburiStore] bridges interaction events (pickup, drop, collide) into
// a [Donburi] world as typed events. Subscribe to [InteractionEventType] in
// your ECS systems to receive them.
//
// [HerdMirror] observes farm events and keeps one entity per cow with a
// [CowComponent], so ECS render systems can query the herd directly. Every
// observed event is also published to [FarmEventType].
//
// Usage:
//
//	world := donburi.NewWorld()
//	g, err := game.New(cfg,
//		game.WithEntityStore(ecs.NewDonburiStore(world)),
//		game.WithSink(ecs.NewHerdMirror(world)))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
