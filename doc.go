// Package pasture is the interaction core of a casual farming game built on
// [Ebitengine]: cows, tools and crafting ingredients are dragged around a 2D
// scene on a rope, tossed, and bounce off the screen edges, and getting one
// close to another turns into a game event.
//
// # Quick start
//
//	scene := pasture.NewScene()
//	cow := pasture.NewBody("daisy", pasture.Vec2{X: 200, Y: 300}, pasture.DefaultCowConfig())
//	scene.AddBody(cow)
//	pasture.Run(scene, pasture.RunConfig{
//		Title: "Pasture", Width: 1280, Height: 720,
//		Draw:  func(screen *ebiten.Image) { /* draw bodies */ },
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] once per tick, with [Scene.SetInputSource] set to
// [NewEbitenInput] and [Scene.SetViewport] following the window.
//
// # Bodies
//
// A [Body] is in exactly one [BodyMode] at a time. Pressing on it picks it
// up (Held): [StepRope] keeps it on a rope of fixed length below the pointer.
// Releasing a throwable body hands it to [StepFlight], which applies gravity
// and friction, bounces it off the screen bounds and spins it on impact until
// it settles back to Idle. Tools such as a milking bucket are controlled
// bodies, driven by [Body.SetActive] instead of pickup and release.
//
// Each body reports Position, Rotation (degrees), Scale and Alpha every
// frame for the renderer, and OnPickup, OnPositionChange and OnDrop
// callbacks. OnDrop fires exactly once per episode.
//
// # Proximity
//
// Every body publishes its bounds to the scene's [SpatialRegistry] after it
// is stepped. A body with a [ProximityRule] is then checked against its
// rule's targets by the [Detector]; each (body, target) pair fires at most
// once per episode.
//
// # Ticks
//
// Each [Scene.Update] reads the [Ticker] once, before stepping the bodies,
// and calls OnTick handlers with the [Tick] after them. Progress in the game
// (fullness, crafting) is derived from Tick.Now, so it is correct after any
// gap. Tick.Delta is capped and drives tweens: a tool fading back to its
// spawn or a [Body.Pulse] advance by it, never by more than MaxDelta a frame.
//
// # Testing
//
// Scenes run headless. [Scene.InjectPress], [Scene.InjectDrag] and friends
// queue synthetic input, [ManualClock] controls time, and [LoadTestScript]
// replays a JSON script of both.
//
// [Ebitengine]: https://ebitengine.org
package pasture
