// Package farm holds the game state of the farm and the pure transitions
// over it. Nothing here reads a clock or touches the scene: every function
// takes the current time as an argument, so a session can be replayed from
// a list of events and a save layer can snapshot State as plain JSON.
package farm
