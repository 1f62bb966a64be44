package game

import (
	"fmt"

	"github.com/phanxgames/pasture"
)

// RegisterScriptActions adds farm actions to a test script runner:
//
//	feed    id = cow id
//	milk    id = cow id
//	craft   id = recipe id
//	select  id = recipe id
//	spawn   id = item id
//
// An action the farm rejects fails the script.
func (g *Game) RegisterScriptActions(r *pasture.TestRunner) {
	check := func(action, id string, ok bool) error {
		if !ok {
			return fmt.Errorf("%s %q rejected", action, id)
		}
		return nil
	}
	r.Handle("feed", func(_ *pasture.Scene, st pasture.ScriptStep) error {
		return check("feed", st.ID, g.Feed(st.ID))
	})
	r.Handle("milk", func(_ *pasture.Scene, st pasture.ScriptStep) error {
		return check("milk", st.ID, g.Milk(st.ID))
	})
	r.Handle("craft", func(_ *pasture.Scene, st pasture.ScriptStep) error {
		return check("craft", st.ID, g.StartCraft(st.ID))
	})
	r.Handle("select", func(_ *pasture.Scene, st pasture.ScriptStep) error {
		return check("select", st.ID, g.SelectRecipe(st.ID))
	})
	r.Handle("spawn", func(_ *pasture.Scene, st pasture.ScriptStep) error {
		_, err := g.SpawnItem(st.ID)
		return err
	})
}
