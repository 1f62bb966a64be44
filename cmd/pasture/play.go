package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/pasture"
	"github.com/phanxgames/pasture/game"
)

func newPlayCmd(flags *rootFlags) *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open the farm in a window",
		Long: `Open the farm in a window. Drag cows with the mouse and throw them at
each other to breed. Keys: B toggles the bucket, F the feed bag, 1-4 pick
the station recipe, M spawns white milk for the station.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			log, err := pasture.NewLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			g, err := game.New(cfg, game.WithLogger(log))
			if err != nil {
				return err
			}
			g.Scene.SetDebugMode(debug)
			return pasture.Run(g.Scene, pasture.RunConfig{
				Title:      "Pasture",
				Width:      int(cfg.Viewport.Width),
				Height:     int(cfg.Viewport.Height),
				Background: game.Background,
				Draw:       g.Draw,
				Update:     func() error { handleKeys(g, log); return nil },
			})
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "panic on invariant violations and log frame stats")
	return cmd
}

var recipeKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

func handleKeys(g *game.Game, log *zap.Logger) {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.ActivateBucket(!g.Scene.Body(game.BucketID).Active())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.ActivateFeedBag(!g.Scene.Body(game.FeedBagID).Active())
	}
	recipes := g.Catalog().Recipes()
	for i, k := range recipeKeys {
		if i < len(recipes) && inpututil.IsKeyJustPressed(k) {
			g.SelectRecipe(recipes[i].ID)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if _, err := g.SpawnItem("milk:white"); err != nil {
			log.Info("cannot spawn item", zap.Error(err))
		}
	}
}
