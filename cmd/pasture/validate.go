package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/pasture"
	"github.com/phanxgames/pasture/game"
)

func newValidateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config file and its recipe catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			g, err := game.New(cfg, game.WithClock(pasture.NewManualClock(simStart)))
			if err != nil {
				return err
			}
			source := "built-in"
			if cfg.Recipes != "" {
				source = cfg.Recipes
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config ok: %d cows, %d recipes (%s), station recipe %q\n",
				len(g.State().Cows), g.Catalog().Len(), source, g.Selected())
			return nil
		},
	}
}
