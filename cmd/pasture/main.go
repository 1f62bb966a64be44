// Command pasture runs the farm in a window, replays scripted sessions
// headlessly and checks configuration files.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/phanxgames/pasture/game"
)

// Environment variables read after .env is loaded.
const (
	envConfig   = "PASTURE_CONFIG"
	envLogLevel = "PASTURE_LOG_LEVEL"
)

type rootFlags struct {
	config   string
	logLevel string
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "pasture",
		Short: "Casual farming game: drag cows, milk, breed and craft",
		Long: `Pasture runs the farm in a window (play), replays a scripted session
without a window and prints the final state (simulate), or checks a
configuration file (validate).`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&flags.config, "config", "c", os.Getenv(envConfig),
		"YAML config file (env "+envConfig+")")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", os.Getenv(envLogLevel),
		"debug, info, warn or error (env "+envLogLevel+")")

	root.AddCommand(newPlayCmd(flags), newSimulateCmd(flags), newValidateCmd(flags))
	return root
}

// load reads the config named by the flags, or the defaults.
func (f *rootFlags) load() (game.Config, error) {
	var (
		cfg game.Config
		err error
	)
	if f.config == "" {
		cfg, err = game.ParseConfig(nil)
	} else {
		cfg, err = game.LoadConfig(f.config)
	}
	if err != nil {
		return game.Config{}, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, nil
}
