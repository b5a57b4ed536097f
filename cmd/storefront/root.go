package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"goflare.io/storefront"
	"goflare.io/storefront/config"
)

type app struct {
	configPath string
	session    *storefront.Session
	logger     *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Drive and watch the cart and preferences of a storefront profile",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (yaml, json or toml)")
	flags.String("profile", "", "profile whose state is used")
	flags.Bool("detached", false, "use defaults and persist nothing")

	root.AddCommand(
		newCartCommand(a),
		newUnitCommand(a),
		newSearchCommand(a),
		newCatalogCommand(a),
		newWatchCommand(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command) error {
	bindFlags := func(v *viper.Viper) error {
		for _, name := range []string{"profile", "detached"} {
			if err := v.BindPFlag(name, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
				return err
			}
		}
		return nil
	}

	cfg, err := config.Load(a.configPath, bindFlags)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	a.logger = logger

	session, err := storefront.NewSession(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	a.session = session
	return nil
}

func (a *app) close() {
	if a.session != nil {
		a.session.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
