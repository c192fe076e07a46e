package cli

import (
	"fmt"
	"os"

	"skill-match/internal/config"
	"skill-match/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "skillmatch"

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:          app,
		Short:        "skillmatch matches workers to jobs and reports on filled positions",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "a config file (yaml, json or toml)")
	cmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	cmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = v.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("log.debug", cmd.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("log.json", cmd.PersistentFlags().Lookup("json"))

	cmd.AddCommand(
		serveCmd(v),
		migrateCmd(v),
		reportCmd(v),
		seedCmd(v),
		tokenCmd(v),
	)
	return cmd
}

// loadRuntime loads configuration, checks reqs and builds the logger.
func loadRuntime(v *viper.Viper, reqs ...config.Requirement) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := cfg.Validate(reqs...); err != nil {
		return config.Config{}, nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return cfg, log.Named(app), nil
}
