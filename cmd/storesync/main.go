package main

import (
	"log"

	"storesync/internal/app"
	"storesync/internal/config"
	"storesync/internal/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "storesync",
	Short:         "Mirror an eBay store into a Wix catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		app.New(cfg, log, app.StartWorker, app.StartServer).Run()
		return nil
	},
}

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single sync and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		app.New(cfg, log, app.RunOnce).Run()
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and dependency wiring",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if err := app.Validate(cfg, log); err != nil {
			return err
		}
		log.Info("Configuration and wiring OK")
		return nil
	},
}

func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.LogLevel, cfg.Env), nil
}

func main() {
	rootCmd.AddCommand(onceCmd, checkCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal("storesync: ", err)
	}
}
