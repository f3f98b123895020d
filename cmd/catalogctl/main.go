package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/catalog/internal/cli"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/entrypoint"
	"github.com/mrlokans/catalog/internal/logging"
)

// Version information - set at build time via ldflags
var Version = "dev"

func main() {
	if err := config.LoadEnvFiles(config.DefaultEnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	open := func(dbPath string) (cli.Store, error) {
		cfg := config.NewConfig()
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}
		log, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
		if err != nil {
			return nil, err
		}
		db, err := entrypoint.OpenDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	if err := cli.NewRootCmd(open, Version).Execute(); err != nil {
		os.Exit(1)
	}
}
