package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/laurab04-design/fossedata-render/internal/cli"
	"github.com/laurab04-design/fossedata-render/internal/config"
	applog "github.com/laurab04-design/fossedata-render/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitError)
	}

	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	cli.Execute(cfg)
}
