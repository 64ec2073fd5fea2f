package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/seitarof/sk-gen/internal/cli"
	"github.com/seitarof/sk-gen/internal/parser"
	"github.com/seitarof/sk-gen/internal/typemap"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "sk-gen:", err)
		os.Exit(2)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	logger := cli.NewLogger(os.Stderr, cfg.LogLevel)
	p := parser.New(logger)
	m := typemap.Default()
	runner := cli.NewRunner(p, m, logger)

	if !cfg.Watch {
		if _, err := runner.Run(cfg); err != nil {
			logger.Fatal().Err(err).Msg("generation failed")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = cli.Watch(ctx, cfg.WatchPath(), logger, func() error {
		_, err := runner.Run(cfg)
		return err
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("watch failed")
	}
}
