// jobtrail - offline-first job application tracker.
//
// All data lives in a local SQLite store; changes are captured in a durable
// outbox for a sync agent to push later.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jobtrail/jobtrail/internal/cli"
	"github.com/jobtrail/jobtrail/internal/config"
	"github.com/jobtrail/jobtrail/internal/log"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if cfg, err := config.Load(); err == nil {
		if err := log.Init(config.LogDir(cfg)); err == nil {
			defer func() { _ = log.Close() }()
		}
	}

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
