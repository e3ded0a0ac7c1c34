package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/viant/taskflow"
	"github.com/viant/taskflow/console"
)

func main() {
	configURL := flag.String("config", "", "config URL (file://, mem://, s3:// ...)")
	events := flag.Bool("events", false, "log status-change events")
	flag.Parse()

	log.SetOutput(os.Stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := taskflow.DefaultConfig()
	if *configURL != "" {
		var err error
		if cfg, err = taskflow.LoadConfig(ctx, *configURL); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	log.SetLevel(cfg.LogLevel())
	cfg.Events.Enabled = cfg.Events.Enabled || *events

	options := []taskflow.Option{
		taskflow.WithConfig(cfg),
		taskflow.WithOutput(os.Stdout),
		taskflow.WithProgressListener(logProgress),
	}
	if cfg.Events.Enabled {
		options = append(options, taskflow.WithEventHandler(logEvent))
	}
	srv, err := taskflow.New(options...)
	if err != nil {
		log.Fatalf("service: %v", err)
	}
	defer srv.Close()

	if err = console.New(srv).Run(ctx); err != nil && ctx.Err() == nil {
		log.Errorf("console: %v", err)
	}
	progressFields(srv.Progress()).Info("session finished")
}
