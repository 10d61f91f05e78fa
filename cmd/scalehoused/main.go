// Command scalehoused watches an inbox directory for sale-notification
// mails and converts each one into a PDF document as it arrives.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/scalehouse/scalehouse"
	"github.com/scalehouse/scalehouse/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	fs := flag.NewFlagSet("scalehoused", flag.ContinueOnError)
	configPath := fs.StringP("config", "c", "scalehoused", "config file name or path")
	inboxDir := fs.String("inbox", "", "inbox directory (overrides config)")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *showVersion {
		fmt.Println("scalehoused " + Version)
		return
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger

	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("loading config", zap.Error(err))
	}
	if *inboxDir != "" {
		cfg.Watch.InboxDir = *inboxDir
	}
	if cfg.Watch.InboxDir == "" {
		log.Fatal("watch.inboxDir is required")
	}

	res, err := scalehouse.LoadResources(cfg.Data.Dir)
	if err != nil {
		log.Fatal("loading resources", zap.Error(err))
	}
	conv, err := scalehouse.NewConverter(res,
		scalehouse.WithCompanyHeader(cfg.Company.Name, cfg.Company.Info))
	if err != nil {
		log.Fatal("creating converter", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, err := watchInbox(ctx, log, cfg.Watch.InboxDir)
	if err != nil {
		log.Fatal("starting watcher",
			zap.String("inbox", cfg.Watch.InboxDir),
			zap.Error(err))
	}

	workers := cfg.Watch.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log.Info("watching inbox",
		zap.String("inbox", cfg.Watch.InboxDir),
		zap.String("output", cfg.Output.Dir),
		zap.Int("workers", workers))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wk := &worker{
			log:        log,
			conv:       conv,
			outDir:     cfg.Output.Dir,
			deliverURL: cfg.Watch.DeliverURL,
			client:     &http.Client{},
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			wk.run(ctx, paths)
		}()
	}

	<-ctx.Done()
	wg.Wait()
	log.Info("shutting down")
}
