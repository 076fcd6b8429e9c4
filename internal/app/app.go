package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hertelukas/synctui/internal/config"
	"github.com/hertelukas/synctui/internal/eventlog"
	"github.com/hertelukas/synctui/internal/reconcile"
	"github.com/hertelukas/synctui/internal/state"
	"github.com/hertelukas/synctui/internal/syncthing"
	"github.com/hertelukas/synctui/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath string
	// Address and APIKey override the config file when set.
	Address string
	APIKey  string
}

// Run boots the dashboard until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Address != "" {
		cfg.Address = opts.Address
	}
	if opts.APIKey != "" {
		cfg.APIKey = opts.APIKey
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The UI owns the terminal, so our own logging goes to a file.
	logFile, err := openLogFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()
	log.SetOutput(logFile)

	client, err := syncthing.NewClient(cfg.Address, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("init syncthing client: %w", err)
	}

	store := state.NewStore()
	queue := reconcile.NewQueue(0)
	notifier := reconcile.NewNotifier()

	// A broken event history is annoying, not fatal; the dashboard still
	// mirrors live state without it.
	history, err := eventlog.Open(cfg.EventDBPath)
	if err != nil {
		log.Printf("event history disabled: %v", err)
		history = nil
	} else {
		defer func() { _ = history.Close() }()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	reconcile.NewReloader(client, store, queue, notifier).Start(runCtx)

	var recorder reconcile.Recorder
	if history != nil {
		recorder = history
	}
	reconcile.NewRelay(client, store, queue, notifier, recorder).Start(runCtx)

	seedJobs(queue)

	dispatcher := reconcile.NewDispatcher(runCtx, client, store, queue, notifier)

	uiOpts := ui.Options{
		Store:    store,
		Queue:    queue,
		Notifier: notifier,
		Actions:  dispatcher,
	}
	if history != nil {
		uiOpts.History = history
	}
	uiErr := ui.Run(runCtx, uiOpts)

	// Stop the workers, then let in-flight mutations drain before the
	// deferred close of the event database.
	cancel()
	dispatcher.Wait()
	return uiErr
}

// seedJobs enqueues the initial full fetch so the store fills before the
// first event arrives.
func seedJobs(queue *reconcile.Queue) {
	queue.Enqueue(reconcile.Job{Kind: reconcile.KindLocalID})
	queue.Enqueue(reconcile.Job{Kind: reconcile.KindConfiguration})
	queue.Enqueue(reconcile.Job{Kind: reconcile.KindPendingDevices})
	queue.Enqueue(reconcile.Job{Kind: reconcile.KindPendingFolders})
	queue.Enqueue(reconcile.Job{Kind: reconcile.KindConnections})
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}
