package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sadopc/bkspace/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (default ~/.config/bkspace/config.toml)")
	dbPath := flag.String("db", "", "progress database path (optional)")
	offline := flag.Bool("offline", false, "use bundled content and skip the remote")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, DBPath: *dbPath, Offline: *offline}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "bkspace: %v\n", err)
		return 1
	}
	return 0
}
