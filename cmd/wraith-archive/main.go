// Command wraith-archive fetches the current signals from the wraith backend
// and merges them into the local Parquet archive. Run it from cron (or by
// hand) to keep an offline record of what the dashboard showed.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"wraith/internal/config"
	"wraith/internal/feed"
	"wraith/internal/store"
	"wraith/internal/util"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "config/wraith.yaml"
	if p := os.Getenv("WRAITH_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)

	client := feed.NewClient(cfg.Backend.BaseURL)
	archive := store.NewArchive(cfg.Storage.DataDir)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var fetched int
	err = util.Retry(ctx, 3, 2*time.Second, func() error {
		sigs, err := client.GetSignals(ctx)
		if err != nil {
			return err
		}
		fetched = len(sigs)
		return archive.WriteSignals(ctx, sigs)
	})
	if err != nil {
		log.Fatalf("archiving signals: %v", err)
	}

	logger.Info("archived signals", "count", fetched)

	days, err := archive.ListDays(ctx)
	if err != nil {
		logger.Warn("listing archive days", "error", err)
		return
	}
	fmt.Printf("archive now holds %d day(s)\n", len(days))
}
