package commands

import (
	"fmt"
	"log"
	"time"

	"github.com/shyamraj/portfolio/internal/analytics"
	"github.com/shyamraj/portfolio/internal/config"
	"github.com/shyamraj/portfolio/internal/refiner"
	"github.com/shyamraj/portfolio/internal/rewriter"
)

// buildRefiner returns the remote refiner, or one that always fails over to
// the offline template when no endpoint is configured.
func buildRefiner(cfg *config.Config) refiner.Refiner {
	if !cfg.RefinerConfigured() {
		log.Println("WARNING: Refiner endpoint or public key not configured; drafts will use the offline template.")
		return refiner.Unconfigured{}
	}
	return refiner.NewClient(cfg.Refiner.Endpoint, cfg.Refiner.PublicKey)
}

// buildRewriter wires the local refine function to its chat model.
func buildRewriter(cfg *config.Config) rewriter.Rewriter {
	return rewriter.NewResilientRewriter(
		rewriter.NewOpenAIRewriter(cfg.Function.APIKey, cfg.Function.BaseURL, cfg.Function.Model),
	)
}

// openTracker opens the analytics database. The returned func closes it.
func openTracker(cfg *config.Config) (*analytics.Tracker, func(), error) {
	store, err := analytics.Open(cfg.Analytics.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open analytics database: %w", err)
	}
	hasher, err := analytics.NewHasher()
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing analytics database: %v", err)
		}
	}
	return analytics.NewTracker(store, hasher, true), closeFn, nil
}

func retention(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Analytics.RetentionDays) * 24 * time.Hour
}
