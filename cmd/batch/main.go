// Command batch runs verification over catalog products from the command
// line. Without arguments it starts a new batch over every product; -batch
// resumes an existing batch over its unprocessed remainder.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/JaimeStill/prism/internal/api"
	"github.com/JaimeStill/prism/internal/catalog"
	"github.com/JaimeStill/prism/internal/config"
	"github.com/JaimeStill/prism/internal/infrastructure"
)

func main() {
	var (
		batchKey  = flag.String("batch", "", "Existing batch key to resume (omit to start a new batch)")
		sample    = flag.Int("sample", 0, "Verify a random sample of N products instead of the full catalog")
		attribute = flag.String("attribute", "", "Restrict sampling to products with attribute name=value")
	)
	flag.Parse()

	if err := run(*batchKey, *sample, *attribute); err != nil {
		log.Fatal(err)
	}
}

func run(batchArg string, sample int, attribute string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return err
	}

	if err := infra.Start(); err != nil {
		return err
	}
	infra.Lifecycle.WaitForStartup()
	defer infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	domain, err := api.NewDomain(api.NewRuntime(cfg, infra))
	if err != nil {
		return err
	}

	key := uuid.Nil
	if batchArg != "" {
		key, err = uuid.Parse(batchArg)
		if err != nil {
			return fmt.Errorf("invalid batch key %q: %w", batchArg, err)
		}
	}

	productKeys, err := selectProducts(ctx, domain.Catalog, sample, attribute)
	if err != nil {
		return err
	}

	result, err := domain.Orchestrator.Run(ctx, key, productKeys)
	if err != nil {
		return err
	}

	fmt.Printf("batch %s: %d products, %d stored, %d failed\n",
		result.BatchKey, result.Total, result.Stored, result.Failed)

	for _, outcome := range result.Outcomes {
		if outcome.Error != nil {
			fmt.Printf("  %s: %s\n", outcome.ProductKey, *outcome.Error)
		}
	}

	return nil
}

// selectProducts resolves sampling flags into an explicit key set. Without
// sampling it returns nil so the orchestrator applies its own selection
// (full catalog for new batches, unprocessed remainder for resumed ones).
func selectProducts(ctx context.Context, sys catalog.System, sample int, attribute string) ([]uuid.UUID, error) {
	if sample <= 0 {
		return nil, nil
	}

	if attribute == "" {
		return sys.SampleKeys(ctx, sample)
	}

	name, value, ok := strings.Cut(attribute, "=")
	if !ok || name == "" || value == "" {
		return nil, fmt.Errorf("invalid attribute filter %q: expected name=value", attribute)
	}

	return sys.SampleKeysByAttribute(ctx, name, value, sample)
}
