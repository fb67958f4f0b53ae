// Command lookup resolves a comma-separated food list and prints one
// nutrition line per food.
//
//	lookup "rice, chicken breast, broccoli"
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/macrolens/nutrilookup/config"
	"github.com/macrolens/nutrilookup/internal/app/wiring"
	"github.com/macrolens/nutrilookup/internal/infrastructure/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Server.Environment)
	container := wiring.New(cfg, logger)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	query := strings.Join(os.Args[1:], " ")
	fmt.Println(container.Coordinator.ResolveQuery(ctx, query))
}
