// trash-alchemy is a terminal game about collecting beach trash, breaking it
// down into elements and merging those into something worth keeping.
// Configuration comes from TRASH_ALCHEMY_* environment variables.
package main

import (
	"fmt"
	"os"

	"trash-alchemy/internal/config"
	"trash-alchemy/internal/game"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, closer, err := cfg.OpenLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	cat, err := cfg.LoadCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	seed := cfg.NewSeed()
	logger.Info("starting", "seed", seed, "items", cat.Items.Len(), "recipes", cat.Recipes.Len())

	g, err := game.New(game.Options{
		Catalog:       cat,
		Seed:          seed,
		SpawnInterval: cfg.SpawnInterval,
		MaxTrash:      cfg.MaxTrash,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	return g.Run()
}
