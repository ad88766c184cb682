// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Command importcsv seeds the tag and ingredient catalog from CSV files.
//
//	importcsv --tags data/tags.csv --ingredients data/ingredients.csv
//
// Rows already in the catalog are skipped, so the command can be re-run.
// The database location comes from the same configuration as the server
// (DUCKDB_PATH, config.yaml, .env).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/database"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/models"
)

const (
	defaultIngredientsPath = "data/ingredients.csv"
	defaultTagsPath        = "data/tags.csv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var ingredientsPath, tagsPath string

	cmd := &cobra.Command{
		Use:          "importcsv",
		Short:        "Import tags and ingredients from CSV files into the database",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWithKoanf()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logging.Init(logging.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})

			db, err := database.New(&cfg.Database)
			if err != nil {
				logging.Error().Err(err).Msg("Failed to open database")
				return err
			}
			defer func() { _ = db.Close() }()

			return importCatalog(cmd.Context(), db, tagsPath, ingredientsPath)
		},
	}

	cmd.Flags().StringVar(&ingredientsPath, "ingredients", defaultIngredientsPath, "path to the ingredients CSV file")
	cmd.Flags().StringVar(&tagsPath, "tags", defaultTagsPath, "path to the tags CSV file")
	return cmd
}

// catalogImporter is the part of *database.DB the command writes through.
type catalogImporter interface {
	ImportTags(ctx context.Context, tags []models.Tag) (int, error)
	ImportIngredients(ctx context.Context, items []models.Ingredient) (int, error)
}

// importCatalog loads tags first, then ingredients. An empty path skips
// that file.
func importCatalog(ctx context.Context, db catalogImporter, tagsPath, ingredientsPath string) error {
	if tagsPath != "" {
		tags, err := readTagsFile(tagsPath)
		if err != nil {
			return err
		}
		added, err := db.ImportTags(ctx, tags)
		if err != nil {
			return err
		}
		logging.Info().Str("path", tagsPath).Int("rows", len(tags)).Int("added", added).Msg("Tags imported")
	}

	if ingredientsPath != "" {
		items, err := readIngredientsFile(ingredientsPath)
		if err != nil {
			return err
		}
		added, err := db.ImportIngredients(ctx, items)
		if err != nil {
			return err
		}
		logging.Info().Str("path", ingredientsPath).Int("rows", len(items)).Int("added", added).Msg("Ingredients imported")
	}
	return nil
}
