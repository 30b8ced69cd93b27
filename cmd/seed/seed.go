// Package seed implements the seed command.
package seed

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tphakala/pokereview/internal/api/dto"
	"github.com/tphakala/pokereview/internal/conf"
	"github.com/tphakala/pokereview/internal/datastore"
	seeder "github.com/tphakala/pokereview/internal/datastore/seed"
	"github.com/tphakala/pokereview/internal/datastore/session"
	"github.com/tphakala/pokereview/internal/logger"
)

// Command creates the seed command, which loads the fixture graph into an
// empty store and prints the resulting row counts.
func Command(settings *conf.Settings) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the fixture data into an empty database",
		Long: "Load the fixture pokemon, owners, categories, countries and reviews. " +
			"A database that already holds pokemon owners is left untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				return PrintFixture(cmd.OutOrStdout())
			}
			return Run(cmd.Context(), settings, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the fixture as YAML without touching the database")
	return cmd
}

// PrintFixture writes the fixture graph to w as YAML.
func PrintFixture(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(dto.FromFixture(seeder.Fixture())); err != nil {
		return fmt.Errorf("error encoding fixture: %w", err)
	}
	return enc.Close()
}

// Run seeds the configured database and writes the row counts to w.
func Run(ctx context.Context, settings *conf.Settings, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.Global().Module("seed")

	store, err := datastore.Open(ctx, settings.Database.DatastoreConfig(), logger.Global().Module("datastore"))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("failed to close database", logger.Error(err))
		}
	}()

	sessions := session.NewFactory(store.DB(), session.WithLogger(log))
	loader := seeder.NewLoader(sessions.New(), seeder.WithLogger(log))
	seeded, err := loader.Run(ctx)
	if err != nil {
		return err
	}
	counts, err := loader.Report(ctx)
	if err != nil {
		return err
	}

	if seeded {
		_, _ = fmt.Fprintf(w, "Seeded %s database at %s\n", store.Type(), store.Location())
	} else {
		_, _ = fmt.Fprintf(w, "Database at %s already seeded, nothing written\n", store.Location())
	}
	return yaml.NewEncoder(w).Encode(counts)
}
