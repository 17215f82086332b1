package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/geo"
)

// migrator is the subset of *goose.Provider the migrate commands use.
type migrator interface {
	Up(ctx context.Context) ([]*goose.MigrationResult, error)
	Down(ctx context.Context) (*goose.MigrationResult, error)
	Status(ctx context.Context) ([]*goose.MigrationStatus, error)
}

// destinationStore is the subset of *service.DestinationService the
// destination commands use.
type destinationStore interface {
	Create(ctx context.Context, draft domain.DestinationDraft) (uuid.UUID, error)
	List(ctx context.Context) ([]domain.Destination, error)
	Nearby(ctx context.Context, lat, lon, radiusKm float64) ([]geo.Hit, error)
}

// backends open the stores lazily so --help and flag errors never need a
// database. The returned func releases the connection.
type backends struct {
	migrator     func(ctx context.Context) (migrator, func(), error)
	destinations func(ctx context.Context) (destinationStore, func(), error)
}

func newRootCmd(b backends) *cobra.Command {
	root := &cobra.Command{
		Use:           "travelctl",
		Short:         "Operate the travel planner database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(b), newDestinationsCmd(b))
	return root
}

func newMigrateCmd(b backends) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back, or inspect schema migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: withMigrator(b, func(cmd *cobra.Command, m migrator) error {
				results, err := m.Up(cmd.Context())
				if err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				if len(results) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
					return nil
				}
				for _, r := range results {
					printResult(cmd.OutOrStdout(), r)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: withMigrator(b, func(cmd *cobra.Command, m migrator) error {
				r, err := m.Down(cmd.Context())
				if err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
				printResult(cmd.OutOrStdout(), r)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether each is applied",
			Args:  cobra.NoArgs,
			RunE: withMigrator(b, func(cmd *cobra.Command, m migrator) error {
				statuses, err := m.Status(cmd.Context())
				if err != nil {
					return fmt.Errorf("migrate status: %w", err)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
				for _, s := range statuses {
					applied := "-"
					if !s.AppliedAt.IsZero() {
						applied = s.AppliedAt.UTC().Format(time.RFC3339)
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
				}
				return tw.Flush()
			}),
		},
	)
	return cmd
}

func withMigrator(b backends, run func(*cobra.Command, migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		m, closeFn, err := b.migrator(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()
		return run(cmd, m)
	}
}

func printResult(w io.Writer, r *goose.MigrationResult) {
	if r == nil || r.Source == nil {
		return
	}
	fmt.Fprintf(w, "%s %d %s (%s)\n", r.Direction, r.Source.Version, r.Source.Path, r.Duration.Round(time.Millisecond))
}

func newDestinationsCmd(b backends) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "destinations",
		Aliases: []string{"dest"},
		Short:   "Inspect and seed the destination catalogue",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every destination, oldest first",
		Args:  cobra.NoArgs,
		RunE: withDestinations(b, func(cmd *cobra.Command, s destinationStore) error {
			ds, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tLAT\tLON")
			for _, d := range ds {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.6f\t%.6f\n", d.ID, d.Name, d.Category, d.Location.Latitude, d.Location.Longitude)
			}
			return tw.Flush()
		}),
	}

	var lat, lon, radius float64
	nearby := &cobra.Command{
		Use:   "nearby",
		Short: "List destinations within a radius of a point, nearest first",
		Args:  cobra.NoArgs,
		RunE: withDestinations(b, func(cmd *cobra.Command, s destinationStore) error {
			hits, err := s.Nearby(cmd.Context(), lat, lon, radius)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KM\tID\tNAME")
			for _, h := range hits {
				fmt.Fprintf(tw, "%.1f\t%s\t%s\n", h.DistanceKm, h.Destination.ID, h.Destination.Name)
			}
			return tw.Flush()
		}),
	}
	nearby.Flags().Float64Var(&lat, "lat", 0, "latitude of the centre, decimal degrees")
	nearby.Flags().Float64Var(&lon, "lon", 0, "longitude of the centre, decimal degrees")
	nearby.Flags().Float64VarP(&radius, "radius", "r", 50, "search radius in km")
	_ = nearby.MarkFlagRequired("lat")
	_ = nearby.MarkFlagRequired("lon")

	var draft domain.DestinationDraft
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a destination from flags",
		Args:  cobra.NoArgs,
		RunE: withDestinations(b, func(cmd *cobra.Command, s destinationStore) error {
			id, err := s.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		}),
	}
	add.Flags().StringVar(&draft.Name, "name", "", "destination name")
	add.Flags().StringVar(&draft.Description, "description", "", "destination description")
	add.Flags().StringVar(&draft.Category, "category", "", "destination category")
	add.Flags().StringVar(&draft.Latitude, "lat", "", "latitude, decimal degrees")
	add.Flags().StringVar(&draft.Longitude, "lon", "", "longitude, decimal degrees")
	add.Flags().StringVar(&draft.ImageURL, "image-url", "", "URL of an already uploaded image")

	cmd.AddCommand(list, nearby, add)
	return cmd
}

func withDestinations(b backends, run func(*cobra.Command, destinationStore) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		s, closeFn, err := b.destinations(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()
		return run(cmd, s)
	}
}
