package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rookieryder/golf-backend/config"
	"github.com/rookieryder/golf-backend/db"
	"github.com/rookieryder/golf-backend/repositories"
	"github.com/rookieryder/golf-backend/seed"
	"github.com/rookieryder/golf-backend/services"
	"github.com/spf13/cobra"
)

const connectTimeout = 5 * time.Second

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "golfctl",
		Short:         "Maintenance commands for the golf backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newSeedCommand())
	cmd.AddCommand(newEvaluateCommand())
	return cmd
}

// openDB loads configuration and connects. Callers close the handle.
func openDB() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return db.Connect(cfg.DatabaseURL, connectTimeout)
}

func newMigrateCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Apply or roll back schema migrations",
		Long: `Apply all pending migrations (up, the default) or roll back
the last --steps migrations (down).`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}
			if direction != "up" && direction != "down" {
				return fmt.Errorf("unknown migration direction %q: must be up or down", direction)
			}
			if direction == "down" && steps <= 0 {
				return fmt.Errorf("--steps must be positive, got %d", steps)
			}

			conn, err := openDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			if direction == "down" {
				if err := db.MigrateDown(conn, steps); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
				return nil
			}
			if err := db.Migrate(conn); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back (down only)")
	return cmd
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled achievements, practice tips, driving ranges and courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := seed.Default()
			if err != nil {
				return err
			}

			conn, err := openDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			sum, err := catalog.Apply(cmd.Context(), conn, seed.Repositories{
				Achievements:  repositories.NewPostgresAchievementRepository(conn),
				PracticeTips:  repositories.NewPostgresPracticeTipRepository(conn),
				DrivingRanges: repositories.NewPostgresDrivingRangeRepository(conn),
				Courses:       repositories.NewPostgresCourseRepository(conn),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"seeded %d achievement(s), %d practice tip(s), %d driving range(s), %d course(s) with %d hole(s)\n",
				sum.Achievements, sum.PracticeTips, sum.DrivingRanges, sum.Courses, sum.Holes)
			return nil
		},
	}
}

func newEvaluateCommand() *cobra.Command {
	var userID int

	cmd := &cobra.Command{
		Use:   "evaluate-achievements",
		Short: "Grant every achievement users currently qualify for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID < 0 {
				return fmt.Errorf("--user-id must be positive, got %d", userID)
			}

			conn, err := openDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			svc := services.NewAchievementService(
				repositories.NewPostgresAchievementRepository(conn),
				repositories.NewPostgresUserRepository(conn),
			)
			return runEvaluate(cmd, svc, userID)
		},
	}

	cmd.Flags().IntVar(&userID, "user-id", 0, "evaluate a single user instead of everyone")
	return cmd
}

func runEvaluate(cmd *cobra.Command, svc services.AchievementService, userID int) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if userID > 0 {
		granted, err := svc.EvaluateUser(ctx, userID, services.TriggerCLI)
		if err != nil {
			return err
		}
		for _, a := range granted {
			fmt.Fprintf(cmd.OutOrStdout(), "granted %q to user %d\n", a.Name, userID)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d achievement(s) granted\n", len(granted))
		return nil
	}

	granted, err := svc.EvaluateAll(ctx, services.TriggerCLI)
	fmt.Fprintf(cmd.OutOrStdout(), "%d achievement(s) granted\n", granted)
	return err
}
