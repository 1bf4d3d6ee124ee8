package main

import (
	"context"
	"fmt"
	"os"

	"clinical-study/cmd/bootstrap"
	"clinical-study/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "clinical-study",
		Short:        "Clinical study data-entry API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(staffCmd())
	rootCmd.AddCommand(exportCmd())
	return rootCmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	cfg, log, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize application with all dependencies
	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	// Run the application
	return app.Run()
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, database.Up)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, database.Down)
		},
	})
	return cmd
}

func runMigrate(cmd *cobra.Command, direction database.Direction) error {
	cfg, log, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if err := database.Migrate(cfg.DB, log, direction); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migrations %s applied on %s.\n", direction, cfg.DB.Driver)
	return nil
}

func staffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage staff accounts",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a staff account with a hashed password",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			employee, err := app.AuthUsecase.CreateEmployee(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created staff account %q with id %d.\n", employee.Username, employee.ID)
			return nil
		},
	}
	addCmd.Flags().String("username", "", "Login name (benutzername)")
	addCmd.Flags().String("password", "", "Password (passwort)")
	_ = addCmd.MarkFlagRequired("username")
	_ = addCmd.MarkFlagRequired("password")
	cmd.AddCommand(addCmd)
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the study CSV export and optionally upload it",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			bucket, _ := cmd.Flags().GetString("s3-bucket")

			cfg, log, err := bootstrap.LoadConfig()
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.Export.S3Bucket = bucket
			}

			app, err := bootstrap.New(cmd.Context(), cfg, log)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.Close()

			body, err := app.ExportUsecase.StudyCSV(cmd.Context())
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			if out == "" || out == "-" {
				if _, err := cmd.OutOrStdout().Write(body); err != nil {
					return err
				}
			} else if err := os.WriteFile(out, body, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			if cfg.Export.S3Bucket != "" {
				location, err := app.ExportUsecase.Upload(cmd.Context(), app.ExportUsecase.CSVFileName(), body)
				if err != nil {
					return fmt.Errorf("upload failed: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Uploaded export to %s\n", location)
			}
			return nil
		},
	}
	cmd.Flags().String("out", "", "Output file, stdout when empty or -")
	cmd.Flags().String("s3-bucket", "", "Upload the export to this bucket (overrides EXPORT_S3_BUCKET)")
	return cmd
}

func newApp(ctx context.Context) (*bootstrap.App, error) {
	cfg, log, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return app, nil
}
