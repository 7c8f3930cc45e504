package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed <fixture.yaml>",
	Short: "Load content fixtures from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open fixture: %w", err)
		}
		defer f.Close()

		fixture, err := service.ParseSeedFixture(f)
		if err != nil {
			return err
		}

		report, err := service.Seed(db.DB, fixture)
		if err != nil {
			return err
		}

		current.log.Info().
			Int("users", report.Users).
			Int("blogs", report.Blogs).
			Int("services", report.Services).
			Int("solutions", report.Solutions).
			Int("case_studies", report.CaseStudies).
			Int("settings", report.Settings).
			Int("skipped", report.Skipped).
			Msg("seed complete")
		return nil
	},
}
