package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sitecms/internal/config"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/logger"
)

// app carries what every command needs once PersistentPreRunE ran.
type app struct {
	cfg    config.AppConfig
	log    zerolog.Logger
	closer func()
}

var current app

var rootCmd = &cobra.Command{
	Use:           "sitecms",
	Short:         "Content API for the marketing website and its admin dashboard",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log, closer, err := logger.New(cfg.Logger)
		if err != nil {
			return err
		}

		// 初始化数据库
		if err := db.Init(cfg.Database.Path, db.ParseLogLevel(cfg.Database.LogLevel)); err != nil {
			_ = closer.Close()
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		current = app{
			cfg: cfg,
			log: log,
			closer: func() {
				if sqlDB, err := db.DB.DB(); err == nil {
					_ = sqlDB.Close()
				}
				_ = closer.Close()
			},
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, createUserCmd, seedCmd)
}

// execute runs the selected command and releases the database and log
// file whether or not it failed.
func execute(args []string) error {
	defer func() {
		if current.closer != nil {
			current.closer()
			current.closer = nil
		}
	}()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func main() {
	if err := execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
