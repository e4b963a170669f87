// Package main implements the todo CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matt-steen/todo-list/pkg/controller"
	"github.com/matt-steen/todo-list/pkg/db"
	"github.com/matt-steen/todo-list/pkg/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "todo",
	Short:             "Track todos with tags, filtered listing, and CSV import/export",
	PersistentPreRunE: initConfig,
	RunE:              runTUI,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the sqlite database (default ~/.todo/todo.sqlite)")
	rootCmd.PersistentFlags().String("log-file", "", "Path to the log file (default ~/.todo/debug.log)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, or error (default info)")

	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(listCmd, importCmd, exportCmd, tagsCmd)
}

// initConfig resolves settings from flags, TODO_* env vars, and an optional
// ~/.todo/config.yaml, in that order of precedence.
func initConfig(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("error finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".todo")

	viper.SetDefault("db", filepath.Join(configDir, "todo.sqlite"))
	viper.SetDefault("log.file", filepath.Join(configDir, "debug.log"))
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.max_size_mb", 10)
	viper.SetDefault("log.max_backups", 3)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.SetEnvPrefix("TODO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config: %w", err)
		}
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	return initLogging()
}

func initLogging() error {
	level, err := zerolog.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", viper.GetString("log.level"), err)
	}

	zerolog.SetGlobalLevel(level)

	writer := &lumberjack.Logger{
		Filename:   viper.GetString("log.file"),
		MaxSize:    viper.GetInt("log.max_size_mb"),
		MaxBackups: viper.GetInt("log.max_backups"),
	}

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: writer, TimeFormat: "2006-01-02_15:04:05", NoColor: true,
	})

	return nil
}

// openService opens the configured database and returns a service over it
// along with a close func.
func openService(ctx context.Context) (*service.Service, func(), error) {
	database, err := db.Open(ctx, viper.GetString("db"))
	if err != nil {
		return nil, nil, err
	}

	return service.New(database), func() { database.Close() }, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, closeDB, err := openService(ctx)
	if err != nil {
		return err
	}

	defer closeDB()

	log.Info().Msg("starting application...")

	c, err := controller.NewController(ctx, svc)
	if err != nil {
		return err
	}

	return c.Go()
}
