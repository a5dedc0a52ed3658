// Config loading and store selection for the CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"library-lending/library"
)

const (
	cfgKeyStorage     = "storage"
	cfgKeySQLitePath  = "sqlite_path"
	cfgKeyDatabaseURL = "database_url"
	cfgKeyOverdueDays = "overdue_days"
	cfgKeyReportLimit = "report_limit"

	storageSQLite   = "sqlite"
	storageMemory   = "memory"
	storagePostgres = "postgres"

	defaultSQLitePath = "library.db"
)

// loadConfig reads config.yaml from the working directory, or the file
// named by --config. A missing config file is not an error: every key
// has a usable default.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyStorage, storageSQLite)
	v.SetDefault(cfgKeySQLitePath, defaultSQLitePath)
	v.SetDefault(cfgKeyOverdueDays, 14)
	v.SetDefault(cfgKeyReportLimit, 10)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// openStore loads config, opens the configured store and builds the
// engine on top of it. Runs before every subcommand.
func openStore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	s, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	store = s
	engine = library.NewEngine(s)
	cfgOverdueDays = cfg.GetInt(cfgKeyOverdueDays)
	cfgReportLimit = cfg.GetInt(cfgKeyReportLimit)
	return nil
}

func closeStore() error {
	if store == nil {
		return nil
	}
	return store.Close()
}

func newStore(cfg *viper.Viper) (library.Store, error) {
	switch backend := cfg.GetString(cfgKeyStorage); backend {
	case storageSQLite:
		return library.NewSQLiteStore(cfg.GetString(cfgKeySQLitePath))
	case storageMemory:
		return library.NewMemStore()
	case storagePostgres:
		connStr := cfg.GetString(cfgKeyDatabaseURL)
		if connStr == "" {
			connStr = os.Getenv("DATABASE_URL")
		}
		if connStr == "" {
			return nil, fmt.Errorf("storage %q needs %s in config or DATABASE_URL in the environment", backend, cfgKeyDatabaseURL)
		}
		return library.NewPostgresStore(connStr)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want sqlite, memory or postgres)", backend)
	}
}
