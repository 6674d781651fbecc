package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sngm3741/ugym-konect/api/internal/config"
	"github.com/sngm3741/ugym-konect/api/internal/fixtures"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "uGym Konect catalog tooling",
	Long:  "Seeds the listing catalog into MongoDB and runs the filter, sort and cart engines offline against it.",
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("mongo-uri", "", "MongoDB URI (default: MONGO_URI)")
	rootCmd.PersistentFlags().String("db", "", "MongoDB database (default: MONGO_DB)")
	rootCmd.PersistentFlags().String("redis-url", "", "Redis URL for feed cache invalidation (default: REDIS_URL)")
	rootCmd.PersistentFlags().String("file", "", "Catalog YAML to use instead of the embedded one")
}

func initConfig() {
	cfg = config.StoreFromEnv()

	if v, _ := rootCmd.PersistentFlags().GetString("mongo-uri"); v != "" {
		cfg.MongoURI = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("db"); v != "" {
		cfg.MongoDatabase = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("redis-url"); v != "" {
		cfg.RedisURL = v
	}
}

// loadCatalog reads --file when given, otherwise the embedded catalog.
func loadCatalog(cmd *cobra.Command) (fixtures.Catalog, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return fixtures.Load()
	}
	f, err := os.Open(path)
	if err != nil {
		return fixtures.Catalog{}, err
	}
	defer f.Close()
	return fixtures.Parse(f)
}
