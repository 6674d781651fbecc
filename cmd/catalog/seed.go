package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	mongodoc "github.com/sngm3741/ugym-konect/api/internal/infrastructure/mongo"
	rediscache "github.com/sngm3741/ugym-konect/api/internal/infrastructure/redis"
	publicdomain "github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

const seedConcurrency = 4

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the catalog into MongoDB as approved listings",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().Bool("drop", false, "Drop the listing collection before seeding")
	seedCmd.Flags().Bool("dry-run", false, "Validate the catalog without touching MongoDB")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	drop, _ := cmd.Flags().GetBool("drop")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	listings, err := catalog.AdminListings()
	if err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	if dryRun {
		for _, v := range publicdomain.Variants {
			n := 0
			for _, l := range listings {
				if l.Variant == v {
					n++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %d\n", v.Plural(), n)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("MongoDB 接続に失敗しました: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.MongoDatabase)
	if drop {
		if err := db.Collection(cfg.ListingCollection).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", cfg.ListingCollection, err)
		}
	}
	if err := mongodoc.EnsureIndexes(ctx, db, mongodoc.Collections{
		Listings:  cfg.ListingCollection,
		Carts:     cfg.CartCollection,
		Inquiries: cfg.InquiryCollection,
	}); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	repo := mongodoc.NewAdminListingRepository(db, cfg.ListingCollection)
	var created, updated atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)
	for _, listing := range listings {
		listing := listing
		g.Go(func() error {
			inserted, err := repo.Import(gctx, listing)
			if err != nil {
				return fmt.Errorf("import %s: %w", listing.Name, err)
			}
			if inserted {
				created.Add(1)
			} else {
				updated.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %s.%s: %d created, %d updated\n",
		cfg.MongoDatabase, cfg.ListingCollection, created.Load(), updated.Load())

	return invalidateFeeds(ctx, cmd)
}

// invalidateFeeds drops cached public feeds so the API serves the new catalog immediately.
func invalidateFeeds(ctx context.Context, cmd *cobra.Command) error {
	if cfg.RedisURL == "" {
		return nil
	}
	client, err := rediscache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipping cache invalidation: %v\n", err)
		return nil
	}
	defer client.Close()

	cache := rediscache.NewCachedListingRepository(nil, client, cfg.ListingCacheTTL, cfg.ServerLog)
	for _, v := range publicdomain.Variants {
		if err := cache.Invalidate(ctx, v); err != nil {
			return fmt.Errorf("invalidate %s feed: %w", v, err)
		}
	}
	return nil
}
