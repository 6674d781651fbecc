package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections はインデックス作成対象のコレクション名。
type Collections struct {
	Listings  string
	Carts     string
	Inquiries string
}

// EnsureIndexes は公開フィード・管理画面・問い合わせで使うインデックスを作成する。既存の場合は何もしない。
func EnsureIndexes(ctx context.Context, db *mongo.Database, cols Collections) error {
	listingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "variant", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("idx_listing_feed"),
		},
		{
			Keys:    bson.D{{Key: "businessId", Value: 1}, {Key: "variant", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("uniq_listing_business_name").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "location.province", Value: 1}},
			Options: options.Index().SetName("idx_listing_province"),
		},
	}
	if _, err := db.Collection(cols.Listings).Indexes().CreateMany(ctx, listingIndexes); err != nil {
		return err
	}

	if _, err := db.Collection(cols.Carts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updatedAt", Value: -1}},
		Options: options.Index().SetName("idx_cart_updated"),
	}); err != nil {
		return err
	}

	if _, err := db.Collection(cols.Inquiries).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "toBusinessId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_inquiry_business_created"),
		},
		{
			Keys:    bson.D{{Key: "reference", Value: 1}},
			Options: options.Index().SetName("uniq_inquiry_reference").SetUnique(true),
		},
	}); err != nil {
		return err
	}
	return nil
}
