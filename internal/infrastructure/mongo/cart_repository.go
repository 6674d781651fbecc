package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartRepository implements application.CartRepository using MongoDB.
type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database, collectionName string) *CartRepository {
	return &CartRepository{collection: db.Collection(collectionName)}
}

// Load は保存済みの行から CartState を組み立てる。料金率は呼び出し側が設定する。
func (r *CartRepository) Load(ctx context.Context, ownerID string) (domain.CartState, error) {
	var doc CartDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": ownerID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.CartState{}, fmt.Errorf("%w: cart for %s", domain.ErrNotFound, ownerID)
		}
		return domain.CartState{}, err
	}
	return mapCartDocument(doc), nil
}

// Save は所有者単位で行を丸ごと置き換える。cartId は初回作成時のみ払い出す。
func (r *CartRepository) Save(ctx context.Context, ownerID string, state domain.CartState) error {
	update := bson.M{
		"$set": bson.M{
			"lines":     flattenCartLines(state.Lines),
			"updatedAt": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"cartId": uuid.NewString(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": ownerID}, update, opts)
	return err
}

// Delete は存在しないカートの削除も成功として扱う。
func (r *CartRepository) Delete(ctx context.Context, ownerID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": ownerID})
	return err
}

func mapCartDocument(doc CartDocument) domain.CartState {
	lines := make([]domain.CartLine, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		if l.Quantity < 1 {
			continue
		}
		lines = append(lines, domain.CartLine{
			ItemID:     l.ItemID,
			ProductID:  l.ProductID,
			BusinessID: l.BusinessID,
			Name:       l.Name,
			Image:      l.Image,
			UnitPrice:  l.UnitPrice,
			Quantity:   l.Quantity,
		})
	}
	return domain.CartState{Lines: lines}
}

func flattenCartLines(lines []domain.CartLine) []CartLineDocument {
	docs := make([]CartLineDocument, 0, len(lines))
	for _, l := range lines {
		docs = append(docs, CartLineDocument{
			ItemID:     l.ItemID,
			ProductID:  l.ProductID,
			BusinessID: l.BusinessID,
			Name:       l.Name,
			Image:      l.Image,
			UnitPrice:  l.UnitPrice,
			Quantity:   l.Quantity,
		})
	}
	return docs
}
