package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatusApproved は公開フィードに載る唯一のステータス。
const StatusApproved = "approved"

// ListingRepository implements application.ListingRepository using MongoDB.
type ListingRepository struct {
	collection *mongo.Collection
}

// NewListingRepository creates a new Mongo-backed listing repository.
func NewListingRepository(db *mongo.Database, collectionName string) *ListingRepository {
	return &ListingRepository{collection: db.Collection(collectionName)}
}

// FindByVariant は承認済みのリスティングを登録順で返す。絞り込みと並び替えはドメイン側で行う。
func (r *ListingRepository) FindByVariant(ctx context.Context, variant domain.Variant) ([]domain.Listing, error) {
	filter := bson.M{"variant": string(variant), "status": StatusApproved}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	listings := make([]domain.Listing, 0)
	for cursor.Next(ctx) {
		var doc ListingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		listing := mapListingDocument(doc)
		if err := listing.Validate(); err != nil {
			// 壊れたドキュメントでフィード全体を落とさない
			continue
		}
		listings = append(listings, listing)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

// FindByID は承認済みリスティングを 1 件返す。ID 形式不正も未存在として扱う。
func (r *ListingRepository) FindByID(ctx context.Context, variant domain.Variant, id string) (*domain.Listing, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s", domain.ErrNotFound, id)
	}
	var doc ListingDocument
	filter := bson.M{"_id": objectID, "variant": string(variant), "status": StatusApproved}
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: listing %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	listing := mapListingDocument(doc)
	return &listing, nil
}

func mapListingDocument(doc ListingDocument) domain.Listing {
	createdAt := time.Time{}
	if doc.CreatedAt != nil {
		createdAt = *doc.CreatedAt
	}

	return domain.Listing{
		ID:              doc.ID.Hex(),
		Variant:         domain.Variant(doc.Variant),
		BusinessID:      doc.BusinessID,
		Name:            doc.Name,
		Title:           doc.Title,
		Description:     doc.Description,
		Category:        doc.Category,
		ServiceTypes:    append([]string{}, doc.ServiceTypes...),
		Specializations: append([]string{}, doc.Specializations...),
		Location:        domain.Location{City: doc.Location.City, Province: doc.Location.Province},
		Pricing:         mapPricing(doc.Pricing, doc.PriceLabel),
		PriceLabel:      doc.PriceLabel,
		Rating:          doc.Stats.Rating,
		ReviewCount:     doc.Stats.ReviewCount,
		Experience:      doc.Experience,
		ImageURLs:       append([]string{}, doc.ImageURLs...),
		Details: domain.Details{
			Facilities:     append([]string{}, doc.Facilities...),
			Qualifications: append([]string{}, doc.Qualifications...),
			Languages:      append([]string{}, doc.Languages...),
			Brand:          doc.Brand,
			InStock:        doc.InStock,
			Hours:          doc.Hours,
			Availability:   mapAvailability(doc.Availability),
		},
		CreatedAt: createdAt,
	}
}

// mapPricing は pricing が無い旧ドキュメントを priceLabel の数字から単一価格に復元する。
func mapPricing(doc *PricingDocument, label string) domain.Pricing {
	if doc == nil {
		return domain.SinglePrice(domain.ParseAmount(label))
	}
	pricing := domain.Pricing{Min: doc.Min, Max: doc.Max, Currency: doc.Currency}
	if pricing.Max == 0 {
		pricing.Max = pricing.Min
	}
	if pricing.Currency == "" {
		pricing.Currency = domain.DefaultCurrency
	}
	return pricing
}

func mapAvailability(docs []AvailabilityDocument) domain.Availability {
	if len(docs) == 0 {
		return nil
	}
	result := make(domain.Availability, 0, len(docs))
	for _, d := range docs {
		day, err := domain.ParseWeekday(d.Day)
		if err != nil {
			continue
		}
		result = append(result, domain.DaySlots{Day: day, Slots: append([]string{}, d.Slots...)})
	}
	return result
}

func flattenAvailability(availability domain.Availability) []AvailabilityDocument {
	if len(availability) == 0 {
		return nil
	}
	docs := make([]AvailabilityDocument, 0, len(availability))
	for _, d := range availability {
		docs = append(docs, AvailabilityDocument{Day: d.Day.String(), Slots: append([]string{}, d.Slots...)})
	}
	return docs
}
