package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sngm3741/ugym-konect/api/internal/admin/application"
	admindomain "github.com/sngm3741/ugym-konect/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/ugym-konect/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminListingRepository は管理者向け Listing 集約の Mongo 実装。ステータスを問わず扱う。
type AdminListingRepository struct {
	collection *mongo.Collection
}

// NewAdminListingRepository は MongoDB コレクションを束縛した AdminListingRepository を生成する。
func NewAdminListingRepository(db *mongo.Database, collection string) *AdminListingRepository {
	return &AdminListingRepository{collection: db.Collection(collection)}
}

// Find は曖昧検索とページングをサポートした管理者用の一覧を返す。
func (r *AdminListingRepository) Find(ctx context.Context, filter application.ListingFilter, paging application.Paging) ([]admindomain.Listing, error) {
	mongoFilter := bson.M{}
	clauses := make([]bson.M, 0)
	if filter.Variant != "" {
		clauses = append(clauses, bson.M{"variant": string(filter.Variant)})
	}
	if filter.Status != "" {
		clauses = append(clauses, bson.M{"status": filter.Status.String()})
	}
	if filter.BusinessID != "" {
		clauses = append(clauses, bson.M{"businessId": filter.BusinessID})
	}
	if filter.Province != "" {
		clauses = append(clauses, bson.M{"location.province": filter.Province})
	}
	if filter.Keyword != "" {
		pattern := regexp.QuoteMeta(filter.Keyword)
		regex := primitive.Regex{Pattern: pattern, Options: "i"}
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"name": regex},
			bson.M{"title": regex},
		}})
	}
	if len(clauses) == 1 {
		mongoFilter = clauses[0]
	} else if len(clauses) > 1 {
		mongoFilter["$and"] = clauses
	}

	limit := paging.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	page := paging.Page
	if page < 1 {
		page = 1
	}

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "name", Value: 1}})
	opts.SetLimit(int64(limit))
	opts.SetSkip(int64((page - 1) * limit))

	cursor, err := r.collection.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	listings := make([]admindomain.Listing, 0)
	for cursor.Next(ctx) {
		var doc ListingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		listings = append(listings, mapAdminListing(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

// FindByID は 16 進 ObjectID を受け取り単一リスティングを返す。
func (r *AdminListingRepository) FindByID(ctx context.Context, id string) (*admindomain.Listing, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", admindomain.ErrValidation, id)
	}
	var doc ListingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, admindomain.ErrNotFound
		}
		return nil, err
	}
	listing := mapAdminListing(doc)
	return &listing, nil
}

// Create は事業者 ID + 種別 + 名称の重複チェックを行った上で新規作成する。
func (r *AdminListingRepository) Create(ctx context.Context, listing *admindomain.Listing) error {
	filter := bson.M{
		"businessId": listing.BusinessID,
		"variant":    string(listing.Variant),
		"name":       strings.TrimSpace(listing.Name),
	}
	if err := r.collection.FindOne(ctx, filter).Err(); err == nil {
		return admindomain.ErrDuplicate
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	now := time.Now().UTC()
	doc := buildListingDocument(listing)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = &now
	doc.UpdatedAt = &now
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return admindomain.ErrDuplicate
		}
		return err
	}
	listing.ID = doc.ID.Hex()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	return nil
}

// Update は編集可能なフィールドのみを $set する。ステータスとレビュー集計値は触らない。
func (r *AdminListingRepository) Update(ctx context.Context, listing *admindomain.Listing) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(listing.ID))
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", admindomain.ErrValidation, listing.ID)
	}
	doc := buildListingDocument(listing)
	now := time.Now().UTC()
	update := bson.M{
		"name":            doc.Name,
		"title":           doc.Title,
		"description":     doc.Description,
		"category":        doc.Category,
		"serviceTypes":    doc.ServiceTypes,
		"specializations": doc.Specializations,
		"location":        doc.Location,
		"pricing":         doc.Pricing,
		"priceLabel":      doc.PriceLabel,
		"experience":      doc.Experience,
		"contactEmail":    doc.ContactEmail,
		"imageURLs":       doc.ImageURLs,
		"facilities":      doc.Facilities,
		"qualifications":  doc.Qualifications,
		"languages":       doc.Languages,
		"brand":           doc.Brand,
		"inStock":         doc.InStock,
		"hours":           doc.Hours,
		"availability":    doc.Availability,
		"updatedAt":       now,
	}
	result, err := r.collection.UpdateByID(ctx, objectID, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return admindomain.ErrNotFound
	}
	listing.UpdatedAt = now
	return nil
}

// SetStatus は審査ステータスを更新する。
func (r *AdminListingRepository) SetStatus(ctx context.Context, id string, status admindomain.Status, note string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", admindomain.ErrValidation, id)
	}
	update := bson.M{"$set": bson.M{
		"status":     status.String(),
		"reviewNote": note,
		"updatedAt":  time.Now().UTC(),
	}}
	result, err := r.collection.UpdateByID(ctx, objectID, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return admindomain.ErrNotFound
	}
	return nil
}

// mapAdminListing は Mongo ドキュメントを Admin ドメインの Listing に変換する。
// 保存済みデータは検証済みとみなし、値オブジェクトへはそのまま型変換する。
func mapAdminListing(doc ListingDocument) admindomain.Listing {
	pricing := mapPricing(doc.Pricing, doc.PriceLabel)
	serviceTypes := make(admindomain.ServiceTypeList, 0, len(doc.ServiceTypes))
	for _, t := range doc.ServiceTypes {
		serviceTypes = append(serviceTypes, admindomain.ServiceType(t))
	}
	images := make(admindomain.PhotoURLList, 0, len(doc.ImageURLs))
	for _, u := range doc.ImageURLs {
		images = append(images, admindomain.PhotoURL(u))
	}

	listing := admindomain.Listing{
		ID:              doc.ID.Hex(),
		Variant:         publicdomain.Variant(doc.Variant),
		BusinessID:      doc.BusinessID,
		Name:            doc.Name,
		Title:           doc.Title,
		Description:     doc.Description,
		Category:        admindomain.Category(doc.Category),
		ServiceTypes:    serviceTypes,
		Specializations: append([]string{}, doc.Specializations...),
		Province:        admindomain.Province(doc.Location.Province),
		City:            doc.Location.City,
		Pricing: admindomain.PriceBand{
			Min:      admindomain.Money(pricing.Min),
			Max:      admindomain.Money(pricing.Max),
			Currency: pricing.Currency,
		},
		PriceLabel:     doc.PriceLabel,
		Experience:     doc.Experience,
		ContactEmail:   admindomain.Email(doc.ContactEmail),
		ImageURLs:      images,
		Facilities:     append([]string{}, doc.Facilities...),
		Qualifications: append([]string{}, doc.Qualifications...),
		Languages:      append([]string{}, doc.Languages...),
		Brand:          doc.Brand,
		InStock:        doc.InStock,
		Hours:          doc.Hours,
		Availability:   mapAvailability(doc.Availability),
		Rating:         doc.Stats.Rating,
		ReviewCount:    doc.Stats.ReviewCount,
		Status:         admindomain.Status(doc.Status),
		ReviewNote:     doc.ReviewNote,
	}
	if doc.CreatedAt != nil {
		listing.CreatedAt = *doc.CreatedAt
	}
	if doc.UpdatedAt != nil {
		listing.UpdatedAt = *doc.UpdatedAt
	}
	return listing
}

// buildListingDocument は Listing の値オブジェクト群を Mongo 用ドキュメントに展開する。
func buildListingDocument(listing *admindomain.Listing) ListingDocument {
	status := listing.Status
	if status == "" {
		status = admindomain.StatusPendingReview
	}
	return ListingDocument{
		Variant:         string(listing.Variant),
		BusinessID:      listing.BusinessID,
		Name:            strings.TrimSpace(listing.Name),
		Title:           listing.Title,
		Description:     listing.Description,
		Category:        listing.Category.String(),
		ServiceTypes:    listing.ServiceTypes.Strings(),
		Specializations: listing.Specializations,
		Location:        LocationDocument{City: listing.City, Province: listing.Province.String()},
		Pricing: &PricingDocument{
			Min:      listing.Pricing.Min.Float64(),
			Max:      listing.Pricing.Max.Float64(),
			Currency: listing.Pricing.Currency,
		},
		PriceLabel:     listing.PriceLabel,
		Experience:     listing.Experience,
		ContactEmail:   listing.ContactEmail.String(),
		ImageURLs:      listing.ImageURLs.Strings(),
		Facilities:     listing.Facilities,
		Qualifications: listing.Qualifications,
		Languages:      listing.Languages,
		Brand:          listing.Brand,
		InStock:        listing.InStock,
		Hours:          listing.Hours,
		Availability:   flattenAvailability(listing.Availability),
		Stats:          ListingStatsDocument{Rating: listing.Rating, ReviewCount: listing.ReviewCount},
		Status:         status.String(),
		ReviewNote:     listing.ReviewNote,
	}
}

// Import は businessId + variant + name をキーに upsert する。シード投入用で、
// ステータスとレビュー集計値も指定値で上書きする。新規作成なら true を返す。
func (r *AdminListingRepository) Import(ctx context.Context, listing *admindomain.Listing) (bool, error) {
	doc := buildListingDocument(listing)
	now := time.Now().UTC()
	filter := bson.M{
		"businessId": doc.BusinessID,
		"variant":    doc.Variant,
		"name":       doc.Name,
	}
	set := bson.M{
		"title":           doc.Title,
		"description":     doc.Description,
		"category":        doc.Category,
		"serviceTypes":    doc.ServiceTypes,
		"specializations": doc.Specializations,
		"location":        doc.Location,
		"pricing":         doc.Pricing,
		"priceLabel":      doc.PriceLabel,
		"experience":      doc.Experience,
		"contactEmail":    doc.ContactEmail,
		"imageURLs":       doc.ImageURLs,
		"facilities":      doc.Facilities,
		"qualifications":  doc.Qualifications,
		"languages":       doc.Languages,
		"brand":           doc.Brand,
		"inStock":         doc.InStock,
		"hours":           doc.Hours,
		"availability":    doc.Availability,
		"stats":           doc.Stats,
		"status":          doc.Status,
		"reviewNote":      doc.ReviewNote,
		"updatedAt":       now,
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"createdAt": now},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	if id, ok := result.UpsertedID.(primitive.ObjectID); ok {
		listing.ID = id.Hex()
		return true, nil
	}
	return false, nil
}
