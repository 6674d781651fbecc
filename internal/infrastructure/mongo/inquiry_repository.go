package mongo

import (
	"context"
	"fmt"

	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// InquiryRepository persists inquiries sent to businesses.
type InquiryRepository struct {
	collection *mongo.Collection
}

func NewInquiryRepository(db *mongo.Database, collectionName string) *InquiryRepository {
	return &InquiryRepository{collection: db.Collection(collectionName)}
}

// Create は ObjectID を払い出して inquiry.ID に書き戻す。
func (r *InquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	if inquiry == nil {
		return fmt.Errorf("inquiry payload is nil")
	}
	doc := InquiryDocument{
		ID:         primitive.NewObjectID(),
		Reference:  inquiry.Reference,
		Type:       string(inquiry.Type),
		EntityType: string(inquiry.Variant),
		EntityID:   inquiry.ListingID,
		BusinessID: inquiry.BusinessID,
		UserID:     inquiry.UserID,
		From: ContactDocument{
			Name:  inquiry.From.Name,
			Email: inquiry.From.Email,
			Phone: inquiry.From.Phone,
		},
		Message:     inquiry.Message,
		DesiredDate: inquiry.DesiredDate,
		DesiredTime: inquiry.DesiredTime,
		Status:      string(inquiry.Status),
		CreatedAt:   inquiry.CreatedAt,
		UpdatedAt:   inquiry.UpdatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	inquiry.ID = doc.ID.Hex()
	return nil
}
