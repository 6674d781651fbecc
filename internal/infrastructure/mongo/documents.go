package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PricingDocument は料金帯の埋め込み構造。単一価格は min == max で保存する。
type PricingDocument struct {
	Min      float64 `bson:"min"`
	Max      float64 `bson:"max"`
	Currency string  `bson:"currency,omitempty"`
}

// LocationDocument は所在地の埋め込み構造。
type LocationDocument struct {
	City     string `bson:"city,omitempty"`
	Province string `bson:"province"`
}

// AvailabilityDocument はサービス提供者の曜日ごとの予約枠。
type AvailabilityDocument struct {
	Day   string   `bson:"day"`
	Slots []string `bson:"slots"`
}

// ListingStatsDocument はレビュー集計値。
type ListingStatsDocument struct {
	Rating      float64 `bson:"rating"`
	ReviewCount int     `bson:"reviewCount"`
}

// ListingDocument は gyms / services / products を 1 コレクションで表現するスキーマ。
// 旧データは pricing を持たず priceLabel ("R750/month") のみを持つ場合がある。
type ListingDocument struct {
	ID              primitive.ObjectID     `bson:"_id"`
	Variant         string                 `bson:"variant"`
	BusinessID      string                 `bson:"businessId"`
	Name            string                 `bson:"name"`
	Title           string                 `bson:"title,omitempty"`
	Description     string                 `bson:"description,omitempty"`
	Category        string                 `bson:"category,omitempty"`
	ServiceTypes    []string               `bson:"serviceTypes,omitempty"`
	Specializations []string               `bson:"specializations,omitempty"`
	Location        LocationDocument       `bson:"location"`
	Pricing         *PricingDocument       `bson:"pricing,omitempty"`
	PriceLabel      string                 `bson:"priceLabel,omitempty"`
	Experience      string                 `bson:"experience,omitempty"`
	ContactEmail    string                 `bson:"contactEmail,omitempty"`
	ImageURLs       []string               `bson:"imageURLs,omitempty"`
	Facilities      []string               `bson:"facilities,omitempty"`
	Qualifications  []string               `bson:"qualifications,omitempty"`
	Languages       []string               `bson:"languages,omitempty"`
	Brand           string                 `bson:"brand,omitempty"`
	InStock         bool                   `bson:"inStock,omitempty"`
	Hours           string                 `bson:"hours,omitempty"`
	Availability    []AvailabilityDocument `bson:"availability,omitempty"`
	Stats           ListingStatsDocument   `bson:"stats"`
	Status          string                 `bson:"status"`
	ReviewNote      string                 `bson:"reviewNote,omitempty"`
	CreatedAt       *time.Time             `bson:"createdAt,omitempty"`
	UpdatedAt       *time.Time             `bson:"updatedAt,omitempty"`
}

// CartLineDocument はカート内の 1 行。
type CartLineDocument struct {
	ItemID     string  `bson:"itemId"`
	ProductID  string  `bson:"productId"`
	BusinessID string  `bson:"businessId"`
	Name       string  `bson:"productName"`
	Image      string  `bson:"productImage,omitempty"`
	UnitPrice  float64 `bson:"price"`
	Quantity   int     `bson:"quantity"`
}

// CartDocument は所有者ごとに 1 件だけ存在するカート。_id は所有者 ID。
// 合計値は保存せず、読み込み時に行から再計算する。
type CartDocument struct {
	OwnerID   string             `bson:"_id"`
	CartID    string             `bson:"cartId"`
	Lines     []CartLineDocument `bson:"lines"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// ContactDocument は問い合わせ送信者。
type ContactDocument struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Phone string `bson:"phone,omitempty"`
}

// InquiryDocument は事業者への問い合わせ/予約リクエスト。
type InquiryDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Reference   string             `bson:"reference"`
	Type        string             `bson:"type"`
	EntityType  string             `bson:"entityType"`
	EntityID    string             `bson:"entityId"`
	BusinessID  string             `bson:"toBusinessId"`
	UserID      string             `bson:"userId,omitempty"`
	From        ContactDocument    `bson:"fromUser"`
	Message     string             `bson:"message,omitempty"`
	DesiredDate *time.Time         `bson:"desiredDate,omitempty"`
	DesiredTime string             `bson:"desiredTime,omitempty"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}
