package model

import (
	"time"

	"github.com/lib/pq"
)

// Listing is a property advertisement. UserID is the owning user: it is
// stamped from the authenticated principal at creation time and never
// changes afterwards.
type Listing struct {
	ID            int64          `db:"id" json:"id"`
	UserID        int64          `db:"user_id" json:"userId"`
	Name          string         `db:"name" json:"name"`
	Description   string         `db:"description" json:"description"`
	Address       string         `db:"address" json:"address"`
	RegularPrice  float64        `db:"regular_price" json:"regularPrice"`
	DiscountPrice float64        `db:"discount_price" json:"discountPrice"`
	Bathrooms     int            `db:"bathrooms" json:"bathrooms"`
	Bedrooms      int            `db:"bedrooms" json:"bedrooms"`
	Furnished     bool           `db:"furnished" json:"furnished"`
	Parking       bool           `db:"parking" json:"parking"`
	Type          string         `db:"type" json:"type"` // rent/sale
	Offer         bool           `db:"offer" json:"offer"`
	ImageURLs     pq.StringArray `db:"image_urls" json:"imageUrls"`
	PhotoFileID   string         `db:"photo_file_id" json:"-"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updatedAt"`
}

// ListingPatch enumerates every updatable listing field. Nil means "leave
// unchanged". The owner is deliberately absent: ownership never changes.
type ListingPatch struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Address       *string   `json:"address"`
	RegularPrice  *float64  `json:"regularPrice"`
	DiscountPrice *float64  `json:"discountPrice"`
	Bathrooms     *int      `json:"bathrooms"`
	Bedrooms      *int      `json:"bedrooms"`
	Furnished     *bool     `json:"furnished"`
	Parking       *bool     `json:"parking"`
	Type          *string   `json:"type"`
	Offer         *bool     `json:"offer"`
	ImageURLs     *[]string `json:"imageUrls"`
}
