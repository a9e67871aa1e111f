package models

import "time"

// Deal categories
const (
	CategoryFood          = "food"
	CategoryDrinks        = "drinks"
	CategoryEntertainment = "entertainment"
)

// Deal is a purchasable discount offer tied to one merchant.
// Deals are immutable once listed: no edit or delete path exists.
// All monetary fields are in minor units (cents).
type Deal struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	MerchantID      string     `gorm:"index;not null" json:"merchant_id"`
	Restaurant      string     `gorm:"not null" json:"restaurant"`
	Discount        string     `json:"discount"`
	Description     string     `json:"description"`
	LongDescription string     `json:"long_description,omitempty"`
	Category        string     `gorm:"index;not null" json:"category"`
	ValueCents      int64      `gorm:"not null" json:"value_cents"`
	PriceCents      int64      `gorm:"not null" json:"price_cents"`
	Expires         time.Time  `json:"expires"`
	Availability    string     `json:"availability,omitempty"`
	Location        string     `json:"location,omitempty"`
	Terms           StringList `gorm:"type:jsonb" json:"terms,omitempty"`
	Includes        StringList `gorm:"type:jsonb" json:"includes,omitempty"`
	Popular         bool       `json:"popular"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Expired reports whether the deal can no longer be purchased at now.
func (d *Deal) Expired(now time.Time) bool {
	return now.After(d.Expires)
}
