package models

import "time"

type Plan struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Notes     string     `json:"notes"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Listings []Listing `gorm:"many2many:plan_listings" json:"listings,omitempty"`
}

// PlanListing is the explicit join row so listings keep their itinerary
// order. AddListingToPlan is a no-op on duplicates (set semantics).
type PlanListing struct {
	PlanID    uint `gorm:"primaryKey" json:"plan_id"`
	ListingID uint `gorm:"primaryKey" json:"listing_id"`
	Position  int  `gorm:"not null" json:"position"`
}
