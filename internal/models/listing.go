package models

import "time"

type ListingAction string

const (
	ActionBook    ListingAction = "book"
	ActionReserve ListingAction = "reserve"
	ActionCheck   ListingAction = "check"
	ActionPlan    ListingAction = "plan"
)

type Listing struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `json:"description"`
	Image       string        `gorm:"default:'https://via.placeholder.com/300'" json:"image"`
	Price       float64       `gorm:"not null" json:"price"`
	Location    string        `json:"location"`
	Country     string        `json:"country"`
	Category    string        `gorm:"index" json:"category"`
	ActionType  ListingAction `gorm:"type:varchar(20);default:'book'" json:"actionType"`
	TaxIncluded bool          `json:"taxIncluded"`
	HostID      uint          `gorm:"not null;index" json:"host_id"`
	Slug        string        `gorm:"uniqueIndex;not null" json:"slug"`

	Host    *User    `gorm:"foreignKey:HostID" json:"host,omitempty"`
	Reviews []Review `gorm:"foreignKey:ListingID" json:"reviews,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
