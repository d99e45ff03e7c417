package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Handle       string `gorm:"uniqueIndex;not null" json:"handle"`
	PasswordHash string `gorm:"not null" json:"-"`
	Bio          string `json:"bio"`
	ProfilePic   string `gorm:"default:'https://via.placeholder.com/150'" json:"profilePic"`

	Wishlist       []Listing `gorm:"many2many:wishlist_items" json:"wishlist,omitempty"`
	Plans          []Plan    `gorm:"foreignKey:UserID" json:"plans,omitempty"`
	HostedListings []Listing `gorm:"foreignKey:HostID" json:"hostedListings,omitempty"`

	// Followers and Following are two views of the same user_follows join
	// table, so a follow edge is always symmetric by construction.
	Followers []*User `gorm:"many2many:user_follows;joinForeignKey:FolloweeID;joinReferences:FollowerID" json:"followers,omitempty"`
	Following []*User `gorm:"many2many:user_follows;joinForeignKey:FollowerID;joinReferences:FolloweeID" json:"following,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
