package main

import (
	"fmt"
	"time"

	"github.com/wanderlust-app/wanderlust/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedListings wipes the catalog and inserts sample stays under a demo
// host account. Run with -seed; intended for local development only.
func seedListings(db *gorm.DB) error {
	host, err := demoHost(db)
	if err != nil {
		return err
	}

	if err := db.Exec("DELETE FROM plan_listings").Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM wishlist_items").Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&models.Review{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&models.Booking{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&models.ChatMessage{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&models.Listing{}).Error; err != nil {
		return err
	}

	samples := []models.Listing{
		{Title: "Cozy Beachfront Cottage", Description: "Fall asleep to the waves.", Price: 1500, Location: "Malibu", Country: "United States", Category: "Beach", TaxIncluded: true},
		{Title: "Mountain View Cabin", Description: "Pine forest all around.", Price: 900, Location: "Aspen", Country: "United States", Category: "Mountains"},
		{Title: "Historic Canal House", Description: "A 17th-century townhouse.", Price: 2100, Location: "Amsterdam", Country: "Netherlands", Category: "City"},
		{Title: "Desert Dome Retreat", Description: "Stargaze from bed.", Price: 1100, Location: "Jaisalmer", Country: "India", Category: "Desert", TaxIncluded: true},
		{Title: "Lakeside Wooden Villa", Description: "Private jetty included.", Price: 1750, Location: "Udaipur", Country: "India", Category: "Lake"},
		{Title: "Rooftop Studio", Description: "Skyline views downtown.", Price: 800, Location: "Bangkok", Country: "Thailand", Category: "City"},
		{Title: "Rainforest Treehouse", Description: "Canopy living.", Price: 1300, Location: "Ubud", Country: "Indonesia", Category: "Jungle"},
	}

	base := time.Now()
	for i := range samples {
		samples[i].HostID = host.ID
		samples[i].Slug = fmt.Sprintf("seed-%d-%d", base.UnixMilli(), i)
	}

	return db.Create(&samples).Error
}

func demoHost(db *gorm.DB) (*models.User, error) {
	var host models.User
	if err := db.Where("email = ?", "host@wanderlust.local").First(&host).Error; err == nil {
		return &host, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("wanderlust"), 12)
	if err != nil {
		return nil, err
	}

	host = models.User{
		Username:     "WanderLust Host",
		Email:        "host@wanderlust.local",
		Handle:       "@wanderlusthost",
		PasswordHash: string(hash),
	}
	if err := db.Create(&host).Error; err != nil {
		return nil, err
	}
	return &host, nil
}
