package repository

import (
	"context"

	"github.com/wanderlust-app/wanderlust/internal/models"
	"gorm.io/gorm"
)

type PlanRepository interface {
	Create(ctx context.Context, tx *gorm.DB, plan *models.Plan) error
	FindByID(ctx context.Context, id uint) (*models.Plan, error)
	FindByUserID(ctx context.Context, userID uint) ([]models.Plan, error)
	HasListing(ctx context.Context, planID, listingID uint) (bool, error)
	AppendListing(ctx context.Context, tx *gorm.DB, planID, listingID uint) error
	ListingsFor(ctx context.Context, planID uint) ([]models.Listing, error)
	Delete(ctx context.Context, tx *gorm.DB, planID uint) error
	GetDB() *gorm.DB
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *planRepository) Create(ctx context.Context, tx *gorm.DB, plan *models.Plan) error {
	return tx.WithContext(ctx).Create(plan).Error
}

func (r *planRepository) FindByID(ctx context.Context, id uint) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	for i := range plans {
		listings, err := r.ListingsFor(ctx, plans[i].ID)
		if err != nil {
			return nil, err
		}
		plans[i].Listings = listings
	}
	return plans, nil
}

func (r *planRepository) HasListing(ctx context.Context, planID, listingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PlanListing{}).
		Where("plan_id = ? AND listing_id = ?", planID, listingID).
		Count(&count).Error
	return count > 0, err
}

// AppendListing places the listing at the end of the itinerary. Duplicate
// inserts are swallowed so the operation keeps set semantics.
func (r *planRepository) AppendListing(ctx context.Context, tx *gorm.DB, planID, listingID uint) error {
	var position int64
	if err := tx.WithContext(ctx).
		Model(&models.PlanListing{}).
		Where("plan_id = ?", planID).
		Count(&position).Error; err != nil {
		return err
	}

	return tx.WithContext(ctx).
		Exec("INSERT INTO plan_listings (plan_id, listing_id, position) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
			planID, listingID, position+1).Error
}

// ListingsFor returns a plan's listings in itinerary order.
func (r *planRepository) ListingsFor(ctx context.Context, planID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Joins("JOIN plan_listings pl ON pl.listing_id = listings.id").
		Where("pl.plan_id = ?", planID).
		Order("pl.position ASC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *planRepository) Delete(ctx context.Context, tx *gorm.DB, planID uint) error {
	if err := tx.WithContext(ctx).
		Where("plan_id = ?", planID).
		Delete(&models.PlanListing{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&models.Plan{}, planID).Error
}
