package repository

import (
	"context"

	"github.com/wanderlust-app/wanderlust/internal/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByHandle(ctx context.Context, handle string) (*models.User, error)
	FindProfileByHandle(ctx context.Context, handle string) (*models.User, error)
	HandleExists(ctx context.Context, handle string) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	AddFollow(ctx context.Context, followerID, followeeID uint) error
	RemoveFollow(ctx context.Context, followerID, followeeID uint) error
	InWishlist(ctx context.Context, userID, listingID uint) (bool, error)
	AddToWishlist(ctx context.Context, userID, listingID uint) error
	RemoveFromWishlist(ctx context.Context, userID, listingID uint) error
	GetDB() *gorm.DB
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByHandle(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindProfileByHandle loads everything the public profile page shows.
func (r *userRepository) FindProfileByHandle(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Wishlist").
		Preload("HostedListings").
		Preload("Plans.Listings").
		Preload("Followers").
		Preload("Following").
		Where("handle = ?", handle).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) HandleExists(ctx context.Context, handle string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("handle = ?", handle).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("user_follows").
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

// AddFollow inserts the single join row both the followers and following
// views read from, so the mutation is symmetric and atomic.
func (r *userRepository) AddFollow(ctx context.Context, followerID, followeeID uint) error {
	return r.db.WithContext(ctx).
		Exec("INSERT INTO user_follows (follower_id, followee_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			followerID, followeeID).Error
}

func (r *userRepository) RemoveFollow(ctx context.Context, followerID, followeeID uint) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM user_follows WHERE follower_id = ? AND followee_id = ?",
			followerID, followeeID).Error
}

func (r *userRepository) InWishlist(ctx context.Context, userID, listingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("wishlist_items").
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) AddToWishlist(ctx context.Context, userID, listingID uint) error {
	return r.db.WithContext(ctx).
		Exec("INSERT INTO wishlist_items (user_id, listing_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			userID, listingID).Error
}

func (r *userRepository) RemoveFromWishlist(ctx context.Context, userID, listingID uint) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM wishlist_items WHERE user_id = ? AND listing_id = ?",
			userID, listingID).Error
}
