package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wanderlust-app/wanderlust/internal/models"
	"gorm.io/gorm"
)

// --- Mock ReviewRepository ---

type mockReviewRepo struct {
	createFn   func(ctx context.Context, review *models.Review) error
	findByIDFn func(ctx context.Context, id uint) (*models.Review, error)
	deleted    []uint
}

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	if m.createFn != nil {
		return m.createFn(ctx, review)
	}
	review.ID = 1
	return nil
}
func (m *mockReviewRepo) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockReviewRepo) FindByListingID(ctx context.Context, listingID uint) ([]models.Review, error) {
	return nil, nil
}
func (m *mockReviewRepo) Delete(ctx context.Context, id uint) error {
	m.deleted = append(m.deleted, id)
	return nil
}
func (m *mockReviewRepo) GetDB() *gorm.DB { return nil }

// --- Tests ---

func TestAddReview_RatingRange(t *testing.T) {
	svc := NewReviewService(&mockReviewRepo{}, &mockListingRepo{}, nil)

	_, err := svc.Add(context.Background(), 1, 2, 0, "meh")
	assert.ErrorIs(t, err, ErrRatingRange)

	_, err = svc.Add(context.Background(), 1, 2, 6, "too good")
	assert.ErrorIs(t, err, ErrRatingRange)
}

func TestAddReview_ListingMissing(t *testing.T) {
	svc := NewReviewService(&mockReviewRepo{}, &mockListingRepo{}, nil)

	_, err := svc.Add(context.Background(), 99, 2, 4, "lovely stay")

	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestAddReview_Success(t *testing.T) {
	listings := &mockListingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Listing, error) {
			return &models.Listing{ID: id}, nil
		},
	}
	svc := NewReviewService(&mockReviewRepo{}, listings, nil)

	review, err := svc.Add(context.Background(), 3, 2, 5, "lovely stay")

	assert.NoError(t, err)
	assert.Equal(t, uint(3), review.ListingID)
	assert.Equal(t, uint(2), review.AuthorID)
	assert.Equal(t, 5, review.Rating)
}

func TestDeleteReview_NotFound(t *testing.T) {
	svc := NewReviewService(&mockReviewRepo{}, &mockListingRepo{}, nil)

	err := svc.Delete(context.Background(), 3, 9, 2)

	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestDeleteReview_WrongListing(t *testing.T) {
	reviews := &mockReviewRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Review, error) {
			return &models.Review{ID: id, ListingID: 8, AuthorID: 2}, nil
		},
	}
	svc := NewReviewService(reviews, &mockListingRepo{}, nil)

	err := svc.Delete(context.Background(), 3, 9, 2)

	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestDeleteReview_Forbidden(t *testing.T) {
	reviews := &mockReviewRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Review, error) {
			return &models.Review{ID: id, ListingID: 3, AuthorID: 2}, nil
		},
	}
	svc := NewReviewService(reviews, &mockListingRepo{}, nil)

	err := svc.Delete(context.Background(), 3, 9, 5)

	assert.ErrorIs(t, err, ErrReviewForbidden)
}

func TestDeleteReview_Success(t *testing.T) {
	reviews := &mockReviewRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Review, error) {
			return &models.Review{ID: id, ListingID: 3, AuthorID: 2}, nil
		},
	}
	svc := NewReviewService(reviews, &mockListingRepo{}, nil)

	assert.NoError(t, svc.Delete(context.Background(), 3, 9, 2))
	assert.Equal(t, []uint{9}, reviews.deleted)
}
