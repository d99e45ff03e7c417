package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wanderlust-app/wanderlust/internal/models"
	"github.com/wanderlust-app/wanderlust/internal/repository"
	"github.com/wanderlust-app/wanderlust/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrReviewForbidden = errors.New("review belongs to another user")
	ErrRatingRange     = errors.New("rating must be between 1 and 5")
)

type ReviewService interface {
	Add(ctx context.Context, listingID, authorID uint, rating int, comment string) (*models.Review, error)
	Delete(ctx context.Context, listingID, reviewID, requestingUserID uint) error
}

type reviewService struct {
	reviews   repository.ReviewRepository
	listings  repository.ListingRepository
	publisher *rabbitmq.Publisher
}

func NewReviewService(reviews repository.ReviewRepository, listings repository.ListingRepository, publisher *rabbitmq.Publisher) ReviewService {
	return &reviewService{reviews: reviews, listings: listings, publisher: publisher}
}

// Add attaches a review to a listing. The listing association is a single
// foreign-keyed insert, so there is no window where a review exists
// without its listing reference.
func (s *reviewService) Add(ctx context.Context, listingID, authorID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrRatingRange
	}

	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	review := &models.Review{
		ListingID: listingID,
		AuthorID:  authorID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	_ = s.publisher.Publish("review.created", review)

	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, listingID, reviewID, requestingUserID uint) error {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.ListingID != listingID {
		return ErrReviewNotFound
	}
	if review.AuthorID != requestingUserID {
		return ErrReviewForbidden
	}

	return s.reviews.Delete(ctx, reviewID)
}
