package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/wanderlust-app/wanderlust/internal/models"
	"github.com/wanderlust-app/wanderlust/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrListingInvalid  = errors.New("listing requires a title and a non-negative price")
)

// PageSize is the fixed catalog page size.
const PageSize = 6

type CreateListingInput struct {
	Title       string
	Description string
	Image       string
	Price       float64
	Location    string
	Country     string
	Category    string
	TaxIncluded bool
}

type ListingPage struct {
	Items      []models.Listing
	Total      int64
	Page       int
	TotalPages int
}

type ListingService interface {
	Create(ctx context.Context, hostID uint, input CreateListingInput) (*models.Listing, error)
	List(ctx context.Context, filter repository.ListingFilter, page int) (*ListingPage, error)
	GetBySlug(ctx context.Context, slug string) (*models.Listing, error)
	GetByID(ctx context.Context, id uint) (*models.Listing, error)
}

type listingService struct {
	listings repository.ListingRepository
	now      func() time.Time
}

func NewListingService(listings repository.ListingRepository) ListingService {
	return &listingService{listings: listings, now: time.Now}
}

func (s *listingService) Create(ctx context.Context, hostID uint, input CreateListingInput) (*models.Listing, error) {
	if input.Title == "" || input.Price < 0 {
		return nil, ErrListingInvalid
	}

	listing := &models.Listing{
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		Price:       input.Price,
		Location:    input.Location,
		Country:     input.Country,
		Category:    input.Category,
		TaxIncluded: input.TaxIncluded,
		HostID:      hostID,
		Slug:        makeSlug(input.Title, s.now()),
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return listing, nil
}

func (s *listingService) List(ctx context.Context, filter repository.ListingFilter, page int) (*ListingPage, error) {
	if page < 1 {
		page = 1
	}

	items, total, err := s.listings.List(ctx, filter, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	return &ListingPage{Items: items, Total: total, Page: page, TotalPages: totalPages}, nil
}

func (s *listingService) GetBySlug(ctx context.Context, slugStr string) (*models.Listing, error) {
	listing, err := s.listings.FindBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

func (s *listingService) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

// makeSlug appends the creation timestamp so two listings with the same
// title still get distinct slugs.
func makeSlug(title string, t time.Time) string {
	return fmt.Sprintf("%s-%d", slug.Make(title), t.UnixMilli())
}
