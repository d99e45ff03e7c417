package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wanderlust-app/wanderlust/internal/models"
	"github.com/wanderlust-app/wanderlust/internal/repository"
	"github.com/wanderlust-app/wanderlust/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrDateConflict    = errors.New("listing already booked for the selected dates")
	ErrBadDateRange    = errors.New("end date must be after start date")
)

// taxRate is applied per night when a listing is tax-inclusive.
const taxRate = 1.18

type BookingService interface {
	Quote(listing *models.Listing, start, end time.Time) float64
	Create(ctx context.Context, userID, listingID uint, start, end time.Time, guests int) (*models.Booking, error)
	Get(ctx context.Context, id uint) (*models.Booking, error)
}

type bookingService struct {
	bookings  repository.BookingRepository
	listings  repository.ListingRepository
	publisher *rabbitmq.Publisher
}

func NewBookingService(bookings repository.BookingRepository, listings repository.ListingRepository, publisher *rabbitmq.Publisher) BookingService {
	return &bookingService{bookings: bookings, listings: listings, publisher: publisher}
}

// Quote prices a stay: nights × nightly rate, where the nightly rate
// already carries the 18% tax for tax-inclusive listings.
func (s *bookingService) Quote(listing *models.Listing, start, end time.Time) float64 {
	nights := int(end.Sub(start).Hours() / 24)
	rate := listing.Price
	if listing.TaxIncluded {
		rate *= taxRate
	}
	return rate * float64(nights)
}

func (s *bookingService) Create(ctx context.Context, userID, listingID uint, start, end time.Time, guests int) (*models.Booking, error) {
	if !end.After(start) {
		return nil, ErrBadDateRange
	}

	var result *models.Booking

	err := s.bookings.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.createInTx(ctx, tx, userID, listingID, start, end, guests)
		if err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.publisher.Publish("booking.created", result)

	return result, nil
}

func (s *bookingService) createInTx(ctx context.Context, tx *gorm.DB, userID, listingID uint, start, end time.Time, guests int) (*models.Booking, error) {
	// 1. Lock the listing row; serializing concurrent booking attempts
	// closes the read-then-write race between conflict check and insert
	listing, err := s.listings.FindByIDForUpdate(ctx, tx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("lock listing: %w", err)
	}

	// 2. Inclusive-bounds overlap check: an existing checkout on the new
	// checkin day still conflicts
	_, err = s.bookings.FindOverlapping(ctx, tx, listingID, start, end)
	if err == nil {
		return nil, ErrDateConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 3. Price and persist
	booking := &models.Booking{
		UserID:     userID,
		ListingID:  listingID,
		StartDate:  start,
		EndDate:    end,
		Guests:     guests,
		TotalPrice: s.Quote(listing, start, end),
	}
	if err := s.bookings.Create(ctx, tx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}
