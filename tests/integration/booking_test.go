//go:build integration

package integration

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanderlust-app/wanderlust/internal/models"
	"github.com/wanderlust-app/wanderlust/internal/repository"
	"github.com/wanderlust-app/wanderlust/internal/service"
)

func createTestUser(t *testing.T, handle string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     handle,
		Email:        handle + "@example.com",
		Handle:       "@" + handle,
		PasswordHash: "x",
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createTestListing(t *testing.T, title string, price float64, taxIncluded bool) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		Title:       title,
		Slug:        fmt.Sprintf("%s-%d", title, time.Now().UnixNano()),
		Price:       price,
		Location:    "Goa",
		Country:     "India",
		Category:    "beachfront",
		TaxIncluded: taxIncluded,
		HostID:      createTestUser(t, fmt.Sprintf("host-%d", time.Now().UnixNano())).ID,
	}
	require.NoError(t, testDB.Create(listing).Error)
	return listing
}

func newBookingService() service.BookingService {
	bookingRepo := repository.NewBookingRepository(testDB)
	listingRepo := repository.NewListingRepository(testDB)
	return service.NewBookingService(bookingRepo, listingRepo, nil)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Test: second booking overlapping an existing stay is rejected
func TestOverlappingBookingRejected(t *testing.T) {
	cleanTables()
	listing := createTestListing(t, "beach-house", 100, true)
	guest1 := createTestUser(t, "guest1")
	guest2 := createTestUser(t, "guest2")
	svc := newBookingService()

	booking1, err := svc.Create(t.Context(), guest1.ID, listing.ID, date(2026, 6, 1), date(2026, 6, 5), 2)
	require.NoError(t, err)
	assert.InDelta(t, 472.0, booking1.TotalPrice, 0.001) // 100 * 1.18 * 4 nights

	_, err = svc.Create(t.Context(), guest2.ID, listing.ID, date(2026, 6, 4), date(2026, 6, 8), 2)
	assert.ErrorIs(t, err, service.ErrDateConflict)
}

// Test: a stay starting on an existing stay's checkout day still conflicts
// (overlap bounds are inclusive)
func TestAdjacentBookingConflicts(t *testing.T) {
	cleanTables()
	listing := createTestListing(t, "beach-house", 100, true)
	guest1 := createTestUser(t, "guest1")
	guest2 := createTestUser(t, "guest2")
	svc := newBookingService()

	_, err := svc.Create(t.Context(), guest1.ID, listing.ID, date(2026, 6, 1), date(2026, 6, 5), 2)
	require.NoError(t, err)

	_, err = svc.Create(t.Context(), guest2.ID, listing.ID, date(2026, 6, 5), date(2026, 6, 9), 2)
	assert.ErrorIs(t, err, service.ErrDateConflict)
}

// Test: disjoint stays on the same listing both succeed
func TestDisjointBookingsSucceed(t *testing.T) {
	cleanTables()
	listing := createTestListing(t, "beach-house", 100, false)
	guest1 := createTestUser(t, "guest1")
	guest2 := createTestUser(t, "guest2")
	svc := newBookingService()

	booking1, err := svc.Create(t.Context(), guest1.ID, listing.ID, date(2026, 6, 1), date(2026, 6, 5), 2)
	require.NoError(t, err)
	assert.InDelta(t, 400.0, booking1.TotalPrice, 0.001) // no tax markup

	_, err = svc.Create(t.Context(), guest2.ID, listing.ID, date(2026, 6, 6), date(2026, 6, 10), 2)
	assert.NoError(t, err)
}

// Test: 10 users race for the same dates → exactly one booking wins
func TestConcurrentBookingRace(t *testing.T) {
	cleanTables()
	listing := createTestListing(t, "beach-house", 100, true)
	svc := newBookingService()

	totalUsers := 10
	guests := make([]*models.User, totalUsers)
	for i := range guests {
		guests[i] = createTestUser(t, fmt.Sprintf("racer-%02d", i))
	}

	var wg sync.WaitGroup
	errs := make(chan error, totalUsers)

	wg.Add(totalUsers)
	for i := 0; i < totalUsers; i++ {
		go func(idx int) {
			defer wg.Done()
			_, err := svc.Create(t.Context(), guests[idx].ID, listing.ID, date(2026, 7, 1), date(2026, 7, 5), 2)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var won, conflicted int
	for err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, service.ErrDateConflict)
			conflicted++
		}
	}

	assert.Equal(t, 1, won, "exactly one racer should win the dates")
	assert.Equal(t, totalUsers-1, conflicted)

	var dbCount int64
	testDB.Model(&models.Booking{}).Where("listing_id = ?", listing.ID).Count(&dbCount)
	assert.Equal(t, int64(1), dbCount)
}
