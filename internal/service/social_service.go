package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wanderlust-app/wanderlust/internal/models"
	"github.com/wanderlust-app/wanderlust/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPlanNotFound  = errors.New("plan not found")
	ErrPlanForbidden = errors.New("plan belongs to another user")
)

type CreatePlanInput struct {
	Title     string
	Notes     string
	StartDate *time.Time
	EndDate   *time.Time
}

type SocialService interface {
	Profile(ctx context.Context, handle string) (*models.User, error)
	ToggleFollow(ctx context.Context, currentUserID uint, targetHandle string) error
	ToggleWishlist(ctx context.Context, userID, listingID uint) error
	CreatePlan(ctx context.Context, userID uint, input CreatePlanInput) (*models.Plan, error)
	CreatePlanWithListing(ctx context.Context, userID uint, input CreatePlanInput, listingID uint) (*models.Plan, error)
	AddListingToPlan(ctx context.Context, planID, listingID uint) error
	ListPlans(ctx context.Context, userID uint) ([]models.Plan, error)
	DeletePlan(ctx context.Context, planID, requestingUserID uint) error
}

type socialService struct {
	users repository.UserRepository
	plans repository.PlanRepository
}

func NewSocialService(users repository.UserRepository, plans repository.PlanRepository) SocialService {
	return &socialService{users: users, plans: plans}
}

func (s *socialService) Profile(ctx context.Context, handle string) (*models.User, error) {
	user, err := s.users.FindProfileByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ToggleFollow flips the follow edge. Following yourself or a missing
// handle is a silent no-op; the caller just redirects.
func (s *socialService) ToggleFollow(ctx context.Context, currentUserID uint, targetHandle string) error {
	target, err := s.users.FindByHandle(ctx, targetHandle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if target.ID == currentUserID {
		return nil
	}

	following, err := s.users.IsFollowing(ctx, currentUserID, target.ID)
	if err != nil {
		return err
	}
	if following {
		return s.users.RemoveFollow(ctx, currentUserID, target.ID)
	}
	return s.users.AddFollow(ctx, currentUserID, target.ID)
}

func (s *socialService) ToggleWishlist(ctx context.Context, userID, listingID uint) error {
	present, err := s.users.InWishlist(ctx, userID, listingID)
	if err != nil {
		return err
	}
	if present {
		return s.users.RemoveFromWishlist(ctx, userID, listingID)
	}
	return s.users.AddToWishlist(ctx, userID, listingID)
}

func (s *socialService) CreatePlan(ctx context.Context, userID uint, input CreatePlanInput) (*models.Plan, error) {
	plan := &models.Plan{
		Title:     input.Title,
		UserID:    userID,
		Notes:     input.Notes,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.plans.Create(ctx, s.plans.GetDB(), plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return plan, nil
}

// CreatePlanWithListing creates the plan and seeds its itinerary in one
// transaction, so a crash cannot leave a listing-less plan half written.
func (s *socialService) CreatePlanWithListing(ctx context.Context, userID uint, input CreatePlanInput, listingID uint) (*models.Plan, error) {
	plan := &models.Plan{
		Title:     input.Title,
		UserID:    userID,
		Notes:     input.Notes,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}

	err := s.plans.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.plans.Create(ctx, tx, plan); err != nil {
			return err
		}
		return s.plans.AppendListing(ctx, tx, plan.ID, listingID)
	})
	if err != nil {
		return nil, fmt.Errorf("create plan with listing: %w", err)
	}
	return plan, nil
}

func (s *socialService) AddListingToPlan(ctx context.Context, planID, listingID uint) error {
	if _, err := s.plans.FindByID(ctx, planID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	present, err := s.plans.HasListing(ctx, planID, listingID)
	if err != nil {
		return err
	}
	if present {
		return nil
	}
	return s.plans.AppendListing(ctx, s.plans.GetDB(), planID, listingID)
}

func (s *socialService) ListPlans(ctx context.Context, userID uint) ([]models.Plan, error) {
	return s.plans.FindByUserID(ctx, userID)
}

func (s *socialService) DeletePlan(ctx context.Context, planID, requestingUserID uint) error {
	plan, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if plan.UserID != requestingUserID {
		return ErrPlanForbidden
	}

	return s.plans.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.plans.Delete(ctx, tx, planID)
	})
}
