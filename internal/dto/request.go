package dto

// Form-bound request schemas. Every mutating route binds one of these and
// runs it through the validator before any business logic sees it.

type RegisterRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type CreateListingRequest struct {
	Title       string  `form:"title" json:"title" validate:"required"`
	Description string  `form:"description" json:"description"`
	Image       string  `form:"image" json:"image"`
	Price       float64 `form:"price" json:"price" validate:"gte=0"`
	Location    string  `form:"location" json:"location"`
	Country     string  `form:"country" json:"country"`
	Category    string  `form:"category" json:"category"`
	TaxIncluded bool    `form:"taxIncluded" json:"taxIncluded"`
}

type CreateBookingRequest struct {
	ListingID uint   `form:"listingId" json:"listingId"`
	StartDate string `form:"startDate" json:"startDate" validate:"required"`
	EndDate   string `form:"endDate" json:"endDate" validate:"required"`
	Guests    int    `form:"guests" json:"guests" validate:"required,gte=1"`
}

type CreatePlanRequest struct {
	Title     string `form:"title" json:"title" validate:"required"`
	Notes     string `form:"notes" json:"notes"`
	StartDate string `form:"startDate" json:"startDate"`
	EndDate   string `form:"endDate" json:"endDate"`
}

type AddToPlanRequest struct {
	PlanID uint `form:"planId" json:"planId" validate:"required"`
}

type CreateReviewRequest struct {
	Rating  int    `form:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment string `form:"comment" json:"comment" validate:"required"`
}
