package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/simoncdt/vericoupon/internal/model"
)

// RegistrationRepositoryInterface defines the interface for registration data access.
type RegistrationRepositoryInterface interface {
	Insert(ctx context.Context, reg *model.Registration) error
	FindAll(ctx context.Context) ([]model.Registration, error)
}

// Notifier accepts a registration for out-of-band operator notification.
// Enqueue must never block the caller and must never fail the request.
type Notifier interface {
	Enqueue(reg *model.Registration)
}

// RegistrationService provides business logic for coupon-batch submissions.
type RegistrationService struct {
	repo     RegistrationRepositoryInterface
	notifier Notifier
}

// NewRegistrationService creates a new RegistrationService with the given
// repository and notifier.
func NewRegistrationService(repo RegistrationRepositoryInterface, notifier Notifier) *RegistrationService {
	return &RegistrationService{repo: repo, notifier: notifier}
}

// pairCoupons zips codes with amounts by slot position. The coupon count
// always equals the code count: a missing or blank amount at index i yields
// an absent amount, and surplus amounts beyond the last code are ignored.
func pairCoupons(codes, amounts []string) []model.Coupon {
	coupons := make([]model.Coupon, 0, len(codes))
	for i, code := range codes {
		coupon := model.Coupon{Code: strings.TrimSpace(code)}
		if i < len(amounts) {
			if amount := strings.TrimSpace(amounts[i]); amount != "" {
				coupon.Amount = &amount
			}
		}
		coupons = append(coupons, coupon)
	}
	return coupons
}

// Create persists one registration built from the request and hands it to
// the notifier. The store write is authoritative: once it succeeds the
// submission is a success regardless of notification outcome.
func (s *RegistrationService) Create(ctx context.Context, req *model.CreateRegistrationRequest) (*model.Registration, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	if len(req.Codes) == 0 {
		return nil, ErrEmptyBatch
	}

	reg := &model.Registration{
		Surname:      strings.TrimSpace(req.Surname),
		GivenName:    strings.TrimSpace(req.GivenName),
		ProviderName: strings.TrimSpace(req.ProviderName),
		Coupons:      pairCoupons(req.Codes, req.Amounts),
	}

	if err := s.repo.Insert(ctx, reg); err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	log.Info().
		Str("registration_id", reg.ID).
		Str("provider", reg.ProviderName).
		Int("coupon_count", len(reg.Coupons)).
		Msg("registration created")

	// Notification is decoupled from the response path: Enqueue never
	// blocks and delivery failures are handled inside the dispatcher.
	s.notifier.Enqueue(reg)

	return reg, nil
}

// List returns every persisted registration.
func (s *RegistrationService) List(ctx context.Context) ([]model.Registration, error) {
	regs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find registrations: %w", err)
	}
	return regs, nil
}
