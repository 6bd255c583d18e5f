// Package form implements the submission-side batch form: ten
// code/amount slots with provider-aware input normalization, batch
// payload assembly, and a single call to the submission API.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/simoncdt/vericoupon/internal/model"
	"github.com/simoncdt/vericoupon/internal/provider"
)

var (
	// ErrUnknownProvider is returned when the requested provider is not
	// in the catalog.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrMissingIdentity is returned on submit when surname or given
	// name is blank. No API call is made.
	ErrMissingIdentity = errors.New("surname and given name are required")

	// ErrEmptyBatch is returned on submit when no slot holds a code.
	// No API call is made.
	ErrEmptyBatch = errors.New("no coupon codes entered")

	// ErrSlotOutOfRange is returned for slot indexes outside the batch.
	ErrSlotOutOfRange = errors.New("slot index out of range")
)

// SubmissionClient is the transport used to reach the submission API.
type SubmissionClient interface {
	Submit(ctx context.Context, req *model.CreateRegistrationRequest) (*model.Registration, error)
}

// slot is one code/amount input position.
type slot struct {
	code   string // canonical: normalized, no separators
	amount string
}

// Controller turns raw slot input into a well-formed batch payload and
// submits it once. It performs no retry and no de-duplication of a
// user-triggered double submit.
type Controller struct {
	profile   provider.Profile
	client    SubmissionClient
	surname   string
	givenName string
	slots     [provider.MaxSlotsPerBatch]slot
}

// NewController creates a controller for one provider's batch form.
func NewController(providerKey string, client SubmissionClient) (*Controller, error) {
	profile, ok := provider.Lookup(providerKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, providerKey)
	}
	return &Controller{profile: profile, client: client}, nil
}

// Provider returns the profile the controller formats against.
func (c *Controller) Provider() provider.Profile {
	return c.profile
}

// SetSurname records the submitter's surname.
func (c *Controller) SetSurname(s string) {
	c.surname = s
}

// SetGivenName records the submitter's given name.
func (c *Controller) SetGivenName(s string) {
	c.givenName = s
}

// SetCode applies one keystroke's worth of raw input to a code slot:
// characters outside the provider alphabet are stripped and the value
// is truncated to the provider's code length. The stored value never
// contains display separators.
func (c *Controller) SetCode(i int, raw string) error {
	if i < 0 || i >= len(c.slots) {
		return ErrSlotOutOfRange
	}
	c.slots[i].code = c.profile.Normalize(raw)
	return nil
}

// Code returns the canonical value of a code slot.
func (c *Controller) Code(i int) string {
	if i < 0 || i >= len(c.slots) {
		return ""
	}
	return c.slots[i].code
}

// DisplayCode renders a code slot with the provider's cosmetic
// grouping, for display only.
func (c *Controller) DisplayCode(i int) string {
	return c.profile.Format(c.Code(i))
}

// SetAmount records the raw amount for a slot.
func (c *Controller) SetAmount(i int, raw string) error {
	if i < 0 || i >= len(c.slots) {
		return ErrSlotOutOfRange
	}
	c.slots[i].amount = raw
	return nil
}

// Submit assembles the batch payload and calls the submission API once.
// Codes and amounts are collected in a single pass over the slots, so a
// slot's amount always lands at the same index as its code; an empty
// code drops the whole slot, amount included.
func (c *Controller) Submit(ctx context.Context) (*model.Registration, error) {
	if strings.TrimSpace(c.surname) == "" || strings.TrimSpace(c.givenName) == "" {
		return nil, ErrMissingIdentity
	}

	var codes, amounts []string
	for _, s := range c.slots {
		code := strings.TrimSpace(s.code)
		if code == "" {
			continue
		}
		codes = append(codes, code)
		amounts = append(amounts, strings.TrimSpace(s.amount))
	}

	if len(codes) == 0 {
		return nil, ErrEmptyBatch
	}

	req := &model.CreateRegistrationRequest{
		Surname:      strings.TrimSpace(c.surname),
		GivenName:    strings.TrimSpace(c.givenName),
		ProviderName: c.profile.Key,
		Codes:        codes,
		Amounts:      amounts,
	}

	return c.client.Submit(ctx, req)
}
