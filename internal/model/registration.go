package model

import "time"

// Coupon is one submitted code with its optional amount.
// A nil Amount means the submitter left the amount unspecified.
type Coupon struct {
	Code   string  `json:"code"`
	Amount *string `json:"amount"`
}

// Registration represents one persisted coupon-batch submission.
// Registrations are immutable once created; there is no update or
// delete path.
type Registration struct {
	ID           string    `json:"id"`
	Surname      string    `json:"surname"`
	GivenName    string    `json:"givenName"`
	ProviderName string    `json:"providerName"`
	Coupons      []Coupon  `json:"coupons"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SortableTimeLayout is a fixed-width UTC timestamp layout. Rendering
// CreatedAt with it yields strings whose lexical order matches their
// chronological order, which is what the admin table sorts on.
const SortableTimeLayout = "2006-01-02T15:04:05.000000000Z"

// CreatedAtKey returns the registration's creation time rendered with
// SortableTimeLayout.
func (r *Registration) CreatedAtKey() string {
	return r.CreatedAt.UTC().Format(SortableTimeLayout)
}

// CreateRegistrationRequest is the DTO for POST /enregistrement.
// Codes and Amounts are parallel, index-correlated lists; entries in
// Amounts may be blank (amount unspecified for that slot) but every
// code entry must carry content.
type CreateRegistrationRequest struct {
	Surname      string   `json:"surname" validate:"required,notblank,max=255"`
	GivenName    string   `json:"givenName" validate:"required,notblank,max=255"`
	ProviderName string   `json:"providerName" validate:"required,notblank,providerkey"`
	Codes        []string `json:"codes" validate:"required,min=1,dive,notblank,max=64"`
	Amounts      []string `json:"amounts" validate:"required,min=1,dive,max=32"`
}

// VerifyCouponRequest is the DTO for POST /verification.
type VerifyCouponRequest struct {
	Provider string `json:"provider" validate:"required,notblank"`
	Code     string `json:"code" validate:"required,notblank,max=64"`
}

// VerifyCouponResponse is the outcome of a coupon check.
type VerifyCouponResponse struct {
	Valid    bool   `json:"valid"`
	Message  string `json:"message"`
	Code     string `json:"code"`
	Provider string `json:"provider"`
}
