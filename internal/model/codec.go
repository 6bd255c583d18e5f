package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// couponCodecVersion is bumped whenever the persisted coupon layout
// changes shape. Decode rejects envelopes it does not know.
const couponCodecVersion = 1

// ErrEmptyCouponList is returned when encoding a registration without
// any coupons; such registrations are never valid.
var ErrEmptyCouponList = errors.New("coupon list is empty")

// couponEnvelope is the persisted form of a coupon list.
type couponEnvelope struct {
	Version int      `json:"v"`
	Coupons []Coupon `json:"coupons"`
}

// EncodeCoupons serializes an ordered coupon list into its versioned
// persisted form. Order is preserved; Encode followed by Decode
// returns an equal list.
func EncodeCoupons(coupons []Coupon) ([]byte, error) {
	if len(coupons) == 0 {
		return nil, ErrEmptyCouponList
	}
	data, err := json.Marshal(couponEnvelope{
		Version: couponCodecVersion,
		Coupons: coupons,
	})
	if err != nil {
		return nil, fmt.Errorf("encode coupons: %w", err)
	}
	return data, nil
}

// DecodeCoupons deserializes a persisted coupon list, verifying the
// envelope version.
func DecodeCoupons(data []byte) ([]Coupon, error) {
	var env couponEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode coupons: %w", err)
	}
	if env.Version != couponCodecVersion {
		return nil, fmt.Errorf("decode coupons: unsupported version %d", env.Version)
	}
	if len(env.Coupons) == 0 {
		return nil, ErrEmptyCouponList
	}
	return env.Coupons, nil
}
