package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simoncdt/vericoupon/internal/model"
)

// mockRegistrationRepository is a mock implementation of RegistrationRepositoryInterface.
type mockRegistrationRepository struct {
	insertFn  func(ctx context.Context, reg *model.Registration) error
	findAllFn func(ctx context.Context) ([]model.Registration, error)
}

func (m *mockRegistrationRepository) Insert(ctx context.Context, reg *model.Registration) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, reg)
	}
	return nil
}

func (m *mockRegistrationRepository) FindAll(ctx context.Context) ([]model.Registration, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return []model.Registration{}, nil
}

// mockNotifier records enqueued registrations.
type mockNotifier struct {
	enqueued []*model.Registration
}

func (m *mockNotifier) Enqueue(reg *model.Registration) {
	m.enqueued = append(m.enqueued, reg)
}

func strPtr(s string) *string {
	return &s
}

func TestRegistrationService_Create_Success(t *testing.T) {
	var captured *model.Registration
	repo := &mockRegistrationRepository{
		insertFn: func(ctx context.Context, reg *model.Registration) error {
			captured = reg
			return nil
		},
	}
	notifier := &mockNotifier{}

	svc := NewRegistrationService(repo, notifier)
	req := &model.CreateRegistrationRequest{
		Surname:      "Durand",
		GivenName:    "Jean",
		ProviderName: "PCS",
		Codes:        []string{"1111222233334444", "5555666677778888"},
		Amounts:      []string{"10", "20"},
	}

	reg, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, "Durand", captured.Surname)
	assert.Equal(t, "Jean", captured.GivenName)
	assert.Equal(t, "PCS", captured.ProviderName)
	assert.Equal(t, []model.Coupon{
		{Code: "1111222233334444", Amount: strPtr("10")},
		{Code: "5555666677778888", Amount: strPtr("20")},
	}, captured.Coupons)

	require.Len(t, notifier.enqueued, 1, "registration should be handed to the notifier")
	assert.Same(t, reg, notifier.enqueued[0])
}

func TestRegistrationService_Create_PairingPolicy(t *testing.T) {
	testCases := []struct {
		name    string
		codes   []string
		amounts []string
		want    []model.Coupon
	}{
		{
			name:    "fewer_amounts_pads_absent",
			codes:   []string{"AAA", "BBB", "CCC"},
			amounts: []string{"10"},
			want: []model.Coupon{
				{Code: "AAA", Amount: strPtr("10")},
				{Code: "BBB", Amount: nil},
				{Code: "CCC", Amount: nil},
			},
		},
		{
			name:    "surplus_amounts_ignored",
			codes:   []string{"AAA"},
			amounts: []string{"10", "20", "30"},
			want: []model.Coupon{
				{Code: "AAA", Amount: strPtr("10")},
			},
		},
		{
			name:    "blank_amount_is_absent",
			codes:   []string{"AAA", "BBB"},
			amounts: []string{"  ", "20"},
			want: []model.Coupon{
				{Code: "AAA", Amount: nil},
				{Code: "BBB", Amount: strPtr("20")},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var captured *model.Registration
			repo := &mockRegistrationRepository{
				insertFn: func(ctx context.Context, reg *model.Registration) error {
					captured = reg
					return nil
				},
			}

			svc := NewRegistrationService(repo, &mockNotifier{})
			_, err := svc.Create(context.Background(), &model.CreateRegistrationRequest{
				Surname:      "Durand",
				GivenName:    "Jean",
				ProviderName: "PCS",
				Codes:        tc.codes,
				Amounts:      tc.amounts,
			})

			require.NoError(t, err)
			assert.Equal(t, tc.want, captured.Coupons)
		})
	}
}

func TestRegistrationService_Create_NilRequest(t *testing.T) {
	svc := NewRegistrationService(&mockRegistrationRepository{}, &mockNotifier{})

	_, err := svc.Create(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestRegistrationService_Create_EmptyBatch(t *testing.T) {
	notifier := &mockNotifier{}
	svc := NewRegistrationService(&mockRegistrationRepository{}, notifier)

	_, err := svc.Create(context.Background(), &model.CreateRegistrationRequest{
		Surname:      "Durand",
		GivenName:    "Jean",
		ProviderName: "PCS",
		Amounts:      []string{"10"},
	})

	assert.ErrorIs(t, err, ErrEmptyBatch)
	assert.Empty(t, notifier.enqueued, "nothing should be enqueued without a write")
}

func TestRegistrationService_Create_StoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	repo := &mockRegistrationRepository{
		insertFn: func(ctx context.Context, reg *model.Registration) error {
			return storeErr
		},
	}
	notifier := &mockNotifier{}

	svc := NewRegistrationService(repo, notifier)
	_, err := svc.Create(context.Background(), &model.CreateRegistrationRequest{
		Surname:      "Durand",
		GivenName:    "Jean",
		ProviderName: "PCS",
		Codes:        []string{"1111222233334444"},
		Amounts:      []string{"10"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, notifier.enqueued, "failed writes must not notify")
}

func TestRegistrationService_List(t *testing.T) {
	want := []model.Registration{
		{ID: "a", Surname: "Durand"},
		{ID: "b", Surname: "Martin"},
	}
	repo := &mockRegistrationRepository{
		findAllFn: func(ctx context.Context) ([]model.Registration, error) {
			return want, nil
		},
	}

	svc := NewRegistrationService(repo, &mockNotifier{})
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRegistrationService_List_StoreError(t *testing.T) {
	repo := &mockRegistrationRepository{
		findAllFn: func(ctx context.Context) ([]model.Registration, error) {
			return nil, errors.New("connection refused")
		},
	}

	svc := NewRegistrationService(repo, &mockNotifier{})
	_, err := svc.List(context.Background())

	assert.Error(t, err)
}
