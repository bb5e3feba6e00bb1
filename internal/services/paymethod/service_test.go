package paymethod

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"raillo/internal/models"
	"raillo/internal/services/identity"
	"raillo/internal/upstream"
)

type stubClient struct {
	upstream.Client

	methods []models.SavedPaymentMethod
	listErr error
	rawFn   func(ctx context.Context, id int64) (*models.SavedPaymentMethod, error)
	calls   int
}

func (s *stubClient) SavedPaymentMethods(context.Context) ([]models.SavedPaymentMethod, error) {
	s.calls++
	return s.methods, s.listErr
}

func (s *stubClient) SavedPaymentMethodRaw(ctx context.Context, id int64) (*models.SavedPaymentMethod, error) {
	return s.rawFn(ctx, id)
}

func member() identity.Provider {
	return identity.Static(models.Identity{Session: &models.Session{MemberID: "7", Role: models.RoleMember}})
}

func TestService_List(t *testing.T) {
	t.Run("returns the member's instruments", func(t *testing.T) {
		client := &stubClient{methods: []models.SavedPaymentMethod{{ID: 1}, {ID: 2}}}
		service := NewService(client, member())

		got := service.List(context.Background())
		assert.Len(t, got, 2)
	})

	t.Run("guests get an empty list without an upstream call", func(t *testing.T) {
		client := &stubClient{methods: []models.SavedPaymentMethod{{ID: 1}}}
		service := NewService(client, identity.Static(models.Guest()))

		assert.Empty(t, service.List(context.Background()))
		assert.Zero(t, client.calls)
	})

	t.Run("fetch failure degrades to empty", func(t *testing.T) {
		client := &stubClient{listErr: errors.New("boom")}
		service := NewService(client, member())

		assert.Empty(t, service.List(context.Background()))
	})
}

func TestService_Raw(t *testing.T) {
	t.Run("returns unmasked credentials", func(t *testing.T) {
		client := &stubClient{
			rawFn: func(_ context.Context, id int64) (*models.SavedPaymentMethod, error) {
				assert.Equal(t, int64(3), id)
				return &models.SavedPaymentMethod{ID: 3, CardNumber: "1111222233334444"}, nil
			},
		}
		service := NewService(client, member())

		method, err := service.Raw(context.Background(), 3)
		assert.NoError(t, err)
		assert.Equal(t, "1111222233334444", method.CardNumber)
	})

	t.Run("maps unknown id", func(t *testing.T) {
		client := &stubClient{
			rawFn: func(context.Context, int64) (*models.SavedPaymentMethod, error) {
				return nil, &upstream.Error{Status: 404}
			},
		}
		service := NewService(client, member())

		_, err := service.Raw(context.Background(), 3)
		assert.ErrorIs(t, err, ErrMethodNotFound)
	})

	t.Run("guests are rejected", func(t *testing.T) {
		service := NewService(&stubClient{}, identity.Static(models.Guest()))

		_, err := service.Raw(context.Background(), 3)
		assert.ErrorIs(t, err, ErrMembersOnly)
	})
}

func TestDefaultSelection(t *testing.T) {
	tests := []struct {
		name    string
		methods []models.SavedPaymentMethod
		wantID  int64
	}{
		{
			name:    "exactly one default is selected",
			methods: []models.SavedPaymentMethod{{ID: 1}, {ID: 2, IsDefault: true}, {ID: 3}},
			wantID:  2,
		},
		{
			name:    "no default selects nothing",
			methods: []models.SavedPaymentMethod{{ID: 1}, {ID: 2}},
			wantID:  0,
		},
		{
			name:    "multiple defaults select nothing",
			methods: []models.SavedPaymentMethod{{ID: 1, IsDefault: true}, {ID: 2, IsDefault: true}},
			wantID:  0,
		},
		{
			name:    "empty list selects nothing",
			methods: nil,
			wantID:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultSelection(tt.methods)
			if tt.wantID == 0 {
				assert.Nil(t, got)
				return
			}
			assert.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}
