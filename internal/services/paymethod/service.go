// Package paymethod manages the member's saved payment instruments: the
// masked list shown at checkout, the raw credential fetch that populates a
// selected instrument into the payment form, and registration, deletion and
// default marking.
package paymethod

import (
	"context"
	"errors"
	"fmt"
	"log"

	"raillo/internal/models"
	"raillo/internal/services/identity"
	"raillo/internal/upstream"
)

// Service errors.
var (
	ErrMembersOnly     = errors.New("saved payment methods require a member account")
	ErrMethodNotFound  = errors.New("saved payment method not found")
	ErrInvalidMethodID = errors.New("invalid payment method id")
)

// Service is the saved-instrument registry facade.
type Service interface {
	// List returns the member's saved instruments with masked credentials.
	// Guests get an empty list; so does a member whose fetch fails, since
	// checkout can always proceed with manually entered details.
	List(ctx context.Context) []models.SavedPaymentMethod

	// Raw returns the unmasked credentials of one instrument, used to fill
	// the payment form when the member picks a saved card or account.
	Raw(ctx context.Context, id int64) (*models.SavedPaymentMethod, error)

	Save(ctx context.Context, req models.CreateSavedPaymentMethodRequest) (*models.SavedPaymentMethod, error)
	Delete(ctx context.Context, id int64) error
	SetDefault(ctx context.Context, id int64) error
}

type service struct {
	client   upstream.Client
	provider identity.Provider
}

// NewService creates a saved payment method service.
func NewService(client upstream.Client, provider identity.Provider) Service {
	if client == nil {
		panic("upstream client is required")
	}
	if provider == nil {
		panic("identity provider is required")
	}
	return &service{client: client, provider: provider}
}

func (s *service) List(ctx context.Context) []models.SavedPaymentMethod {
	if !s.provider.CurrentIdentity(ctx).IsMember() {
		return nil
	}
	methods, err := s.client.SavedPaymentMethods(ctx)
	if err != nil {
		log.Printf("saved payment methods fetch failed, continuing without: %v", err)
		return nil
	}
	return methods
}

func (s *service) Raw(ctx context.Context, id int64) (*models.SavedPaymentMethod, error) {
	if id <= 0 {
		return nil, ErrInvalidMethodID
	}
	if !s.provider.CurrentIdentity(ctx).IsMember() {
		return nil, ErrMembersOnly
	}
	method, err := s.client.SavedPaymentMethodRaw(ctx, id)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrMethodNotFound
		}
		return nil, fmt.Errorf("fetch payment method %d: %w", id, err)
	}
	return method, nil
}

func (s *service) Save(ctx context.Context, req models.CreateSavedPaymentMethodRequest) (*models.SavedPaymentMethod, error) {
	if !s.provider.CurrentIdentity(ctx).IsMember() {
		return nil, ErrMembersOnly
	}
	method, err := s.client.CreateSavedPaymentMethod(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("save payment method: %w", err)
	}
	return method, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidMethodID
	}
	if !s.provider.CurrentIdentity(ctx).IsMember() {
		return ErrMembersOnly
	}
	if err := s.client.DeleteSavedPaymentMethod(ctx, id); err != nil {
		if upstream.IsNotFound(err) {
			return ErrMethodNotFound
		}
		return fmt.Errorf("delete payment method %d: %w", id, err)
	}
	return nil
}

func (s *service) SetDefault(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidMethodID
	}
	if !s.provider.CurrentIdentity(ctx).IsMember() {
		return ErrMembersOnly
	}
	if err := s.client.SetDefaultPaymentMethod(ctx, id); err != nil {
		if upstream.IsNotFound(err) {
			return ErrMethodNotFound
		}
		return fmt.Errorf("set default payment method %d: %w", id, err)
	}
	return nil
}

// DefaultSelection picks the instrument to preselect at checkout: the one
// marked default when exactly one is, otherwise none. Multiple defaults is
// an upstream data fault and preselecting any of them would guess.
func DefaultSelection(methods []models.SavedPaymentMethod) *models.SavedPaymentMethod {
	var found *models.SavedPaymentMethod
	for i := range methods {
		if !methods[i].IsDefault {
			continue
		}
		if found != nil {
			return nil
		}
		found = &methods[i]
	}
	return found
}
