// Package mileage reads the member's loyalty point balance and applies the
// usable-cap policy: up to 100% of the order is payable by mileage, bounded
// only by what the member actually holds.
package mileage

import (
	"context"
	"log"

	"raillo/internal/models"
	"raillo/internal/services/identity"
	"raillo/internal/upstream"
)

// Service resolves the mileage balance usable against an order.
type Service interface {
	// BalanceForOrder fetches the balance and computes the usable cap.
	// Guests and fetch failures both resolve to zero; checkout is never
	// blocked by this read.
	BalanceForOrder(ctx context.Context, orderAmount int64) models.MileageBalance
}

type service struct {
	client   upstream.Client
	provider identity.Provider
}

// NewService creates a mileage service.
func NewService(client upstream.Client, provider identity.Provider) Service {
	if client == nil {
		panic("upstream client is required")
	}
	if provider == nil {
		panic("identity provider is required")
	}
	return &service{client: client, provider: provider}
}

func (s *service) BalanceForOrder(ctx context.Context, orderAmount int64) models.MileageBalance {
	id := s.provider.CurrentIdentity(ctx)
	if !id.IsMember() {
		return models.MileageBalance{}
	}

	balance, err := s.client.MileageBalance(ctx)
	if err != nil {
		log.Printf("mileage balance fetch failed, defaulting to zero: %v", err)
		return models.MileageBalance{}
	}
	if balance < 0 {
		balance = 0
	}
	return models.MileageBalance{
		Balance:   balance,
		UsableCap: UsableCap(balance, orderAmount),
	}
}

// UsableCap is min(balance, orderAmount).
func UsableCap(balance, orderAmount int64) int64 {
	if balance < orderAmount {
		return balance
	}
	if orderAmount < 0 {
		return 0
	}
	return orderAmount
}

// ClampRequested normalizes the requested points into [0, cap]. Negative
// input clamps to zero rather than being rejected.
func ClampRequested(requested, cap int64) int64 {
	if requested < 0 {
		return 0
	}
	if requested > cap {
		return cap
	}
	return requested
}
