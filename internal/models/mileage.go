package models

// MileageBalance is the member's loyalty point balance together with the
// cap usable against a specific order. One point equals one currency unit.
type MileageBalance struct {
	Balance   int64 `json:"balance"`
	UsableCap int64 `json:"usableCap"`
}

// MileageBalanceResponse is the simple upstream balance payload.
type MileageBalanceResponse struct {
	Balance int64 `json:"balance"`
}
