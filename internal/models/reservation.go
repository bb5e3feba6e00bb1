package models

import "time"

// Passenger categories as the reservation backend reports them.
const (
	PassengerAdult         = "ADULT"
	PassengerChild         = "CHILD"
	PassengerSenior        = "SENIOR"
	PassengerDisabledHeavy = "DISABLED_HEAVY"
	PassengerDisabledLight = "DISABLED_LIGHT"
	PassengerVeteran       = "VETERAN"
	PassengerInfant        = "INFANT"
)

// SeatReservation is one booked seat within a reservation draft.
type SeatReservation struct {
	SeatReservationID int64  `json:"seatReservationId"`
	PassengerType     string `json:"passengerType"`
	CarNumber         int    `json:"carNumber"`
	CarType           string `json:"carType"`
	SeatNumber        string `json:"seatNumber"`
	BaseFare          int64  `json:"baseFare"`
	Fare              int64  `json:"fare"`
}

// ReservationDraft is the in-progress reservation handed over by the booking
// flow. It is denormalized on purpose: the payment protocol must be able to
// complete even when the reservation record has since been removed upstream.
type ReservationDraft struct {
	ReservationID        int64             `json:"reservationId"`
	ReservationCode      string            `json:"reservationCode"`
	TrainScheduleID      int64             `json:"trainScheduleId"`
	TrainName            string            `json:"trainName"`
	TrainNumber          string            `json:"trainNumber"`
	DepartureStationName string            `json:"departureStationName"`
	ArrivalStationName   string            `json:"arrivalStationName"`
	OperationDate        string            `json:"operationDate"`
	DepartureTime        time.Time         `json:"departureTime"`
	ArrivalTime          time.Time         `json:"arrivalTime"`
	ExpiresAt            time.Time         `json:"expiresAt"`
	Seats                []SeatReservation `json:"seats"`
}

// TotalFare sums the seat fares. The draft invariant is that this equals the
// order amount submitted for calculation.
func (d *ReservationDraft) TotalFare() int64 {
	var total int64
	for _, s := range d.Seats {
		total += s.Fare
	}
	return total
}

// RouteInfo renders the human-readable route used in calculation requests.
func (d *ReservationDraft) RouteInfo() string {
	return d.DepartureStationName + " - " + d.ArrivalStationName
}

// GuestIdentity is the self-chosen identity of a non-member checkout. It is
// kept sealed in the checkout cache and is required again during
// reconciliation, so the password is held verbatim, never hashed.
type GuestIdentity struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}
