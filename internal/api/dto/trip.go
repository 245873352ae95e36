package dto

import "time"

// Hints are pointers so an explicit "" can switch the server default off.
type TripRequest struct {
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	OriginHint      *string `json:"origin_hint"`
	DestinationHint *string `json:"destination_hint"`
	Mode            string  `json:"mode"`
}

type TripResponse struct {
	DistanceKm    float64  `json:"distance_km"`
	DistanceMiles float64  `json:"distance_miles"`
	Duration      string   `json:"duration"`
	Instructions  []string `json:"instructions"`
}

type TripRecordResponse struct {
	ID          string       `json:"id"`
	Origin      string       `json:"origin"`
	Destination string       `json:"destination"`
	Mode        string       `json:"mode"`
	PlannedAt   time.Time    `json:"planned_at"`
	Report      TripResponse `json:"report"`
}

type ListTripsResponse struct {
	Trips []TripRecordResponse `json:"trips"`
}
