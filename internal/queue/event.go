// Package queue defines message payloads exchanged over the message broker.
package queue

// SpotAssignedEvent is published after a spot assignment transaction commits.
// It carries enough context for downstream consumers (yard displays,
// notification jobs, analytics) without querying the primary database.  A
// cleared spot is represented by an empty SpotToken.
type SpotAssignedEvent struct {
	TruckID       uint64 `json:"truck_id"`
	PlateNumber   string `json:"plate_number"`
	PreviousToken string `json:"previous_token"`
	SpotToken     string `json:"spot_token"`
	FromGarage    string `json:"from_garage"`
	ToGarage      string `json:"to_garage"`
	Cause         string `json:"cause"`
	ActorID       uint64 `json:"actor_id"`
	AssignedAt    string `json:"assigned_at"`
}
