package models

import "time"

// Garden belongs to exactly one user for its whole life. LastWatered stays
// nil until the first watering unless gardens are created watered.
type Garden struct {
	ID          string
	UserID      string
	LastWatered *time.Time
	CreatedAt   time.Time

	// Flowers is filled on detailed reads only, ordered by creation.
	Flowers []Flower
}

// Flower is a self-care record. GardenID is nil when the owner had no garden
// at the time the flower was added; when set, the garden has the same UserID.
type Flower struct {
	ID           string
	SelfCareType string
	Description  string
	UserID       string
	GardenID     *string
	CreatedAt    time.Time
}
