// Package api defines the soulbloom gRPC surface: request and response
// messages, a JSON codec for them, the service descriptor used by the server
// and a typed client stub.
package api

import "time"

// User is an account as seen on the wire. Listings of other users carry only
// ID and Username.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

type Flower struct {
	ID           string    `json:"id"`
	SelfCareType string    `json:"self_care_type"`
	Description  string    `json:"description,omitempty"`
	UserID       string    `json:"user_id"`
	GardenID     *string   `json:"garden_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Garden struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	LastWatered *time.Time `json:"last_watered,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Flowers     []Flower   `json:"flowers,omitempty"`
}

type Empty struct{}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UpdateMeRequest renames the caller. UserID may be left empty; when set it
// must be the caller's own id.
type UpdateMeRequest struct {
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
}

// DeleteMeRequest deletes the caller's account. UserID follows the same rule
// as in UpdateMeRequest.
type DeleteMeRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type UserResponse struct {
	User User `json:"user"`
}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

type GardenRequest struct {
	GardenID string `json:"garden_id"`
}

type GardenResponse struct {
	Garden Garden `json:"garden"`
}

type ListGardensResponse struct {
	Gardens []Garden `json:"gardens"`
}

type AddFlowerRequest struct {
	SelfCareType string `json:"self_care_type"`
	Description  string `json:"description,omitempty"`
	GardenID     string `json:"garden_id,omitempty"`
}

// UpdateFlowerRequest changes the non-empty fields of a flower.
type UpdateFlowerRequest struct {
	FlowerID     string `json:"flower_id"`
	SelfCareType string `json:"self_care_type,omitempty"`
	Description  string `json:"description,omitempty"`
	GardenID     string `json:"garden_id,omitempty"`
}

type FlowerRequest struct {
	FlowerID string `json:"flower_id"`
}

type FlowerResponse struct {
	Flower Flower `json:"flower"`
}

type ListFlowersResponse struct {
	Flowers []Flower `json:"flowers"`
}
