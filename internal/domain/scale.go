package domain

import (
	"time"

	"congrego/internal/schedule"
)

// ScalePositions lists every duty position a scale can assign. Keep the
// order stable: analytics and confirmation percentages iterate over it.
var ScalePositions = []string{
	"band", "projection", "light", "transmission", "camera", "live",
	"sound", "training_sound", "photography", "stories", "dynamic", "direction",
}

// Scale is a duty roster for one service date. Every position holds an
// optional user id.
type Scale struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description,omitempty"`
	Date        schedule.Date `json:"date"`

	Band          *int64 `json:"band,omitempty"`
	Projection    *int64 `json:"projection,omitempty"`
	Light         *int64 `json:"light,omitempty"`
	Transmission  *int64 `json:"transmission,omitempty"`
	Camera        *int64 `json:"camera,omitempty"`
	Live          *int64 `json:"live,omitempty"`
	Sound         *int64 `json:"sound,omitempty"`
	TrainingSound *int64 `json:"training_sound,omitempty"`
	Photography   *int64 `json:"photography,omitempty"`
	Stories       *int64 `json:"stories,omitempty"`
	Dynamic       *int64 `json:"dynamic,omitempty"`
	Direction     *int64 `json:"direction,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Assignments maps position name to assigned user id, skipping empty
// positions.
func (s *Scale) Assignments() map[string]int64 {
	fields := map[string]*int64{
		"band": s.Band, "projection": s.Projection, "light": s.Light,
		"transmission": s.Transmission, "camera": s.Camera, "live": s.Live,
		"sound": s.Sound, "training_sound": s.TrainingSound,
		"photography": s.Photography, "stories": s.Stories,
		"dynamic": s.Dynamic, "direction": s.Direction,
	}
	out := make(map[string]int64)
	for name, id := range fields {
		if id != nil {
			out[name] = *id
		}
	}
	return out
}

// Includes reports whether the user holds any position on the scale.
func (s *Scale) Includes(userID int64) bool {
	for _, id := range s.Assignments() {
		if id == userID {
			return true
		}
	}
	return false
}

type ScaleConfirmation struct {
	ID        int64     `json:"id"`
	ScaleID   int64     `json:"scale_id"`
	UserID    int64     `json:"user_id"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
