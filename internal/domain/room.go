package domain

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomMaintenance RoomStatus = "maintenance"
	RoomInactive    RoomStatus = "inactive"
)

type Room struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name" validate:"required"`
	Size        int        `json:"size,omitempty"`
	Description string     `json:"description,omitempty"`
	Exclusive   bool       `json:"exclusive"`
	Status      RoomStatus `json:"status,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type RoomSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Size int    `json:"size,omitempty"`
}

func (r *Room) Summary() RoomSummary {
	return RoomSummary{ID: r.ID, Name: r.Name, Size: r.Size}
}
