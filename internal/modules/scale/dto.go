package scale

import (
	"fmt"

	"congrego/internal/domain"
	"congrego/internal/schedule"
)

type CreateScaleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date" binding:"required"` // DD/MM/YYYY

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
}

func (r CreateScaleRequest) toDomain() (*domain.Scale, error) {
	date, err := schedule.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	return &domain.Scale{
		Name:          r.Name,
		Description:   r.Description,
		Date:          date,
		Band:          r.Band,
		Projection:    r.Projection,
		Light:         r.Light,
		Transmission:  r.Transmission,
		Camera:        r.Camera,
		Live:          r.Live,
		Sound:         r.Sound,
		TrainingSound: r.TrainingSound,
		Photography:   r.Photography,
		Stories:       r.Stories,
		Dynamic:       r.Dynamic,
		Direction:     r.Direction,
	}, nil
}

// UpdateScaleRequest is a patch; position pointers overwrite when present
// (send null to clear a position is not distinguishable from omitted, so
// positions are cleared by assigning 0).
type UpdateScaleRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`

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
}

func (r UpdateScaleRequest) fields() (map[string]any, error) {
	out := map[string]any{}
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.Date != nil {
		date, err := schedule.ParseDate(*r.Date)
		if err != nil {
			return nil, err
		}
		out["date"] = date.ISO()
	}

	setPos := func(col string, v *int64) {
		if v == nil {
			return
		}
		if *v == 0 {
			out[col] = nil // unassign
		} else {
			out[col] = *v
		}
	}
	setPos("band", r.Band)
	setPos("projection", r.Projection)
	setPos("light", r.Light)
	setPos("transmission", r.Transmission)
	setPos("camera", r.Camera)
	setPos("live", r.Live)
	setPos("sound", r.Sound)
	setPos("training_sound", r.TrainingSound)
	setPos("photography", r.Photography)
	setPos("stories", r.Stories)
	setPos("dynamic", r.Dynamic)
	setPos("direction", r.Direction)
	return out, nil
}

type ConfirmRequest struct {
	ScaleID   int64 `json:"scale_id" binding:"required"`
	Confirmed *bool `json:"confirmed" binding:"required"`
}

// ConfirmationSummary aggregates how much of a scale's crew confirmed.
type ConfirmationSummary struct {
	Assigned   int    `json:"assigned"`
	Confirmed  int    `json:"confirmed"`
	Declined   int    `json:"declined"`
	Pending    int    `json:"pending"`
	Percentage string `json:"percentage"`
}

type ScaleResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Date        string           `json:"date"` // DD/MM/YYYY
	DayOfWeek   string           `json:"day_of_week"`
	Positions   map[string]int64 `json:"positions"`

	Confirmations *ConfirmationSummary `json:"confirmations,omitempty"`
	CreatedAt     string               `json:"created_at"`
}

func toScaleResponse(s *domain.Scale, confirmations map[int64]bool) ScaleResponse {
	resp := ScaleResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Date:        s.Date.String(),
		DayOfWeek:   s.Date.Weekday().String()[:3],
		Positions:   s.Assignments(),
		CreatedAt:   s.CreatedAt.Format("2006-01-02"),
	}
	if confirmations != nil {
		resp.Confirmations = summarize(s, confirmations)
	}
	return resp
}

// summarize counts confirmations against the distinct users assigned to
// the scale. Unassigned positions do not dilute the percentage.
func summarize(s *domain.Scale, confirmations map[int64]bool) *ConfirmationSummary {
	assigned := map[int64]bool{}
	for _, userID := range s.Assignments() {
		assigned[userID] = true
	}

	sum := &ConfirmationSummary{Assigned: len(assigned)}
	for userID := range assigned {
		answered, ok := confirmations[userID]
		switch {
		case !ok:
			sum.Pending++
		case answered:
			sum.Confirmed++
		default:
			sum.Declined++
		}
	}

	sum.Percentage = "0.00"
	if sum.Assigned > 0 {
		sum.Percentage = fmt.Sprintf("%.2f", float64(sum.Confirmed)/float64(sum.Assigned)*100)
	}
	return sum
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}
