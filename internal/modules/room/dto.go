package room

type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Size        int    `json:"size,omitempty"`
	Description string `json:"description,omitempty"`
	Exclusive   bool   `json:"exclusive"`
	Status      string `json:"status,omitempty" binding:"omitempty,oneof=available maintenance inactive"`
}

type UpdateRoomRequest struct {
	Name        *string `json:"name,omitempty"`
	Size        *int    `json:"size,omitempty"`
	Description *string `json:"description,omitempty"`
	Exclusive   *bool   `json:"exclusive,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=available maintenance inactive"`
}

func (r UpdateRoomRequest) fields() map[string]any {
	out := map[string]any{}
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Size != nil {
		out["size"] = *r.Size
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.Exclusive != nil {
		out["exclusive"] = *r.Exclusive
	}
	if r.Status != nil {
		out["status"] = *r.Status
	}
	return out
}
