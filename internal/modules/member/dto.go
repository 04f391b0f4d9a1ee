package member

import (
	"congrego/internal/domain"
	"congrego/internal/schedule"
)

type CreateMemberRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	BirthDate     string `json:"birth_date" binding:"required"` // DD/MM/YYYY
	Gender        string `json:"gender" binding:"required"`
	CPF           string `json:"cpf,omitempty"`
	RG            string `json:"rg,omitempty"`
	Phone         string `json:"phone" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Street        string `json:"street,omitempty"`
	Number        string `json:"number,omitempty"`
	Neighborhood  string `json:"neighborhood,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	CEP           string `json:"cep,omitempty"`
	MotherName    string `json:"mother_name,omitempty"`
	FatherName    string `json:"father_name,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`
	HasChildren   bool   `json:"has_children"`
	ChildrenCount int    `json:"children_count"`
}

func (r CreateMemberRequest) toDomain() (*domain.Member, error) {
	birth, err := schedule.ParseDate(r.BirthDate)
	if err != nil {
		return nil, err
	}
	return &domain.Member{
		FullName:      r.FullName,
		BirthDate:     birth,
		Gender:        r.Gender,
		CPF:           r.CPF,
		RG:            r.RG,
		Phone:         r.Phone,
		Email:         r.Email,
		Street:        r.Street,
		Number:        r.Number,
		Neighborhood:  r.Neighborhood,
		City:          r.City,
		State:         r.State,
		CEP:           r.CEP,
		MotherName:    r.MotherName,
		FatherName:    r.FatherName,
		MaritalStatus: r.MaritalStatus,
		HasChildren:   r.HasChildren,
		ChildrenCount: r.ChildrenCount,
	}, nil
}

type UpdateMemberRequest struct {
	FullName      *string `json:"full_name,omitempty"`
	BirthDate     *string `json:"birth_date,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	CPF           *string `json:"cpf,omitempty"`
	RG            *string `json:"rg,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
	Street        *string `json:"street,omitempty"`
	Number        *string `json:"number,omitempty"`
	Neighborhood  *string `json:"neighborhood,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	CEP           *string `json:"cep,omitempty"`
	MotherName    *string `json:"mother_name,omitempty"`
	FatherName    *string `json:"father_name,omitempty"`
	MaritalStatus *string `json:"marital_status,omitempty"`
	HasChildren   *bool   `json:"has_children,omitempty"`
	ChildrenCount *int    `json:"children_count,omitempty"`
}

func (r UpdateMemberRequest) fields() (map[string]any, error) {
	out := map[string]any{}
	setStr := func(col string, v *string) {
		if v != nil {
			out[col] = *v
		}
	}
	setStr("full_name", r.FullName)
	setStr("gender", r.Gender)
	setStr("cpf", r.CPF)
	setStr("rg", r.RG)
	setStr("phone", r.Phone)
	setStr("email", r.Email)
	setStr("street", r.Street)
	setStr("number", r.Number)
	setStr("neighborhood", r.Neighborhood)
	setStr("city", r.City)
	setStr("state", r.State)
	setStr("cep", r.CEP)
	setStr("mother_name", r.MotherName)
	setStr("father_name", r.FatherName)
	setStr("marital_status", r.MaritalStatus)
	if r.BirthDate != nil {
		birth, err := schedule.ParseDate(*r.BirthDate)
		if err != nil {
			return nil, err
		}
		out["birth_date"] = birth.ISO()
	}
	if r.HasChildren != nil {
		out["has_children"] = *r.HasChildren
	}
	if r.ChildrenCount != nil {
		out["children_count"] = *r.ChildrenCount
	}
	return out, nil
}

type FilterMembersRequest struct {
	Field    string `json:"field" binding:"required"`
	Operator string `json:"operator" binding:"required"`
	Value    any    `json:"value" binding:"required"`
}

type MemberResponse struct {
	ID            int64  `json:"id"`
	FullName      string `json:"full_name"`
	BirthDate     string `json:"birth_date"` // DD/MM/YYYY
	Gender        string `json:"gender"`
	CPF           string `json:"cpf,omitempty"`
	RG            string `json:"rg,omitempty"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Street        string `json:"street,omitempty"`
	Number        string `json:"number,omitempty"`
	Neighborhood  string `json:"neighborhood,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	CEP           string `json:"cep,omitempty"`
	MotherName    string `json:"mother_name,omitempty"`
	FatherName    string `json:"father_name,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`
	HasChildren   bool   `json:"has_children"`
	ChildrenCount int    `json:"children_count"`
	CreatedAt     string `json:"created_at"`
}

func toMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		ID:            m.ID,
		FullName:      m.FullName,
		BirthDate:     m.BirthDate.String(),
		Gender:        m.Gender,
		CPF:           m.CPF,
		RG:            m.RG,
		Phone:         m.Phone,
		Email:         m.Email,
		Street:        m.Street,
		Number:        m.Number,
		Neighborhood:  m.Neighborhood,
		City:          m.City,
		State:         m.State,
		CEP:           m.CEP,
		MotherName:    m.MotherName,
		FatherName:    m.FatherName,
		MaritalStatus: m.MaritalStatus,
		HasChildren:   m.HasChildren,
		ChildrenCount: m.ChildrenCount,
		CreatedAt:     m.CreatedAt.Format("2006-01-02"),
	}
}

func toMemberResponses(members []domain.Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, toMemberResponse(&members[i]))
	}
	return out
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ChartSlice is one labelled segment of a distribution chart.
type ChartSlice struct {
	Label      string `json:"label"`
	Value      int    `json:"value"`
	Percentage string `json:"percentage"`
	Fill       string `json:"fill"`
}

type Analytics struct {
	Total    int          `json:"total"`
	Marital  []ChartSlice `json:"marital"`
	Gender   []ChartSlice `json:"gender"`
	Children []ChartSlice `json:"children"`
	Age      []ChartSlice `json:"age"`
	City     []ChartSlice `json:"city"`
	State    []ChartSlice `json:"state"`
}
