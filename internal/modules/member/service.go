package member

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"congrego/internal/domain"
	"congrego/internal/pkg/validator"
	"congrego/internal/repository"
)

type Service struct {
	members      MemberRepositoryInterface
	storeTimeout time.Duration
	now          func() time.Time
}

func NewService(members MemberRepositoryInterface, storeTimeout time.Duration) *Service {
	return &Service{members: members, storeTimeout: storeTimeout, now: time.Now}
}

func (s *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

func (s *Service) Create(ctx context.Context, req CreateMemberRequest) (*domain.Member, error) {
	m, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	if fields := validator.Validate(m); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.members.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	m, err := s.members.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) ListPage(ctx context.Context, page, pageSize int) ([]domain.Member, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	members, total, err := s.members.ListPage(ctx, page, pageSize)
	if err != nil {
		return nil, Pagination{}, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return members, Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) Search(ctx context.Context, name string) ([]domain.Member, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.members.SearchByName(ctx, name)
}

func (s *Service) Filter(ctx context.Context, req FilterMembersRequest) ([]domain.Member, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.members.FilterBy(ctx, req.Field, req.Operator, req.Value)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateMemberRequest) (*domain.Member, error) {
	fields, err := req.fields()
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}

	m, err := s.members.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.members.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}

// chartColors is the fixed palette the frontend charts cycle through.
var chartColors = []string{"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF", "#FF9F40"}

var ageRangeLabels = []string{"18-25", "26-35", "36-45", "46-55", "56+"}

// Analytics computes membership distributions: marital status, gender,
// children count, age ranges and city/state, each as chart slices with
// percentages over the whole membership.
func (s *Service) Analytics(ctx context.Context) (*Analytics, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	members, err := s.members.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	total := len(members)
	now := s.now()

	marital := map[string]int{}
	gender := map[string]int{}
	children := map[string]int{}
	city := map[string]int{}
	state := map[string]int{}
	ages := map[string]int{}

	for i := range members {
		m := &members[i]
		marital[m.MaritalStatus]++
		gender[m.Gender]++
		children[fmt.Sprintf("%d filhos", m.ChildrenCount)]++
		if m.City != "" {
			city[m.City]++
		}
		if m.State != "" {
			state[m.State]++
		}

		switch age := m.Age(now); {
		case age >= 18 && age <= 25:
			ages["18-25"]++
		case age >= 26 && age <= 35:
			ages["26-35"]++
		case age >= 36 && age <= 45:
			ages["36-45"]++
		case age >= 46 && age <= 55:
			ages["46-55"]++
		case age >= 56:
			ages["56+"]++
		}
	}

	ageSlices := make([]ChartSlice, 0, len(ageRangeLabels))
	for i, label := range ageRangeLabels {
		ageSlices = append(ageSlices, chartSlice(label, ages[label], total, i))
	}

	return &Analytics{
		Total:    total,
		Marital:  toChartSlices(marital, total),
		Gender:   toChartSlices(gender, total),
		Children: toChartSlices(children, total),
		Age:      ageSlices,
		City:     toChartSlices(city, total),
		State:    toChartSlices(state, total),
	}, nil
}

func chartSlice(label string, value, total, index int) ChartSlice {
	pct := "0.00"
	if total > 0 {
		pct = fmt.Sprintf("%.2f", float64(value)/float64(total)*100)
	}
	return ChartSlice{
		Label:      label,
		Value:      value,
		Percentage: pct,
		Fill:       chartColors[index%len(chartColors)],
	}
}

// toChartSlices renders a count map into sorted slices so the output is
// stable across requests.
func toChartSlices(counts map[string]int, total int) []ChartSlice {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([]ChartSlice, 0, len(labels))
	for i, label := range labels {
		out = append(out, chartSlice(label, counts[label], total, i))
	}
	return out
}
