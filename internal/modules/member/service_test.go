package member

import (
	"context"
	"testing"
	"time"

	"congrego/internal/domain"
	"congrego/internal/repository"
	"congrego/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockMemberRepo struct {
	mock.Mock
}

func (m *mockMemberRepo) Create(ctx context.Context, mem *domain.Member) error {
	args := m.Called(ctx, mem)
	if args.Error(0) == nil {
		mem.ID = 1
	}
	return args.Error(0)
}

func (m *mockMemberRepo) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *mockMemberRepo) ListPage(ctx context.Context, page, pageSize int) ([]domain.Member, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Member), args.Get(1).(int64), args.Error(2)
}

func (m *mockMemberRepo) ListAll(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *mockMemberRepo) SearchByName(ctx context.Context, name string) ([]domain.Member, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *mockMemberRepo) FilterBy(ctx context.Context, field, operator string, value any) ([]domain.Member, error) {
	args := m.Called(ctx, field, operator, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *mockMemberRepo) UpdateFields(ctx context.Context, id int64, fields map[string]any) (*domain.Member, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *mockMemberRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func birthDate(t *testing.T, s string) schedule.Date {
	t.Helper()
	d, err := schedule.ParseDate(s)
	assert.NoError(t, err)
	return d
}

func TestService_Create_RejectsBadBirthDate(t *testing.T) {
	svc := NewService(new(mockMemberRepo), 5*time.Second)

	_, err := svc.Create(context.Background(), CreateMemberRequest{
		FullName:  "Maria Silva",
		BirthDate: "31/02/1990",
		Gender:    "female",
		Phone:     "11999990000",
		Email:     "maria@example.com",
	})

	assert.ErrorIs(t, err, schedule.ErrInvalidDate)
}

func TestService_Create_RejectsInvalidEmail(t *testing.T) {
	svc := NewService(new(mockMemberRepo), 5*time.Second)

	_, err := svc.Create(context.Background(), CreateMemberRequest{
		FullName:  "Maria Silva",
		BirthDate: "15/03/1990",
		Gender:    "female",
		Phone:     "11999990000",
		Email:     "not-an-email",
	})

	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, "email", validation.Fields["Email"])
}

func TestService_ListPage_Pagination(t *testing.T) {
	repo := new(mockMemberRepo)
	repo.On("ListPage", mock.Anything, 2, 10).Return([]domain.Member{{ID: 11}}, int64(25), nil)

	svc := NewService(repo, 5*time.Second)
	members, pagination, err := svc.ListPage(context.Background(), 2, 10)

	assert.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, int64(25), pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.Equal(t, 2, pagination.Page)
}

func TestService_ListPage_ClampsBadInput(t *testing.T) {
	repo := new(mockMemberRepo)
	repo.On("ListPage", mock.Anything, 1, 20).Return([]domain.Member{}, int64(0), nil)

	svc := NewService(repo, 5*time.Second)
	_, pagination, err := svc.ListPage(context.Background(), -3, 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
}

func TestService_Analytics_Distributions(t *testing.T) {
	repo := new(mockMemberRepo)
	repo.On("ListAll", mock.Anything).Return([]domain.Member{
		{FullName: "A", BirthDate: birthDate(t, "15/03/2000"), Gender: "female", MaritalStatus: "single", City: "Recife", State: "PE"},
		{FullName: "B", BirthDate: birthDate(t, "15/03/1980"), Gender: "male", MaritalStatus: "married", City: "Recife", State: "PE", HasChildren: true, ChildrenCount: 2},
		{FullName: "C", BirthDate: birthDate(t, "15/03/1960"), Gender: "male", MaritalStatus: "married", City: "Olinda", State: "PE"},
		{FullName: "D", BirthDate: birthDate(t, "15/03/1995"), Gender: "female", MaritalStatus: "single"},
	}, nil)

	svc := NewService(repo, 5*time.Second)
	svc.now = func() time.Time { return time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC) }

	analytics, err := svc.Analytics(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 4, analytics.Total)

	// marital: married=2, single=2, sorted alphabetically
	assert.Equal(t, "married", analytics.Marital[0].Label)
	assert.Equal(t, 2, analytics.Marital[0].Value)
	assert.Equal(t, "50.00", analytics.Marital[0].Percentage)

	// ages in 2026: 25, 45, 65, 30
	byLabel := map[string]int{}
	for _, s := range analytics.Age {
		byLabel[s.Label] = s.Value
	}
	assert.Equal(t, 1, byLabel["18-25"])
	assert.Equal(t, 1, byLabel["26-35"])
	assert.Equal(t, 1, byLabel["36-45"])
	assert.Equal(t, 1, byLabel["56+"])
	assert.Equal(t, 0, byLabel["46-55"])

	// city skips members without one
	assert.Len(t, analytics.City, 2)
	assert.Equal(t, "Olinda", analytics.City[0].Label)
	assert.Equal(t, "#FF6384", analytics.City[0].Fill)
}

func TestService_Analytics_EmptyMembership(t *testing.T) {
	repo := new(mockMemberRepo)
	repo.On("ListAll", mock.Anything).Return([]domain.Member{}, nil)

	svc := NewService(repo, 5*time.Second)
	analytics, err := svc.Analytics(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, analytics.Total)
	for _, s := range analytics.Age {
		assert.Equal(t, "0.00", s.Percentage)
	}
}

func TestService_Filter_PassesThrough(t *testing.T) {
	repo := new(mockMemberRepo)
	repo.On("FilterBy", mock.Anything, "city", "ilike", "%recife%").
		Return([]domain.Member{{ID: 1, City: "Recife"}}, nil)

	svc := NewService(repo, 5*time.Second)
	members, err := svc.Filter(context.Background(), FilterMembersRequest{
		Field:    "city",
		Operator: "ilike",
		Value:    "%recife%",
	})

	assert.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestService_Update_NotFound(t *testing.T) {
	repo := new(mockMemberRepo)
	repo.On("UpdateFields", mock.Anything, int64(9), mock.Anything).Return(nil, repository.ErrNotFound)

	svc := NewService(repo, 5*time.Second)
	phone := "11888887777"
	_, err := svc.Update(context.Background(), 9, UpdateMemberRequest{Phone: &phone})

	assert.ErrorIs(t, err, ErrMemberNotFound)
}
