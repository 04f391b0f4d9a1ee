package room

import (
	"context"
	"testing"
	"time"

	"congrego/internal/domain"
	"congrego/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRoomRepo struct {
	mock.Mock
}

func (m *mockRoomRepo) Create(ctx context.Context, r *domain.Room) error {
	args := m.Called(ctx, r)
	if args.Error(0) == nil {
		r.ID = 1
	}
	return args.Error(0)
}

func (m *mockRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *mockRoomRepo) ListAll(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *mockRoomRepo) SearchByName(ctx context.Context, name string) ([]domain.Room, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *mockRoomRepo) UpdateFields(ctx context.Context, id int64, fields map[string]any) (*domain.Room, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *mockRoomRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Create_DefaultsStatus(t *testing.T) {
	repo := new(mockRoomRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, 5*time.Second)
	room, err := svc.Create(context.Background(), CreateRoomRequest{Name: "Main Hall", Size: 120})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, room.Status)
	assert.Equal(t, "Main Hall", room.Name)
}

func TestService_Update_PartialFields(t *testing.T) {
	repo := new(mockRoomRepo)
	repo.On("UpdateFields", mock.Anything, int64(2), map[string]any{"size": 40}).
		Return(&domain.Room{ID: 2, Name: "Annex", Size: 40}, nil)

	svc := NewService(repo, 5*time.Second)
	size := 40
	room, err := svc.Update(context.Background(), 2, UpdateRoomRequest{Size: &size})

	assert.NoError(t, err)
	assert.Equal(t, 40, room.Size)
	repo.AssertExpectations(t)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := new(mockRoomRepo)
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, repository.ErrNotFound)

	svc := NewService(repo, 5*time.Second)
	_, err := svc.GetByID(context.Background(), 9)

	assert.ErrorIs(t, err, ErrRoomNotFound)
}
