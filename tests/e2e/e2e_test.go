package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"congrego/internal/database"
	"congrego/internal/domain"
	"congrego/internal/middleware"
	"congrego/internal/modules/auth"
	"congrego/internal/modules/booking"
	"congrego/internal/modules/member"
	"congrego/internal/modules/room"
	"congrego/internal/modules/scale"
	"congrego/internal/modules/stats"
	"congrego/internal/modules/user"
	jwtsvc "congrego/internal/pkg/jwt"
	"congrego/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testSuite struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwtsvc.Service

	adminToken string
	userToken  string
	adminID    int64
	userID     int64
}

type envelope struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   *errorDetail   `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func setupSuite(t *testing.T) *testSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	scaleRepo := repository.NewScaleRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	timeout := 5 * time.Second

	r := gin.New()
	r.Use(middleware.Authenticate(j))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	v1 := r.Group("/api/v1")
	auth.NewHandler(auth.NewService(userRepo, j, timeout)).RegisterRoutes(v1)
	booking.NewHandler(booking.NewService(bookingRepo, roomRepo, nil, timeout)).RegisterRoutes(v1)
	room.NewHandler(room.NewService(roomRepo, timeout)).RegisterRoutes(v1)
	member.NewHandler(member.NewService(memberRepo, timeout)).RegisterRoutes(v1)
	scale.NewHandler(scale.NewService(scaleRepo, timeout)).RegisterRoutes(v1)
	user.NewHandler(user.NewService(userRepo, timeout)).RegisterRoutes(v1)
	stats.NewHandler(stats.NewService(roomRepo, bookingRepo, userRepo, memberRepo, timeout)).RegisterRoutes(v1)

	suite := &testSuite{router: r, db: db, jwt: j}
	suite.seedUsers(t, userRepo)
	return suite
}

func (s *testSuite) seedUsers(t *testing.T, users *repository.UserRepository) {
	t.Helper()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &domain.User{Name: "Admin", Email: "admin@test.local", Role: domain.RoleAdmin, PasswordHash: string(hash)}
	require.NoError(t, users.Create(ctx, admin))
	s.adminID = admin.ID

	regular := &domain.User{Name: "Regular", Email: "user@test.local", Role: domain.RoleUser, PasswordHash: string(hash)}
	require.NoError(t, users.Create(ctx, regular))
	s.userID = regular.ID

	s.adminToken, err = s.jwt.GenerateToken(admin.ID, string(admin.Role))
	require.NoError(t, err)
	s.userToken, err = s.jwt.GenerateToken(regular.ID, string(regular.Role))
	require.NoError(t, err)
}

func (s *testSuite) request(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "text/plain; charset=utf-8" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func (s *testSuite) createRoom(t *testing.T, name string) int64 {
	t.Helper()
	w, env := s.request(t, http.MethodPost, "/api/v1/rooms", s.adminToken, gin.H{
		"name": name, "size": 50,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	roomData := env.Data["room"].(map[string]any)
	return int64(roomData["id"].(float64))
}

func TestPing(t *testing.T) {
	s := setupSuite(t)
	w, _ := s.request(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestAuthFlow(t *testing.T) {
	s := setupSuite(t)

	// admin registers a new user
	w, env := s.request(t, http.MethodPost, "/api/v1/auth/register", s.adminToken, gin.H{
		"name": "New Member", "email": "member@test.local", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, env.Data["token"])

	// a non-admin may not
	w, env = s.request(t, http.MethodPost, "/api/v1/auth/register", s.userToken, gin.H{
		"name": "Intruder", "email": "intruder@test.local", "password": "secret123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	// the new user can log in
	w, env = s.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "member@test.local", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := env.Data["token"].(string)

	// and read their profile
	w, env = s.request(t, http.MethodGet, "/api/v1/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := env.Data["user"].(map[string]any)
	assert.Equal(t, "member@test.local", profile["email"])

	// wrong password is a 401
	w, env = s.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "member@test.local", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
}

func TestBookingConflictFlow(t *testing.T) {
	s := setupSuite(t)
	roomID := s.createRoom(t, "Main Hall")

	// R1 scenario: 10/06/2024 14:00-15:00 booked first
	w, env := s.request(t, http.MethodPost, "/api/v1/bookings", s.userToken, gin.H{
		"description": "service", "room_id": roomID,
		"date": "10/06/2024", "start_time": "14:00", "end_time": "15:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	first := env.Data["booking"].(map[string]any)
	firstID := int64(first["id"].(float64))

	// overlapping attempt is rejected with the offender's id
	w, env = s.request(t, http.MethodPost, "/api/v1/bookings", s.userToken, gin.H{
		"description": "rehearsal", "room_id": roomID,
		"date": "10/06/2024", "start_time": "14:30", "end_time": "15:30",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "BOOKING_CONFLICT", env.Error.Code)
	details := env.Error.Details.(map[string]any)
	ids := details["conflicting_ids"].([]any)
	assert.Equal(t, float64(firstID), ids[0].(float64))

	// back-to-back booking is fine (half-open intervals)
	w, _ = s.request(t, http.MethodPost, "/api/v1/bookings", s.userToken, gin.H{
		"description": "cleanup", "room_id": roomID,
		"date": "10/06/2024", "start_time": "15:00", "end_time": "16:00",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// next day is fine too
	w, _ = s.request(t, http.MethodPost, "/api/v1/bookings", s.userToken, gin.H{
		"description": "rehearsal", "room_id": roomID,
		"date": "11/06/2024", "start_time": "14:30", "end_time": "15:30",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// a weekly booking on Monday (10/06/2024 is a Monday) collides with
	// the dated booking's interval
	w, env = s.request(t, http.MethodPost, "/api/v1/bookings", s.userToken, gin.H{
		"description": "weekly prayer", "room_id": roomID,
		"repeat": "week", "day_repeat": 1,
		"start_time": "14:30", "end_time": "15:30",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// invalid interval is a 400
	w, env = s.request(t, http.MethodPost, "/api/v1/bookings", s.userToken, gin.H{
		"description": "backwards", "room_id": roomID,
		"date": "12/06/2024", "start_time": "15:00", "end_time": "14:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INTERVAL", env.Error.Code)
}

func TestBookingUpdateRevalidates(t *testing.T) {
	s := setupSuite(t)
	roomID := s.createRoom(t, "Annex")

	w, env := s.request(t, http.MethodPost, "/api/v1/bookings", s.userToken, gin.H{
		"description": "first", "room_id": roomID,
		"date": "10/06/2024", "start_time": "10:00", "end_time": "11:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	firstID := int64(env.Data["booking"].(map[string]any)["id"].(float64))

	w, env = s.request(t, http.MethodPost, "/api/v1/bookings", s.userToken, gin.H{
		"description": "second", "room_id": roomID,
		"date": "10/06/2024", "start_time": "12:00", "end_time": "13:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	secondID := int64(env.Data["booking"].(map[string]any)["id"].(float64))

	// shrinking the first booking against itself works (self excluded)
	w, _ = s.request(t, http.MethodPut, fmt.Sprintf("/api/v1/bookings/%d", firstID), s.adminToken, gin.H{
		"end_time": "10:30",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// moving it onto the second booking does not
	w, env = s.request(t, http.MethodPut, fmt.Sprintf("/api/v1/bookings/%d", firstID), s.adminToken, gin.H{
		"start_time": "12:30", "end_time": "13:30",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	details := env.Error.Details.(map[string]any)
	ids := details["conflicting_ids"].([]any)
	assert.Equal(t, float64(secondID), ids[0].(float64))

	// non-admins cannot update at all
	w, _ = s.request(t, http.MethodPut, fmt.Sprintf("/api/v1/bookings/%d", firstID), s.userToken, gin.H{
		"description": "hijack",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingCalendar(t *testing.T) {
	s := setupSuite(t)
	roomID := s.createRoom(t, "Chapel")

	w, _ := s.request(t, http.MethodPost, "/api/v1/bookings", s.userToken, gin.H{
		"description": "weekly rehearsal", "room_id": roomID,
		"repeat": "week", "day_repeat": 3,
		"start_time": "19:00", "end_time": "21:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := s.request(t, http.MethodGet, "/api/v1/bookings/calendar?month=6&year=2024", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	entries := env.Data["calendar"].([]any)
	require.Len(t, entries, 4) // Wednesdays: 05, 12, 19, 26
	firstEntry := entries[0].(map[string]any)
	assert.Equal(t, "05/06/2024", firstEntry["date"])
	assert.Equal(t, "Wed", firstEntry["day_of_week"])
}

func TestMemberCRUDAndAnalytics(t *testing.T) {
	s := setupSuite(t)

	w, env := s.request(t, http.MethodPost, "/api/v1/members", s.adminToken, gin.H{
		"full_name": "Maria Silva", "birth_date": "15/03/1990", "gender": "female",
		"phone": "11999990000", "email": "maria@test.local",
		"city": "Recife", "state": "PE", "marital_status": "married",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	memberID := int64(env.Data["member"].(map[string]any)["id"].(float64))

	// impossible date rejected
	w, env = s.request(t, http.MethodPost, "/api/v1/members", s.adminToken, gin.H{
		"full_name": "Ghost", "birth_date": "31/02/1990", "gender": "male",
		"phone": "1", "email": "ghost@test.local",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE", env.Error.Code)

	// paginated listing
	w, env = s.request(t, http.MethodGet, "/api/v1/members?page=1&page_size=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	pagination := env.Data["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["total"])

	// filter by city
	w, env = s.request(t, http.MethodPost, "/api/v1/members/filter", "", gin.H{
		"field": "city", "operator": "ilike", "value": "%recife%",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["members"].([]any), 1)

	// filter outside the whitelist is a 400
	w, env = s.request(t, http.MethodPost, "/api/v1/members/filter", "", gin.H{
		"field": "password", "operator": "eq", "value": "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FILTER", env.Error.Code)

	// analytics is admin-only
	w, _ = s.request(t, http.MethodGet, "/api/v1/members/analytics", s.userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.request(t, http.MethodGet, "/api/v1/members/analytics", s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), env.Data["total"])

	// update and delete
	w, _ = s.request(t, http.MethodPut, fmt.Sprintf("/api/v1/members/%d", memberID), s.adminToken, gin.H{
		"phone": "11888887777",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/members/%d", memberID), s.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestScaleFlow(t *testing.T) {
	s := setupSuite(t)

	w, env := s.request(t, http.MethodPost, "/api/v1/scales", s.adminToken, gin.H{
		"name": "Culto de Domingo", "date": "16/06/2024",
		"sound": s.userID, "band": s.adminID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	scaleID := int64(env.Data["scale"].(map[string]any)["id"].(float64))

	// assigned user confirms
	w, env = s.request(t, http.MethodPost, "/api/v1/scales/confirm", s.userToken, gin.H{
		"scale_id": scaleID, "confirmed": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// listing carries the confirmation summary
	w, env = s.request(t, http.MethodGet, "/api/v1/scales", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	scales := env.Data["scales"].([]any)
	require.Len(t, scales, 1)
	sum := scales[0].(map[string]any)["confirmations"].(map[string]any)
	assert.Equal(t, float64(2), sum["assigned"])
	assert.Equal(t, float64(1), sum["confirmed"])
	assert.Equal(t, "50.00", sum["percentage"])

	// my scales
	w, env = s.request(t, http.MethodGet, "/api/v1/scales/my", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["scales"].([]any), 1)

	// an outsider cannot confirm
	w, env = s.request(t, http.MethodPost, "/api/v1/auth/register", s.adminToken, gin.H{
		"name": "Outsider", "email": "outsider@test.local", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	outsiderToken := env.Data["token"].(string)

	w, env = s.request(t, http.MethodPost, "/api/v1/scales/confirm", outsiderToken, gin.H{
		"scale_id": scaleID, "confirmed": true,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "NOT_ON_SCALE", env.Error.Code)

	// duplicate keeps positions, suffixes the name
	w, env = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/scales/duplicate/%d", scaleID), s.adminToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	dup := env.Data["scale"].(map[string]any)
	assert.Equal(t, "Culto de Domingo (duplicado)", dup["name"])
}

func TestUserAdministration(t *testing.T) {
	s := setupSuite(t)

	// admin sees both seeded accounts
	w, env := s.request(t, http.MethodGet, "/api/v1/users", s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["users"].([]any), 2)

	// a regular user does not
	w, env = s.request(t, http.MethodGet, "/api/v1/users", s.userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	// promote the regular account
	w, env = s.request(t, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", s.userID), s.adminToken, gin.H{
		"role": "admin",
	})
	require.Equal(t, http.StatusOK, w.Code)
	promoted := env.Data["user"].(map[string]any)
	assert.Equal(t, "admin", promoted["role"])

	// a role outside the enum is rejected
	w, env = s.request(t, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", s.userID), s.adminToken, gin.H{
		"role": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	// fetch and delete
	w, env = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", s.userID), s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", s.userID), s.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", s.userID), s.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestStatsOverview(t *testing.T) {
	s := setupSuite(t)
	roomID := s.createRoom(t, "Main Hall")

	today := time.Now().Format("02/01/2006")
	w, _ := s.request(t, http.MethodPost, "/api/v1/bookings", s.userToken, gin.H{
		"description": "today's service", "room_id": roomID,
		"date": today, "start_time": "09:00", "end_time": "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := s.request(t, http.MethodGet, "/api/v1/stats", s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), env.Data["rooms"])
	assert.Equal(t, float64(1), env.Data["bookings"])
	assert.Equal(t, float64(2), env.Data["users"])
	assert.Equal(t, float64(1), env.Data["bookings_last_7_days"])

	w, _ = s.request(t, http.MethodGet, "/api/v1/stats", s.userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTodayWeekMonthListings(t *testing.T) {
	s := setupSuite(t)
	roomID := s.createRoom(t, "Chapel")

	// daily recurrence shows up in today's listing regardless of date
	w, _ := s.request(t, http.MethodPost, "/api/v1/bookings", s.userToken, gin.H{
		"description": "morning prayer", "room_id": roomID,
		"repeat": "day", "start_time": "06:00", "end_time": "07:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := s.request(t, http.MethodGet, "/api/v1/bookings/today", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["bookings"].([]any), 1)

	// but not in the weekly recurrence listing
	w, env = s.request(t, http.MethodGet, "/api/v1/bookings/week", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["bookings"].([]any), 0)
}
