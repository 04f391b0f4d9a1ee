package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"congrego/internal/config"
	"congrego/internal/database"
	"congrego/internal/domain"
	"congrego/internal/repository"
	"congrego/internal/schedule"
)

// Seeds a development database with an admin account, a couple of rooms
// and one recurring booking. Safe to run more than once: existing rows
// are left alone.
func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	rooms := repository.NewRoomRepository(db)
	bookings := repository.NewBookingRepository(db)

	admin, err := users.GetByEmail(ctx, "admin@congrego.local")
	if err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		admin = &domain.User{
			Name:         "Administrator",
			Email:        "admin@congrego.local",
			Role:         domain.RoleAdmin,
			PasswordHash: string(hash),
		}
		if err := users.Create(ctx, admin); err != nil {
			log.Fatal(err)
		}
		log.Println("created admin@congrego.local / admin123")
	}

	existing, err := rooms.ListAll(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if len(existing) == 0 {
		hall := &domain.Room{Name: "Main Hall", Size: 200, Status: domain.RoomAvailable}
		annex := &domain.Room{Name: "Annex", Size: 40, Status: domain.RoomAvailable}
		for _, r := range []*domain.Room{hall, annex} {
			if err := rooms.Create(ctx, r); err != nil {
				log.Fatal(err)
			}
		}

		start, _ := schedule.ParseTime("19:00")
		end, _ := schedule.ParseTime("21:00")
		rehearsal := &domain.Booking{
			Description: "Choir rehearsal",
			RoomID:      annex.ID,
			Repeat:      schedule.RepeatWeek,
			RepeatDay:   3, // Wednesday
			StartTime:   start,
			EndTime:     end,
			UserID:      admin.ID,
		}
		if err := bookings.Create(ctx, rehearsal); err != nil {
			log.Fatal(err)
		}
		log.Println("seeded rooms and a weekly rehearsal")
	}
}
