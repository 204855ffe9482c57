package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coachdesk/coachdesk-backend/internal/config"
	"github.com/coachdesk/coachdesk-backend/internal/database"
	"github.com/coachdesk/coachdesk-backend/internal/logger"
	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/coachdesk/coachdesk-backend/internal/repository"
	"github.com/coachdesk/coachdesk-backend/internal/service"
)

// Seeds a demo roster across classes 9-12 so the fee and attendance screens
// have something to show on a fresh install.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentRepo := repository.NewStudentRepository(pool)
	studentService := service.NewStudentService(studentRepo)

	names := []string{
		"Aarav Sharma", "Diya Patel", "Vihaan Gupta", "Ananya Singh", "Arjun Mehta",
		"Ishita Verma", "Kabir Joshi", "Meera Iyer", "Rohan Nair", "Sanya Kapoor",
		"Aditya Rao", "Priya Desai", "Karan Malhotra", "Nisha Reddy", "Varun Kulkarni",
		"Tanvi Agarwal", "Yash Chauhan", "Pooja Mishra", "Dev Trivedi", "Riya Saxena",
		"Harsh Pandey", "Sneha Bhatt", "Nikhil Menon", "Aisha Khan", "Raghav Sinha",
		"Kavya Pillai", "Siddharth Bose", "Neha Chopra", "Aman Srivastava", "Shruti Dubey",
	}

	classes := []string{"9", "10", "11", "12"}
	boards := []string{"CBSE", "ICSE", "State"}
	streams := []string{"", "", "Science", "Commerce"}
	fees := []int64{40000, 45000, 55000, 60000}

	fmt.Printf("=== Seeding %d Students ===\n", len(names))

	created := 0
	for i, name := range names {
		ci := i % len(classes)

		email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
		req := &model.CreateStudentRequest{
			Name:        name,
			Mobile:      fmt.Sprintf("98%08d", 10000000+i),
			Email:       email,
			Class:       classes[ci],
			Board:       boards[i%len(boards)],
			Stream:      streams[ci],
			TotalFee:    fees[ci],
			FeeDiscount: int64(i%3) * 2000,
			ParentName:  "Parent of " + name,
			Status:      model.StatusActive,
		}

		student, err := studentService.Create(ctx, req)
		if err != nil {
			log.Warn().Err(err).Str("name", name).Msg("Skipping student")
			continue
		}
		created++
		fmt.Printf("  [%2d] %s (class %s, fee %d)\n", student.ID, student.Name, student.Class, student.TotalFee)
	}

	fmt.Printf("Done. Created %d of %d students.\n", created, len(names))
}
