package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"anonchat/backend/internal/config"
	"anonchat/backend/internal/moderation"
	"anonchat/backend/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "user"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "anonchatdb"),
		envOr("DB_PORT", "5432"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	s := storage.NewStorageService(db, rdb)
	mod := moderation.NewService(s)

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "reports":
		reports, err := s.ListPendingReports()
		if err != nil {
			log.Fatalf("Error listing reports: %v", err)
		}
		if len(reports) == 0 {
			fmt.Println("No pending reports.")
			return
		}
		for _, r := range reports {
			fmt.Printf("%s  severity=%-4d target=%s reporter=%s reason=%q\n",
				r.ReportID, r.Severity, r.TargetID, r.ReporterID, r.Reason)
		}

	case "resolve":
		if len(os.Args) != 3 {
			usage()
		}
		// The CLI acts without a reviewing admin profile, so no block-list
		// side effect here.
		if err := mod.Resolve("", os.Args[2], false); err != nil {
			log.Fatalf("Error resolving report: %v", err)
		}
		fmt.Printf("Report %s resolved.\n", os.Args[2])

	case "dismiss":
		if len(os.Args) != 3 {
			usage()
		}
		if err := mod.Dismiss("", os.Args[2]); err != nil {
			log.Fatalf("Error dismissing report: %v", err)
		}
		fmt.Printf("Report %s dismissed.\n", os.Args[2])

	case "ban":
		if len(os.Args) < 3 {
			usage()
		}
		uid := os.Args[2]
		duration := config.DefaultBanDuration
		if len(os.Args) > 3 {
			hours, err := strconv.Atoi(os.Args[3])
			if err != nil || hours <= 0 {
				fmt.Println("Invalid duration. Please provide a positive integer of hours.")
				os.Exit(1)
			}
			duration = time.Duration(hours) * time.Hour
			if duration > config.MaxBanDuration {
				duration = config.MaxBanDuration
			}
		}
		if err := s.BanUser(uid, duration); err != nil {
			log.Fatalf("Error banning user: %v", err)
		}
		fmt.Printf("User %s banned for %s.\n", uid, duration)

	case "unban":
		if len(os.Args) != 3 {
			usage()
		}
		if err := s.UnbanUser(os.Args[2]); err != nil {
			log.Fatalf("Error unbanning user: %v", err)
		}
		fmt.Printf("User %s unbanned.\n", os.Args[2])

	default:
		usage()
	}
}

func usage() {
	fmt.Println(`Usage: admin <command> [args]

Commands:
  reports                  list pending reports (worst first)
  resolve <report_id>      mark a report resolved
  dismiss <report_id>      mark a report dismissed
  ban <uid> [hours]        ban an identity (default 24h)
  unban <uid>              lift a ban early`)
	os.Exit(1)
}
