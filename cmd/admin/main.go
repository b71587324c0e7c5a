// Admin CLI for moderation chores: ban or unban an account and dump a
// room's message history.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"campuslink/backend/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: os.Getenv("REDIS_ADDR")})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	storageSvc := storage.NewStorageService(db, rdb)

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <ban|unban|history> [args]")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ban":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin ban <email> [duration_in_hours]")
			os.Exit(1)
		}
		email := os.Args[2]
		var duration time.Duration
		if len(os.Args) > 3 {
			hours, err := strconv.Atoi(os.Args[3])
			if err != nil {
				fmt.Println("Invalid duration. Please provide an integer.")
				os.Exit(1)
			}
			duration = time.Duration(hours) * time.Hour
		}
		if err := storageSvc.BanUser(email, duration); err != nil {
			log.Fatalf("Error banning user: %v", err)
		}
		fmt.Printf("User %s has been banned.\n", email)

	case "unban":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin unban <email>")
			os.Exit(1)
		}
		email := os.Args[2]
		if err := storageSvc.UnbanUser(email); err != nil {
			log.Fatalf("Error unbanning user: %v", err)
		}
		fmt.Printf("User %s has been unbanned.\n", email)

	case "history":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin history <room_id>")
			os.Exit(1)
		}
		roomID := os.Args[2]
		messages, err := storageSvc.GetRoomHistory(roomID)
		if err != nil {
			log.Fatalf("Error loading history: %v", err)
		}
		for _, msg := range messages {
			seen := " "
			if msg.Seen {
				seen = "✓"
			}
			fmt.Printf("[%s] %s %s: %s\n", msg.Timestamp.Format(time.RFC3339), seen, msg.SenderEmail, msg.Content)
		}

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}
