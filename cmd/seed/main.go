// Command seed resets the weekly availability rules to the salon's default
// hours: Tuesday through Friday 9a-7p, Saturday 9a-4p.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type seedRule struct {
	dayOfWeek int
	startTime string
	endTime   string
}

var defaultRules = []seedRule{
	{2, "09:00", "19:00"},
	{3, "09:00", "19:00"},
	{4, "09:00", "19:00"},
	{5, "09:00", "19:00"},
	{6, "09:00", "16:00"},
}

func main() {
	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("begin: %v", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM availability_rules`); err != nil {
		log.Fatalf("clear rules: %v", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM blackouts`); err != nil {
		log.Fatalf("clear blackouts: %v", err)
	}
	for _, r := range defaultRules {
		_, err := tx.Exec(ctx, `
			INSERT INTO availability_rules (id, day_of_week, start_time, end_time)
			VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), r.dayOfWeek, r.startTime, r.endTime)
		if err != nil {
			log.Fatalf("insert rule: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("commit: %v", err)
	}
	fmt.Printf("seeded %d availability rules\n", len(defaultRules))
}
