// Command cleanup deletes tags that no activity references anymore.
//
// Tags are created lazily and survive activity deletion, so over time unused
// names pile up. This command is a manual maintenance step and is never run
// automatically.
//
// Usage:
//
//	cleanup
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	tag, err := pool.Exec(ctx,
		"DELETE FROM tags WHERE NOT EXISTS (SELECT 1 FROM activity_tags WHERE activity_tags.tag_id = tags.id)",
	)
	if err != nil {
		log.Fatalf("cleanup tags: %v", err)
	}

	fmt.Printf("Deleted %d orphan tags.\n", tag.RowsAffected())
}
