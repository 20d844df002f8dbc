package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dimitrije/portal-api/internal/config"
	"github.com/dimitrije/portal-api/internal/database"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Println("Usage: create-tables [max-wait]")
		os.Exit(1)
	}

	maxWait := database.DefaultTableWait
	if len(os.Args) == 2 {
		d, err := time.ParseDuration(os.Args[1])
		if err != nil {
			log.Fatalf("Invalid max wait %q: %v", os.Args[1], err)
		}
		maxWait = d
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create dynamodb client: %v", err)
	}

	created, err := database.EnsureTables(ctx, db.Client, database.Tables(cfg.Tables), maxWait)
	if err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	if len(created) == 0 {
		fmt.Println("All tables already exist")
		return
	}
	for _, name := range created {
		fmt.Printf("Created table %s\n", name)
	}
}
