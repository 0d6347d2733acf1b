// Command server runs the PlanTracker HTTP API.
package main

import (
	"context"
	"log"

	"github.com/plantracker/plantracker-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
