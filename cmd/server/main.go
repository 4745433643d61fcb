// Package main implements the entry point for the Trililingo API
// server, which serves deterministic daily challenges, tolerant answer
// evaluation, XP scoring, and spaced-repetition scheduling for the
// bundled language content.
package main

import (
	"context"
	"log"
)

func main() {
	ctx := context.Background()

	app, err := newApplication(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.flusher.Start()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
