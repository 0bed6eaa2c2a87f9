package main

import (
	"log"

	"yashubustudio/wastesorter/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("wastesorter: %v", err)
	}
}
