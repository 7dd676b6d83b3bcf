package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/spigell/careercompass/cmd"
)

func main() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("loading .env: %v", err)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
