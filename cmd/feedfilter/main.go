package main

import (
	"flag"
	"log"

	"feedfilter/internal/app"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to $CONFIG_PATH or configs/config.yaml)")
	flag.Parse()

	if err := app.Run(*configPath); err != nil {
		log.Fatalf("feedfilter: %v", err)
	}
}
