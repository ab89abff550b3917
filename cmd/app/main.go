package main

import (
	"flag"
	"log"
	"os"

	"Jyotish/internal/di"
	"Jyotish/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s backend=%s ephemeris=[%d,%d]",
		cfg.Environment, cfg.Backend.Type, cfg.Ephemeris.MinYear, cfg.Ephemeris.MaxYear)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
