package main

import (
	"flag"
	"log"

	"github.com/dsci3d/learning-energy-profile/internal/config"
	"github.com/dsci3d/learning-energy-profile/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	if err := server.Run(cfg); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
