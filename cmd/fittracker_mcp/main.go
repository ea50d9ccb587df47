// Package main runs the fittracker MCP server over stdio, for local MCP clients.
// The HTTP backend serves the same tools at /mcp.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/2beens/fittracker/internal"
	"github.com/2beens/fittracker/internal/cache"
	"github.com/2beens/fittracker/internal/config"
	fitnessmcp "github.com/2beens/fittracker/internal/fitness/mcp"
	"github.com/2beens/fittracker/internal/fitness/tracker"
	"github.com/2beens/fittracker/internal/telemetry/metrics"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("location: %v", err)
	}

	ctx := context.Background()
	storage, err := internal.OpenStorage(ctx, internal.OpenStorageParams{
		Config:     cfg,
		DBUser:     os.Getenv("FITTRACKER_DB_USER"),
		DBPassword: os.Getenv("FITTRACKER_DB_PASS"),
	})
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer storage.Close()

	// read only process: events are not published and the cache lives as long as the session
	params := storage.ServiceParams()
	params.Cache = cache.NewFreeCache(cfg.FreecacheSizeMB)
	params.CacheTTL = 5 * time.Minute
	params.MetricsManager = metrics.NewManager("fittracker", "mcp", prometheus.NewRegistry())
	params.Location = loc
	service := tracker.NewService(params)
	if err := service.Init(ctx); err != nil {
		log.Fatalf("init tracker: %v", err)
	}

	server := fitnessmcp.NewServer(service)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
