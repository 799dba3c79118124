package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/achandy/harmony/internal/services"
	"github.com/achandy/harmony/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	var spotifyService services.StreamingService
	var appleMusicService services.StreamingService

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify); err == nil {
			spotifyService = svc
		}
	}

	if config.Credentials.AppleMusic.TeamID != "" && config.Credentials.AppleMusic.KeyID != "" {
		if svc, err := services.NewAppleMusicService(config.Credentials.AppleMusic); err == nil {
			appleMusicService = svc
		} else {
			logger.Warnf("apple music service unavailable: %v", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Spotify:    spotifyService,
		AppleMusic: appleMusicService,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "harmony",
		Usage:    "Sync playlists between Spotify & Apple Music",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
