// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles setup operations for configuration and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize configuration, database and migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.SetupDatabase,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:   "spotify",
				Usage:  "Authenticate with Spotify using OAuth2",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SpotifyAuth,
			},
			{
				Name:    "applemusic",
				Aliases: []string{"apple"},
				Usage:   "Authorize Apple Music via MusicKit in the browser",
				Flags:   []cli.Flag{configFlag()},
				Action:  r.AppleMusicAuth,
			},
		},
	}
}

// spotifyCommand handles Spotify library inspection
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "playlists",
				Usage: "List Spotify playlists",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of playlists to return",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SpotifyPlaylists,
			},
			{
				Name:  "tracks",
				Usage: "List tracks in a Spotify playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of tracks to return",
						Value: 100,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SpotifyTracks,
			},
		},
	}
}

// applemusicCommand handles Apple Music library inspection
func applemusicCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "applemusic",
		Aliases: []string{"am", "apple"},
		Usage:   "Apple Music library operations",
		Commands: []*cli.Command{
			{
				Name:  "playlists",
				Usage: "List Apple Music library playlists",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of playlists to return",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.AppleMusicPlaylists,
			},
			{
				Name:  "tracks",
				Usage: "List tracks in an Apple Music library playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of tracks to return",
						Value: 100,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.AppleMusicTracks,
			},
			{
				Name:  "rotation",
				Usage: "Show heavy rotation history",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to return",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.AppleMusicRotation,
			},
		},
	}
}

// syncCommand handles playlist sync operations
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Sync playlists between services",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a full playlist sync from source to target",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist",
						Usage:    "Source playlist name or ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Source service (spotify or applemusic)",
						Value: "spotify",
					},
					&cli.StringFlag{
						Name:  "target",
						Usage: "Target service (spotify or applemusic)",
						Value: "applemusic",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Write unresolved tracks to a CSV report",
					},
					configFlag(),
				},
				Action: r.SyncRun,
			},
			{
				Name:    "ui",
				Aliases: []string{"tui", "interactive"},
				Usage:   "Interactive TUI for playlist sync",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "source",
						Usage: "Source service (spotify or applemusic)",
						Value: "spotify",
					},
					&cli.StringFlag{
						Name:  "target",
						Usage: "Target service (spotify or applemusic)",
						Value: "applemusic",
					},
				},
				Action: r.SyncUI,
			},
		},
	}
}

// historyCommand lists recorded sync runs
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recorded sync runs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of runs to show",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			configFlag(),
		},
		Action: r.History,
	}
}
