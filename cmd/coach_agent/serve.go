package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-coach/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long:  "Serves the engine over REST. When ACCESS_CODE_HASH is set, all endpoints except /auth/login and /health require a bearer token issued by the login exchange; otherwise the server runs open for local development.",
	RunE:  runServe,
}

var (
	serveConfigPath string
	servePort       int
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (default 8080 or $PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	state, closeState, err := openState(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeState()

	client := newCompleter(ctx, cfg)
	defer func() { _ = client.Close() }()

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessCodeHash: os.Getenv("ACCESS_CODE_HASH"),
		AnalyzeDwell:   cfg.AnalyzeDwell(),
	}, state, client)
	if err != nil {
		return err
	}

	return srv.Start()
}
