// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/workspaces/cmd/app/commands"
)

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Multi-tenant workspace service with encrypted credentials",
		Version: "1.0.0",
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "create-credential-key",
				Usage: "Generate a new credential encryption key",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:    "version",
						Aliases: []string{"v"},
						Value:   1,
						Usage:   "Key version for the generated key",
					},
					&cli.StringFlag{
						Name:  "kms-provider",
						Usage: "KMS provider for wrapping the key (e.g., gcpkms, awskms, localsecrets)",
					},
					&cli.StringFlag{
						Name:  "kms-key-uri",
						Usage: "URI of the KMS wrapping key",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateCredentialKey(
						ctx,
						cmd.Uint("version"),
						cmd.String("kms-provider"),
						cmd.String("kms-key-uri"),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
