// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/secretstash/cmd/app/commands"
	"github.com/allisson/secretstash/internal/app"
	"github.com/allisson/secretstash/internal/config"
	secretsUseCase "github.com/allisson/secretstash/internal/secrets/usecase"
)

var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "secretstash",
		Usage:   "Encrypted per-owner secret storage",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				},
			},
			{
				Name:  "create-master-key",
				Usage: "Generate a new master key, optionally wrapped with KMS",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:  "key-version",
						Value: 1,
						Usage:   "Encryption version the key is registered under",
					},
					&cli.StringFlag{
						Name:  "kms-provider",
						Usage: "KMS provider (localsecrets, gcpkms, awskms, azurekeyvault, hashivault)",
					},
					&cli.StringFlag{
						Name:  "kms-key-uri",
						Usage: "KMS key URI used to wrap the master key",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					container := app.NewContainer(config.Load())
					return commands.RunCreateMasterKey(
						ctx,
						container.Engine(),
						container.KMSService(),
						container.Logger(),
						os.Stdout,
						cmd.Uint("key-version"),
						cmd.String("kms-provider"),
						cmd.String("kms-key-uri"),
					)
				},
			},
			secretsCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func secretsCommand() *cli.Command {
	ownerFlag := &cli.StringFlag{
		Name:     "owner",
		Aliases:  []string{"o"},
		Required: true,
		Usage:    "Owner ID the secrets belong to",
	}
	formatFlag := &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   commands.FormatText,
		Usage:   "Output format: 'text' or 'json'",
	}

	return &cli.Command{
		Name:  "secrets",
		Usage: "Manage secrets directly against the configured store",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List an owner's secrets",
				Flags: []cli.Flag{
					ownerFlag,
					formatFlag,
					&cli.BoolFlag{Name: "include-values", Usage: "Decrypt and print secret values"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithSecretUseCase(func(uc secretsUseCase.SecretUseCase) error {
						return commands.RunSecretsList(
							ctx,
							uc,
							os.Stdout,
							cmd.String("owner"),
							cmd.Bool("include-values"),
							cmd.String("format"),
						)
					})
				},
			},
			{
				Name:      "get",
				Usage:     "Show a secret",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					ownerFlag,
					formatFlag,
					&cli.BoolFlag{Name: "include-value", Usage: "Decrypt and print the value"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithSecretUseCase(func(uc secretsUseCase.SecretUseCase) error {
						return commands.RunSecretsGet(
							ctx,
							uc,
							os.Stdout,
							cmd.String("owner"),
							cmd.Args().First(),
							cmd.Bool("include-value"),
							cmd.String("format"),
						)
					})
				},
			},
			{
				Name:      "put",
				Usage:     "Create or update a secret (value read from stdin when --value is empty)",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					ownerFlag,
					formatFlag,
					&cli.StringFlag{Name: "value", Usage: "Secret value"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithSecretUseCase(func(uc secretsUseCase.SecretUseCase) error {
						return commands.RunSecretsPut(
							ctx,
							uc,
							commands.DefaultIO(),
							cmd.String("owner"),
							cmd.Args().First(),
							cmd.String("value"),
							cmd.String("format"),
						)
					})
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a secret",
				ArgsUsage: "<name>",
				Flags:     []cli.Flag{ownerFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithSecretUseCase(func(uc secretsUseCase.SecretUseCase) error {
						return commands.RunSecretsDelete(ctx, uc, os.Stdout, cmd.String("owner"), cmd.Args().First())
					})
				},
			},
		},
	}
}
