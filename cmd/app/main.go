// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/scholarvault/scholarvault/cmd/app/commands"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "scholarvault",
		Usage:   "Institutional document repository backend",
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
					return commands.RunMigrations()
				},
			},
			{
				Name:  "create-user",
				Usage: "Create an account that can authenticate against the API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "name",
						Aliases: []string{"n"},
						Usage:   "Display name",
					},
					&cli.StringFlag{
						Name:    "email",
						Aliases: []string{"e"},
						Usage:   "Account email, used as the principal identity",
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password",
					},
					&cli.StringFlag{
						Name:    "role",
						Aliases: []string{"r"},
						Value:   "student",
						Usage:   "Account role (student, faculty, staff, admin)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateUser(
						ctx,
						cmd.String("name"),
						cmd.String("email"),
						cmd.String("password"),
						cmd.String("role"),
					)
				},
			},
			{
				Name:  "create-document",
				Usage: "Upload an artifact and register its document record",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Path to the artifact file to upload",
					},
					&cli.StringFlag{
						Name:    "title",
						Aliases: []string{"t"},
						Usage:   "Document title",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Catalog category (e.g. thesis, dissertation)",
					},
					&cli.IntFlag{
						Name:  "year",
						Usage: "Publication year",
					},
					&cli.StringFlag{
						Name:  "visibility",
						Value: "campus",
						Usage: "Visibility class (public, campus, embargo, private)",
					},
					&cli.StringFlag{
						Name:  "embargo-until",
						Usage: "Embargo lift instant in RFC 3339, required for embargo visibility",
					},
					&cli.StringFlag{
						Name:  "author",
						Usage: "Author email",
					},
					&cli.StringFlag{
						Name:  "submitter",
						Usage: "Submitter email",
					},
					&cli.StringFlag{
						Name:  "adviser",
						Usage: "Adviser email",
					},
					&cli.StringFlag{
						Name:  "uploader",
						Usage: "Uploader email",
					},
					&cli.StringSliceFlag{
						Name:  "viewer",
						Usage: "Allowed viewer email for private documents (repeatable)",
					},
					&cli.StringFlag{
						Name:  "status",
						Value: "approved",
						Usage: "Review status (pending, approved, rejected)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateDocument(ctx, commands.CreateDocumentInput{
						FilePath:       cmd.String("file"),
						Title:          cmd.String("title"),
						Category:       cmd.String("category"),
						Year:           int(cmd.Int("year")),
						Visibility:     cmd.String("visibility"),
						EmbargoUntil:   cmd.String("embargo-until"),
						AuthorEmail:    cmd.String("author"),
						SubmitterEmail: cmd.String("submitter"),
						AdviserEmail:   cmd.String("adviser"),
						UploaderEmail:  cmd.String("uploader"),
						AllowedViewers: cmd.StringSlice("viewer"),
						Status:         cmd.String("status"),
					})
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
