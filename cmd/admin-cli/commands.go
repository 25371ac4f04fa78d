package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	qcli "github.com/quirzy/backend/cli"
	"github.com/quirzy/backend/internal/account"
	"github.com/urfave/cli/v3"
)

func newMigrateCommand(clictx *qcli.Context) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Migrate the database to the latest version",
		Action: func(ctx context.Context, c *cli.Command) error {
			fmt.Println("Migrating the database to the latest version…")
			if err := clictx.Migrate(ctx); err != nil {
				return err
			}

			fmt.Println("✅ Migration complete!")
			return nil
		},
	}
}

func newSeedAccountsCommand(clictx *qcli.Context) *cli.Command {
	return &cli.Command{
		Name:        "seed-accounts",
		Usage:       "Seed the account table from a JSON file",
		Description: "Seed the account table from a JSON file. It should be a list of `{email, name, password?, quizzes?}` records. A record without a password becomes an external-auth account.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    "The JSON file to seed the database with accounts from.",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			content, err := os.ReadFile(c.String("file"))
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			fmt.Printf("Seeding the database with accounts from %q…\n", c.String("file"))

			var records []qcli.AccountSeedRecord
			if err := json.Unmarshal(content, &records); err != nil {
				return fmt.Errorf("unmarshal account seed records: %w", err)
			}

			if err := clictx.SeedAccounts(ctx, records); err != nil {
				return err
			}

			fmt.Println("✅ Accounts seeded!")
			return nil
		},
	}
}

func newDeleteAccountCommand(clictx *qcli.Context) *cli.Command {
	return &cli.Command{
		Name:        "delete-account",
		Usage:       "Irreversibly delete an account and everything attached to it",
		Description: "Verifies ownership the same way the public endpoint does, then deletes the account, its quizzes, questions, results, settings and challenges in one transaction.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Usage:    "The email of the account to delete.",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "method",
				Usage: "The verification method: \"password\" or \"name\".",
				Value: account.MethodPassword,
			},
			&cli.StringFlag{
				Name:  "password",
				Usage: "The account password attesting the deletion.",
			},
			&cli.StringFlag{
				Name:  "full-name",
				Usage: "The profile name attesting the deletion, for external-auth accounts.",
			},
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "Skip the interactive confirmation.",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			email := c.String("email")

			if !c.Bool("yes") {
				confirmed, err := confirmDeletion(email)
				if err != nil {
					return fmt.Errorf("run confirmation: %w", err)
				}
				if !confirmed {
					fmt.Println("Aborted. Nothing was deleted.")
					return nil
				}
			}

			err := clictx.DeleteAccount(ctx, account.VerifyRequest{
				Email:    email,
				Method:   c.String("method"),
				Password: c.String("password"),
				FullName: c.String("full-name"),
			})
			if err != nil {
				return err
			}

			fmt.Println("✅ Account", email, "and all of its data have been deleted.")
			return nil
		},
	}
}

func newRootCommand(subcommands ...*cli.Command) *cli.Command {
	return &cli.Command{
		Name:     "admin-cli",
		Usage:    "A CLI tool for managing the Quirzy backend.",
		Commands: subcommands,
	}
}
