package main

import (
	"context"
	"log"
	"os"

	qcli "github.com/quirzy/backend/cli"
	"github.com/quirzy/backend/internal/account"
	"github.com/quirzy/backend/internal/deps"
)

func main() {
	cfg, err := deps.Config()
	if err != nil {
		log.Fatal(err)
	}

	st, err := deps.Store(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	redisClient, err := deps.RedisClient(cfg)
	if err != nil {
		log.Fatal(err)
	}

	eventsService, err := deps.EventsService(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer eventsService.Close()

	accounts := account.NewContext(st, deps.AuthStorage(redisClient), eventsService)
	c := qcli.NewContext(st, accounts)

	migrateCommand := newMigrateCommand(c)
	seedAccountsCommand := newSeedAccountsCommand(c)
	deleteAccountCommand := newDeleteAccountCommand(c)

	rootCommand := newRootCommand(migrateCommand, seedAccountsCommand, deleteAccountCommand)

	if err := rootCommand.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
