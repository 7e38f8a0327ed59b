package main

import (
	"context"
	"flag"

	"github.com/rs/zerolog/log"

	databasex "github.com/al-jwarizmi/mongodb-agents/database"
	configx "github.com/al-jwarizmi/mongodb-agents/pkg/config"
	_ "github.com/al-jwarizmi/mongodb-agents/pkg/logger/autoload"
)

func main() {
	// Parsed by the config loader together with its -env flag.
	reset := flag.Bool("reset", false, "drop products and reviews before seeding")

	ctx := context.Background()

	mongoCfg := configx.MustNew[databasex.Config]("MONGO")
	store, err := databasex.Connect(ctx, *mongoCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connect failed")
	}
	defer store.Close(context.Background())

	if *reset {
		if err := store.Reset(ctx); err != nil {
			log.Fatal().Err(err).Msg("reset failed")
		}
		log.Info().Msg("dropped products and reviews")
	}

	if err := databasex.Seed(ctx, store); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}
