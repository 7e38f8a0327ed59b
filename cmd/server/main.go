package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	llmx "github.com/al-jwarizmi/mongodb-agents/agent/llm"
	responderx "github.com/al-jwarizmi/mongodb-agents/agent/responder"
	routerx "github.com/al-jwarizmi/mongodb-agents/agent/router"
	sessionx "github.com/al-jwarizmi/mongodb-agents/agent/session"
	databasex "github.com/al-jwarizmi/mongodb-agents/database"
	configx "github.com/al-jwarizmi/mongodb-agents/pkg/config"
	_ "github.com/al-jwarizmi/mongodb-agents/pkg/logger/autoload"
	serverx "github.com/al-jwarizmi/mongodb-agents/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoCfg := configx.MustNew[databasex.Config]("MONGO")
	store, err := databasex.Connect(ctx, *mongoCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connect failed")
	}
	defer store.Close(context.Background())

	llmCfg := configx.MustNew[llmx.Config]("OPENAI")
	model := llmx.MustNew(*llmCfg)

	enablement := configx.MustNew[responderx.Enablement]("")
	router, err := routerx.New(model, enablement.Kinds(), routerx.Config{
		Temperature: llmCfg.RouterTemperature,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router init failed")
	}

	sessCfg := configx.MustNew[sessionx.Config]("SESSION")
	sessCfg.Temperature = llmCfg.Temperature
	orch := sessionx.New(store, model, router, *sessCfg)

	srvCfg := configx.MustNew[serverx.Config]("SERVER")
	srv := serverx.New(orch, *srvCfg)
	if err := srv.Run(ctx, *srvCfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
