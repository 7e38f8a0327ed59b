package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
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
	ctx := context.Background()

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

	sessionID := uuid.NewString()

	fmt.Println(serverx.Welcome)
	fmt.Println("Type 'quit' to exit, 'clear' to start a new conversation")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		switch strings.ToLower(query) {
		case "quit":
			fmt.Println("\nGoodbye!")
			return
		case "clear":
			orch.ClearConversation(sessionID)
			fmt.Println("\nConversation cleared. Starting fresh!")
			continue
		}

		fmt.Println("\nFrodo is thinking...")
		reply := orch.ProcessQuery(ctx, sessionID, query)
		fmt.Printf("\nFrodo: %s\n", reply)
	}
}
