package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/chimera-battle/internal/api"
	"github.com/ericogr/chimera-battle/internal/battle"
	"github.com/ericogr/chimera-battle/internal/config"
	"github.com/ericogr/chimera-battle/internal/constants"
	"github.com/ericogr/chimera-battle/internal/logging"
	"github.com/ericogr/chimera-battle/internal/service"
	"github.com/ericogr/chimera-battle/internal/version"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		logging.Fatal("Invalid environment", err, nil)
	}
	logging.SetLevel(env.LogLevel)
	logging.Info("starting chimera-battle", logging.Fields{"version": version.Info().String()})

	cfg := loadConfigOrExit(env.ConfigPath)
	repo := createRepositoryOrExit(env)

	orch := battle.NewOrchestrator(cfg.NewMachine(), cfg.NewPlanner(), env.AITurnBudget)
	battles := service.NewBattles(repo, orch, service.NewHub())
	handler := api.NewBattleHandler(battles, repo, api.Catalog{
		Species:      cfg.Species,
		Tools:        cfg.Tools,
		Spells:       cfg.Spells,
		Difficulties: cfg.Difficulties,
		Balance:      cfg.Balance,
	})

	// Background scanner: force enemy turns whose deadline passed without
	// the turn completing.
	startTimeoutScanner(context.Background(), battles, repo)

	router := gin.Default()
	api.RegisterRoutes(router, handler)

	addr := cfg.ServerAddress
	if env.Address != "" {
		addr = env.Address
	}
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
