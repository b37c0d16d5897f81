package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/lhsffl/go/clients"
	"github.com/mcdev12/lhsffl/go/clients/league_api_client"
	"github.com/mcdev12/lhsffl/go/internal/apicache"
	"github.com/mcdev12/lhsffl/go/internal/gateway"
	"github.com/mcdev12/lhsffl/go/internal/transactions"
)

type Services struct {
	TradeTrees *transactions.Service
	Gateway    *gateway.Service

	// database is set when trees are read from Postgres
	database *sql.DB
}

// Close releases what the services hold open
func (s *Services) Close() {
	if s.database != nil {
		if err := s.database.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}
}

func setupServices(config *Config) (*Services, error) {
	// Wire up dependency injection chain
	// Source (league API or database) → App layer → Service layer / Gateway
	clock := clockwork.NewRealClock()
	services := &Services{}

	var (
		trees       transactions.TreeSource
		trades      transactions.TradeSource
		invalidator gateway.CacheInvalidator
	)

	switch config.TradeTree.Source {
	case clients.DataSourcePostgres:
		database, err := setupDatabase(context.Background(), config.Database)
		if err != nil {
			return nil, err
		}
		services.database = database

		repo := transactions.NewRepository(database)
		trees, trades = repo, repo

	case clients.DataSourceLeagueAPI:
		client := league_api_client.NewLeagueAPIClient(config.TradeTree.LeagueAPIURL)
		client.SetTimeout(config.TradeTree.RequestTimeout)
		if config.TradeTree.CacheTTL > 0 {
			client.SetCache(apicache.New(clock), config.TradeTree.CacheTTL)
			invalidator = client
		}
		trees, trades = client, client

	default:
		return nil, fmt.Errorf("unknown trade tree source %q", config.TradeTree.Source)
	}

	log.Info().
		Str("source", string(config.TradeTree.Source)).
		Msg("trade tree source configured")

	// App
	app := transactions.NewApp(trees, trades, clock)
	app.SetConcurrency(config.TradeTree.FetchConcurrency)
	services.TradeTrees = transactions.NewService(app)

	// Gateway
	gatewayConfig := gateway.DefaultConfig()
	gatewayConfig.EventsEnabled = config.Gateway.EventsEnabled
	gatewayConfig.JetStreamConfig.URL = config.Gateway.NatsURL
	gatewayConfig.ConnectionConfig.LoadTimeout = config.Gateway.LoadTimeout

	gatewayService, err := gateway.NewService(gatewayConfig, app, invalidator, clock)
	if err != nil {
		services.Close()
		return nil, fmt.Errorf("failed to create gateway: %w", err)
	}
	services.Gateway = gatewayService

	return services, nil
}
