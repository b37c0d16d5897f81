package main

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/lhsffl/go/internal/dbconfig"
)

func setupDatabase(ctx context.Context, dbConfig dbconfig.Config) (*sql.DB, error) {
	database, err := dbConfig.Open(ctx)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("dsn", dbConfig.Redacted()).
		Int("max_open_conns", dbConfig.MaxOpenConns).
		Msg("connected to database")
	return database, nil
}
