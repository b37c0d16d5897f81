package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/lhsffl/go/internal/dbconfig"
	"github.com/mcdev12/lhsffl/go/internal/models"
)

const defaultSnapshotPath = "go/internal/assets/league_snapshot.json"

func main() {
	ctx := context.Background()

	// 1) Load the snapshot
	path := defaultSnapshotPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	snap, err := loadSnapshot(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load snapshot: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect to DB
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Seed teams
	total, inserted, skipped, errs := len(snap.Teams), 0, 0, 0
	for _, t := range snap.Teams {
		tag, err := pool.Exec(ctx, `
            INSERT INTO teams (team_name, sleeper_roster_id)
            VALUES ($1,$2)
            ON CONFLICT (sleeper_roster_id) DO UPDATE SET team_name = EXCLUDED.team_name
        `, t.TeamName, int(t.SleeperRosterID))
		if err != nil {
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}
	fmt.Printf("Teams seed: total=%d upserted=%d skipped=%d errors=%d\n", total, inserted, skipped, errs)

	// 4) Seed players
	total, inserted, skipped, errs = len(snap.Players), 0, 0, 0
	for _, p := range snap.Players {
		tag, err := pool.Exec(ctx, `
            INSERT INTO players (sleeper_id, first_name, last_name, position, nfl_team)
            VALUES ($1,$2,$3,$4,$5)
            ON CONFLICT (sleeper_id) DO NOTHING
        `, int64(p.SleeperID), nullableString(p.FirstName), nullableString(p.LastName),
			nullableString(p.Position), nullableString(p.NFLTeam))
		if err != nil {
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}
	fmt.Printf("Players seed: total=%d inserted=%d skipped=%d errors=%d\n", total, inserted, skipped, errs)

	// 5) Seed draft results
	total, inserted, skipped, errs = len(snap.DraftResults), 0, 0, 0
	for _, d := range snap.DraftResults {
		tag, err := pool.Exec(ctx, `
            INSERT INTO draft_picks (season, round, pick_no, draft_slot, roster_id, player_sleeper_id)
            VALUES ($1,$2,$3,$4,$5,$6)
            ON CONFLICT (season, round, roster_id) DO NOTHING
        `, d.Season, d.Round, d.PickNo, d.DraftSlot, int(d.RosterID), int64(d.PlayerSleeperID))
		if err != nil {
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}
	fmt.Printf("Draft results seed: total=%d inserted=%d skipped=%d errors=%d\n", total, inserted, skipped, errs)

	// 6) Seed transactions, one database transaction each
	total, inserted, skipped, errs = len(snap.Transactions), 0, 0, 0
	for _, txn := range snap.Transactions {
		created, err := seedTransaction(ctx, pool, txn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "transaction %d: %v\n", txn.SleeperTransactionID, err)
			errs++
			continue
		}
		if created {
			inserted++
		} else {
			skipped++
		}
	}
	fmt.Printf("Transactions seed: total=%d inserted=%d skipped=%d errors=%d\n", total, inserted, skipped, errs)

	// 7) Record the sync so listeners refresh
	if inserted > 0 {
		details, _ := json.Marshal(map[string]any{"source": "seed", "path": path, "transactions": inserted})
		if _, err := pool.Exec(ctx, `
            INSERT INTO sync_status (sync_item, success, details)
            VALUES ('transactions', TRUE, $1)
        `, details); err != nil {
			fmt.Fprintf(os.Stderr, "record sync: %v\n", err)
			os.Exit(1)
		}
	}
}

// seedTransaction inserts a transaction and its moves. It is false when the
// transaction was already present.
func seedTransaction(ctx context.Context, pool *pgxpool.Pool, txn models.Transaction) (bool, error) {
	created := false
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		var id int32
		err := tx.QueryRow(ctx, `
            INSERT INTO transactions (sleeper_transaction_id, year, week, type, status, created_at)
            VALUES ($1,$2,$3,$4,$5,$6)
            ON CONFLICT (sleeper_transaction_id) DO NOTHING
            RETURNING transaction_id
        `, txn.SleeperTransactionID, txn.Year, txn.Week, string(txn.Type), status(txn),
			nullableTime(txn.CreatedAt.Time)).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
		created = true

		for _, pm := range txn.PlayerMoves {
			if _, err := tx.Exec(ctx, `
                INSERT INTO transaction_players (transaction_id, player_sleeper_id, sleeper_roster_id, action)
                VALUES ($1,$2,$3,$4)
            `, id, int64(pm.PlayerID), int(pm.RosterID), string(pm.Action)); err != nil {
				return fmt.Errorf("insert player move: %w", err)
			}
		}
		for _, rm := range txn.RosterMoves {
			if _, err := tx.Exec(ctx, `
                INSERT INTO transaction_rosters (transaction_id, sleeper_roster_id, is_consenter)
                VALUES ($1,$2,$3)
            `, id, int(rm.RosterID), rm.IsConsenter); err != nil {
				return fmt.Errorf("insert roster move: %w", err)
			}
		}
		for _, dp := range txn.DraftPickMoves {
			if _, err := tx.Exec(ctx, `
                INSERT INTO transaction_draft_picks (transaction_id, season, round, roster_id, owner_id, previous_owner_id)
                VALUES ($1,$2,$3,$4,$5,$6)
            `, id, dp.Season, dp.Round, int(dp.OriginalOwner()), nullableRoster(dp.OwnerID),
				nullableRoster(dp.PreviousOwnerID)); err != nil {
				return fmt.Errorf("insert draft pick move: %w", err)
			}
		}
		return nil
	})
	return created, err
}
