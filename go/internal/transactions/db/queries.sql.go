// source: queries.sql

package db

import (
	"context"

	"github.com/lib/pq"
)

const getTransaction = `-- name: GetTransaction :one
SELECT transaction_id, sleeper_transaction_id, year, week, type, status, created_at
FROM transactions
WHERE transaction_id = $1
`

func (q *Queries) GetTransaction(ctx context.Context, transactionID int32) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, getTransaction, transactionID)
	var i Transaction
	err := row.Scan(
		&i.TransactionID,
		&i.SleeperTransactionID,
		&i.Year,
		&i.Week,
		&i.Type,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const listTransactionsByIDs = `-- name: ListTransactionsByIDs :many
SELECT transaction_id, sleeper_transaction_id, year, week, type, status, created_at
FROM transactions
WHERE transaction_id = ANY($1::int[])
ORDER BY created_at ASC, transaction_id ASC
`

func (q *Queries) ListTransactionsByIDs(ctx context.Context, ids []int32) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactionsByIDs, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.TransactionID,
			&i.SleeperTransactionID,
			&i.Year,
			&i.Week,
			&i.Type,
			&i.Status,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listPlayerMoves = `-- name: ListPlayerMoves :many
SELECT tp.transaction_player_id, tp.transaction_id, tp.player_sleeper_id, tp.sleeper_roster_id, tp.action,
       t.team_id, t.team_name,
       p.player_id, p.first_name, p.last_name, p.position, p.nfl_team
FROM transaction_players tp
LEFT JOIN teams t ON t.sleeper_roster_id = tp.sleeper_roster_id
LEFT JOIN players p ON p.sleeper_id = tp.player_sleeper_id
WHERE tp.transaction_id = ANY($1::int[])
ORDER BY tp.transaction_id, tp.transaction_player_id
`

func (q *Queries) ListPlayerMoves(ctx context.Context, transactionIDs []int32) ([]PlayerMoveRow, error) {
	rows, err := q.db.QueryContext(ctx, listPlayerMoves, pq.Array(transactionIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PlayerMoveRow
	for rows.Next() {
		var i PlayerMoveRow
		if err := rows.Scan(
			&i.TransactionPlayerID,
			&i.TransactionID,
			&i.PlayerSleeperID,
			&i.SleeperRosterID,
			&i.Action,
			&i.TeamID,
			&i.TeamName,
			&i.PlayerID,
			&i.FirstName,
			&i.LastName,
			&i.Position,
			&i.NflTeam,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listDraftPickMoves = `-- name: ListDraftPickMoves :many
SELECT transaction_draft_pick_id, transaction_id, season, round, roster_id, owner_id, previous_owner_id
FROM transaction_draft_picks
WHERE transaction_id = ANY($1::int[])
ORDER BY transaction_id, transaction_draft_pick_id
`

func (q *Queries) ListDraftPickMoves(ctx context.Context, transactionIDs []int32) ([]DraftPickMoveRow, error) {
	rows, err := q.db.QueryContext(ctx, listDraftPickMoves, pq.Array(transactionIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DraftPickMoveRow
	for rows.Next() {
		var i DraftPickMoveRow
		if err := rows.Scan(
			&i.TransactionDraftPickID,
			&i.TransactionID,
			&i.Season,
			&i.Round,
			&i.RosterID,
			&i.OwnerID,
			&i.PreviousOwnerID,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRosterMoves = `-- name: ListRosterMoves :many
SELECT tr.transaction_roster_id, tr.transaction_id, tr.sleeper_roster_id, tr.is_consenter,
       t.team_id, t.team_name
FROM transaction_rosters tr
LEFT JOIN teams t ON t.sleeper_roster_id = tr.sleeper_roster_id
WHERE tr.transaction_id = ANY($1::int[])
ORDER BY tr.transaction_id, tr.transaction_roster_id
`

func (q *Queries) ListRosterMoves(ctx context.Context, transactionIDs []int32) ([]RosterMoveRow, error) {
	rows, err := q.db.QueryContext(ctx, listRosterMoves, pq.Array(transactionIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RosterMoveRow
	for rows.Next() {
		var i RosterMoveRow
		if err := rows.Scan(
			&i.TransactionRosterID,
			&i.TransactionID,
			&i.SleeperRosterID,
			&i.IsConsenter,
			&i.TeamID,
			&i.TeamName,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listLaterTransactionIDsForPlayers = `-- name: ListLaterTransactionIDsForPlayers :many
SELECT DISTINCT tx.transaction_id
FROM transactions tx
JOIN transaction_players tp ON tp.transaction_id = tx.transaction_id
WHERE tx.created_at > $1
  AND tx.status = 'complete'
  AND tp.player_sleeper_id = ANY($2::bigint[])
`

func (q *Queries) ListLaterTransactionIDsForPlayers(ctx context.Context, arg ListLaterTransactionIDsForPlayersParams) ([]int32, error) {
	rows, err := q.db.QueryContext(ctx, listLaterTransactionIDsForPlayers, arg.After, pq.Array(arg.PlayerIDs))
	if err != nil {
		return nil, err
	}
	return scanIDs(rows)
}

const listLaterTransactionIDsForPicks = `-- name: ListLaterTransactionIDsForPicks :many
SELECT DISTINCT tx.transaction_id
FROM transactions tx
JOIN transaction_draft_picks dp ON dp.transaction_id = tx.transaction_id
JOIN unnest($2::int[], $3::int[], $4::int[]) AS k(season, round, roster_id)
  ON k.season = dp.season AND k.round = dp.round AND k.roster_id = dp.roster_id
WHERE tx.created_at > $1
  AND tx.status = 'complete'
`

func (q *Queries) ListLaterTransactionIDsForPicks(ctx context.Context, arg ListLaterTransactionIDsForPicksParams) ([]int32, error) {
	rows, err := q.db.QueryContext(ctx, listLaterTransactionIDsForPicks,
		arg.After,
		pq.Array(arg.Keys.Seasons),
		pq.Array(arg.Keys.Rounds),
		pq.Array(arg.Keys.Owners),
	)
	if err != nil {
		return nil, err
	}
	return scanIDs(rows)
}

const listTeamsByRosterIDs = `-- name: ListTeamsByRosterIDs :many
SELECT team_id, team_name, sleeper_roster_id
FROM teams
WHERE sleeper_roster_id = ANY($1::int[])
`

func (q *Queries) ListTeamsByRosterIDs(ctx context.Context, rosterIDs []int32) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeamsByRosterIDs, pq.Array(rosterIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		var i Team
		if err := rows.Scan(&i.TeamID, &i.TeamName, &i.SleeperRosterID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getTeam = `-- name: GetTeam :one
SELECT team_id, team_name, sleeper_roster_id
FROM teams
WHERE team_id = $1
`

func (q *Queries) GetTeam(ctx context.Context, teamID int32) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeam, teamID)
	var i Team
	err := row.Scan(&i.TeamID, &i.TeamName, &i.SleeperRosterID)
	return i, err
}

const listTradeIDsForRoster = `-- name: ListTradeIDsForRoster :many
SELECT DISTINCT tx.transaction_id
FROM transactions tx
JOIN transaction_rosters tr ON tr.transaction_id = tx.transaction_id
WHERE tx.type = 'trade'
  AND tx.status = 'complete'
  AND tr.sleeper_roster_id = $1
`

func (q *Queries) ListTradeIDsForRoster(ctx context.Context, rosterID int32) ([]int32, error) {
	rows, err := q.db.QueryContext(ctx, listTradeIDsForRoster, rosterID)
	if err != nil {
		return nil, err
	}
	return scanIDs(rows)
}

const listDraftResults = `-- name: ListDraftResults :many
SELECT d.season, d.round, d.roster_id, d.pick_no, d.player_sleeper_id,
       p.player_id, p.first_name, p.last_name, p.position, p.nfl_team
FROM draft_picks d
JOIN unnest($1::int[], $2::int[], $3::int[]) AS k(season, round, roster_id)
  ON k.season = d.season AND k.round = d.round AND k.roster_id = d.roster_id
LEFT JOIN players p ON p.sleeper_id = d.player_sleeper_id
`

func (q *Queries) ListDraftResults(ctx context.Context, arg ListDraftResultsParams) ([]DraftResultRow, error) {
	rows, err := q.db.QueryContext(ctx, listDraftResults,
		pq.Array(arg.Keys.Seasons),
		pq.Array(arg.Keys.Rounds),
		pq.Array(arg.Keys.Owners),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DraftResultRow
	for rows.Next() {
		var i DraftResultRow
		if err := rows.Scan(
			&i.Season,
			&i.Round,
			&i.RosterID,
			&i.PickNo,
			&i.PlayerSleeperID,
			&i.PlayerID,
			&i.FirstName,
			&i.LastName,
			&i.Position,
			&i.NflTeam,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type idRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Close() error
	Err() error
}

func scanIDs(rows idRows) ([]int32, error) {
	defer rows.Close()
	var items []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
