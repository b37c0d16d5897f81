package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mcdev12/lhsffl/go/internal/models"
	"github.com/mcdev12/lhsffl/go/internal/sqlutil"
	"github.com/mcdev12/lhsffl/go/internal/transactions/db"
)

// Repository reads league transactions straight from Postgres
type Repository struct {
	db      *sql.DB
	queries *db.Queries
}

// NewRepository creates a new transactions repository
func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: db.New(database),
	}
}

// GetFullTradeTree loads an origin transaction and every later complete transaction
// touching its assets, all from one snapshot.
func (r *Repository) GetFullTradeTree(ctx context.Context, transactionID int) (*models.TreeResponse, error) {
	var tree *models.TreeResponse

	err := sqlutil.RunReadOnly(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		dbOrigin, err := q.GetTransaction(ctx, int32(transactionID))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("transaction %d: %w", transactionID, ErrNotFound)
			}
			return fmt.Errorf("failed to get transaction: %w", err)
		}

		origins, err := loadTransactions(ctx, q, []db.Transaction{dbOrigin})
		if err != nil {
			return err
		}
		origin := origins[0]

		laterIDs, err := laterTransactionIDs(ctx, q, origin)
		if err != nil {
			return err
		}

		var later []models.Transaction
		if len(laterIDs) > 0 {
			rows, err := q.ListTransactionsByIDs(ctx, laterIDs)
			if err != nil {
				return fmt.Errorf("failed to list later transactions: %w", err)
			}
			later, err = loadTransactions(ctx, q, rows)
			if err != nil {
				return err
			}
		}

		teams, err := teamsFor(ctx, q, origin)
		if err != nil {
			return err
		}

		draftResults, err := draftResultsFor(ctx, q, origin)
		if err != nil {
			return err
		}

		tree = BuildTreeResponse(origin, later, teams, draftResults)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tree, nil
}

// GetTeamTrades lists every complete trade the team took part in, oldest first
func (r *Repository) GetTeamTrades(ctx context.Context, teamID int) ([]models.Transaction, error) {
	var trades []models.Transaction

	err := sqlutil.RunReadOnly(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		team, err := q.GetTeam(ctx, int32(teamID))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("team %d: %w", teamID, ErrNotFound)
			}
			return fmt.Errorf("failed to get team: %w", err)
		}

		ids, err := q.ListTradeIDsForRoster(ctx, team.SleeperRosterID)
		if err != nil {
			return fmt.Errorf("failed to list team trades: %w", err)
		}
		if len(ids) == 0 {
			trades = []models.Transaction{}
			return nil
		}

		rows, err := q.ListTransactionsByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to list team trades: %w", err)
		}
		trades, err = loadTransactions(ctx, q, rows)
		return err
	})
	if err != nil {
		return nil, err
	}

	return trades, nil
}

// loadTransactions attaches player, pick and roster moves to each row, keeping row order
func loadTransactions(ctx context.Context, q db.Querier, rows []db.Transaction) ([]models.Transaction, error) {
	ids := make([]int32, len(rows))
	byID := make(map[int32]*models.Transaction, len(rows))
	out := make([]models.Transaction, len(rows))
	for i, row := range rows {
		ids[i] = row.TransactionID
		out[i] = dbTransactionToDomain(row)
		byID[row.TransactionID] = &out[i]
	}

	playerMoves, err := q.ListPlayerMoves(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list player moves: %w", err)
	}
	for _, pm := range playerMoves {
		if txn, ok := byID[pm.TransactionID]; ok {
			txn.PlayerMoves = append(txn.PlayerMoves, dbPlayerMoveToDomain(pm))
		}
	}

	pickMoves, err := q.ListDraftPickMoves(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft pick moves: %w", err)
	}
	for _, dp := range pickMoves {
		if txn, ok := byID[dp.TransactionID]; ok {
			txn.DraftPickMoves = append(txn.DraftPickMoves, dbPickMoveToDomain(dp))
		}
	}

	rosterMoves, err := q.ListRosterMoves(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster moves: %w", err)
	}
	for _, rm := range rosterMoves {
		if txn, ok := byID[rm.TransactionID]; ok {
			txn.RosterMoves = append(txn.RosterMoves, dbRosterMoveToDomain(rm))
		}
	}

	for i := range out {
		out[i].Normalize()
	}
	return out, nil
}

func laterTransactionIDs(ctx context.Context, q db.Querier, origin models.Transaction) ([]int32, error) {
	after := origin.CreatedAt.Time

	var playerIDs []int64
	for _, pm := range origin.PlayerMoves {
		if pm.Action == models.MoveActionAdd {
			playerIDs = append(playerIDs, int64(pm.PlayerID))
		}
	}

	seen := make(map[int32]bool)
	var ids []int32
	collect := func(found []int32) {
		for _, id := range found {
			if !seen[id] && id != int32(origin.TransactionID) {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	if len(playerIDs) > 0 {
		found, err := q.ListLaterTransactionIDsForPlayers(ctx, db.ListLaterTransactionIDsForPlayersParams{
			After:     after,
			PlayerIDs: playerIDs,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to find later player transactions: %w", err)
		}
		collect(found)
	}

	if keys := pickKeysOf(origin); len(keys.Seasons) > 0 {
		found, err := q.ListLaterTransactionIDsForPicks(ctx, db.ListLaterTransactionIDsForPicksParams{
			After: after,
			Keys:  keys,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to find later pick transactions: %w", err)
		}
		collect(found)
	}

	return ids, nil
}

func teamsFor(ctx context.Context, q db.Querier, origin models.Transaction) (map[models.RosterID]TeamInfo, error) {
	rosterIDs := make([]int32, 0, len(origin.RosterMoves))
	for _, rm := range origin.RosterMoves {
		rosterIDs = append(rosterIDs, int32(rm.RosterID))
	}
	teams := make(map[models.RosterID]TeamInfo, len(rosterIDs))
	if len(rosterIDs) == 0 {
		return teams, nil
	}

	rows, err := q.ListTeamsByRosterIDs(ctx, rosterIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, row := range rows {
		teams[models.RosterID(row.SleeperRosterID)] = TeamInfo{
			TeamID:   int(row.TeamID),
			TeamName: row.TeamName,
		}
	}
	return teams, nil
}

func draftResultsFor(ctx context.Context, q db.Querier, origin models.Transaction) (map[models.PickKey]models.PickMetadata, error) {
	results := make(map[models.PickKey]models.PickMetadata)
	keys := pickKeysOf(origin)
	if len(keys.Seasons) == 0 {
		return results, nil
	}

	rows, err := q.ListDraftResults(ctx, db.ListDraftResultsParams{Keys: keys})
	if err != nil {
		return nil, fmt.Errorf("failed to list draft results: %w", err)
	}
	for _, row := range rows {
		key := models.PickKey{
			Season:        int(row.Season),
			Round:         int(row.Round),
			OriginalOwner: models.RosterID(row.RosterID),
		}
		pickNo := int(row.PickNo)
		results[key] = models.PickMetadata{
			DraftedPlayer: &models.PlayerInfo{
				PlayerID:  sqlutil.FromSqlInt32Value(row.PlayerID),
				SleeperID: models.PlayerID(row.PlayerSleeperID),
				FirstName: sqlutil.FromSqlString(row.FirstName, ""),
				LastName:  sqlutil.FromSqlString(row.LastName, ""),
				Position:  sqlutil.FromSqlString(row.Position, ""),
				NFLTeam:   sqlutil.FromSqlString(row.NflTeam, ""),
			},
			PickNo: &pickNo,
		}
	}
	return results, nil
}

func pickKeysOf(origin models.Transaction) db.PickKeys {
	var keys db.PickKeys
	for _, dp := range origin.DraftPickMoves {
		key := dp.Key()
		keys.Seasons = append(keys.Seasons, int32(key.Season))
		keys.Rounds = append(keys.Rounds, int32(key.Round))
		keys.Owners = append(keys.Owners, int32(key.OriginalOwner))
	}
	return keys
}

func dbTransactionToDomain(row db.Transaction) models.Transaction {
	txn := models.Transaction{
		TransactionID:        int(row.TransactionID),
		SleeperTransactionID: row.SleeperTransactionID,
		Year:                 int(row.Year),
		Week:                 int(row.Week),
		Type:                 models.TransactionType(row.Type),
		Status:               row.Status,
	}
	if t := sqlutil.FromSqlTime(row.CreatedAt); t != nil {
		txn.CreatedAt = models.NewTimestamp(t.UTC())
	}
	return txn
}

func dbPlayerMoveToDomain(row db.PlayerMoveRow) models.PlayerMove {
	move := models.PlayerMove{
		TransactionPlayerID: int(row.TransactionPlayerID),
		TransactionID:       int(row.TransactionID),
		PlayerID:            models.PlayerID(row.PlayerSleeperID),
		RosterID:            models.RosterID(row.SleeperRosterID),
		Action:              models.MoveAction(row.Action),
		Team:                dbTeamRef(row.TeamID, row.TeamName, row.SleeperRosterID),
	}
	if row.PlayerID.Valid {
		move.Player = &models.PlayerInfo{
			PlayerID:  int(row.PlayerID.Int32),
			SleeperID: models.PlayerID(row.PlayerSleeperID),
			FirstName: sqlutil.FromSqlString(row.FirstName, ""),
			LastName:  sqlutil.FromSqlString(row.LastName, ""),
			Position:  sqlutil.FromSqlString(row.Position, ""),
			NFLTeam:   sqlutil.FromSqlString(row.NflTeam, ""),
		}
	}
	return move
}

func dbPickMoveToDomain(row db.DraftPickMoveRow) models.DraftPickMove {
	return models.DraftPickMove{
		TransactionDraftPickID: int(row.TransactionDraftPickID),
		TransactionID:          int(row.TransactionID),
		Season:                 int(row.Season),
		Round:                  int(row.Round),
		RosterID:               models.RosterID(row.RosterID),
		OwnerID:                models.RosterID(sqlutil.FromSqlInt32Value(row.OwnerID)),
		PreviousOwnerID:        models.RosterID(sqlutil.FromSqlInt32Value(row.PreviousOwnerID)),
	}
}

func dbRosterMoveToDomain(row db.RosterMoveRow) models.RosterParticipant {
	return models.RosterParticipant{
		TransactionRosterID: int(row.TransactionRosterID),
		TransactionID:       int(row.TransactionID),
		RosterID:            models.RosterID(row.SleeperRosterID),
		Team:                dbTeamRef(row.TeamID, row.TeamName, row.SleeperRosterID),
		IsConsenter:         row.IsConsenter,
	}
}

func dbTeamRef(teamID sql.NullInt32, teamName sql.NullString, rosterID int32) *models.TeamRef {
	if !teamID.Valid {
		return nil
	}
	return &models.TeamRef{
		TeamID:   int(teamID.Int32),
		TeamName: sqlutil.FromSqlString(teamName, ""),
		RosterID: models.RosterID(rosterID),
	}
}
