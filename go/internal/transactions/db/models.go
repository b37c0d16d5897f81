package db

import (
	"database/sql"
)

type Transaction struct {
	TransactionID        int32
	SleeperTransactionID int64
	Year                 int32
	Week                 int32
	Type                 string
	Status               string
	CreatedAt            sql.NullTime
}

type PlayerMoveRow struct {
	TransactionPlayerID int32
	TransactionID       int32
	PlayerSleeperID     int64
	SleeperRosterID     int32
	Action              string
	TeamID              sql.NullInt32
	TeamName            sql.NullString
	PlayerID            sql.NullInt32
	FirstName           sql.NullString
	LastName            sql.NullString
	Position            sql.NullString
	NflTeam             sql.NullString
}

type DraftPickMoveRow struct {
	TransactionDraftPickID int32
	TransactionID          int32
	Season                 int32
	Round                  int32
	RosterID               int32
	OwnerID                sql.NullInt32
	PreviousOwnerID        sql.NullInt32
}

type RosterMoveRow struct {
	TransactionRosterID int32
	TransactionID       int32
	SleeperRosterID     int32
	IsConsenter         bool
	TeamID              sql.NullInt32
	TeamName            sql.NullString
}

type Team struct {
	TeamID          int32
	TeamName        string
	SleeperRosterID int32
}

type DraftResultRow struct {
	Season          int32
	Round           int32
	RosterID        int32
	PickNo          int32
	PlayerSleeperID int64
	PlayerID        sql.NullInt32
	FirstName       sql.NullString
	LastName        sql.NullString
	Position        sql.NullString
	NflTeam         sql.NullString
}
