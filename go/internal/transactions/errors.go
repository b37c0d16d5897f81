package transactions

import "errors"

var (
	// ErrInvalidTransactionID is returned for non-positive or unparsable ids
	ErrInvalidTransactionID = errors.New("invalid transaction id")

	// ErrInvalidTeamID is returned for non-positive or unparsable team ids
	ErrInvalidTeamID = errors.New("invalid team id")

	// ErrNotFound is returned when the transaction or team does not exist
	ErrNotFound = errors.New("not found")

	// ErrUnsuccessful is returned when a tree source answers with success=false
	ErrUnsuccessful = errors.New("trade tree unavailable")
)
