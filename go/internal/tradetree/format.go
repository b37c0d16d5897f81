package tradetree

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcdev12/lhsffl/go/internal/models"
)

// FormatDate renders dates the way trade cards show them: "MAR 5, 2024". The zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.UTC()
	return fmt.Sprintf("%s %d, %d", strings.ToUpper(t.Format("Jan")), t.Day(), t.Year())
}

// Ordinal renders a draft round: "1st", "2nd", "3rd", "4th"
func Ordinal(n int) string {
	switch n {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}

// PickLabelShort is the compact pick label: "2025 1st"
func PickLabelShort(season, round int) string {
	return fmt.Sprintf("%d %s", season, Ordinal(round))
}

// PickLabelLong is the full pick label: "2025 1st Round Pick (#5)"
func PickLabelLong(pick models.DraftPick) string {
	label := PickLabelShort(pick.Season, pick.Round) + " Round Pick"
	if pick.PickNo != nil && *pick.PickNo > 0 {
		label += fmt.Sprintf(" (#%d)", *pick.PickNo)
	}
	return label
}

// TypeLabel is the display label of a transaction type
func TypeLabel(t models.TransactionType) string {
	switch t {
	case models.TransactionTypeTrade:
		return "Trade"
	case models.TransactionTypeWaiver:
		return "Waiver Claim"
	case models.TransactionTypeFreeAgent:
		return "Free Agent Move"
	default:
		return "Transaction"
	}
}
