package tradetree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/lhsffl/go/internal/models"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "MAR 5, 2024", FormatDate(at("2024-03-05T18:30:00")))
	assert.Equal(t, "JUN 1, 2023", FormatDate(at("2023-06-01T00:00:00Z")))
	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestPickLabels(t *testing.T) {
	assert.Equal(t, "2025 1st", PickLabelShort(2025, 1))
	assert.Equal(t, "2025 2nd", PickLabelShort(2025, 2))
	assert.Equal(t, "2025 3rd", PickLabelShort(2025, 3))
	assert.Equal(t, "2025 4th", PickLabelShort(2025, 4))

	assert.Equal(t, "2025 1st Round Pick", PickLabelLong(models.DraftPick{Season: 2025, Round: 1}))
	assert.Equal(t, "2025 1st Round Pick (#5)", PickLabelLong(models.DraftPick{Season: 2025, Round: 1, PickNo: intPtr(5)}))
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "Trade", TypeLabel(models.TransactionTypeTrade))
	assert.Equal(t, "Waiver Claim", TypeLabel(models.TransactionTypeWaiver))
	assert.Equal(t, "Free Agent Move", TypeLabel(models.TransactionTypeFreeAgent))
	assert.Equal(t, "Transaction", TypeLabel("commissioner"))
}
