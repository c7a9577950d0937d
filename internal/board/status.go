package board

import (
	"github.com/google/uuid"

	"pharus/internal/model"
)

// positionalStatuses is the fallback for columns without an explicit type
// tag: the board's four columns map to statuses by position.
var positionalStatuses = []string{
	model.StatusPending,
	model.StatusInProgress,
	model.StatusReview,
	model.StatusCompleted,
}

// ResolveColumnStatus derives the status a task takes when dropped into a
// column. The column's own type tag wins; a column without one falls back
// to the positional map, and anything off the board resolves to pending.
// The column is the source of truth on a move.
func ResolveColumnStatus(columnID uuid.UUID, columns []model.Column) string {
	for i, c := range columns {
		if c.ID != columnID {
			continue
		}
		if c.Type != "" {
			return c.Type
		}
		if i < len(positionalStatuses) {
			return positionalStatuses[i]
		}
		return model.StatusPending
	}
	return model.StatusPending
}

// ResolveStatusColumn picks the column for a task saved with a bare status:
// the first column whose type matches, else the first column on the board.
// The status is the source of truth on a form save.
func ResolveStatusColumn(status string, columns []model.Column) (model.Column, bool) {
	for _, c := range columns {
		if c.Type == status {
			return c, true
		}
	}
	if len(columns) > 0 {
		return columns[0], true
	}
	return model.Column{}, false
}
