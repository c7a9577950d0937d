package board

import (
	"sort"
	"strings"
	"time"

	"pharus/internal/model"
)

// Sortable table columns.
const (
	SortByTitle       = "title"
	SortByAssignee    = "assignee"
	SortByRequestDate = "request_date"
	SortByDueDate     = "due_date"
	SortByStatus      = "status"
	SortByPriority    = "priority"
	SortByClient      = "client"
	SortByType        = "type"
)

var priorityRank = map[string]int{
	model.PriorityLow:    0,
	model.PriorityMedium: 1,
	model.PriorityHigh:   2,
}

// SortRows orders table rows by the given column. Priority sorts by rank
// (low < medium < high), dates chronologically with absent dates last, and
// everything else as case-insensitive text. The sort is stable.
func SortRows(rows []TableRow, key string, descending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			i, j = j, i
		}
		return rowLess(rows[i], rows[j], key)
	})
}

func rowLess(a, b TableRow, key string) bool {
	switch key {
	case SortByPriority:
		return priorityRank[a.Task.Priority] < priorityRank[b.Task.Priority]
	case SortByRequestDate:
		return timeLess(a.Task.RequestDate, b.Task.RequestDate)
	case SortByDueDate:
		return timeLess(a.Task.DueDate, b.Task.DueDate)
	case SortByAssignee:
		return textLess(a.AssigneeName, b.AssigneeName)
	case SortByStatus:
		return textLess(a.StatusLabel.Text, b.StatusLabel.Text)
	case SortByClient:
		return textLess(a.Task.Client, b.Task.Client)
	case SortByType:
		return textLess(a.TypeLabel.Text, b.TypeLabel.Text)
	default:
		return textLess(a.Task.Title, b.Task.Title)
	}
}

func timeLess(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}

func textLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
