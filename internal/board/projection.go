package board

import (
	"time"

	"pharus/internal/model"
)

// Snapshot is the board's read replica of the three lists every view is
// derived from. It is replaced wholesale on reload, never patched.
type Snapshot struct {
	Columns []model.Column
	Tasks   []model.Task
	Users   []model.User
}

// ColumnGroup is one rendered column: its tasks plus the count shown in the
// header. Empty means the column renders the empty-state placeholder.
type ColumnGroup struct {
	Column model.Column
	Tasks  []model.Task
	Count  int
	Empty  bool
}

// TableRow is one row of the flat table view.
type TableRow struct {
	Task          model.Task
	AssigneeName  string
	StatusLabel   Label
	PriorityLabel Label
	TypeLabel     Label
	Urgency       Urgency
}

// GroupByColumn projects the snapshot into the column view. Tasks match a
// column by exact id; columns with no tasks are still emitted so the view
// can render their placeholder.
func GroupByColumn(s Snapshot) []ColumnGroup {
	groups := make([]ColumnGroup, 0, len(s.Columns))
	for _, col := range s.Columns {
		var tasks []model.Task
		for _, task := range s.Tasks {
			if task.ColumnID == col.ID {
				tasks = append(tasks, task)
			}
		}
		groups = append(groups, ColumnGroup{
			Column: col,
			Tasks:  tasks,
			Count:  len(tasks),
			Empty:  len(tasks) == 0,
		})
	}
	return groups
}

// TableRows projects the snapshot into the table view: one row per task
// regardless of column, annotated with the due-date urgency against today.
func TableRows(s Snapshot, today time.Time) []TableRow {
	names := make(map[string]string, len(s.Users))
	for i := range s.Users {
		names[s.Users[i].ID.String()] = s.Users[i].DisplayName()
	}

	rows := make([]TableRow, 0, len(s.Tasks))
	for _, task := range s.Tasks {
		row := TableRow{
			Task:          task,
			StatusLabel:   StatusLabel(task.Status),
			PriorityLabel: PriorityLabel(task.Priority),
			TypeLabel:     TypeLabel(task.Type),
			Urgency:       Classify(task.DueDate, today),
		}
		if task.Assignee != nil {
			row.AssigneeName = names[task.Assignee.String()]
		}
		rows = append(rows, row)
	}
	return rows
}
