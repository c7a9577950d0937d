package handler

import (
	"net/http"
	"time"

	"pharus/internal/board"
	"pharus/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	store *board.Store
}

func NewBoardHandler(store *board.Store) *BoardHandler {
	return &BoardHandler{store: store}
}

type ColumnGroupResponse struct {
	Column ColumnResponse `json:"column"`
	Count  int            `json:"count"`
	Empty  bool           `json:"empty"`
	Tasks  []TaskResponse `json:"tasks"`
}

// BoardResponse is the column view. A failed reload degrades to an empty
// board with one notification message instead of an error status.
type BoardResponse struct {
	Columns []ColumnGroupResponse `json:"columns"`
	Error   string                `json:"error,omitempty"`
}

type TableRowResponse struct {
	Task         TaskResponse `json:"task"`
	AssigneeName string       `json:"assignee_name"`
	Status       board.Label  `json:"status"`
	Priority     board.Label  `json:"priority"`
	Type         board.Label  `json:"type"`
	Urgency      string       `json:"urgency,omitempty"`
}

type TableResponse struct {
	Rows  []TableRowResponse `json:"rows"`
	Error string             `json:"error,omitempty"`
}

// GetBoard renders the column-grouped view from a fresh snapshot.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	if currentUserID(c) == uuid.Nil {
		return
	}

	h.store.TryReload(c.Request.Context())
	if err := h.store.LastErr(); err != nil {
		c.JSON(http.StatusOK, BoardResponse{
			Columns: []ColumnGroupResponse{},
			Error:   "Erro ao carregar dados do board",
		})
		return
	}

	snap := h.store.Snapshot()
	names := assigneeNames(snap)

	groups := board.GroupByColumn(snap)
	resp := BoardResponse{Columns: make([]ColumnGroupResponse, 0, len(groups))}
	for _, g := range groups {
		group := ColumnGroupResponse{
			Column: toColumnResponse(&g.Column),
			Count:  g.Count,
			Empty:  g.Empty,
			Tasks:  make([]TaskResponse, 0, len(g.Tasks)),
		}
		for i := range g.Tasks {
			group.Tasks = append(group.Tasks, toTaskResponse(&g.Tasks[i], lookupName(names, &g.Tasks[i])))
		}
		resp.Columns = append(resp.Columns, group)
	}

	c.JSON(http.StatusOK, resp)
}

// GetTable renders the flat sortable view. sort/dir query params pick the
// column and direction.
func (h *BoardHandler) GetTable(c *gin.Context) {
	if currentUserID(c) == uuid.Nil {
		return
	}

	h.store.TryReload(c.Request.Context())
	if err := h.store.LastErr(); err != nil {
		c.JSON(http.StatusOK, TableResponse{
			Rows:  []TableRowResponse{},
			Error: "Erro ao carregar tarefas",
		})
		return
	}

	rows := board.TableRows(h.store.Snapshot(), time.Now())
	if key := c.Query("sort"); key != "" {
		board.SortRows(rows, key, c.Query("dir") == "desc")
	}

	resp := TableResponse{Rows: make([]TableRowResponse, 0, len(rows))}
	for _, row := range rows {
		task := row.Task
		resp.Rows = append(resp.Rows, TableRowResponse{
			Task:         toTaskResponse(&task, row.AssigneeName),
			AssigneeName: row.AssigneeName,
			Status:       row.StatusLabel,
			Priority:     row.PriorityLabel,
			Type:         row.TypeLabel,
			Urgency:      string(row.Urgency),
		})
	}

	c.JSON(http.StatusOK, resp)
}

func assigneeNames(snap board.Snapshot) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(snap.Users))
	for i := range snap.Users {
		names[snap.Users[i].ID] = snap.Users[i].DisplayName()
	}
	return names
}

func lookupName(names map[uuid.UUID]string, task *model.Task) string {
	if task.Assignee == nil {
		return ""
	}
	return names[*task.Assignee]
}
