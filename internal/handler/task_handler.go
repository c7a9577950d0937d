package handler

import (
	"errors"
	"net/http"
	"time"

	"pharus/internal/board"
	"pharus/internal/bus"
	"pharus/internal/model"
	"pharus/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type TaskHandler struct {
	taskRepo   *repository.TaskRepository
	columnRepo *repository.ColumnRepository
	userRepo   repository.UserRepositoryInterface
	bus        *bus.Bus
}

func NewTaskHandler(
	taskRepo *repository.TaskRepository,
	columnRepo *repository.ColumnRepository,
	userRepo repository.UserRepositoryInterface,
	b *bus.Bus,
) *TaskHandler {
	return &TaskHandler{
		taskRepo:   taskRepo,
		columnRepo: columnRepo,
		userRepo:   userRepo,
		bus:        b,
	}
}

// TaskRequest представляет запрос на создание или обновление задачи.
// Только title обязателен; пустые поля сохраняются как null.
type TaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status" binding:"omitempty,oneof=pending in_progress review completed"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	Type        string  `json:"type" binding:"omitempty,oneof=task bug feature improvement"`
	Assignee    *string `json:"assignee" binding:"omitempty,uuid"`
	Client      string  `json:"client"`
	RequestDate *string `json:"request_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Observation string  `json:"observation"`
	Jira        string  `json:"jira"`
	ColumnID    *string `json:"column_id" binding:"omitempty,uuid"`
}

// TaskMoveRequest представляет запрос на перетаскивание задачи в колонку
type TaskMoveRequest struct {
	ColumnID string `json:"column_id" binding:"required,uuid"`
}

type TaskCompletionRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

type TaskResponse struct {
	ID           string  `json:"id"`
	ColumnID     string  `json:"column_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	Type         string  `json:"type"`
	Assignee     *string `json:"assignee,omitempty"`
	AssigneeName *string `json:"assignee_name,omitempty"`
	Client       string  `json:"client"`
	RequestDate  *string `json:"request_date,omitempty"`
	DueDate      *string `json:"due_date,omitempty"`
	Observation  string  `json:"observation"`
	Jira         string  `json:"jira"`
	Completed    bool    `json:"completed"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func toTaskResponse(task *model.Task, assigneeName string) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID.String(),
		ColumnID:    task.ColumnID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Type:        task.Type,
		Client:      task.Client,
		Observation: task.Observation,
		Jira:        task.Jira,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
	if task.Assignee != nil {
		id := task.Assignee.String()
		resp.Assignee = &id
		if assigneeName != "" {
			resp.AssigneeName = &assigneeName
		}
	}
	if task.RequestDate != nil {
		d := task.RequestDate.Format(dateLayout)
		resp.RequestDate = &d
	}
	if task.DueDate != nil {
		d := task.DueDate.Format(dateLayout)
		resp.DueDate = &d
	}
	return resp
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

func parseAssignee(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}

// Create создает новую задачу. Без явной колонки задача попадает в колонку,
// чей тип совпадает со статусом формы.
func (h *TaskHandler) Create(c *gin.Context) {
	if currentUserID(c) == uuid.Nil {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Status == "" {
		req.Status = model.StatusPending
	}
	if req.Priority == "" {
		req.Priority = model.PriorityMedium
	}
	if req.Type == "" {
		req.Type = model.TypeTask
	}

	columns, err := h.columnRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
		return
	}

	var columnID uuid.UUID
	if req.ColumnID != nil {
		columnID, err = uuid.Parse(*req.ColumnID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
			return
		}
		column, err := h.columnRepo.GetByID(c.Request.Context(), columnID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve column"})
			return
		}
		if column == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
			return
		}
	} else {
		column, ok := board.ResolveStatusColumn(req.Status, columns)
		if !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "No columns available"})
			return
		}
		columnID = column.ID
	}

	requestDate := parseDate(req.RequestDate)
	if requestDate == nil {
		// Дата заявки по умолчанию — сегодня по локальному календарю
		today := board.DateOnly(time.Now())
		requestDate = &today
	}

	task := &model.Task{
		ColumnID:    columnID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Type:        req.Type,
		Assignee:    parseAssignee(req.Assignee),
		Client:      req.Client,
		RequestDate: requestDate,
		DueDate:     parseDate(req.DueDate),
		Observation: req.Observation,
		Jira:        req.Jira,
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	h.bus.Publish(bus.TaskChanged{TaskID: task.ID, Op: bus.OpCreated})
	c.JSON(http.StatusCreated, toTaskResponse(task, h.assigneeName(c, task.Assignee)))
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	if currentUserID(c) == uuid.Nil {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task, h.assigneeName(c, task.Assignee)))
}

func (h *TaskHandler) GetAll(c *gin.Context) {
	if currentUserID(c) == uuid.Nil {
		return
	}

	tasks, err := h.taskRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, toTaskResponse(&tasks[i], ""))
	}
	c.JSON(http.StatusOK, resp)
}

// Update сохраняет форму редактирования. Статус формы авторитетен: задача
// переезжает в колонку, соответствующую статусу.
func (h *TaskHandler) Update(c *gin.Context) {
	if currentUserID(c) == uuid.Nil {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Client = req.Client
	task.Observation = req.Observation
	task.Jira = req.Jira
	task.Assignee = parseAssignee(req.Assignee)
	task.RequestDate = parseDate(req.RequestDate)
	task.DueDate = parseDate(req.DueDate)
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	if req.Type != "" {
		task.Type = req.Type
	}

	if req.Status != "" && req.Status != task.Status {
		columns, err := h.columnRepo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
			return
		}
		column, ok := board.ResolveStatusColumn(req.Status, columns)
		if !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "No columns available"})
			return
		}
		task.Status = req.Status
		task.ColumnID = column.ID
		task.Completed = req.Status == model.StatusCompleted
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	h.bus.Publish(bus.TaskChanged{TaskID: task.ID, Op: bus.OpUpdated})
	c.JSON(http.StatusOK, toTaskResponse(task, h.assigneeName(c, task.Assignee)))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if currentUserID(c) == uuid.Nil {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	h.bus.Publish(bus.TaskChanged{TaskID: taskID, Op: bus.OpDeleted})
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// Move обрабатывает drop в колонку: column_id и производный статус пишутся
// одним обновлением.
func (h *TaskHandler) Move(c *gin.Context) {
	if currentUserID(c) == uuid.Nil {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req TaskMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	columns, err := h.columnRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
		return
	}

	found := false
	for _, col := range columns {
		if col.ID == columnID {
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return
	}

	status := board.ResolveColumnStatus(columnID, columns)
	if err := h.taskRepo.Move(c.Request.Context(), taskID, columnID, status); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move task"})
		return
	}

	h.bus.Publish(bus.TaskChanged{TaskID: taskID, Op: bus.OpMoved})
	c.JSON(http.StatusOK, gin.H{"column_id": columnID, "status": status})
}

// SetCompletion переключает чекбокс таблицы: completed → статус completed,
// снятие флага возвращает pending.
func (h *TaskHandler) SetCompletion(c *gin.Context) {
	if currentUserID(c) == uuid.Nil {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req TaskCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status := model.StatusPending
	if *req.Completed {
		status = model.StatusCompleted
	}

	columns, err := h.columnRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
		return
	}
	column, ok := board.ResolveStatusColumn(status, columns)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "No columns available"})
		return
	}

	if err := h.taskRepo.SetCompletion(c.Request.Context(), taskID, *req.Completed, status, column.ID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	h.bus.Publish(bus.TaskChanged{TaskID: taskID, Op: bus.OpCompleted})
	c.JSON(http.StatusOK, gin.H{"completed": *req.Completed, "status": status})
}

func (h *TaskHandler) assigneeName(c *gin.Context, assignee *uuid.UUID) string {
	if assignee == nil {
		return ""
	}
	user, err := h.userRepo.GetByID(c.Request.Context(), *assignee)
	if err != nil || user == nil {
		return ""
	}
	return user.DisplayName()
}
