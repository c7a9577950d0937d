package board

import "pharus/internal/model"

// Label is the display form of an enumerated task field: user-facing text
// plus the CSS class suffix the clients hang styling on.
type Label struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

var statusLabels = map[string]Label{
	model.StatusPending:    {Text: "Pendente", Class: "pending"},
	model.StatusInProgress: {Text: "Em Andamento", Class: "in-progress"},
	model.StatusReview:     {Text: "Em Revisão", Class: "review"},
	model.StatusCompleted:  {Text: "Concluído", Class: "completed"},
}

var priorityLabels = map[string]Label{
	model.PriorityLow:    {Text: "Baixa", Class: "low"},
	model.PriorityMedium: {Text: "Média", Class: "medium"},
	model.PriorityHigh:   {Text: "Alta", Class: "high"},
}

var typeLabels = map[string]Label{
	model.TypeTask:        {Text: "Tarefa", Class: "task"},
	model.TypeBug:         {Text: "Bug", Class: "bug"},
	model.TypeFeature:     {Text: "Feature", Class: "feature"},
	model.TypeImprovement: {Text: "Melhoria", Class: "improvement"},
}

// StatusLabel maps a status value to its display label. Unknown values pass
// through as-is, the original behavior for unmapped keys.
func StatusLabel(status string) Label {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return Label{Text: status, Class: status}
}

func PriorityLabel(priority string) Label {
	if l, ok := priorityLabels[priority]; ok {
		return l
	}
	return Label{Text: priority, Class: priority}
}

func TypeLabel(taskType string) Label {
	if l, ok := typeLabels[taskType]; ok {
		return l
	}
	return Label{Text: taskType, Class: taskType}
}
