package models

// Status labels the workflow state shared by projects, subprojects and activities.
type Status string

const (
	StatusInProgress Status = "Em andamento"
	StatusWaiting    Status = "Aguardando"
	StatusFinished   Status = "Finalizado"
	StatusDelayed    Status = "Atrasado"
)

// Valid reports whether the status is one of the known workflow labels.
func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusWaiting, StatusFinished, StatusDelayed:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status exempts an entity from delay evaluation.
func (s Status) Terminal() bool {
	return s == StatusFinished
}

// ChecklistItem is a single entry of an entity checklist.
type ChecklistItem struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}
