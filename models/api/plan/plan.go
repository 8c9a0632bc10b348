package planapimodels

import (
	"time"

	"github.com/pkg/errors"

	apimodels "hr-eval-backend/models/api"
	dbmodels "hr-eval-backend/models/db"
)

type PlanData struct {
	Title      string `json:"title"`      // название плана набора
	Department string `json:"department"` // подразделение
	Notes      string `json:"notes"`      // примечания
	IsActive   *bool  `json:"is_active"`  // признак активности
}

func (r PlanData) Validate() error {
	if r.Title == "" {
		return errors.New("не указано название плана набора")
	}
	return nil
}

type PlanView struct {
	PlanData
	ID             string    `json:"id"`
	CandidateCount int64     `json:"candidate_count"` // кол-во кандидатов в плане
	CreationDate   time.Time `json:"creation_date"`
}

type PlanFilter struct {
	apimodels.Pagination
	Search   string `json:"search"`    // поиск по названию/подразделению
	IsActive *bool  `json:"is_active"` // фильтр по активности
}

func PlanConvert(rec dbmodels.Plan, candidateCount int64) PlanView {
	isActive := rec.IsActive
	return PlanView{
		PlanData: PlanData{
			Title:      rec.Title,
			Department: rec.Department,
			Notes:      rec.Notes,
			IsActive:   &isActive,
		},
		ID:             rec.ID,
		CandidateCount: candidateCount,
		CreationDate:   rec.CreatedAt,
	}
}
