package prevtestapimodels

import (
	"time"

	"github.com/pkg/errors"

	dbmodels "hr-eval-backend/models/db"
)

type CategoryData struct {
	Name        string  `json:"name"`        // название категории теста
	Description string  `json:"description"` // описание
	MaxScore    float64 `json:"max_score"`   // максимальный балл
	IsActive    *bool   `json:"is_active"`   // признак активности
}

func (r CategoryData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название категории")
	}
	if r.MaxScore <= 0 {
		return errors.New("максимальный балл должен быть положительным")
	}
	return nil
}

type CategoryView struct {
	CategoryData
	ID string `json:"id"`
}

type ResultData struct {
	CandidateID string     `json:"candidate_id"` // ид кандидата
	CategoryID  string     `json:"category_id"`  // ид категории теста
	Score       float64    `json:"score"`        // набранный балл
	TakenAt     *time.Time `json:"taken_at"`     // дата прохождения
	Notes       string     `json:"notes"`        // примечания
}

func (r ResultData) Validate() error {
	if r.CandidateID == "" {
		return errors.New("не указан кандидат")
	}
	if r.CategoryID == "" {
		return errors.New("не указана категория теста")
	}
	if r.Score < 0 {
		return errors.New("балл не может быть отрицательным")
	}
	return nil
}

type ResultView struct {
	ResultData
	ID            string  `json:"id"`
	CategoryName  string  `json:"category_name"`
	MaxScore      float64 `json:"max_score"`
	Percent       float64 `json:"percent"` // балл в процентах от максимума
	EnteredByName string  `json:"entered_by_name"`
}

func CategoryConvert(rec dbmodels.TestCategory) CategoryView {
	isActive := rec.IsActive
	return CategoryView{
		CategoryData: CategoryData{
			Name:        rec.Name,
			Description: rec.Description,
			MaxScore:    rec.MaxScore,
			IsActive:    &isActive,
		},
		ID: rec.ID,
	}
}

func ResultConvert(rec dbmodels.CandidateTestResult) ResultView {
	view := ResultView{
		ResultData: ResultData{
			CandidateID: rec.CandidateID,
			CategoryID:  rec.CategoryID,
			Score:       rec.Score,
			TakenAt:     rec.TakenAt,
			Notes:       rec.Notes,
		},
		ID:      rec.ID,
		Percent: rec.Percent(),
	}
	if rec.Category != nil {
		view.CategoryName = rec.Category.Name
		view.MaxScore = rec.Category.MaxScore
	}
	if rec.EnteredBy != nil {
		view.EnteredByName = rec.EnteredBy.GetFullName()
	}
	return view
}
