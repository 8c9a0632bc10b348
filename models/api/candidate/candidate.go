package candidateapimodels

import (
	"time"

	"github.com/pkg/errors"

	"hr-eval-backend/models"
	apimodels "hr-eval-backend/models/api"
	dbmodels "hr-eval-backend/models/db"
)

type CandidateData struct {
	Name                 string     `json:"name"`                  // фио кандидата
	BirthDate            *time.Time `json:"birth_date"`            // дата рождения
	Gender               string     `json:"gender"`                // пол (male/female)
	PrimaryQualification string     `json:"primary_qualification"` // основная квалификация
	University           string     `json:"university"`            // учебное заведение
	GeneralDegree        string     `json:"general_degree"`        // общая оценка диплома
	GraduationYear       int        `json:"graduation_year"`       // год выпуска
	MaritalStatus        string     `json:"marital_status"`        // семейное положение
	NumberOfChildren     int        `json:"number_of_children"`    // кол-во детей
	Address              string     `json:"address"`               // адрес
	PhoneNumber          string     `json:"phone_number"`          // телефон
	Email                string     `json:"email"`                 // почта
	Notes                string     `json:"notes"`                 // примечания
	PlanID               string     `json:"plan_id"`               // ид плана набора
}

func (r CandidateData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано имя кандидата")
	}
	if r.PlanID == "" {
		return errors.New("отсутствует ссылка на план набора")
	}
	return nil
}

type QualificationData struct {
	DegreeName string     `json:"degree_name"` // название степени/сертификата
	DegreeDate *time.Time `json:"degree_date"` // дата получения
}

func (r QualificationData) Validate() error {
	if r.DegreeName == "" {
		return errors.New("не указано название квалификации")
	}
	return nil
}

type ExperienceData struct {
	JobTitle    string     `json:"job_title"`    // должность
	CompanyName string     `json:"company_name"` // организация
	StartDate   *time.Time `json:"start_date"`   // начало работы
	EndDate     *time.Time `json:"end_date"`     // окончание работы
}

func (r ExperienceData) Validate() error {
	if r.JobTitle == "" {
		return errors.New("не указана должность")
	}
	return nil
}

type QualificationView struct {
	QualificationData
	ID string `json:"id"`
}

type ExperienceView struct {
	ExperienceData
	ID string `json:"id"`
}

type CandidateView struct {
	CandidateData
	ID                    string              `json:"id"`
	Age                   int                 `json:"age"` // полных лет
	PlanTitle             string              `json:"plan_title"`
	ApplicationStatus     string              `json:"application_status"`
	ApplicationStatusName string              `json:"application_status_name"`
	ApplicationDate       time.Time           `json:"application_date"`
	PhotoUrl              string              `json:"photo_url,omitempty"` // ссылка на фото
	Qualifications        []QualificationView `json:"qualifications"`
	Experiences           []ExperienceView    `json:"experiences"`
}

type CandidateFilter struct {
	apimodels.Pagination
	PlanID            string                   `json:"plan_id"`            // фильтр по плану
	Search            string                   `json:"search"`             // поиск по имени/почте
	ApplicationStatus models.ApplicationStatus `json:"application_status"` // фильтр по статусу заявки
}

type StatusChangeRequest struct {
	Status models.ApplicationStatus `json:"status"` // новый статус заявки
}

func (r StatusChangeRequest) Validate() error {
	if !r.Status.IsValid() {
		return errors.New("неизвестный статус заявки")
	}
	return nil
}

func CandidateConvert(rec dbmodels.Candidate, photoUrl string) CandidateView {
	view := CandidateView{
		CandidateData: CandidateData{
			Name:                 rec.Name,
			BirthDate:            rec.BirthDate,
			Gender:               rec.Gender,
			PrimaryQualification: rec.PrimaryQualification,
			University:           rec.University,
			GeneralDegree:        rec.GeneralDegree,
			GraduationYear:       rec.GraduationYear,
			MaritalStatus:        rec.MaritalStatus,
			NumberOfChildren:     rec.NumberOfChildren,
			Address:              rec.Address,
			PhoneNumber:          rec.PhoneNumber,
			Email:                rec.Email,
			Notes:                rec.Notes,
			PlanID:               rec.PlanID,
		},
		ID:                    rec.ID,
		Age:                   rec.Age(time.Now()),
		ApplicationStatus:     string(rec.ApplicationStatus),
		ApplicationStatusName: rec.ApplicationStatus.ToHuman(),
		ApplicationDate:       rec.ApplicationDate,
		PhotoUrl:              photoUrl,
		Qualifications:        make([]QualificationView, 0, len(rec.Qualifications)),
		Experiences:           make([]ExperienceView, 0, len(rec.Experiences)),
	}
	if rec.Plan != nil {
		view.PlanTitle = rec.Plan.Title
	}
	for _, q := range rec.Qualifications {
		view.Qualifications = append(view.Qualifications, QualificationView{
			QualificationData: QualificationData{
				DegreeName: q.DegreeName,
				DegreeDate: q.DegreeDate,
			},
			ID: q.ID,
		})
	}
	for _, e := range rec.Experiences {
		view.Experiences = append(view.Experiences, ExperienceView{
			ExperienceData: ExperienceData{
				JobTitle:    e.JobTitle,
				CompanyName: e.CompanyName,
				StartDate:   e.StartDate,
				EndDate:     e.EndDate,
			},
			ID: e.ID,
		})
	}
	return view
}
