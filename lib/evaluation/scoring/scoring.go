package scoring

import (
	"sort"

	dbmodels "hr-eval-backend/models/db"
)

// Пороговые значения итогового балла для словесной оценки.
const (
	GradeExcellent = "Отлично"
	GradeVeryGood  = "Очень хорошо"
	GradeGood      = "Хорошо"
	GradeWeak      = "Слабо"
)

// CriteriaPercent возвращает процент критерия по его позиции в
// упорядоченном списке активных критериев темы. Проценты равномерно
// распределяются по позициям, последний критерий всегда даёт 100.
func CriteriaPercent(position, count int) float64 {
	if count <= 0 || position <= 0 {
		return 0
	}
	if position > count {
		position = count
	}
	return float64(position) / float64(count) * 100
}

// PercentMap строит соответствие ид критерия -> процент для
// упорядоченного списка активных критериев темы.
func PercentMap(criteria []dbmodels.EvaluationCriteria) map[string]float64 {
	ordered := make([]dbmodels.EvaluationCriteria, 0, len(criteria))
	for _, c := range criteria {
		if c.IsActive {
			ordered = append(ordered, c)
		}
	}
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].OrderIndex < ordered[b].OrderIndex
	})
	result := make(map[string]float64, len(ordered))
	for idx, c := range ordered {
		result[c.ID] = CriteriaPercent(idx+1, len(ordered))
	}
	return result
}

// TopicScore - агрегат оценок по одной теме.
type TopicScore struct {
	TopicID        string
	TopicName      string
	Weight         float64
	Percents       []float64
	AveragePercent float64
	WeightedScore  float64
	Evaluated      bool
}

// AggregateTopic усредняет проценты выбранных критериев и взвешивает
// результат. Тема без единой оценки считается неоценённой и ничего не
// добавляет в числитель.
func AggregateTopic(topic dbmodels.EvaluationTopic, percents []float64) TopicScore {
	score := TopicScore{
		TopicID:   topic.ID,
		TopicName: topic.Name,
		Weight:    topic.Weight,
		Percents:  percents,
	}
	if len(percents) == 0 {
		return score
	}
	sum := 0.0
	for _, p := range percents {
		sum += p
	}
	score.Evaluated = true
	score.AveragePercent = sum / float64(len(percents))
	score.WeightedScore = score.AveragePercent * topic.Weight
	return score
}

// TotalScore сводит взвешенные баллы тем к шкале 0..100.
// Знаменатель учитывает все активные темы, неоценённые темы тянут
// итог вниз.
func TotalScore(topics []TopicScore) float64 {
	numerator := 0.0
	denominator := 0.0
	for _, t := range topics {
		denominator += t.Weight * 100
		if t.Evaluated {
			numerator += t.WeightedScore
		}
	}
	if denominator == 0 {
		return 0
	}
	return numerator / denominator * 100
}

// Grade переводит итоговый балл в словесную оценку.
func Grade(totalScore float64) string {
	switch {
	case totalScore >= 85:
		return GradeExcellent
	case totalScore >= 75:
		return GradeVeryGood
	case totalScore >= 60:
		return GradeGood
	default:
		return GradeWeak
	}
}
