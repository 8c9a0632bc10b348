package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"

	dbmodels "hr-eval-backend/models/db"
)

func TestCriteriaPercent(t *testing.T) {
	t.Run(`равномерное распределение по позициям`, func(t *testing.T) {
		require.InDelta(t, 33.33, CriteriaPercent(1, 3), 0.01)
		require.InDelta(t, 66.67, CriteriaPercent(2, 3), 0.01)
		require.InDelta(t, 100, CriteriaPercent(3, 3), 0.01)
	})

	t.Run(`единственный критерий даёт 100`, func(t *testing.T) {
		require.InDelta(t, 100, CriteriaPercent(1, 1), 0.01)
	})

	t.Run(`некорректные позиции`, func(t *testing.T) {
		require.Equal(t, 0.0, CriteriaPercent(0, 3))
		require.Equal(t, 0.0, CriteriaPercent(1, 0))
		require.InDelta(t, 100, CriteriaPercent(5, 3), 0.01)
	})
}

func TestPercentMap(t *testing.T) {
	criteria := []dbmodels.EvaluationCriteria{
		{BaseModel: dbmodels.BaseModel{ID: "c3"}, OrderIndex: 3, IsActive: true},
		{BaseModel: dbmodels.BaseModel{ID: "c1"}, OrderIndex: 1, IsActive: true},
		{BaseModel: dbmodels.BaseModel{ID: "c2"}, OrderIndex: 2, IsActive: true},
		{BaseModel: dbmodels.BaseModel{ID: "c4"}, OrderIndex: 4, IsActive: false},
	}
	percents := PercentMap(criteria)
	require.Len(t, percents, 3)
	require.InDelta(t, 33.33, percents["c1"], 0.01)
	require.InDelta(t, 66.67, percents["c2"], 0.01)
	require.InDelta(t, 100, percents["c3"], 0.01)
	_, exist := percents["c4"]
	require.False(t, exist, "неактивный критерий не участвует в шкале")
}

func TestAggregateTopic(t *testing.T) {
	topic := dbmodels.EvaluationTopic{
		BaseModel: dbmodels.BaseModel{ID: "t1"},
		Name:      "Профессиональные знания",
		Weight:    2,
	}

	t.Run(`усреднение и взвешивание`, func(t *testing.T) {
		score := AggregateTopic(topic, []float64{50, 100})
		require.True(t, score.Evaluated)
		require.InDelta(t, 75, score.AveragePercent, 0.01)
		require.InDelta(t, 150, score.WeightedScore, 0.01)
	})

	t.Run(`тема без оценок`, func(t *testing.T) {
		score := AggregateTopic(topic, nil)
		require.False(t, score.Evaluated)
		require.Equal(t, 0.0, score.AveragePercent)
		require.Equal(t, 0.0, score.WeightedScore)
	})
}

func TestTotalScore(t *testing.T) {
	t.Run(`все темы оценены`, func(t *testing.T) {
		topics := []TopicScore{
			{Weight: 2, WeightedScore: 200, Evaluated: true},
			{Weight: 1, WeightedScore: 50, Evaluated: true},
		}
		// (200 + 50) / (2*100 + 1*100) * 100
		require.InDelta(t, 83.33, TotalScore(topics), 0.01)
	})

	t.Run(`неоценённая тема тянет итог вниз`, func(t *testing.T) {
		topics := []TopicScore{
			{Weight: 1, WeightedScore: 100, Evaluated: true},
			{Weight: 1, Evaluated: false},
		}
		require.InDelta(t, 50, TotalScore(topics), 0.01)
	})

	t.Run(`пустой список`, func(t *testing.T) {
		require.Equal(t, 0.0, TotalScore(nil))
	})
}

func TestGrade(t *testing.T) {
	require.Equal(t, GradeExcellent, Grade(92.5))
	require.Equal(t, GradeExcellent, Grade(85))
	require.Equal(t, GradeVeryGood, Grade(84.9))
	require.Equal(t, GradeVeryGood, Grade(75))
	require.Equal(t, GradeGood, Grade(74.9))
	require.Equal(t, GradeGood, Grade(60))
	require.Equal(t, GradeWeak, Grade(59.9))
	require.Equal(t, GradeWeak, Grade(0))
}
