package service

import (
	"slices"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// TotalFee сумма гонораров по переданному набору, 0 для пустого
func TotalFee(sessions []*model.Session) decimal.Decimal {
	total := decimal.Zero
	for _, session := range sessions {
		total = total.Add(session.Fee)
	}
	return total
}

// DistinctStudents уникальные имена учеников по возрастанию
func DistinctStudents(sessions []*model.Session) []string {
	return distinct(sessions, func(s *model.Session) string { return s.StudentName })
}

// DistinctTopics уникальные темы по возрастанию
func DistinctTopics(sessions []*model.Session) []string {
	return distinct(sessions, func(s *model.Session) string { return s.Topic })
}

func distinct(sessions []*model.Session, value func(*model.Session) string) []string {
	seen := make(map[string]struct{}, len(sessions))
	values := make([]string, 0, len(sessions))
	for _, session := range sessions {
		v := value(session)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

// Summarize сводка по набору записей: количество, гонорары, часы и подсказки
func Summarize(sessions []*model.Session) model.Summary {
	summary := model.Summary{
		Count:    len(sessions),
		TotalFee: TotalFee(sessions),
		Students: DistinctStudents(sessions),
		Topics:   DistinctTopics(sessions),
	}
	if len(sessions) == 0 {
		return summary
	}

	durations := make(stats.Float64Data, 0, len(sessions))
	for _, session := range sessions {
		durations = append(durations, session.Duration)
	}

	// Ошибку stats возвращает только на пустом входе
	summary.TotalHours, _ = stats.Sum(durations)
	summary.MeanDuration, _ = stats.Mean(durations)

	return summary
}
