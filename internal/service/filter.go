package service

import (
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"golang.org/x/text/cases"
)

// ApplyFilter возвращает записи, удовлетворяющие всем заданным условиям.
// Порядок записей сохраняется; без условий возвращается исходный срез.
func ApplyFilter(sessions []*model.Session, filter model.Filter) []*model.Session {
	if filter.IsEmpty() {
		return sessions
	}

	// Caser хранит состояние, поэтому новый на каждый вызов
	fold := cases.Fold()
	student := fold.String(filter.StudentNameContains)
	topic := fold.String(filter.TopicContains)

	var from, to time.Time
	if filter.DateFrom != nil {
		from = startOfDay(*filter.DateFrom)
	}
	if filter.DateTo != nil {
		to = endOfDay(*filter.DateTo)
	}

	filtered := make([]*model.Session, 0, len(sessions))
	for _, session := range sessions {
		if student != "" && !strings.Contains(fold.String(session.StudentName), student) {
			continue
		}
		if topic != "" && !strings.Contains(fold.String(session.Topic), topic) {
			continue
		}
		if filter.DateFrom != nil || filter.DateTo != nil {
			day, err := model.ParseDate(session.Date)
			if err != nil {
				continue
			}
			if filter.DateFrom != nil && day.Before(from) {
				continue
			}
			if filter.DateTo != nil && day.After(to) {
				continue
			}
		}
		filtered = append(filtered, session)
	}

	return filtered
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
