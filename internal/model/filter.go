package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Filter набор необязательных условий отбора записей.
// Пустое поле означает отсутствие ограничения.
type Filter struct {
	StudentNameContains string
	TopicContains       string
	DateFrom            *time.Time // включительно, с начала дня
	DateTo              *time.Time // включительно, до конца дня
}

// IsEmpty true если ни одно условие не задано
func (f Filter) IsEmpty() bool {
	return f.StudentNameContains == "" && f.TopicContains == "" && f.DateFrom == nil && f.DateTo == nil
}

// Summary сводные показатели по набору записей
type Summary struct {
	Count        int
	TotalFee     decimal.Decimal
	TotalHours   float64
	MeanDuration float64
	Students     []string
	Topics       []string
}
