package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout формат календарной даты сессии (без времени)
const DateLayout = "2006-01-02"

// Session одна запись о проведённом занятии
type Session struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Date        string          `json:"date"` // YYYY-MM-DD, как ввёл пользователь
	StudentName string          `json:"student_name"`
	Topic       string          `json:"topic"`
	Duration    float64         `json:"duration"` // в часах
	Fee         decimal.Decimal `json:"fee"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Input возвращает редактируемые поля записи
func (s *Session) Input() SessionInput {
	return SessionInput{
		Date:        s.Date,
		StudentName: s.StudentName,
		Topic:       s.Topic,
		Duration:    s.Duration,
		Fee:         s.Fee,
	}
}

// SessionInput данные формы для создания или полной перезаписи записи
type SessionInput struct {
	Date        string
	StudentName string
	Topic       string
	Duration    float64
	Fee         decimal.Decimal
}

// Snapshot полная замена списка записей владельца.
// Err заполнен, если очередную версию списка не удалось загрузить.
type Snapshot struct {
	OwnerID  string
	Sessions []*Session
	Err      error
}

// ParseDate разбирает календарную дату в формате YYYY-MM-DD
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.Local)
}

// Today возвращает сегодняшнюю дату в формате формы
func Today() string {
	return time.Now().Format(DateLayout)
}
