package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
)

// FormatDate форматирует дату записи
func FormatDate(t time.Time) string {
	return t.Format(model.DateLayout)
}

// FormatLongDate форматирует дату полностью: Jumat, 5 Januari 2024
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d", GetWeekdayName(int(t.Weekday())), t.Day(), GetMonthName(t.Month()), t.Year())
}

// FormatSessionDate форматирует строковую дату записи; нераспознанную возвращает как есть
func FormatSessionDate(value string) string {
	t, err := model.ParseDate(value)
	if err != nil {
		return value
	}
	return FormatLongDate(t)
}

// GetWeekdayName возвращает название дня недели на индонезийском
func GetWeekdayName(weekday int) string {
	names := []string{
		"Minggu",
		"Senin",
		"Selasa",
		"Rabu",
		"Kamis",
		"Jumat",
		"Sabtu",
	}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}

// GetMonthName возвращает название месяца на индонезийском
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "Januari",
		time.February:  "Februari",
		time.March:     "Maret",
		time.April:     "April",
		time.May:       "Mei",
		time.June:      "Juni",
		time.July:      "Juli",
		time.August:    "Agustus",
		time.September: "September",
		time.October:   "Oktober",
		time.November:  "November",
		time.December:  "Desember",
	}
	return names[month]
}
