package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/shopspring/decimal"
)

// Рупии с разделителями тысяч: 50.000, 1.250.000
var groupedRupiah = regexp.MustCompile(`^\d{1,3}(\.\d{3})+(,\d+)?$`)

// feeScale знаков после запятой, которые хранит колонка fee
const feeScale = 2

// normalizeInput проверяет инварианты записи и возвращает ввод с обрезанными пробелами.
// Ошибка называет первое неверное поле в порядке формы.
func normalizeInput(in model.SessionInput) (model.SessionInput, error) {
	in.Date = strings.TrimSpace(in.Date)
	in.StudentName = strings.TrimSpace(in.StudentName)
	in.Topic = strings.TrimSpace(in.Topic)

	if in.Date == "" {
		return in, invalid(FieldDate, "is required")
	}
	if _, err := model.ParseDate(in.Date); err != nil {
		return in, invalid(FieldDate, "must be a YYYY-MM-DD date")
	}

	if in.StudentName == "" {
		return in, invalid(FieldStudentName, "is required")
	}

	if in.Topic == "" {
		return in, invalid(FieldTopic, "is required")
	}

	if math.IsNaN(in.Duration) || math.IsInf(in.Duration, 0) {
		return in, invalid(FieldDuration, "must be a number")
	}
	if in.Duration <= 0 {
		return in, invalid(FieldDuration, "must be greater than zero")
	}

	if in.Fee.IsNegative() {
		return in, invalid(FieldFee, "must not be negative")
	}
	if !hasFeeScale(in.Fee) {
		return in, invalid(FieldFee, "must have at most 2 decimal places")
	}

	return in, nil
}

// ParseDate проверяет текстовую дату формы
func ParseDate(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", invalid(FieldDate, "is required")
	}
	if _, err := model.ParseDate(text); err != nil {
		return "", invalid(FieldDate, "must be a YYYY-MM-DD date")
	}
	return text, nil
}

// RequireText проверяет обязательное текстовое поле формы (имя ученика, тема)
func RequireText(field, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", invalid(field, "is required")
	}
	return text, nil
}

// ParseDuration разбирает длительность в часах, допускает запятую: "1,5"
func ParseDuration(text string) (float64, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	if text == "" {
		return 0, invalid(FieldDuration, "is required")
	}

	hours, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, invalid(FieldDuration, "must be a number")
	}
	if hours <= 0 {
		return 0, invalid(FieldDuration, "must be greater than zero")
	}

	return hours, nil
}

// ParseFee разбирает сумму: "50000", "50000.5", "Rp 50.000", "1.250.000,50"
func ParseFee(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(strings.TrimPrefix(text, "Rp"), "rp")
	text = strings.ReplaceAll(text, " ", "")
	if text == "" {
		return decimal.Zero, invalid(FieldFee, "is required")
	}

	switch {
	case groupedRupiah.MatchString(text):
		text = strings.ReplaceAll(text, ".", "")
		text = strings.ReplaceAll(text, ",", ".")
	case !strings.Contains(text, ".") && strings.Count(text, ",") == 1:
		// 50000,5 - запятая как десятичный разделитель
		text = strings.ReplaceAll(text, ",", ".")
	}

	fee, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, invalid(FieldFee, "must be a number")
	}
	if fee.IsNegative() {
		return decimal.Zero, invalid(FieldFee, "must not be negative")
	}
	if !hasFeeScale(fee) {
		return decimal.Zero, invalid(FieldFee, "must have at most 2 decimal places")
	}

	return fee, nil
}

// hasFeeScale true если сумма помещается в feeScale знаков без округления
func hasFeeScale(fee decimal.Decimal) bool {
	return fee.Equal(fee.Round(feeScale))
}
