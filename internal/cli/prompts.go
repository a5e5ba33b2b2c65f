package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/Freeeeeet/tutor_ledger/internal/service"
	"github.com/shopspring/decimal"
)

// PromptForDate спрашивает дату занятия, по умолчанию current
func PromptForDate(current string) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: "Session date (YYYY-MM-DD):",
		Default: current,
	}

	err := survey.AskOne(prompt, &answer, survey.WithValidator(func(val interface{}) error {
		_, err := service.ParseDate(val.(string))
		return err
	}))
	if err != nil {
		return "", err
	}

	return service.ParseDate(answer)
}

// PromptForText спрашивает обязательное текстовое поле с подсказками из уже известных значений
func PromptForText(field, message, current string, known []string) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: message,
		Default: current,
		Suggest: func(toComplete string) []string {
			return suggest(known, toComplete)
		},
	}

	err := survey.AskOne(prompt, &answer, survey.WithValidator(func(val interface{}) error {
		_, err := service.RequireText(field, val.(string))
		return err
	}))
	if err != nil {
		return "", err
	}

	return service.RequireText(field, answer)
}

// PromptForDuration спрашивает длительность в часах
func PromptForDuration(current float64) (float64, error) {
	var answer string
	prompt := &survey.Input{
		Message: "Duration (hours):",
		Help:    "Decimal hours, e.g. 1.5 or 1,5",
	}
	if current > 0 {
		prompt.Default = fmt.Sprintf("%g", current)
	}

	err := survey.AskOne(prompt, &answer, survey.WithValidator(func(val interface{}) error {
		_, err := service.ParseDuration(val.(string))
		return err
	}))
	if err != nil {
		return 0, err
	}

	return service.ParseDuration(answer)
}

// PromptForFee спрашивает сумму в рупиях
func PromptForFee(current decimal.Decimal, editing bool) (decimal.Decimal, error) {
	var answer string
	prompt := &survey.Input{
		Message: "Fee (Rp):",
		Help:    "e.g. 50000, 50.000 or Rp 50.000",
	}
	if editing || !current.IsZero() {
		prompt.Default = current.String()
	}

	err := survey.AskOne(prompt, &answer, survey.WithValidator(func(val interface{}) error {
		_, err := service.ParseFee(val.(string))
		return err
	}))
	if err != nil {
		return decimal.Zero, err
	}

	return service.ParseFee(answer)
}

// PromptForDeleteConfirmation спрашивает подтверждение удаления
func PromptForDeleteConfirmation(session *model.Session) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Delete the session with %s on %s?", session.StudentName, session.Date),
		Default: false,
	}

	err := survey.AskOne(prompt, &confirmed)
	return confirmed, err
}
