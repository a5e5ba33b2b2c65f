package cli

import (
	"fmt"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/Freeeeeet/tutor_ledger/internal/service"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new session",
	Long:  "Record a new session. Fields missing from flags are asked interactively; the date defaults to today.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, release, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer release()

		form, err := fillForm(cmd, w.Editor.Form(), w.View(), false)
		if err != nil {
			return err
		}
		w.Editor.SetForm(form)

		return saveForm(cmd, w)
	},
}

// fillForm берёт значения из заданных флагов, остальные спрашивает.
// При редактировании без флагов спрашиваются все поля с текущими значениями.
func fillForm(cmd *cobra.Command, form model.SessionInput, view model.View, editing bool) (model.SessionInput, error) {
	flags := cmd.Flags()
	anyFlag := false
	for _, name := range []string{"date", "student", "topic", "duration", "fee"} {
		if flags.Changed(name) {
			anyFlag = true
		}
	}
	ask := func(name string) bool {
		if flags.Changed(name) {
			return false
		}
		if editing {
			return !anyFlag
		}
		return true
	}

	var err error

	if flags.Changed("date") {
		value, _ := flags.GetString("date")
		if form.Date, err = service.ParseDate(value); err != nil {
			return form, err
		}
	} else if ask("date") {
		if form.Date, err = PromptForDate(form.Date); err != nil {
			return form, err
		}
	}

	if flags.Changed("student") {
		value, _ := flags.GetString("student")
		if form.StudentName, err = service.RequireText(service.FieldStudentName, value); err != nil {
			return form, err
		}
	} else if ask("student") {
		if form.StudentName, err = PromptForText(service.FieldStudentName, "Student name:", form.StudentName, view.Students); err != nil {
			return form, err
		}
	}

	if flags.Changed("topic") {
		value, _ := flags.GetString("topic")
		if form.Topic, err = service.RequireText(service.FieldTopic, value); err != nil {
			return form, err
		}
	} else if ask("topic") {
		if form.Topic, err = PromptForText(service.FieldTopic, "Topic:", form.Topic, view.Topics); err != nil {
			return form, err
		}
	}

	if flags.Changed("duration") {
		value, _ := flags.GetString("duration")
		if form.Duration, err = service.ParseDuration(value); err != nil {
			return form, err
		}
	} else if ask("duration") {
		if form.Duration, err = PromptForDuration(form.Duration); err != nil {
			return form, err
		}
	}

	if flags.Changed("fee") {
		value, _ := flags.GetString("fee")
		if form.Fee, err = service.ParseFee(value); err != nil {
			return form, err
		}
	} else if ask("fee") {
		if form.Fee, err = PromptForFee(form.Fee, editing); err != nil {
			return form, err
		}
	}

	return form, nil
}

// saveForm сохраняет форму и сообщает результат
func saveForm(cmd *cobra.Command, w *service.Workspace) error {
	result, err := w.Editor.Save(cmd.Context())
	if err != nil {
		return err
	}

	message := "Session updated."
	if result.Created {
		message = "Session added."
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render(message), mutedStyle.Render(result.ID))
	return nil
}

func addFormFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "Session date (YYYY-MM-DD)")
	cmd.Flags().String("student", "", "Student name")
	cmd.Flags().String("topic", "", "Topic")
	cmd.Flags().String("duration", "", "Duration in hours, e.g. 1.5")
	cmd.Flags().String("fee", "", "Fee in rupiah, e.g. 50000")
}

func init() {
	addFormFlags(addCmd)
}
