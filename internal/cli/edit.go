package cli

import (
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a session",
	Long: `Edit a session by ID or a unique ID prefix.
Flags replace single fields; without flags every field is asked with its current value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, release, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer release()

		session, err := resolveSession(w.Sessions.Sessions(), args[0])
		if err != nil {
			return err
		}
		if _, err := w.BeginEdit(session.ID); err != nil {
			return err
		}

		form, err := fillForm(cmd, w.Editor.Form(), w.View(), true)
		if err != nil {
			return err
		}
		w.Editor.SetForm(form)

		return saveForm(cmd, w)
	},
}

func init() {
	addFormFlags(editCmd)
}
