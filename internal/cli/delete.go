package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a session",
	Long:    "Delete a session by ID or a unique ID prefix. Asks for confirmation unless --yes is given.",
	Args:    cobra.ExactArgs(1),
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

		if err := w.Editor.RequestDelete(session.ID); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			renderSession(out, session)
			confirmed, err := PromptForDeleteConfirmation(session)
			if err != nil {
				return err
			}
			if !confirmed {
				w.Editor.CancelDeleteRequest()
				fmt.Fprintln(out, mutedStyle.Render("Cancelled."))
				return nil
			}
		}

		id, err := w.Editor.ConfirmDelete(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s %s\n", successStyle.Render("Session deleted."), mutedStyle.Render(id))
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking")
}
