package cli

import (
	"fmt"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List sessions, newest first",
	Long:    "List the owner's sessions with optional student, topic and date range filters. Total earnings always cover every session.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}

		w, release, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer release()

		w.SetFilter(filter)
		renderSessions(cmd.OutOrStdout(), w.View())
		return nil
	},
}

// filterFromFlags собирает фильтр из флагов list
func filterFromFlags(cmd *cobra.Command) (model.Filter, error) {
	student, _ := cmd.Flags().GetString("student")
	topic, _ := cmd.Flags().GetString("topic")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	filter := model.Filter{
		StudentNameContains: student,
		TopicContains:       topic,
	}

	if from != "" {
		day, err := model.ParseDate(from)
		if err != nil {
			return filter, fmt.Errorf("invalid --from date %q: use YYYY-MM-DD", from)
		}
		filter.DateFrom = &day
	}
	if to != "" {
		day, err := model.ParseDate(to)
		if err != nil {
			return filter, fmt.Errorf("invalid --to date %q: use YYYY-MM-DD", to)
		}
		filter.DateTo = &day
	}

	return filter, nil
}

func init() {
	listCmd.Flags().StringP("student", "s", "", "Only sessions whose student name contains this text")
	listCmd.Flags().StringP("topic", "t", "", "Only sessions whose topic contains this text")
	listCmd.Flags().String("from", "", "Only sessions on or after this date (YYYY-MM-DD)")
	listCmd.Flags().String("to", "", "Only sessions on or before this date (YYYY-MM-DD)")
}
