package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Freeeeeet/tutor_ledger/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Цвета вывода
const (
	ColorAccent    = "#7C3AED"
	ColorSecondary = "#B1B8C7"
	ColorMuted     = "#6D7383"
	ColorSuccess   = "#22C55E"
	ColorError     = "#EF4444"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccent))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorSecondary))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	feeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorSuccess))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))
)

// Ширина колонок таблицы записей
var columns = []struct {
	title string
	width int
}{
	{"ID", 10},
	{"DATE", 12},
	{"STUDENT", 20},
	{"TOPIC", 24},
	{"HOURS", 7},
	{"FEE", 14},
}

// shortIDLength сколько символов ID показывать в таблице
const shortIDLength = 8

func cell(text string, width int, style lipgloss.Style) string {
	if lipgloss.Width(text) > width-1 {
		runes := []rune(text)
		if len(runes) > width-4 {
			text = string(runes[:width-4]) + "..."
		}
	}
	return style.Width(width).Render(text)
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

// renderSessions печатает таблицу записей и итог по сумме
func renderSessions(w io.Writer, view model.View) {
	fmt.Fprintln(w, titleStyle.Render("Teaching sessions"))
	if !view.Filter.IsEmpty() {
		fmt.Fprintln(w, mutedStyle.Render("filter: "+describeFilter(view.Filter)))
	}
	fmt.Fprintln(w)

	if len(view.Sessions) == 0 {
		if view.Filter.IsEmpty() {
			fmt.Fprintln(w, mutedStyle.Render("No sessions yet. Use 'ledger add' to record one."))
		} else {
			fmt.Fprintln(w, mutedStyle.Render("No sessions match the filter."))
		}
	} else {
		headers := make([]string, 0, len(columns))
		for _, col := range columns {
			headers = append(headers, cell(col.title, col.width, headerStyle))
		}
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, headers...))

		plain := lipgloss.NewStyle()
		for _, session := range view.Sessions {
			row := []string{
				cell(shortID(session.ID), columns[0].width, mutedStyle),
				cell(session.Date, columns[1].width, plain),
				cell(session.StudentName, columns[2].width, plain),
				cell(session.Topic, columns[3].width, plain),
				cell(fmt.Sprintf("%g", session.Duration), columns[4].width, plain),
				cell(formatting.FormatRupiah(session.Fee), columns[5].width, feeStyle),
			}
			fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, row...))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n",
		headerStyle.Render("Total earnings:"),
		feeStyle.Bold(true).Render(formatting.FormatRupiah(view.TotalFee)))
}

// renderSession печатает одну запись подробно
func renderSession(w io.Writer, session *model.Session) {
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("ID:      "), session.ID)
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Date:    "), formatting.FormatSessionDate(session.Date))
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Student: "), session.StudentName)
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Topic:   "), session.Topic)
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Duration:"), formatting.FormatHours(session.Duration))
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Fee:     "), feeStyle.Render(formatting.FormatRupiah(session.Fee)))
}

// renderSummary печатает сводку по всем записям
func renderSummary(w io.Writer, summary model.Summary) {
	fmt.Fprintln(w, titleStyle.Render("Summary"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %d\n", headerStyle.Render("Sessions:      "), summary.Count)
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Total earnings:"), feeStyle.Render(formatting.FormatRupiah(summary.TotalFee)))
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Total hours:   "), formatting.FormatHours(summary.TotalHours))
	if summary.Count > 0 {
		fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Mean duration: "), formatting.FormatHours(summary.MeanDuration))
	}
	if len(summary.Students) > 0 {
		fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Students:      "), strings.Join(summary.Students, ", "))
	}
	if len(summary.Topics) > 0 {
		fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Topics:        "), strings.Join(summary.Topics, ", "))
	}
}

func describeFilter(filter model.Filter) string {
	var parts []string
	if filter.StudentNameContains != "" {
		parts = append(parts, fmt.Sprintf("student~%q", filter.StudentNameContains))
	}
	if filter.TopicContains != "" {
		parts = append(parts, fmt.Sprintf("topic~%q", filter.TopicContains))
	}
	if filter.DateFrom != nil {
		parts = append(parts, "from "+filter.DateFrom.Format(model.DateLayout))
	}
	if filter.DateTo != nil {
		parts = append(parts, "to "+filter.DateTo.Format(model.DateLayout))
	}
	return strings.Join(parts, " ")
}
