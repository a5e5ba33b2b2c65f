package common

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/Freeeeeet/tutor_ledger/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_ledger/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_ledger/internal/controller/state"
	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/go-telegram/bot/models"
)

// Форматы callback data
const (
	EditSession       = "edit:"   // edit:<session_id>
	DeleteSession     = "delete:" // delete:<session_id>
	ConfirmDeleteData = "confirm_delete"
	CancelDeleteData  = "cancel_delete"
	ListPage          = "list_page:" // list_page:<page>
)

// ListPageSize записей на одной странице списка
const ListPageSize = 8

// KeepValue ответ в диалоге, оставляющий текущее значение поля
const KeepValue = "-"

// BuildListScreen формирует экран списка записей с кнопками правки и удаления
func BuildListScreen(view model.View, page int) (string, *models.InlineKeyboardMarkup) {
	totalPages := keyboard.PageCount(len(view.Sessions), ListPageSize)
	page = keyboard.ClampPage(page, totalPages)

	var sb strings.Builder
	sb.WriteString("📚 <b>Riwayat Sesi</b>\n")
	sb.WriteString(fmt.Sprintf("💰 Total pendapatan: <b>%s</b>\n", formatting.FormatRupiah(view.TotalFee)))
	if !view.Filter.IsEmpty() {
		sb.WriteString("🔎 Filter: " + html.EscapeString(DescribeFilter(view.Filter)) + "\n")
	}
	sb.WriteString("\n")

	if len(view.Sessions) == 0 {
		if view.Filter.IsEmpty() {
			sb.WriteString("Belum ada sesi yang tercatat. Tambahkan dengan /add")
		} else {
			sb.WriteString("Tidak ada sesi yang cocok dengan filter. Hapus filter dengan /clearfilter")
		}
		return sb.String(), keyboard.Empty()
	}

	kb := keyboard.NewBuilder()
	start := page * ListPageSize
	end := min(start+ListPageSize, len(view.Sessions))

	for i, session := range view.Sessions[start:end] {
		number := strconv.Itoa(start + i + 1)
		sb.WriteString(formatSessionEntry(number, session, view))
		sb.WriteString("\n")

		kb.Row(
			keyboard.Button("✏️ "+number, EditSession+session.ID),
			keyboard.Button("🗑 "+number, DeleteSession+session.ID),
		)
	}
	kb.AddPagination(ListPage, page, totalPages)

	return sb.String(), kb.Build()
}

func formatSessionEntry(number string, session *model.Session, view model.View) string {
	marker := ""
	if view.EditState.IsEditing(session.ID) {
		marker = " ✏️ <i>sedang diedit</i>"
	}
	if view.DeleteState.Mode == model.DeleteModePending && view.DeleteState.TargetID == session.ID {
		marker += " 🗑 <i>menunggu konfirmasi</i>"
	}

	return fmt.Sprintf(
		"<b>%s. %s</b>%s\n"+
			"📅 %s\n"+
			"📖 Topik: %s\n"+
			"⏱ Durasi: %s\n"+
			"💵 %s\n",
		number,
		html.EscapeString(session.StudentName),
		marker,
		formatting.FormatSessionDate(session.Date),
		html.EscapeString(session.Topic),
		formatting.FormatHours(session.Duration),
		formatting.FormatRupiah(session.Fee),
	)
}

// DescribeFilter перечисляет заданные условия фильтра
func DescribeFilter(filter model.Filter) string {
	var parts []string
	if filter.StudentNameContains != "" {
		parts = append(parts, fmt.Sprintf("siswa %q", filter.StudentNameContains))
	}
	if filter.TopicContains != "" {
		parts = append(parts, fmt.Sprintf("topik %q", filter.TopicContains))
	}
	if filter.DateFrom != nil {
		parts = append(parts, "dari "+formatting.FormatDate(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		parts = append(parts, "sampai "+formatting.FormatDate(*filter.DateTo))
	}
	return strings.Join(parts, ", ")
}

// BuildDeleteConfirmScreen формирует запрос подтверждения удаления
func BuildDeleteConfirmScreen(session *model.Session) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"🗑 <b>Hapus sesi ini?</b>\n\n"+
			"👤 %s\n"+
			"📅 %s\n"+
			"📖 %s\n"+
			"💵 %s\n\n"+
			"Tindakan ini tidak dapat dibatalkan.",
		html.EscapeString(session.StudentName),
		formatting.FormatSessionDate(session.Date),
		html.EscapeString(session.Topic),
		formatting.FormatRupiah(session.Fee),
	)

	return text, keyboard.YesNo(ConfirmDeleteData, CancelDeleteData)
}

// BuildSummaryText формирует сводку по всем записям
func BuildSummaryText(summary model.Summary) string {
	var sb strings.Builder
	sb.WriteString("📊 <b>Ringkasan</b>\n\n")
	sb.WriteString(fmt.Sprintf("🗂 Jumlah sesi: %d\n", summary.Count))
	sb.WriteString(fmt.Sprintf("💰 Total pendapatan: %s\n", formatting.FormatRupiah(summary.TotalFee)))
	sb.WriteString(fmt.Sprintf("⏱ Total durasi: %s\n", formatting.FormatHours(summary.TotalHours)))
	if summary.Count > 0 {
		sb.WriteString(fmt.Sprintf("📐 Rata-rata durasi: %s\n", formatting.FormatHours(summary.MeanDuration)))
	}

	if len(summary.Students) > 0 {
		sb.WriteString("\n👤 Siswa: " + html.EscapeString(strings.Join(summary.Students, ", ")) + "\n")
	}
	if len(summary.Topics) > 0 {
		sb.WriteString("📖 Topik: " + html.EscapeString(strings.Join(summary.Topics, ", ")) + "\n")
	}

	return sb.String()
}

// BuildFormPrompt вопрос для шага диалога заполнения формы
func BuildFormPrompt(step state.UserState, view model.View) string {
	form := view.Form
	editing := view.EditState.Mode == model.EditModeEditing

	title := "➕ <b>Sesi baru</b>"
	if editing {
		title = "✏️ <b>Edit sesi</b>"
	}

	var question, current, hint string
	switch step {
	case state.StateFormDate:
		question = "Langkah 1 dari 5: Tanggal sesi (YYYY-MM-DD)"
		current = form.Date
	case state.StateFormStudent:
		question = "Langkah 2 dari 5: Nama siswa"
		current = form.StudentName
		hint = suggestions(view.Students)
	case state.StateFormTopic:
		question = "Langkah 3 dari 5: Topik"
		current = form.Topic
		hint = suggestions(view.Topics)
	case state.StateFormDuration:
		question = "Langkah 4 dari 5: Durasi dalam jam, misalnya 1,5"
		if form.Duration > 0 {
			current = formatting.FormatHours(form.Duration)
		}
	case state.StateFormFee:
		question = "Langkah 5 dari 5: Biaya dalam rupiah, misalnya 50000"
		if editing || !form.Fee.IsZero() {
			current = formatting.FormatRupiah(form.Fee)
		}
	}

	var sb strings.Builder
	sb.WriteString(title + "\n\n" + question + "\n")
	if current != "" {
		sb.WriteString(fmt.Sprintf("Sekarang: <b>%s</b> (kirim %s untuk tetap)\n", html.EscapeString(current), KeepValue))
	}
	if hint != "" {
		sb.WriteString("Saran: " + html.EscapeString(hint) + "\n")
	}
	sb.WriteString("\nBatal: /cancel")

	return sb.String()
}

func suggestions(values []string) string {
	const limit = 5
	if len(values) > limit {
		values = values[:limit]
	}
	return strings.Join(values, ", ")
}
