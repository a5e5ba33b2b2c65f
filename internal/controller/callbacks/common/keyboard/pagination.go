package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// NoopData callback кнопки, которая ничего не делает
const NoopData = "noop"

// PageCount количество страниц для total элементов по size на странице
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// ClampPage приводит номер страницы (0-based) к допустимому диапазону
func ClampPage(page, totalPages int) int {
	if page >= totalPages {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}

// PaginationButtons создаёт ряд кнопок пагинации
// prefix - префикс для callback (например "list_page:")
// currentPage - текущая страница (0-based)
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	buttons = append(buttons, Button(
		fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages),
		NoopData,
	))

	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	return b.Row(PaginationButtons(prefix, currentPage, totalPages)...)
}
