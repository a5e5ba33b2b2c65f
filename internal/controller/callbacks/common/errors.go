package common

import (
	"errors"

	"github.com/Freeeeeet/tutor_ledger/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	if field, ok := service.IsValidation(err); ok {
		return FieldErrorMessage(field)
	}

	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return "❌ Pengguna belum terautentikasi. Gunakan /start."
	case errors.Is(err, service.ErrSessionNotFound):
		return "❌ Sesi tidak ditemukan"
	case errors.Is(err, service.ErrNoPendingDelete):
		return "❌ Tidak ada sesi yang menunggu dihapus"
	case errors.Is(err, ErrNoMessage):
		return "❌ Pesan tidak ditemukan"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Format data tidak valid"
	case service.IsPersistence(err):
		return "❌ Terjadi kesalahan saat menyimpan ke server. Coba lagi."
	default:
		return "❌ Terjadi kesalahan"
	}
}

// DeleteErrorMessage сообщение об ошибке удаления
func DeleteErrorMessage(err error) string {
	if service.IsPersistence(err) {
		return "❌ Terjadi kesalahan saat menghapus sesi. Coba lagi."
	}
	return ErrorMessage(err)
}

// FieldErrorMessage подсказка для неверно заполненного поля
func FieldErrorMessage(field string) string {
	switch field {
	case service.FieldDate:
		return "❌ Tanggal tidak valid. Gunakan format YYYY-MM-DD."
	case service.FieldStudentName:
		return "❌ Nama siswa harus diisi."
	case service.FieldTopic:
		return "❌ Topik harus diisi."
	case service.FieldDuration:
		return "❌ Durasi harus berupa angka lebih dari 0 (jam)."
	case service.FieldFee:
		return "❌ Biaya harus berupa angka 0 atau lebih."
	default:
		return "❌ Semua kolom harus diisi dengan benar."
	}
}
