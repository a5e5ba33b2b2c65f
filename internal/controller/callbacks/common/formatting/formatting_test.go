package formatting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"zero", decimal.Zero, "Rp0"},
		{"thousands", decimal.NewFromInt(50000), "Rp50.000"},
		{"millions", decimal.NewFromInt(1250000), "Rp1.250.000"},
		{"fraction", decimal.RequireFromString("1250.5"), "Rp1.250,5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRupiah(tt.amount))
		})
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "1,5 jam", FormatHours(1.5))
	assert.Equal(t, "2 jam", FormatHours(2))
}

func TestFormatLongDate(t *testing.T) {
	day := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "Jumat, 5 Januari 2024", FormatLongDate(day))
}

func TestFormatSessionDate(t *testing.T) {
	assert.Equal(t, "Senin, 15 Januari 2024", FormatSessionDate("2024-01-15"))
	assert.Equal(t, "kemarin", FormatSessionDate("kemarin"))
}
