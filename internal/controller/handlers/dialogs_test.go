package handlers

import (
	"testing"

	"github.com/Freeeeeet/tutor_ledger/internal/controller/state"
	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/Freeeeeet/tutor_ledger/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFormAnswer(t *testing.T) {
	empty := model.SessionInput{Date: "2024-03-01"}

	form, err := applyFormAnswer(empty, state.StateFormDate, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", form.Date)

	form, err = applyFormAnswer(form, state.StateFormStudent, "  Budi ")
	require.NoError(t, err)
	assert.Equal(t, "Budi", form.StudentName)

	form, err = applyFormAnswer(form, state.StateFormTopic, "Algebra")
	require.NoError(t, err)
	assert.Equal(t, "Algebra", form.Topic)

	form, err = applyFormAnswer(form, state.StateFormDuration, "1,5")
	require.NoError(t, err)
	assert.Equal(t, 1.5, form.Duration)

	form, err = applyFormAnswer(form, state.StateFormFee, "Rp 50.000")
	require.NoError(t, err)
	assert.Equal(t, "50000", form.Fee.String())
}

func TestApplyFormAnswerKeepsCurrentValue(t *testing.T) {
	current := model.SessionInput{
		Date:        "2024-01-15",
		StudentName: "Budi",
		Topic:       "Algebra",
		Duration:    2,
		Fee:         decimal.NewFromInt(75000),
	}

	for _, step := range []state.UserState{
		state.StateFormDate,
		state.StateFormStudent,
		state.StateFormTopic,
		state.StateFormDuration,
		state.StateFormFee,
	} {
		form, err := applyFormAnswer(current, step, "-")
		require.NoError(t, err, step)
		assert.Equal(t, current, form, step)
	}
}

func TestApplyFormAnswerRejects(t *testing.T) {
	tests := []struct {
		name  string
		form  model.SessionInput
		step  state.UserState
		text  string
		field string
	}{
		{"bad date", model.SessionInput{}, state.StateFormDate, "15-01-2024", service.FieldDate},
		{"keep empty student", model.SessionInput{}, state.StateFormStudent, "-", service.FieldStudentName},
		{"blank topic", model.SessionInput{}, state.StateFormTopic, "   ", service.FieldTopic},
		{"keep missing duration", model.SessionInput{}, state.StateFormDuration, "-", service.FieldDuration},
		{"zero duration", model.SessionInput{}, state.StateFormDuration, "0", service.FieldDuration},
		{"negative fee", model.SessionInput{}, state.StateFormFee, "-5", service.FieldFee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := applyFormAnswer(tt.form, tt.step, tt.text)
			field, ok := service.IsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.field, field)
		})
	}
}

func TestStepForField(t *testing.T) {
	assert.Equal(t, state.StateFormDate, stepForField(service.FieldDate))
	assert.Equal(t, state.StateFormStudent, stepForField(service.FieldStudentName))
	assert.Equal(t, state.StateFormTopic, stepForField(service.FieldTopic))
	assert.Equal(t, state.StateFormDuration, stepForField(service.FieldDuration))
	assert.Equal(t, state.StateFormFee, stepForField(service.FieldFee))
}

func TestSuccessMessage(t *testing.T) {
	assert.Contains(t, successMessage(service.SaveResult{ID: "a", Created: true}), "ditambahkan")
	assert.Contains(t, successMessage(service.SaveResult{ID: "a"}), "diperbarui")
}
