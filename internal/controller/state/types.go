package state

// UserState представляет текущий шаг диалога пользователя
type UserState string

const (
	StateNone UserState = "" // Нет активного диалога

	// Шаги заполнения формы записи: и для новой, и для редактируемой
	StateFormDate     UserState = "form_date"
	StateFormStudent  UserState = "form_student"
	StateFormTopic    UserState = "form_topic"
	StateFormDuration UserState = "form_duration"
	StateFormFee      UserState = "form_fee"
)

// UserData хранит состояние диалога пользователя
type UserData struct {
	State UserState
	// ListMessageID сообщение со списком, которое перерисовывается при изменениях
	ListMessageID int
	ListPage      int
}

// NextFormStep шаг, следующий за state; после суммы диалог заканчивается
func NextFormStep(state UserState) UserState {
	switch state {
	case StateFormDate:
		return StateFormStudent
	case StateFormStudent:
		return StateFormTopic
	case StateFormTopic:
		return StateFormDuration
	case StateFormDuration:
		return StateFormFee
	default:
		return StateNone
	}
}
