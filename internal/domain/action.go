package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownAction возвращается для значения Action вне закрытого набора
var ErrUnknownAction = errors.New("domain: unknown reservation action")

// Action действие над резервированием, доступное оператору
type Action uint8

const (
	ActionView Action = iota + 1
	ActionEdit
	ActionCancel
	ActionDelete
	ActionCreate
	ActionExport
)

// AllActions полный закрытый набор действий в порядке отображения
var AllActions = []Action{
	ActionView,
	ActionEdit,
	ActionCancel,
	ActionDelete,
	ActionCreate,
	ActionExport,
}

// IsValid проверяет, что значение входит в закрытый набор
func (a Action) IsValid() bool {
	return a >= ActionView && a <= ActionExport
}

func (a Action) String() string {
	switch a {
	case ActionView:
		return "view"
	case ActionEdit:
		return "edit"
	case ActionCancel:
		return "cancel"
	case ActionDelete:
		return "delete"
	case ActionCreate:
		return "create"
	case ActionExport:
		return "export"
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// ParseAction разбирает строковый идентификатор действия
func ParseAction(s string) (Action, error) {
	for _, a := range AllActions {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// ActionSet множество разрешённых действий (битовая маска)
type ActionSet uint8

// NewActionSet создает множество из перечисленных действий
func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

// With возвращает множество с добавленным действием
func (s ActionSet) With(a Action) ActionSet {
	if !a.IsValid() {
		return s
	}
	return s | 1<<a
}

// Has проверяет наличие действия в множестве
func (s ActionSet) Has(a Action) bool {
	return a.IsValid() && s&(1<<a) != 0
}

// List возвращает действия в порядке AllActions
func (s ActionSet) List() []Action {
	actions := make([]Action, 0, len(AllActions))
	for _, a := range AllActions {
		if s.Has(a) {
			actions = append(actions, a)
		}
	}
	return actions
}

// Strings возвращает строковые идентификаторы действий
func (s ActionSet) Strings() []string {
	list := s.List()
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.String())
	}
	return out
}
