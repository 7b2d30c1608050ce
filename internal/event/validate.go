package event

import "errors"

var (
	ErrNoLevelName = errors.New("event: levelname is required")
	ErrNoCreated   = errors.New("event: created is required")
)

// Validate checks the attributes a transformer cannot work without.
// A zero Created counts as present only when HasCreated is set.
func (e *Event) Validate() error {
	if e.LevelName == "" {
		return ErrNoLevelName
	}
	if e.Created == 0 && !e.HasCreated {
		return ErrNoCreated
	}
	return nil
}
