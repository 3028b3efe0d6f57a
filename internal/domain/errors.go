package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a play-through has not been started or was ended.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrGameNotFound indicates the game content could not be loaded.
	ErrGameNotFound = errors.New("game not found")
	// ErrGameDataNotFound indicates no reward metadata exists for a game.
	ErrGameDataNotFound = errors.New("game data not found")
	// ErrOptionNotFound indicates a submitted option ID is not part of the current stage.
	ErrOptionNotFound = errors.New("option not found")
	// ErrAlreadySelected is returned for any selection after the first on a stage.
	ErrAlreadySelected = errors.New("option already selected for this stage")
	// ErrNotReady is returned when advancing before the reveal delay elapsed.
	ErrNotReady = errors.New("cannot proceed yet")
	// ErrNoSelection is returned when advancing a stage that has not been answered.
	ErrNoSelection = errors.New("no option selected")
	// ErrStagesRemaining is returned when finishing before the last stage was answered.
	ErrStagesRemaining = errors.New("stages remain unanswered")
	// ErrSessionComplete is returned for play actions after the game finished.
	ErrSessionComplete = errors.New("game already complete")
	// ErrRetryNotAllowed is returned when retrying a passed game.
	ErrRetryNotAllowed = errors.New("retry not allowed after passing")
	// ErrInvalidGame wraps content validation failures.
	ErrInvalidGame = errors.New("invalid game content")
	// ErrPreferenceNotFound indicates no stored locale preference for a user.
	ErrPreferenceNotFound = errors.New("locale preference not found")
)
