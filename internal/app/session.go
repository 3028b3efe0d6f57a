package app

import (
	"sync"
	"time"

	"stage-game-service/internal/domain"
)

// Scheduler runs f once after d on its own goroutine and returns a function
// that cancels it. time.AfterFunc satisfies it through realScheduler.
type Scheduler func(d time.Duration, f func()) (stop func() bool)

func realScheduler(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Session is one play-through of a game.
type Session struct {
	id       string
	userID   string
	locale   string
	game     domain.Game
	cfg      domain.GameConfig
	reward   domain.Reward
	now      func() time.Time
	schedule Scheduler

	mu          sync.Mutex
	phase       domain.Phase
	index       int
	history     []domain.HistoryEntry
	selected    string
	reflection  string
	canContinue bool
	coins       int
	finalScore  int
	passed      bool
	totalCoins  int
	totalXP     int
	closed      bool
	updatedAt   time.Time

	// generation invalidates timer callbacks scheduled before the last
	// stage change, reset or close.
	generation  uint64
	timers      []func() bool
	subscribers map[chan domain.Event]struct{}
}

// SessionParams carries everything a session needs at creation.
type SessionParams struct {
	ID        string
	UserID    string
	Locale    string
	Game      domain.Game
	Config    domain.GameConfig
	Reward    domain.Reward
	Now       func() time.Time
	Scheduler Scheduler
}

// NewSession is exported for infrastructure layers and tests that need to seed sessions.
func NewSession(p SessionParams) *Session {
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.Scheduler == nil {
		p.Scheduler = realScheduler
	}
	s := &Session{
		id:          p.ID,
		userID:      p.UserID,
		locale:      p.Locale,
		game:        p.Game,
		cfg:         p.Config,
		reward:      p.Reward,
		now:         p.Now,
		schedule:    p.Scheduler,
		subscribers: make(map[chan domain.Event]struct{}),
	}
	s.resetLocked()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// GameID returns the id of the game being played.
func (s *Session) GameID() string { return s.game.ID }

// Select records the first choice on the current stage.
func (s *Session) Select(optionID string) (domain.SelectionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.SelectionResult{}, domain.ErrSessionNotFound
	}
	if s.phase == domain.PhaseComplete {
		return domain.SelectionResult{}, domain.ErrSessionComplete
	}
	if s.phase != domain.PhasePresenting {
		return domain.SelectionResult{}, domain.ErrAlreadySelected
	}

	stage := s.game.Stages[s.index]
	opt, ok := stage.Option(optionID)
	if !ok {
		return domain.SelectionResult{}, domain.ErrOptionNotFound
	}

	awarded := 0
	if opt.IsCorrect {
		awarded = stage.Points()
		s.coins += awarded
	}
	s.history = append(s.history, domain.HistoryEntry{StageID: stage.ID, IsCorrect: opt.IsCorrect})
	s.selected = opt.ID
	s.reflection = opt.Reflection
	s.canContinue = false
	s.phase = domain.PhaseAwaitingAdvance
	s.updatedAt = s.now()

	last := s.isLastStageLocked()
	s.afterLocked(s.cfg.RevealDelay, s.revealLocked)
	if last && s.cfg.AutoFinish {
		s.afterLocked(s.cfg.FinishDelay, s.autoFinishLocked)
	}

	s.broadcastLocked(domain.Event{
		Type:     domain.EventFeedback,
		Feedback: &domain.Feedback{Points: awarded, Correct: opt.IsCorrect},
	})
	s.broadcastStateLocked()

	return domain.SelectionResult{
		StageID:          stage.ID,
		OptionID:         opt.ID,
		Correct:          opt.IsCorrect,
		Awarded:          awarded,
		Reflection:       opt.Reflection,
		CoinsAccumulated: s.coins,
		LastStage:        last,
	}, nil
}

// Continue moves past an answered stage once the reveal delay elapsed.
// On the last stage it finishes the game.
func (s *Session) Continue() (domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAdvanceLocked(); err != nil {
		return domain.SessionState{}, err
	}
	if s.isLastStageLocked() {
		s.finishLocked()
		return s.snapshotLocked(), nil
	}

	s.stopTimersLocked()
	s.index++
	s.selected = ""
	s.reflection = ""
	s.canContinue = false
	s.phase = domain.PhasePresenting
	s.updatedAt = s.now()

	s.broadcastLocked(domain.Event{Type: domain.EventFeedbackReset})
	s.broadcastStateLocked()
	return s.snapshotLocked(), nil
}

// Finish completes the game after the last stage was answered.
func (s *Session) Finish() (domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAdvanceLocked(); err != nil {
		return domain.SessionState{}, err
	}
	if !s.isLastStageLocked() {
		return domain.SessionState{}, domain.ErrStagesRemaining
	}
	s.finishLocked()
	return s.snapshotLocked(), nil
}

// Retry discards all progress and returns to the first stage.
func (s *Session) Retry() (domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.SessionState{}, domain.ErrSessionNotFound
	}
	if s.phase == domain.PhaseComplete && s.passed {
		return domain.SessionState{}, domain.ErrRetryNotAllowed
	}
	s.resetLocked()
	s.broadcastLocked(domain.Event{Type: domain.EventFeedbackReset})
	s.broadcastStateLocked()
	return s.snapshotLocked(), nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels pending timers and disconnects subscribers.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopTimersLocked()
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

// Subscribe returns a channel of session events, primed with the current state.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *Session) Subscribe() (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, 8)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	ch <- domain.Event{Type: domain.EventState, State: &initial}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) checkAdvanceLocked() error {
	switch {
	case s.closed:
		return domain.ErrSessionNotFound
	case s.phase == domain.PhaseComplete:
		return domain.ErrSessionComplete
	case s.phase == domain.PhasePresenting:
		return domain.ErrNoSelection
	case !s.canContinue:
		return domain.ErrNotReady
	}
	return nil
}

func (s *Session) isLastStageLocked() bool {
	return s.index == len(s.game.Stages)-1
}

// afterLocked schedules fn to run under the session lock unless the session
// moved on in the meantime.
func (s *Session) afterLocked(d time.Duration, fn func()) {
	gen := s.generation
	stop := s.schedule(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || s.generation != gen {
			return
		}
		fn()
	})
	s.timers = append(s.timers, stop)
}

func (s *Session) stopTimersLocked() {
	for _, stop := range s.timers {
		stop()
	}
	s.timers = nil
	s.generation++
}

func (s *Session) revealLocked() {
	if s.phase != domain.PhaseAwaitingAdvance || s.canContinue {
		return
	}
	s.canContinue = true
	s.updatedAt = s.now()
	s.broadcastStateLocked()
}

func (s *Session) autoFinishLocked() {
	if s.phase != domain.PhaseAwaitingAdvance {
		return
	}
	s.canContinue = true
	s.finishLocked()
}

func (s *Session) finishLocked() {
	s.stopTimersLocked()

	correct := 0
	for _, entry := range s.history {
		if entry.IsCorrect {
			correct++
		}
	}
	s.finalScore = correct
	s.passed = correct >= s.cfg.Threshold(len(s.game.Stages))
	if s.passed {
		s.totalCoins = s.reward.Coins
		s.totalXP = s.reward.XP
	} else {
		s.totalCoins = 0
		s.totalXP = 0
	}
	s.canContinue = false
	s.phase = domain.PhaseComplete
	s.updatedAt = s.now()

	s.broadcastLocked(domain.Event{Type: domain.EventFeedbackReset})
	s.broadcastStateLocked()
}

func (s *Session) resetLocked() {
	s.stopTimersLocked()
	s.phase = domain.PhasePresenting
	s.index = 0
	s.history = make([]domain.HistoryEntry, 0, len(s.game.Stages))
	s.selected = ""
	s.reflection = ""
	s.canContinue = false
	s.coins = 0
	s.finalScore = 0
	s.passed = false
	s.totalCoins = 0
	s.totalXP = 0
	s.updatedAt = s.now()
}

func (s *Session) broadcastStateLocked() {
	state := s.snapshotLocked()
	s.broadcastLocked(domain.Event{Type: domain.EventState, State: &state})
}

func (s *Session) broadcastLocked(ev domain.Event) {
	for ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
			// Slow consumer: drop its oldest event to make room.
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}

func (s *Session) snapshotLocked() domain.SessionState {
	history := make([]domain.HistoryEntry, len(s.history))
	copy(history, s.history)

	state := domain.SessionState{
		SessionID:        s.id,
		GameID:           s.game.ID,
		UserID:           s.userID,
		Locale:           s.locale,
		Title:            s.game.Title,
		Subtitle:         s.game.Subtitle,
		Phase:            s.phase,
		StageIndex:       s.index,
		TotalStages:      len(s.game.Stages),
		SelectedOptionID: s.selected,
		Reflection:       s.reflection,
		CanContinue:      s.canContinue,
		History:          history,
		CoinsAccumulated: s.coins,
		FinalScore:       s.finalScore,
		Passed:           s.passed,
		Complete:         s.phase == domain.PhaseComplete,
		TotalCoins:       s.totalCoins,
		TotalXP:          s.totalXP,
		UpdatedAt:        s.updatedAt,
	}

	if state.Complete {
		state.Skill = s.game.Skill
		state.ReflectionPrompts = append([]string(nil), s.game.ReflectionPrompts...)
		state.RetryAvailable = !s.passed
		return state
	}

	if s.index >= len(s.game.Stages) {
		return state
	}
	stage := s.game.Stages[s.index]
	view := &domain.StageView{ID: stage.ID, Prompt: stage.Prompt, Options: make([]domain.OptionView, 0, len(stage.Options))}
	for _, opt := range stage.Options {
		view.Options = append(view.Options, domain.OptionView{
			ID:       opt.ID,
			Label:    opt.Label,
			Disabled: s.selected != "",
		})
	}
	state.Stage = view
	return state
}
