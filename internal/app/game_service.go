package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stage-game-service/internal/domain"
)

// SessionRepository abstracts how live sessions are kept (in-memory, Redis-marked, etc).
type SessionRepository interface {
	Save(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// GameRepository loads game content (from cache/backing store).
type GameRepository interface {
	GetGame(ctx context.Context, gameID string) (domain.Game, error)
}

// GameCatalog lists the games available to play.
type GameCatalog interface {
	ListGames(ctx context.Context) ([]domain.GameSummary, error)
}

// MetadataLookup returns reward metadata for a game or domain.ErrGameDataNotFound.
type MetadataLookup interface {
	GetGameData(ctx context.Context, gameID string) (domain.GameData, error)
}

// Translator localizes game content.
type Translator interface {
	Resolve(locale string) string
	Localize(game domain.Game, locale string) domain.Game
	LocalizeSummary(summary domain.GameSummary, locale string) domain.GameSummary
}

// PreferenceStore persists the language a user picked.
type PreferenceStore interface {
	GetLocale(ctx context.Context, userID string) (string, error)
	SetLocale(ctx context.Context, userID, locale string) error
}

// GameService contains the stage game use cases.
type GameService struct {
	sessions   SessionRepository
	games      GameRepository
	cfg        domain.GameConfig
	catalog    GameCatalog
	metadata   MetadataLookup
	translator Translator
	prefs      PreferenceStore
	logger     *zap.Logger
	now        func() time.Time
	schedule   Scheduler
	newID      func() string
}

// Option configures optional GameService collaborators.
type Option func(*GameService)

func WithCatalog(c GameCatalog) Option         { return func(s *GameService) { s.catalog = c } }
func WithMetadata(m MetadataLookup) Option     { return func(s *GameService) { s.metadata = m } }
func WithTranslator(t Translator) Option       { return func(s *GameService) { s.translator = t } }
func WithPreferences(p PreferenceStore) Option { return func(s *GameService) { s.prefs = p } }
func WithLogger(l *zap.Logger) Option          { return func(s *GameService) { s.logger = l } }
func WithScheduler(sched Scheduler) Option     { return func(s *GameService) { s.schedule = sched } }
func WithClock(now func() time.Time) Option    { return func(s *GameService) { s.now = now } }
func WithIDGenerator(gen func() string) Option { return func(s *GameService) { s.newID = gen } }

func NewGameService(store SessionRepository, games GameRepository, cfg domain.GameConfig, opts ...Option) *GameService {
	s := &GameService{
		sessions: store,
		games:    games,
		cfg:      cfg,
		logger:   zap.NewNop(),
		now:      time.Now,
		schedule: realScheduler,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a new play-through of a game for a user.
func (s *GameService) Start(ctx context.Context, gameID, userID, locale string) (domain.SessionState, error) {
	game, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return domain.SessionState{}, err
	}
	if err := game.Validate(); err != nil {
		return domain.SessionState{}, err
	}

	locale = s.resolveLocale(ctx, userID, locale)
	if s.translator != nil {
		game = s.translator.Localize(game, locale)
	}

	session := NewSession(SessionParams{
		ID:        s.newID(),
		UserID:    userID,
		Locale:    locale,
		Game:      game,
		Config:    s.cfg,
		Reward:    s.resolveReward(ctx, game),
		Now:       s.now,
		Scheduler: s.schedule,
	})
	s.sessions.Save(session)

	s.logger.Info("session started",
		zap.String("session_id", session.ID()),
		zap.String("game_id", gameID),
		zap.String("user_id", userID),
		zap.String("locale", locale),
	)
	return session.Snapshot(), nil
}

// Select records a choice for the current stage of a session.
func (s *GameService) Select(_ context.Context, sessionID, optionID string) (domain.SelectionResult, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SelectionResult{}, domain.ErrSessionNotFound
	}
	result, err := session.Select(optionID)
	if err != nil {
		return result, err
	}
	s.logger.Debug("option selected",
		zap.String("session_id", sessionID),
		zap.Int("stage_id", result.StageID),
		zap.String("option_id", optionID),
		zap.Bool("correct", result.Correct),
	)
	return result, nil
}

// Continue advances past the answered stage.
func (s *GameService) Continue(_ context.Context, sessionID string) (domain.SessionState, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionState{}, domain.ErrSessionNotFound
	}
	state, err := session.Continue()
	if err == nil && state.Complete {
		s.logCompleted(state)
	}
	return state, err
}

// Finish completes the game once the last stage was answered.
func (s *GameService) Finish(_ context.Context, sessionID string) (domain.SessionState, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionState{}, domain.ErrSessionNotFound
	}
	state, err := session.Finish()
	if err == nil {
		s.logCompleted(state)
	}
	return state, err
}

// Retry resets a session back to its first stage.
func (s *GameService) Retry(_ context.Context, sessionID string) (domain.SessionState, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionState{}, domain.ErrSessionNotFound
	}
	state, err := session.Retry()
	if err == nil {
		s.logger.Info("session reset", zap.String("session_id", sessionID))
	}
	return state, err
}

// State returns the current snapshot of a session.
func (s *GameService) State(_ context.Context, sessionID string) (domain.SessionState, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionState{}, domain.ErrSessionNotFound
	}
	return session.Snapshot(), nil
}

// Subscribe returns a channel that receives events for a session, including
// those caused by timers. The caller must invoke the returned cancel function.
func (s *GameService) Subscribe(_ context.Context, sessionID string) (<-chan domain.Event, func(), error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := session.Subscribe()
	return ch, cancel, nil
}

// End discards a session, cancelling its pending timers.
func (s *GameService) End(_ context.Context, sessionID string) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	session.Close()
	s.sessions.Delete(sessionID)
	s.logger.Debug("session ended", zap.String("session_id", sessionID))
}

// ListGames returns the catalog, localized when a translator is configured.
func (s *GameService) ListGames(ctx context.Context, locale string) ([]domain.GameSummary, error) {
	if s.catalog == nil {
		return []domain.GameSummary{}, nil
	}
	summaries, err := s.catalog.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	if s.translator == nil {
		return summaries, nil
	}
	locale = s.translator.Resolve(locale)
	for i := range summaries {
		summaries[i] = s.translator.LocalizeSummary(summaries[i], locale)
	}
	return summaries, nil
}

// resolveLocale prefers the explicit choice (and remembers it), then the
// stored preference, then the translator's default.
func (s *GameService) resolveLocale(ctx context.Context, userID, locale string) string {
	if locale != "" {
		if s.translator != nil {
			locale = s.translator.Resolve(locale)
		}
		if s.prefs != nil && userID != "" {
			if err := s.prefs.SetLocale(ctx, userID, locale); err != nil {
				s.logger.Warn("persist locale preference", zap.String("user_id", userID), zap.Error(err))
			}
		}
		return locale
	}

	if s.prefs != nil && userID != "" {
		stored, err := s.prefs.GetLocale(ctx, userID)
		switch {
		case err == nil:
			locale = stored
		case !errors.Is(err, domain.ErrPreferenceNotFound):
			s.logger.Warn("load locale preference", zap.String("user_id", userID), zap.Error(err))
		}
	}
	if s.translator != nil {
		return s.translator.Resolve(locale)
	}
	return locale
}

// resolveReward falls back silently from metadata to the game's own reward
// to the configured defaults.
func (s *GameService) resolveReward(ctx context.Context, game domain.Game) domain.Reward {
	reward := domain.Reward{Coins: s.cfg.DefaultCoins, XP: s.cfg.DefaultXP}
	if game.Reward.Coins > 0 {
		reward.Coins = game.Reward.Coins
	}
	if game.Reward.XP > 0 {
		reward.XP = game.Reward.XP
	}

	if s.metadata == nil {
		return reward
	}
	data, err := s.metadata.GetGameData(ctx, game.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrGameDataNotFound) {
			s.logger.Warn("game data lookup failed, using defaults", zap.String("game_id", game.ID), zap.Error(err))
		}
		return reward
	}
	if data.Coins > 0 {
		reward.Coins = data.Coins
	}
	if data.XP > 0 {
		reward.XP = data.XP
	}
	return reward
}

func (s *GameService) logCompleted(state domain.SessionState) {
	s.logger.Info("session complete",
		zap.String("session_id", state.SessionID),
		zap.String("game_id", state.GameID),
		zap.Int("final_score", state.FinalScore),
		zap.Bool("passed", state.Passed),
		zap.Int("coins", state.TotalCoins),
	)
}
