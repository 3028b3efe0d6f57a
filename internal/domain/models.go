package domain

import "time"

// Option represents one selectable answer within a stage.
type Option struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Reflection string `json:"reflection"`
	IsCorrect  bool   `json:"isCorrect"`
}

// Stage models one scenario screen. Exactly one option is conventionally correct.
type Stage struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
	Reward  int      `json:"reward"` // defaults to 1 if zero
}

// Points returns the coins granted for a correct choice on this stage.
func (s Stage) Points() int {
	if s.Reward > 0 {
		return s.Reward
	}
	return 1
}

// Option looks up an option by id.
func (s Stage) Option(id string) (Option, bool) {
	for _, opt := range s.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// Reward is a coin/XP pair granted on a passed game.
type Reward struct {
	Coins int `json:"coins"`
	XP    int `json:"xp"`
}

// Game is an ordered list of stages plus its completion copy.
type Game struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Subtitle          string   `json:"subtitle"`
	Skill             string   `json:"skill"`
	ReflectionPrompts []string `json:"reflectionPrompts"`
	Stages            []Stage  `json:"stages"`
	Reward            Reward   `json:"reward"`
}

// GameSummary is the catalog view of a game.
type GameSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Stages   int    `json:"stages"`
}

// Summary returns the catalog view of g.
func (g Game) Summary() GameSummary {
	return GameSummary{ID: g.ID, Title: g.Title, Subtitle: g.Subtitle, Stages: len(g.Stages)}
}

// GameData is externally managed reward metadata for a game.
type GameData struct {
	Coins int `json:"coins"`
	XP    int `json:"xp"`
}

// GameConfig parametrizes the runtime for every game.
type GameConfig struct {
	RevealDelay   time.Duration
	FinishDelay   time.Duration
	PassThreshold int // 0 means every stage must be correct
	AutoFinish    bool
	DefaultCoins  int
	DefaultXP     int
}

// DefaultGameConfig returns the canonical timing and reward parameters.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		RevealDelay:  1500 * time.Millisecond,
		FinishDelay:  5500 * time.Millisecond,
		AutoFinish:   true,
		DefaultCoins: 10,
		DefaultXP:    10,
	}
}

// Threshold returns the number of correct answers needed to pass a game of n stages.
func (c GameConfig) Threshold(n int) int {
	if c.PassThreshold <= 0 || c.PassThreshold > n {
		return n
	}
	return c.PassThreshold
}

// Phase is the runtime state of a session.
type Phase string

const (
	PhasePresenting      Phase = "presenting"
	PhaseAwaitingAdvance Phase = "awaiting_advance"
	PhaseComplete        Phase = "complete"
)

// HistoryEntry records the outcome of one answered stage.
type HistoryEntry struct {
	StageID   int  `json:"stageId"`
	IsCorrect bool `json:"isCorrect"`
}

// OptionView is an option as shown to a player, without its correctness.
type OptionView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// StageView is the current stage as shown to a player.
type StageView struct {
	ID      int          `json:"id"`
	Prompt  string       `json:"prompt"`
	Options []OptionView `json:"options"`
}

// SessionState is a point-in-time snapshot of one play-through.
type SessionState struct {
	SessionID         string         `json:"sessionId"`
	GameID            string         `json:"gameId"`
	UserID            string         `json:"userId"`
	Locale            string         `json:"locale"`
	Title             string         `json:"title"`
	Subtitle          string         `json:"subtitle"`
	Phase             Phase          `json:"phase"`
	StageIndex        int            `json:"stageIndex"`
	TotalStages       int            `json:"totalStages"`
	Stage             *StageView     `json:"stage,omitempty"`
	SelectedOptionID  string         `json:"selectedOptionId,omitempty"`
	Reflection        string         `json:"reflection,omitempty"`
	CanContinue       bool           `json:"canContinue"`
	History           []HistoryEntry `json:"history"`
	CoinsAccumulated  int            `json:"coinsAccumulated"`
	FinalScore        int            `json:"finalScore"`
	Passed            bool           `json:"passed"`
	Complete          bool           `json:"complete"`
	TotalCoins        int            `json:"totalCoins"`
	TotalXP           int            `json:"totalXp"`
	Skill             string         `json:"skill,omitempty"`
	ReflectionPrompts []string       `json:"reflectionPrompts,omitempty"`
	RetryAvailable    bool           `json:"retryAvailable"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// SelectionResult summarizes the outcome of choosing an option.
type SelectionResult struct {
	StageID          int    `json:"stageId"`
	OptionID         string `json:"optionId"`
	Correct          bool   `json:"correct"`
	Awarded          int    `json:"awarded"`
	Reflection       string `json:"reflection"`
	CoinsAccumulated int    `json:"coinsAccumulated"`
	LastStage        bool   `json:"lastStage"`
}

// Feedback is the answer animation signal for a client.
type Feedback struct {
	Points  int  `json:"points"`
	Correct bool `json:"correct"`
}

// EventType names a pushed session event.
type EventType string

const (
	EventState         EventType = "state"
	EventFeedback      EventType = "feedback"
	EventFeedbackReset EventType = "feedback_reset"
)

// Event is pushed to session subscribers.
type Event struct {
	Type     EventType     `json:"type"`
	State    *SessionState `json:"state,omitempty"`
	Feedback *Feedback     `json:"feedback,omitempty"`
}
