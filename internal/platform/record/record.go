// Package record logs match lifecycles and persists finished matches.
// Hosts own one Recorder per game instance.
package record

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/geirtris/internal/core"
	"github.com/vovakirdan/geirtris/internal/storage"
)

// Recorder saves each match at most once.
type Recorder struct {
	store   *storage.Store // nil disables persistence
	logger  *log.Logger
	gameID  string
	matchID string
	started time.Time
	saved   bool
	now     func() time.Time
}

// New creates a recorder. A nil logger discards log output.
func New(store *storage.Store, logger *log.Logger, gameID string) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{
		store:  store,
		logger: logger.With("game", gameID),
		gameID: gameID,
		now:    time.Now,
	}
}

// Start marks the beginning of a match.
func (r *Recorder) Start(st core.GameState) {
	r.matchID = st.MatchID
	r.started = r.now()
	r.saved = false
	r.logger.Info("match started", "match", st.MatchID)
}

// Finish records the final state of the current match. Calls after the
// first one for the same match are ignored. Returns whether it saved.
func (r *Recorder) Finish(st core.GameState) bool {
	if r.saved || st.MatchID == "" || st.MatchID != r.matchID {
		return false
	}
	r.saved = true

	played := r.now().Sub(r.started)
	r.logger.Info("match over",
		"match", st.MatchID,
		"reason", st.EndReason,
		"locked", st.Locked,
		"ticks", st.Ticks,
		"played", played.Round(time.Millisecond),
	)

	// Matches abandoned before anything locked are not worth keeping.
	if r.store == nil || (st.EndReason == core.EndReasonEnded && st.Locked == 0) {
		return false
	}

	// Best-effort save, game continues regardless
	if _, err := r.store.SaveMatch(storage.RecordFromState(r.gameID, st, played)); err != nil {
		r.logger.Warn("could not save match", "match", st.MatchID, "error", err)
		return false
	}
	r.logger.Debug("match saved", "match", st.MatchID)
	return true
}

// Saved reports whether the current match has been finished.
func (r *Recorder) Saved() bool {
	return r.saved
}

// Observe feeds one host frame's result to the recorder. A new match id
// starts tracking, and the game-over signal finishes the match.
func (r *Recorder) Observe(res core.StepResult) {
	if res.State.MatchID != "" && res.State.MatchID != r.matchID {
		r.Start(res.State)
	}
	if res.GameOverSignal {
		r.Finish(res.State)
	}
}
