package history

import "log/slog"

// Recorder adapts the store to the cycle controller's recording hooks.
// Recording is best-effort: failures are logged and never fail the run.
type Recorder struct {
	store *Store
	runID int64

	workDuration   int
	shortBreak     int
	longBreak      int
	longBreakEvery int
	targetSessions int
}

// NewRecorder prepares a recorder for one run. Durations are in seconds.
func NewRecorder(store *Store, workDuration, shortBreak, longBreak, longBreakEvery, targetSessions int) *Recorder {
	return &Recorder{
		store:          store,
		workDuration:   workDuration,
		shortBreak:     shortBreak,
		longBreak:      longBreak,
		longBreakEvery: longBreakEvery,
		targetSessions: targetSessions,
	}
}

func (r *Recorder) RunStarted() {
	run, err := r.store.StartRun(r.workDuration, r.shortBreak, r.longBreak, r.longBreakEvery, r.targetSessions)
	if err != nil {
		slog.Warn("Failed to record run start", "error", err)
		return
	}
	r.runID = run.ID
}

func (r *Recorder) WorkCompleted() {
	if r.runID == 0 {
		return
	}
	if err := r.store.IncrementCompleted(r.runID); err != nil {
		slog.Warn("Failed to record completed pomodoro", "error", err)
	}
}

func (r *Recorder) BreakTaken(long bool) {
	if r.runID == 0 {
		return
	}
	if err := r.store.IncrementBreak(r.runID, long); err != nil {
		slog.Warn("Failed to record break", "error", err)
	}
}

func (r *Recorder) Finished(status string) {
	if r.runID == 0 {
		return
	}
	if err := r.store.FinishRun(r.runID, status); err != nil {
		slog.Warn("Failed to record run outcome", "error", err)
	}
}
