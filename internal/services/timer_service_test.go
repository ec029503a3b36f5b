package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustrack/internal/models"
	"focustrack/internal/repositories"
)

// fakeTimerStore is an in-memory stand-in for the Postgres-backed timer
// repository. InTx runs the callback against the store itself; the tests
// only exercise the engine's state machine, not transaction isolation.
type fakeTimerStore struct {
	tasks    map[int64]*models.Task
	activity []string
}

func newFakeTimerStore(tasks ...*models.Task) *fakeTimerStore {
	s := &fakeTimerStore{tasks: map[int64]*models.Task{}}
	for _, t := range tasks {
		s.tasks[t.ID] = t
	}
	return s
}

func (f *fakeTimerStore) InTx(ctx context.Context, fn func(repositories.TimerTx) error) error {
	return fn(f)
}

func (f *fakeTimerStore) TaskForUpdate(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repositories.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTimerStore) TaskByID(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	return f.TaskForUpdate(ctx, id, ownerID)
}

func (f *fakeTimerStore) PauseOtherRunning(ctx context.Context, ownerID, exceptID int64) error {
	for id, t := range f.tasks {
		if t.OwnerID != ownerID || id == exceptID {
			continue
		}
		if t.TimerStartTime == nil && t.TimerSessionID == nil {
			continue
		}
		if t.Status == models.StatusInProgress {
			t.Status = models.StatusPaused
		}
		t.TimerStartTime = nil
		t.TimerSessionID = nil
		t.LastSyncTime = nil
	}
	return nil
}

func (f *fakeTimerStore) ApplyTimer(ctx context.Context, id, ownerID int64, u models.TimerUpdate) error {
	t, ok := f.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return repositories.ErrTaskNotFound
	}
	t.Status = u.Status
	t.TimeSpent = u.TimeSpent
	t.TimerStartTime = u.StartTime
	t.TimerSessionID = u.SessionID
	t.LastSyncTime = u.LastSyncTime
	return nil
}

func (f *fakeTimerStore) TouchSync(ctx context.Context, id, ownerID int64, at time.Time) error {
	t, ok := f.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return repositories.ErrTaskNotFound
	}
	t.LastSyncTime = &at
	return nil
}

func (f *fakeTimerStore) LogActivity(ctx context.Context, ownerID int64, taskID *int64, message string, at time.Time) error {
	f.activity = append(f.activity, message)
	return nil
}

const owner = int64(7)

func pendingTask(id int64) *models.Task {
	return &models.Task{
		ID:        id,
		OwnerID:   owner,
		EntryDate: "2025-03-15",
		Title:     "write report",
		Status:    models.StatusPending,
	}
}

// newTimerService returns the service wired to the fake store with a frozen,
// manually advanced clock.
func newTimerService(store *fakeTimerStore) (TimerService, *time.Time) {
	base := time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)
	now := &base
	svc := NewTimerService(store).(*timerService)
	svc.now = func() time.Time { return *now }
	return svc, now
}

func TestTimer_StartPauseStartStop(t *testing.T) {
	ctx := context.Background()
	store := newFakeTimerStore(pendingTask(1))
	svc, now := newTimerService(store)

	started, err := svc.Start(ctx, owner, 1, "s1")
	require.NoError(t, err)
	assert.Equal(t, "success", started.Status)
	assert.Equal(t, "s1", started.SessionID)
	assert.Equal(t, models.StatusInProgress, store.tasks[1].Status)
	require.NotNil(t, store.tasks[1].TimerStartTime)

	*now = now.Add(5 * time.Second)
	paused, err := svc.Pause(ctx, owner, 1, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), paused.TimeSpent)
	assert.Equal(t, int64(5000), paused.ElapsedInSession)
	assert.Equal(t, models.StatusPaused, store.tasks[1].Status)
	assert.Nil(t, store.tasks[1].TimerStartTime)
	assert.Nil(t, store.tasks[1].TimerSessionID)

	_, err = svc.Start(ctx, owner, 1, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, store.tasks[1].Status)

	*now = now.Add(2 * time.Second)
	stopped, err := svc.Stop(ctx, owner, 1, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(7000), stopped.TimeSpent)
	assert.Equal(t, int64(2000), stopped.ElapsedInSession)
	assert.Equal(t, models.StatusCompleted, store.tasks[1].Status)
	assert.Equal(t, []string{"Completed task: write report"}, store.activity)
}

func TestTimer_StartPausesOtherRunningTask(t *testing.T) {
	ctx := context.Background()
	store := newFakeTimerStore(pendingTask(1), pendingTask(2))
	svc, now := newTimerService(store)

	_, err := svc.Start(ctx, owner, 1, "sA")
	require.NoError(t, err)

	*now = now.Add(3 * time.Second)
	_, err = svc.Start(ctx, owner, 2, "sB")
	require.NoError(t, err)

	a, b := store.tasks[1], store.tasks[2]
	assert.Equal(t, models.StatusPaused, a.Status)
	assert.Nil(t, a.TimerStartTime)
	assert.Nil(t, a.TimerSessionID)
	assert.Equal(t, models.StatusInProgress, b.Status)

	// only one task per owner may be running
	running := 0
	for _, task := range store.tasks {
		if task.Status == models.StatusInProgress {
			running++
		}
	}
	assert.Equal(t, 1, running)
}

func TestTimer_StartHealsStaleSessionWithoutCrediting(t *testing.T) {
	ctx := context.Background()
	stale := pendingTask(1)
	sid := "session_1_dead"
	startedAt := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	stale.Status = models.StatusInProgress
	stale.TimerStartTime = &startedAt
	stale.TimerSessionID = &sid
	store := newFakeTimerStore(stale, pendingTask(2))
	svc, _ := newTimerService(store)

	_, err := svc.Start(ctx, owner, 2, "s2")
	require.NoError(t, err)

	// crashed session's task is paused and its elapsed time is not credited
	assert.Equal(t, models.StatusPaused, store.tasks[1].Status)
	assert.Equal(t, int64(0), store.tasks[1].TimeSpent)
	assert.Nil(t, store.tasks[1].TimerStartTime)
}

func TestTimer_StartOnCompletedTask(t *testing.T) {
	ctx := context.Background()
	done := pendingTask(1)
	done.Status = models.StatusCompleted
	store := newFakeTimerStore(done)
	svc, _ := newTimerService(store)

	_, err := svc.Start(ctx, owner, 1, "s1")
	assert.ErrorIs(t, err, ErrTaskCompleted)
}

func TestTimer_OwnerMismatchLooksLikeNotFound(t *testing.T) {
	ctx := context.Background()
	store := newFakeTimerStore(pendingTask(1))
	svc, _ := newTimerService(store)

	_, err := svc.Start(ctx, owner+1, 1, "s1")
	assert.ErrorIs(t, err, repositories.ErrTaskNotFound)

	_, err = svc.Status(ctx, owner+1, 1)
	assert.ErrorIs(t, err, repositories.ErrTaskNotFound)
}

func TestTimer_PauseWithoutActiveTimer(t *testing.T) {
	ctx := context.Background()
	store := newFakeTimerStore(pendingTask(1))
	svc, _ := newTimerService(store)

	_, err := svc.Pause(ctx, owner, 1, "s1")
	assert.ErrorIs(t, err, ErrNoActiveTimer)
}

func TestTimer_PauseWithWrongSession(t *testing.T) {
	ctx := context.Background()
	store := newFakeTimerStore(pendingTask(1))
	svc, now := newTimerService(store)

	_, err := svc.Start(ctx, owner, 1, "s1")
	require.NoError(t, err)

	*now = now.Add(time.Second)
	_, err = svc.Pause(ctx, owner, 1, "other")
	assert.ErrorIs(t, err, ErrNoActiveTimer)
	// nothing was credited
	assert.Equal(t, int64(0), store.tasks[1].TimeSpent)
	assert.Equal(t, models.StatusInProgress, store.tasks[1].Status)
}

func TestTimer_SyncStaleSessionMutatesNothing(t *testing.T) {
	ctx := context.Background()
	store := newFakeTimerStore(pendingTask(1))
	svc, now := newTimerService(store)

	_, err := svc.Start(ctx, owner, 1, "s1")
	require.NoError(t, err)
	before := *store.tasks[1]

	*now = now.Add(10 * time.Second)
	res, err := svc.Sync(ctx, owner, 1, "someone-elses-session")
	require.NoError(t, err)
	assert.Equal(t, "session_invalid", res.Status)
	assert.Equal(t, before, *store.tasks[1])
}

func TestTimer_SyncReportsElapsedWithoutTouchingTimeSpent(t *testing.T) {
	ctx := context.Background()
	store := newFakeTimerStore(pendingTask(1))
	svc, now := newTimerService(store)

	_, err := svc.Start(ctx, owner, 1, "s1")
	require.NoError(t, err)

	*now = now.Add(4 * time.Second)
	res, err := svc.Sync(ctx, owner, 1, "s1")
	require.NoError(t, err)
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, models.StatusInProgress, res.TaskStatus)
	assert.Equal(t, int64(0), res.TimeSpent)
	assert.Equal(t, int64(4000), res.CurrentSessionElapsed)
	assert.Equal(t, int64(4000), res.TotalDisplayTime)
	assert.Equal(t, int64(0), store.tasks[1].TimeSpent)
	assert.Equal(t, *now, *store.tasks[1].LastSyncTime)
}

func TestTimer_StopPausedTaskWithLiveSession(t *testing.T) {
	ctx := context.Background()
	task := pendingTask(1)
	sid := "s1"
	task.Status = models.StatusPaused
	task.TimeSpent = 9000
	task.TimerSessionID = &sid // token survived a cleanup-less pause path
	store := newFakeTimerStore(task)
	svc, _ := newTimerService(store)

	res, err := svc.Stop(ctx, owner, 1, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(9000), res.TimeSpent)
	assert.Equal(t, int64(0), res.ElapsedInSession)
	assert.Equal(t, models.StatusCompleted, store.tasks[1].Status)
}

func TestTimer_SecondStopFails(t *testing.T) {
	ctx := context.Background()
	store := newFakeTimerStore(pendingTask(1))
	svc, now := newTimerService(store)

	_, err := svc.Start(ctx, owner, 1, "s1")
	require.NoError(t, err)

	*now = now.Add(time.Second)
	first, err := svc.Stop(ctx, owner, 1, "s1")
	require.NoError(t, err)

	_, err = svc.Stop(ctx, owner, 1, "s1")
	assert.ErrorIs(t, err, ErrSessionMismatch)
	assert.Equal(t, first.TimeSpent, store.tasks[1].TimeSpent)
	assert.Len(t, store.activity, 1)
}

func TestTimer_CleanupPausesWithoutCrediting(t *testing.T) {
	ctx := context.Background()
	store := newFakeTimerStore(pendingTask(1))
	svc, now := newTimerService(store)

	_, err := svc.Start(ctx, owner, 1, "s1")
	require.NoError(t, err)

	*now = now.Add(30 * time.Second)
	require.NoError(t, svc.Cleanup(ctx, owner, 1, "s1"))
	assert.Equal(t, models.StatusPaused, store.tasks[1].Status)
	assert.Equal(t, int64(0), store.tasks[1].TimeSpent)
	assert.Nil(t, store.tasks[1].TimerStartTime)
	assert.Nil(t, store.tasks[1].TimerSessionID)

	// idempotent: nothing left to clean
	require.NoError(t, svc.Cleanup(ctx, owner, 1, "s1"))
	// wrong session is a no-op, not an error
	require.NoError(t, svc.Cleanup(ctx, owner, 1, "unknown"))
}

func TestTimer_ElapsedFloorsToMilliseconds(t *testing.T) {
	ctx := context.Background()
	store := newFakeTimerStore(pendingTask(1))
	svc, now := newTimerService(store)

	_, err := svc.Start(ctx, owner, 1, "s1")
	require.NoError(t, err)

	*now = now.Add(1500*time.Millisecond + 700*time.Microsecond)
	res, err := svc.Pause(ctx, owner, 1, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), res.ElapsedInSession)
}

func TestTimer_StatusIsReadOnly(t *testing.T) {
	ctx := context.Background()
	store := newFakeTimerStore(pendingTask(1))
	svc, now := newTimerService(store)

	_, err := svc.Start(ctx, owner, 1, "s1")
	require.NoError(t, err)
	before := *store.tasks[1]

	*now = now.Add(2 * time.Second)
	st, err := svc.Status(ctx, owner, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), st.CurrentSessionElapsed)
	assert.Equal(t, int64(2000), st.TotalDisplayTime)
	assert.Equal(t, "write report", st.Title)
	require.NotNil(t, st.SessionID)
	assert.Equal(t, "s1", *st.SessionID)
	assert.Equal(t, before, *store.tasks[1])
}
