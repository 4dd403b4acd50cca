package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/pomo/internal/config"
	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/stats"
	"github.com/alexanderramin/pomo/internal/store"
	"github.com/alexanderramin/pomo/internal/tasks"
	"github.com/alexanderramin/pomo/internal/testutil"
	"github.com/alexanderramin/pomo/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	app   *App
	clock *testutil.FakeClock
	store *store.Store
	dir   string
}

// testApp wires a full App over a temp data directory and a fake clock, so
// countdowns finish instantly.
func testApp(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Storage.DataDir = dir

	s := store.New(store.NewFileBackend(dir, nil), nil)
	clock := testutil.NewFakeClock(testStart)
	reg := tasks.Open(ctx, s, tasks.WithClock(clock.Now))
	log := stats.OpenLog(ctx, s, nil)
	engine := stats.NewEngine(log, clock.Now)
	term := NewTerminal(strings.NewReader(""), new(bytes.Buffer), false, engine)

	m, err := timer.New(log,
		timer.WithClock(clock),
		timer.WithTaskCounter(reg),
		timer.WithDisplay(term),
		timer.WithPrompter(term),
	)
	require.NoError(t, err)

	return &testEnv{
		app: &App{
			Config:   cfg,
			Tasks:    reg,
			Log:      log,
			Stats:    engine,
			Timer:    m,
			Terminal: term,
			Now:      clock.Now,
		},
		clock: clock,
		store: s,
		dir:   dir,
	}
}

// executeCmd runs the root command with args, feeding input to stdin, and
// returns combined output.
func executeCmd(t *testing.T, app *App, input string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func seedTasks(t *testing.T, app *App, names ...string) {
	t.Helper()
	for _, n := range names {
		_, err := app.Tasks.Add(context.Background(), n, domain.PriorityMedium)
		require.NoError(t, err)
	}
}

// --- Root ---

func TestRootCmd_NonInteractivePrintsHelp(t *testing.T) {
	env := testApp(t)
	out, err := executeCmd(t, env.app, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "start")
}

// --- Tasks ---

func TestTaskAddAndList(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "", "task", "add", "Write", "report", "--priority", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Task added: Write report")

	_, err = executeCmd(t, env.app, "", "task", "add", "Email")
	require.NoError(t, err)

	out, err = executeCmd(t, env.app, "", "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Email")
	assert.Contains(t, out, "Total: 2 tasks (2 pending, 0 completed)")

	all := env.app.Tasks.All()
	require.Len(t, all, 2)
	assert.Equal(t, domain.PriorityHigh, all[0].Priority)
	assert.Equal(t, []int{1, 2}, []int{all[0].ID, all[1].ID})
}

func TestTaskAdd_Invalid(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "", "task", "add", "Read", "--priority", "urgent")
	assert.ErrorContains(t, err, "invalid priority")

	_, err = executeCmd(t, env.app, "", "task", "add", "   ")
	assert.ErrorIs(t, err, tasks.ErrInvalidName)
	assert.Zero(t, env.app.Tasks.Len())
}

func TestTaskDoneUndoAndFilters(t *testing.T) {
	env := testApp(t)
	seedTasks(t, env.app, "Write", "Read")

	out, err := executeCmd(t, env.app, "", "task", "done", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Task completed: Read")

	out, err = executeCmd(t, env.app, "", "task", "list", "--pending")
	require.NoError(t, err)
	assert.Contains(t, out, "Write")
	assert.NotContains(t, out, "Read")

	_, err = executeCmd(t, env.app, "", "task", "undo", "2")
	require.NoError(t, err)
	assert.Len(t, env.app.Tasks.Pending(), 2)

	_, err = executeCmd(t, env.app, "", "task", "done", "7")
	assert.ErrorContains(t, err, "task 7 not found")

	_, err = executeCmd(t, env.app, "", "task", "done", "x")
	assert.ErrorContains(t, err, "invalid task number")
}

func TestTaskRenamePriorityRemove(t *testing.T) {
	env := testApp(t)
	seedTasks(t, env.app, "Write", "Read", "Email")

	_, err := executeCmd(t, env.app, "", "task", "rename", "1", "Write draft")
	require.NoError(t, err)
	_, err = executeCmd(t, env.app, "", "task", "priority", "3", "HIGH")
	require.NoError(t, err)
	out, err := executeCmd(t, env.app, "", "task", "rm", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Task deleted: Read")

	all := env.app.Tasks.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Write draft", all[0].Name)
	assert.Equal(t, domain.PriorityHigh, all[1].Priority)

	_, err = executeCmd(t, env.app, "", "task", "add", "Plan")
	require.NoError(t, err)
	last, _ := env.app.Tasks.Get(2)
	assert.Equal(t, 4, last.ID, "ids are never reused")
}

func TestTaskSortAndSearch(t *testing.T) {
	env := testApp(t)
	ctx := context.Background()
	_, err := env.app.Tasks.Add(ctx, "Low thing", domain.PriorityLow)
	require.NoError(t, err)
	_, err = env.app.Tasks.Add(ctx, "Urgent report", domain.PriorityHigh)
	require.NoError(t, err)

	_, err = executeCmd(t, env.app, "", "task", "sort", "priority")
	require.NoError(t, err)
	first, _ := env.app.Tasks.Get(0)
	assert.Equal(t, "Urgent report", first.Name)

	_, err = executeCmd(t, env.app, "", "task", "sort", "name")
	assert.Error(t, err)

	out, err := executeCmd(t, env.app, "", "task", "search", "REPORT")
	require.NoError(t, err)
	assert.Contains(t, out, "1 match(es)")
	assert.Contains(t, out, "Urgent report")
	assert.NotContains(t, out, "Low thing")
}

func TestTaskClear(t *testing.T) {
	env := testApp(t)
	seedTasks(t, env.app, "A", "B", "C")
	_, err := env.app.Tasks.Complete(context.Background(), 0)
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "", "task", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 completed task(s)")
	assert.Equal(t, 2, env.app.Tasks.Len())

	out, err = executeCmd(t, env.app, "n\n", "task", "clear", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete all 2 tasks? (y/n)")
	assert.Contains(t, out, "Nothing deleted.")
	assert.Equal(t, 2, env.app.Tasks.Len())

	_, err = executeCmd(t, env.app, "", "task", "clear", "--all", "--yes")
	require.NoError(t, err)
	assert.Zero(t, env.app.Tasks.Len())
}

func TestTaskExport(t *testing.T) {
	env := testApp(t)
	seedTasks(t, env.app, "Write")
	work := t.TempDir()
	t.Chdir(work)

	out, err := executeCmd(t, env.app, "", "task", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "to tasks_export.json")
	assert.NoFileExists(t, filepath.Join(env.dir, "tasks_export.json"))
	path := filepath.Join(work, "tasks_export.json")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var exp tasks.Export
	require.NoError(t, json.Unmarshal(data, &exp))
	assert.Equal(t, 1, exp.TotalTasks)
	assert.Equal(t, "Write", exp.Tasks[0].Name)
}

func TestTask_PersistFailureIsWarning(t *testing.T) {
	env := testApp(t)
	// A regular file where the data directory should be makes every write fail.
	blocked := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocked, nil, 0o644))
	reg := tasks.Open(context.Background(), store.New(store.NewFileBackend(filepath.Join(blocked, "data"), nil), nil))
	env.app.Tasks = reg

	out, err := executeCmd(t, env.app, "", "task", "add", "Write")
	require.NoError(t, err)
	assert.Contains(t, out, "not saved")
	assert.Equal(t, 1, reg.Len())
}

// --- Start ---

func TestStart_OnceWithTask(t *testing.T) {
	env := testApp(t)
	seedTasks(t, env.app, "Write")

	out, err := executeCmd(t, env.app, "", "start", "--once", "--task", "1", "--minutes", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Working on: Write")
	assert.Contains(t, out, "Started at 09:00:00")
	assert.Contains(t, out, "Pomodoro Complete!")
	assert.Contains(t, out, "1 pomodoro today")

	sessions := env.app.Log.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, "Write", sessions[0].Task)
	assert.Equal(t, 60, sessions[0].Duration)
	task, _ := env.app.Tasks.Get(0)
	assert.Equal(t, 1, task.PomodorosSpent)

	reloaded := store.LoadList[domain.SessionRecord](context.Background(), env.store, store.CollectionSessions)
	assert.Len(t, reloaded, 1, "session persisted")
}

func TestStart_LoopWithBreak(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "\nn\n", "start", "--minutes", "1", "--short", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Press ENTER to start short break...")
	assert.Contains(t, out, "Break Complete!")
	assert.Contains(t, out, "Start another pomodoro? (y/n)")
	assert.Equal(t, 1, env.app.Timer.Count())
	require.Len(t, env.app.Log.Sessions(), 1)
	assert.Equal(t, domain.GeneralWork, env.app.Log.Sessions()[0].Task)
	assert.Equal(t, testStart.Add(2*time.Minute), env.clock.Now())
}

func TestStart_Invalid(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "", "start", "--task", "3")
	assert.ErrorContains(t, err, "task 3 not found")

	_, err = executeCmd(t, env.app, "", "start", "--minutes", "0")
	assert.ErrorIs(t, err, timer.ErrInvalidConfig)
	assert.Empty(t, env.app.Log.Sessions())
}

// --- Stats ---

func seedSessions(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()
	for _, rec := range []domain.SessionRecord{
		testutil.NewTestSession(testStart.Add(-time.Hour), testutil.WithTask("Report")),
		testutil.NewTestSession(testStart.AddDate(0, 0, -1), testutil.WithTask("Report")),
		testutil.NewTestSession(testStart.AddDate(0, 0, -2)),
	} {
		require.NoError(t, env.app.Log.Append(ctx, rec))
	}
}

func TestStats_Summary(t *testing.T) {
	env := testApp(t)
	seedSessions(t, env)

	out, err := executeCmd(t, env.app, "", "stats", "--week-chart")
	require.NoError(t, err)

	assert.Contains(t, out, "Report")
	assert.Contains(t, out, "2 pomodoros")
	assert.Contains(t, out, "3 days")
	assert.Contains(t, out, "Mon: ")
	assert.Contains(t, out, "Wed: ")
}

func TestStats_Export(t *testing.T) {
	env := testApp(t)
	seedSessions(t, env)
	path := filepath.Join(t.TempDir(), "out", "stats.json")

	out, err := executeCmd(t, env.app, "", "stats", "--export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 sessions")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var exp stats.Export
	require.NoError(t, json.Unmarshal(data, &exp))
	assert.Equal(t, 3, exp.Summary.TotalPomodoros)
	assert.Equal(t, 3, exp.Summary.Streak)
}

func TestStats_Clear(t *testing.T) {
	env := testApp(t)
	seedSessions(t, env)

	_, err := executeCmd(t, env.app, "no\n", "stats", "clear")
	require.NoError(t, err)
	assert.Equal(t, 3, env.app.Log.Len())

	_, err = executeCmd(t, env.app, "y\n", "stats", "clear")
	require.NoError(t, err)
	assert.Zero(t, env.app.Log.Len())
}

// --- Config ---

func TestConfigShow(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "data_dir: "+env.dir)
	assert.Contains(t, out, "backend: json")
	assert.Contains(t, out, "25m")
	assert.Contains(t, out, "4 pomodoros")
}

func TestConfigShow_SQLiteWriteCounts(t *testing.T) {
	env := testApp(t)
	ctx := context.Background()
	backend := store.NewSQLiteBackend(testutil.NewTestDB(t))
	s := store.New(backend, nil)
	require.NoError(t, s.Save(ctx, store.CollectionTasks, []string{}))
	require.NoError(t, s.Save(ctx, store.CollectionTasks, []string{"a"}))
	require.NoError(t, s.Save(ctx, store.CollectionSessions, []string{}))
	env.app.Journal = backend

	out, err := executeCmd(t, env.app, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "tasks: 2 writes")
	assert.Contains(t, out, "sessions: 1 write")
}

func TestConfigShow_NoJournalForFileBackend(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "", "config", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "STORAGE")
	assert.NotContains(t, out, "writes")
}

