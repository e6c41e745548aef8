package watch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bryanchriswhite/hyprwatch/internal/hypr"
	"github.com/bryanchriswhite/hyprwatch/internal/state"
	"github.com/google/go-cmp/cmp"
)

// lineSource replays fixed lines, then fails with end. A nil end blocks
// until the context is cancelled.
type lineSource struct {
	lines []string
	end   error
}

func (s *lineSource) NextLine(ctx context.Context) (string, error) {
	if len(s.lines) > 0 {
		line := s.lines[0]
		s.lines = s.lines[1:]
		return line, nil
	}
	if s.end != nil {
		return "", s.end
	}
	<-ctx.Done()
	return "", ctx.Err()
}

type recorder struct {
	mu    sync.Mutex
	snaps []state.Snapshot
	fail  error
}

func (r *recorder) Emit(snap state.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil && len(r.snaps) > 0 {
		return r.fail
	}
	r.snaps = append(r.snaps, snap)
	return nil
}

func (r *recorder) all() []state.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]state.Snapshot(nil), r.snaps...)
}

var errSocketGone = errors.New("socket gone")

func TestRunAppliesEventsInOrder(t *testing.T) {
	src := &lineSource{
		lines: []string{
			"createworkspacev2>>2,2",
			"workspacev2>>2,2",
			"openlayer>>waybar",
			"not a real event",
			"workspacev2>>oops,2",
			"activewindow>>kitty,vim, with commas",
			"destroyworkspacev2>>1,1",
		},
		end: errSocketGone,
	}
	rec := &recorder{}
	initial := state.State{Workspaces: state.NewWorkspaceSet(1), CurrentWorkspace: 1, CurrentAppName: "kitty / zsh"}

	err := New(src, rec, initial, 4).Run(context.Background())
	if !errors.Is(err, errSocketGone) {
		t.Fatalf("Run error = %v, want stream error", err)
	}

	want := []state.Snapshot{
		{TotalWorkspaces: []uint32{1}, CurrentWorkspace: 1, CurrentAppName: "kitty / zsh"},
		{TotalWorkspaces: []uint32{1, 2}, CurrentWorkspace: 1, CurrentAppName: "kitty / zsh"},
		{TotalWorkspaces: []uint32{1, 2}, CurrentWorkspace: 2, CurrentAppName: "kitty / zsh"},
		{TotalWorkspaces: []uint32{1, 2}, CurrentWorkspace: 2, CurrentAppName: "vim, with commas"},
		{TotalWorkspaces: []uint32{2}, CurrentWorkspace: 2, CurrentAppName: "vim, with commas"},
	}
	if diff := cmp.Diff(want, rec.all()); diff != "" {
		t.Errorf("snapshots mismatch (-want +got):\n%s", diff)
	}
}

func TestRunDrainsQueueAfterStreamFailure(t *testing.T) {
	lines := make([]string, 0, 50)
	for i := 1; i <= 50; i++ {
		lines = append(lines, "workspacev2>>"+strconv.Itoa(i)+","+strconv.Itoa(i))
	}
	rec := &recorder{}
	err := New(&lineSource{lines: lines, end: io.EOF}, rec, state.State{}, 64).Run(context.Background())
	if !errors.Is(err, io.EOF) {
		t.Fatalf("Run error = %v, want EOF", err)
	}
	snaps := rec.all()
	if len(snaps) != 51 {
		t.Fatalf("got %d snapshots, want 51", len(snaps))
	}
	if last := snaps[len(snaps)-1].CurrentWorkspace; last != 50 {
		t.Errorf("last CurrentWorkspace = %d, want 50", last)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	src := &lineSource{lines: []string{"workspacev2>>3,3"}}
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- New(src, rec, state.State{}, 0).Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for len(rec.all()) < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run error = %v, want canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if got := len(rec.all()); got != 2 {
		t.Errorf("got %d snapshots, want 2", got)
	}
}

func TestRunEmitterFailure(t *testing.T) {
	src := &lineSource{lines: []string{"workspacev2>>3,3"}}
	boom := errors.New("stdout closed")
	rec := &recorder{fail: boom}

	err := New(src, rec, state.State{}, 1).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want emitter error", err)
	}
}

func TestRunInitialEmitFailure(t *testing.T) {
	boom := errors.New("closed")
	err := New(&lineSource{}, EmitterFunc(func(state.Snapshot) error { return boom }), state.State{}, 1).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want initial emit error", err)
	}
}

func TestJSONEmitter(t *testing.T) {
	var buf bytes.Buffer
	e := NewJSONEmitter(&buf)
	snap := state.State{Workspaces: state.NewWorkspaceSet(2, 1), CurrentWorkspace: 1}.Snapshot()
	if err := e.Emit(snap); err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	if err := e.Emit(snap); err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	want := `{"total_workspaces":[1,2],"current_workspace":1,"current_app_name":"","current_volume":0,"current_brightness":0}`
	if lines[0] != want {
		t.Errorf("line = %s, want %s", lines[0], want)
	}
}

func TestMultiEmitter(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	if err := (Multi{a, b}).Emit(state.Snapshot{CurrentWorkspace: 7}); err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	if len(a.all()) != 1 || len(b.all()) != 1 {
		t.Errorf("fan-out counts = %d, %d; want 1, 1", len(a.all()), len(b.all()))
	}
}

type fakeQuerier struct {
	workspaces []hypr.WorkspaceInfo
	active     hypr.WorkspaceInfo
	window     hypr.WindowInfo
	err        error
}

func (q *fakeQuerier) Workspaces(context.Context) ([]hypr.WorkspaceInfo, error) {
	return q.workspaces, q.err
}

func (q *fakeQuerier) ActiveWorkspace(context.Context) (*hypr.WorkspaceInfo, error) {
	return &q.active, nil
}

func (q *fakeQuerier) ActiveWindow(context.Context) (*hypr.WindowInfo, error) {
	return &q.window, nil
}

func TestSeed(t *testing.T) {
	q := &fakeQuerier{
		workspaces: []hypr.WorkspaceInfo{{ID: 1}, {ID: 3}, {ID: -98, Name: "special:term"}},
		active:     hypr.WorkspaceInfo{ID: 3},
		window:     hypr.WindowInfo{Class: "kitty", Title: "zsh"},
	}
	s, err := Seed(context.Background(), q)
	if err != nil {
		t.Fatalf("Seed error: %v", err)
	}
	want := state.Snapshot{TotalWorkspaces: []uint32{1, 3}, CurrentWorkspace: 3, CurrentAppName: "kitty / zsh"}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Errorf("seeded state mismatch (-want +got):\n%s", diff)
	}
}

func TestSeedNoFocusedWindow(t *testing.T) {
	s, err := Seed(context.Background(), &fakeQuerier{active: hypr.WorkspaceInfo{ID: 1}})
	if err != nil {
		t.Fatalf("Seed error: %v", err)
	}
	if s.CurrentAppName != "" {
		t.Errorf("CurrentAppName = %q, want empty", s.CurrentAppName)
	}
}

func TestSeedQueryError(t *testing.T) {
	boom := errors.New("no socket")
	_, err := Seed(context.Background(), &fakeQuerier{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("Seed error = %v, want query error", err)
	}
}

// countingSource hands out numbered workspacev2 lines and counts calls.
type countingSource struct {
	mu    sync.Mutex
	calls int
	limit int
}

func (s *countingSource) NextLine(ctx context.Context) (string, error) {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.mu.Unlock()
	if n > s.limit {
		return "", io.EOF
	}
	return "workspacev2>>" + strconv.Itoa(n) + "," + strconv.Itoa(n), nil
}

func (s *countingSource) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestRunBlocksReaderWhenQueueFull(t *testing.T) {
	src := &countingSource{limit: 10}
	release := make(chan struct{})
	var mu sync.Mutex
	var got []uint32
	emitter := EmitterFunc(func(snap state.Snapshot) error {
		mu.Lock()
		first := len(got) == 0
		got = append(got, snap.CurrentWorkspace)
		mu.Unlock()
		if !first {
			<-release
		}
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- New(src, emitter, state.State{}, 1).Run(context.Background()) }()

	// The consumer is stuck emitting event 1, event 2 fills the queue and
	// the reader is parked holding event 3.
	deadline := time.Now().Add(5 * time.Second)
	for src.count() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)
	if n := src.count(); n != 3 {
		t.Fatalf("NextLine called %d times while the queue was full, want 3", n)
	}

	close(release)
	select {
	case err := <-done:
		if !errors.Is(err, io.EOF) {
			t.Fatalf("Run error = %v, want EOF", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not finish after the emitter was released")
	}

	want := []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("emitted workspaces mismatch (-want +got):\n%s", diff)
	}
}

// closingSource is a lineSource that records Close.
type closingSource struct {
	lineSource
	closed bool
}

func (s *closingSource) Close() error {
	s.closed = true
	return nil
}

// orderedQuerier records when it is first queried.
type orderedQuerier struct {
	fakeQuerier
	steps *[]string
}

func (q *orderedQuerier) Workspaces(ctx context.Context) ([]hypr.WorkspaceInfo, error) {
	*q.steps = append(*q.steps, "seed")
	return q.fakeQuerier.Workspaces(ctx)
}

func TestOpenConnectsBeforeSeeding(t *testing.T) {
	var steps []string
	// The line stands in for an event raised while the seed queries ran.
	src := &closingSource{lineSource: lineSource{lines: []string{"createworkspacev2>>5,5"}, end: io.EOF}}
	q := &orderedQuerier{
		fakeQuerier: fakeQuerier{
			workspaces: []hypr.WorkspaceInfo{{ID: 1}},
			active:     hypr.WorkspaceInfo{ID: 1},
		},
		steps: &steps,
	}
	dial := func(context.Context) (Source, error) {
		steps = append(steps, "connect")
		return src, nil
	}

	events, initial, err := Open(context.Background(), dial, q)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if diff := cmp.Diff([]string{"connect", "seed"}, steps); diff != "" {
		t.Errorf("step order mismatch (-want +got):\n%s", diff)
	}

	rec := &recorder{}
	if err := New(events, rec, initial, 4).Run(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("Run error = %v, want EOF", err)
	}
	want := []state.Snapshot{
		{TotalWorkspaces: []uint32{1}, CurrentWorkspace: 1},
		{TotalWorkspaces: []uint32{1, 5}, CurrentWorkspace: 1},
	}
	if diff := cmp.Diff(want, rec.all()); diff != "" {
		t.Errorf("snapshots mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenClosesSourceWhenSeedFails(t *testing.T) {
	boom := errors.New("command socket gone")
	src := &closingSource{}
	dial := func(context.Context) (Source, error) { return src, nil }

	if _, _, err := Open(context.Background(), dial, &fakeQuerier{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("Open error = %v, want seed error", err)
	}
	if !src.closed {
		t.Error("source left open after failed seed")
	}
}

func TestOpenDialError(t *testing.T) {
	boom := errors.New("no event socket")
	q := &orderedQuerier{steps: new([]string)}
	dial := func(context.Context) (Source, error) { return nil, boom }

	if _, _, err := Open(context.Background(), dial, q); !errors.Is(err, boom) {
		t.Fatalf("Open error = %v, want dial error", err)
	}
	if len(*q.steps) != 0 {
		t.Error("seeded without an event source")
	}
}
