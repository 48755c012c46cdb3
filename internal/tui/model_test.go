package tui

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/taqvim/internal/config"
	"github.com/javiermolinar/taqvim/internal/event"
	"github.com/javiermolinar/taqvim/internal/grid"
	"github.com/javiermolinar/taqvim/internal/jalali"
	"github.com/javiermolinar/taqvim/internal/tui/commands"
)

// testNow is Chaharshanbe 1403/01/15.
var testNow = time.Date(2024, 4, 3, 10, 0, 0, 0, time.UTC)

type memRepo struct {
	events []*event.Event
}

func (r *memRepo) CreateEvent(_ context.Context, e *event.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *memRepo) CreateEvents(_ context.Context, events []*event.Event) error {
	r.events = append(r.events, events...)
	return nil
}

func (r *memRepo) GetEvent(_ context.Context, id string) (*event.Event, error) {
	for _, e := range r.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, event.ErrEventNotFound
}

func (r *memRepo) UpdateEvent(_ context.Context, e *event.Event) error {
	return nil
}

func (r *memRepo) DeleteEvent(_ context.Context, id string) error {
	for i, e := range r.events {
		if e.ID == id {
			r.events = slices.Delete(r.events, i, i+1)
			return nil
		}
	}
	return event.ErrEventNotFound
}

func (r *memRepo) ListEventsInRange(_ context.Context, start, end time.Time) ([]*event.Event, error) {
	var out []*event.Event
	for _, e := range r.events {
		if e.Intersects(start, end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memRepo) ListAllEvents(_ context.Context) ([]*event.Event, error) {
	return r.events, nil
}

func (r *memRepo) Close() error {
	return nil
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 4, day, hour, minute, 0, 0, time.UTC)
}

func testEvent(id, title string, color event.Color, start, end time.Time) *event.Event {
	return &event.Event{ID: id, Title: title, Description: title, Start: start, End: end, Color: color, CreatedAt: testNow}
}

// testEvents puts four events on 1403/01/15 and a trip starting on the last
// day of Farvardin.
func testEvents() []*event.Event {
	return []*event.Event{
		testEvent("standup", "Standup", event.ColorBlue, at(3, 9, 0), at(3, 9, 30)),
		testEvent("lunch", "Lunch", event.ColorEmerald, at(3, 12, 0), at(3, 13, 0)),
		testEvent("review", "Review", event.ColorAmber, at(3, 14, 0), at(3, 15, 30)),
		testEvent("retro", "Retro", event.ColorPink, at(3, 16, 0), at(3, 17, 0)),
		testEvent("trip", "Trip", event.ColorRed, at(19, 20, 0), at(21, 10, 0)),
	}
}

func date(y, m, d int) jalali.Date {
	return jalali.Date{Year: y, Month: m, Day: d}
}

// newTestModel returns a model with its first load applied.
func newTestModel(t *testing.T, mode grid.Mode, numerals string) (Model, *memRepo) {
	t.Helper()
	repo := &memRepo{events: testEvents()}
	cfg := config.Default()
	cfg.Calendar.Numerals = numerals

	m := *New(repo, cfg, jalali.New(time.UTC), WithNow(func() time.Time { return testNow }), WithView(mode))
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = load(t, m, commands.LoadInitial(m.repo, m.builder, m.request(m.cursor)))
	return m, repo
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

// load runs a load command and applies its message.
func load(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	return update(t, m, cmd())
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestNew_Defaults(t *testing.T) {
	cfg := config.Default()
	cfg.UI.Theme = "does-not-exist"
	m := New(&memRepo{}, cfg, jalali.New(time.UTC), WithNow(func() time.Time { return testNow }))

	if m.view != grid.ModeMonth {
		t.Errorf("view = %q, want month", m.view)
	}
	if m.cursor != date(1403, 1, 15) {
		t.Errorf("cursor = %v, want today", m.cursor)
	}
	if !m.loading {
		t.Error("expected the model to start loading")
	}
	if m.theme.Name != "mocha" {
		t.Errorf("theme = %q, want the mocha fallback", m.theme.Name)
	}
	if m.numerals != jalali.PersianDigits {
		t.Errorf("numerals = %v, want persian", m.numerals)
	}
}

func TestInitialLoad(t *testing.T) {
	m, _ := newTestModel(t, grid.ModeMonth, "latin")

	if m.loading {
		t.Error("expected loading to finish")
	}
	if got := m.current().Grid.Reference; got != date(1403, 1, 15) {
		t.Errorf("current reference = %v", got)
	}
	if !m.window.HasPrevious() || !m.window.HasNext() {
		t.Error("expected both neighbouring months")
	}
	c := m.cursorCell()
	if c == nil || c.Total() != 4 || c.HiddenCount != 1 {
		t.Fatalf("unexpected cursor cell %+v", c)
	}
}

func TestInitialLoad_StaleIgnored(t *testing.T) {
	m, repo := newTestModel(t, grid.ModeMonth, "latin")

	// A load for the day view arriving after switching back to month.
	stale := commands.LoadInitial(repo, m.builder, commands.Request{
		Reference: date(1403, 1, 15), Mode: grid.ModeDay, Now: testNow, Options: grid.DefaultOptions(),
	})()
	m = update(t, m, stale)
	if m.current().Grid.Mode != grid.ModeMonth {
		t.Error("expected the stale day layout to be dropped")
	}
}

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want jalali.Date
	}{
		{name: "right", keys: []string{"l"}, want: date(1403, 1, 16)},
		{name: "left", keys: []string{"h"}, want: date(1403, 1, 14)},
		{name: "down", keys: []string{"j"}, want: date(1403, 1, 22)},
		{name: "up", keys: []string{"k"}, want: date(1403, 1, 8)},
		{name: "combined", keys: []string{"j", "l", "l"}, want: date(1403, 1, 24)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, grid.ModeMonth, "latin")
			for _, k := range tt.keys {
				var cmd tea.Cmd
				m, cmd = press(t, m, k)
				if cmd != nil {
					t.Fatalf("expected no command for a move inside the month")
				}
			}
			if m.cursor != tt.want {
				t.Errorf("cursor = %v, want %v", m.cursor, tt.want)
			}
		})
	}
}

func TestMoveCursor_ShiftsWindow(t *testing.T) {
	m, _ := newTestModel(t, grid.ModeMonth, "latin")
	prevCurrent := m.current()

	m, cmd := press(t, m, "n")
	if m.cursor != date(1403, 2, 15) {
		t.Fatalf("cursor = %v, want 1403/02/15", m.cursor)
	}
	if got := m.current().Grid.Reference; got != date(1403, 2, 15) {
		t.Errorf("current reference = %v, want the old next month", got)
	}
	if m.window.Previous() != prevCurrent {
		t.Error("expected the old current month to become previous")
	}
	if m.window.HasNext() {
		t.Error("expected the next slot to be empty until loaded")
	}

	m = load(t, m, cmd)
	if !m.window.HasNext() || m.window.Next().Grid.Reference != date(1403, 3, 15) {
		t.Fatalf("expected Khordad to be loaded as next, got %+v", m.window.Next())
	}

	m, cmd = press(t, m, "p")
	m = load(t, m, cmd)
	if m.cursor != date(1403, 1, 15) || m.window.Previous().Grid.Reference != date(1402, 12, 15) {
		t.Errorf("expected to be back in Farvardin with Esfand before it, cursor %v", m.cursor)
	}
}

func TestMoveCursor_LeadingDayBelongsToPreviousMonth(t *testing.T) {
	m, _ := newTestModel(t, grid.ModeMonth, "latin")
	m, _ = jump(t, m, date(1403, 1, 1))

	m, cmd := press(t, m, "h")
	if m.cursor != date(1402, 12, 29) {
		t.Fatalf("cursor = %v, want the last day of Esfand", m.cursor)
	}
	if cmd == nil || m.current().Grid.Reference.Month != 12 {
		t.Errorf("expected the window to shift back to Esfand")
	}
}

// jump applies jumpTo and unwraps the model.
func jump(t *testing.T, m Model, d jalali.Date) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.jumpTo(d)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("jumpTo returned %T", next)
	}
	return model, cmd
}

func TestJumpTo_FarDateReloads(t *testing.T) {
	m, _ := newTestModel(t, grid.ModeMonth, "latin")

	m, cmd := jump(t, m, date(1405, 6, 1))
	if !m.loading || cmd == nil {
		t.Fatal("expected a full reload")
	}
	m = load(t, m, cmd)
	if m.current().Grid.Reference != date(1405, 6, 1) || m.loading {
		t.Errorf("expected Shahrivar 1405 to be loaded")
	}
}

func TestPeriodShifted_StaleIgnored(t *testing.T) {
	m, repo := newTestModel(t, grid.ModeMonth, "latin")
	m, _ = press(t, m, "n")

	// The load for a month that is no longer next.
	stale := commands.LoadNext(repo, m.builder, commands.Request{
		Reference: date(1404, 1, 1), Mode: grid.ModeMonth, Now: testNow, Options: grid.DefaultOptions(),
	})()
	m = update(t, m, stale)
	if m.window.HasNext() {
		t.Error("expected the stale month to be dropped")
	}
}

func TestToday(t *testing.T) {
	m, _ := newTestModel(t, grid.ModeMonth, "latin")
	m, _ = press(t, m, "j")
	m, _ = press(t, m, "t")
	if m.cursor != date(1403, 1, 15) {
		t.Errorf("cursor = %v, want today", m.cursor)
	}
}

func TestDayView_SelectAndDelete(t *testing.T) {
	m, repo := newTestModel(t, grid.ModeMonth, "latin")

	m, cmd := press(t, m, "enter")
	if m.view != grid.ModeDay || !m.loading {
		t.Fatalf("expected enter to open the day view")
	}
	m = load(t, m, cmd)
	if e := m.selectedEvent(); e == nil || e.ID != "standup" {
		t.Fatalf("expected the first event to be selected, got %+v", e)
	}

	m, _ = press(t, m, "j")
	if e := m.selectedEvent(); e.ID != "lunch" {
		t.Fatalf("expected lunch after j, got %s", e.ID)
	}
	m, _ = press(t, m, "k")
	m, _ = press(t, m, "k")
	if m.selected != 0 {
		t.Errorf("selection should clamp at the first event, got %d", m.selected)
	}
	m, _ = press(t, m, "j")

	m, _ = press(t, m, "enter")
	if m.mode != ModeModal || m.modalType != ModalEventDetail || m.modalEvent.ID != "lunch" {
		t.Fatalf("expected the lunch detail modal, got mode %d modal %d", m.mode, m.modalType)
	}
	m, _ = press(t, m, "x")
	if m.modalType != ModalConfirmDelete {
		t.Fatal("expected x to ask for confirmation")
	}

	m, cmd = press(t, m, "y")
	if m.mode != ModeNormal || cmd == nil {
		t.Fatal("expected y to close the modal and delete")
	}
	m = update(t, m, cmd())
	if !strings.Contains(m.statusMsg, `Deleted "Lunch"`) || !m.loading {
		t.Errorf("unexpected state after delete: status %q loading %t", m.statusMsg, m.loading)
	}
	if _, err := repo.GetEvent(context.Background(), "lunch"); err == nil {
		t.Error("expected lunch to be removed from the repository")
	}
	if len(repo.events) != 4 {
		t.Errorf("expected 4 events left, got %d", len(repo.events))
	}
}

func TestDayView_CancelDelete(t *testing.T) {
	m, repo := newTestModel(t, grid.ModeDay, "latin")
	m, _ = press(t, m, "x")
	if m.modalType != ModalConfirmDelete {
		t.Fatal("expected x to ask for confirmation")
	}
	m, cmd := press(t, m, "n")
	if m.mode != ModeNormal || cmd != nil || len(repo.events) != 5 {
		t.Error("expected n to cancel without deleting")
	}
}

func TestSwitchView(t *testing.T) {
	m, _ := newTestModel(t, grid.ModeMonth, "latin")

	m, cmd := press(t, m, "w")
	m = load(t, m, cmd)
	if m.current().Grid.Mode != grid.ModeWeek || len(m.current().Cells) != 7 {
		t.Fatalf("expected a week layout")
	}

	m, cmd = press(t, m, "w")
	if cmd != nil {
		t.Error("expected no reload when the view does not change")
	}

	m, cmd = press(t, m, "esc")
	m = load(t, m, cmd)
	if m.current().Grid.Mode != grid.ModeMonth {
		t.Error("expected esc to return to the month")
	}
}

func TestPrompt_Goto(t *testing.T) {
	m, _ := newTestModel(t, grid.ModeMonth, "latin")

	m, _ = press(t, m, "g")
	if m.mode != ModePrompt {
		t.Fatal("expected g to open the prompt")
	}
	m, _ = press(t, m, "1403/01/20")
	m, cmd := press(t, m, "enter")
	if m.mode != ModeNormal {
		t.Error("expected enter to close the prompt")
	}
	if m.cursor != date(1403, 1, 20) || cmd != nil {
		t.Errorf("cursor = %v, want a move inside the month", m.cursor)
	}

	m, _ = press(t, m, "g")
	m, _ = press(t, m, "/goto ۱۴۰۳/۰۴/۰۱")
	m, cmd = press(t, m, "enter")
	if m.cursor != date(1403, 4, 1) || !m.loading || cmd == nil {
		t.Errorf("expected a reload at 1403/04/01, cursor %v", m.cursor)
	}
}

func TestPrompt_Commands(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		check func(t *testing.T, m Model)
	}{
		{
			name: "invalid date",
			line: "1403/13/01",
			check: func(t *testing.T, m Model) {
				if !strings.HasPrefix(m.statusMsg, "Invalid date") {
					t.Errorf("status = %q", m.statusMsg)
				}
			},
		},
		{
			name: "unknown command",
			line: "/plan",
			check: func(t *testing.T, m Model) {
				if m.statusMsg != "Unknown command /plan" {
					t.Errorf("status = %q", m.statusMsg)
				}
			},
		},
		{
			name: "theme",
			line: "/theme latte",
			check: func(t *testing.T, m Model) {
				if m.theme.Name != "latte" || m.statusMsg != "Theme latte" {
					t.Errorf("theme = %q, status %q", m.theme.Name, m.statusMsg)
				}
			},
		},
		{
			name: "unknown theme",
			line: "/theme neon",
			check: func(t *testing.T, m Model) {
				if m.theme.Name != "mocha" || !strings.Contains(m.statusMsg, "Unknown theme") {
					t.Errorf("theme = %q, status %q", m.theme.Name, m.statusMsg)
				}
			},
		},
		{
			name: "day",
			line: "/day",
			check: func(t *testing.T, m Model) {
				if m.view != grid.ModeDay || !m.loading {
					t.Errorf("view = %q loading %t", m.view, m.loading)
				}
			},
		},
		{
			name: "help",
			line: "/help",
			check: func(t *testing.T, m Model) {
				if m.mode != ModeModal || m.modalType != ModalHelp {
					t.Errorf("expected the help modal")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, grid.ModeMonth, "latin")
			m, _ = press(t, m, "g")
			m, _ = press(t, m, tt.line)
			m, _ = press(t, m, "enter")
			tt.check(t, m)
		})
	}
}

func TestPrompt_AutocompleteAndCancel(t *testing.T) {
	m, _ := newTestModel(t, grid.ModeMonth, "latin")
	m, _ = press(t, m, "g")
	m, _ = press(t, m, "/go")
	m, _ = press(t, m, "tab")
	if got := m.prompt.Value(); got != "/goto " {
		t.Errorf("prompt = %q, want %q", got, "/goto ")
	}
	m, _ = press(t, m, "esc")
	if m.mode != ModeNormal || m.prompt.Value() != "" {
		t.Error("expected esc to clear and close the prompt")
	}
}

func TestMidnight(t *testing.T) {
	m, _ := newTestModel(t, grid.ModeMonth, "latin")

	midnight := time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC)
	m.nowFunc = func() time.Time { return midnight }
	next, cmd := m.Update(commands.MidnightMsg{Now: midnight})
	m = next.(Model)
	if m.cursor != date(1403, 1, 16) {
		t.Errorf("cursor = %v, want the new today", m.cursor)
	}
	if !m.loading || cmd == nil {
		t.Error("expected a reload and a new midnight timer")
	}
}

func TestMidnight_CursorElsewhereStays(t *testing.T) {
	m, _ := newTestModel(t, grid.ModeMonth, "latin")
	m, _ = press(t, m, "j")

	next, _ := m.Update(commands.MidnightMsg{Now: time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC)})
	if got := next.(Model).cursor; got != date(1403, 1, 22) {
		t.Errorf("cursor = %v, want it to stay on 1403/01/22", got)
	}
}

func TestErrMsg(t *testing.T) {
	m, _ := newTestModel(t, grid.ModeMonth, "latin")
	m.loading = true
	m = update(t, m, commands.ErrMsg{Err: event.ErrEventNotFound})
	if m.loading || !strings.HasPrefix(m.statusMsg, "Error: ") {
		t.Errorf("unexpected state: loading %t status %q", m.loading, m.statusMsg)
	}
	m = update(t, m, commands.ClearStatusMsg{})
	if m.statusMsg != "" {
		t.Error("expected the status to clear")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, grid.ModeMonth, "latin")
	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAgendaText(t *testing.T) {
	m, _ := newTestModel(t, grid.ModeMonth, "latin")
	got := agendaText(*m.cursorCell(), m.clock, jalali.LatinDigits)
	want := "Chaharshanbe 1403/01/15\n" +
		"09:00-09:30 Standup\n" +
		"12:00-13:00 Lunch\n" +
		"14:00-15:30 Review\n" +
		"16:00-17:00 Retro\n"
	if got != want {
		t.Errorf("agendaText() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		45 * time.Minute: "45m",
		2 * time.Hour:    "2h",
		90 * time.Minute: "1h30m",
	}
	for d, want := range tests {
		if got := formatDuration(d); got != want {
			t.Errorf("formatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}
