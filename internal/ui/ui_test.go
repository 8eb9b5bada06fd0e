package ui

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/followback/internal/models"
	"github.com/desertthunder/followback/internal/shared"
	"github.com/desertthunder/followback/internal/tasks"
	tu "github.com/desertthunder/followback/internal/testing"
)

func newTestModel(t *testing.T, analyzer *tu.MockAnalyzer) *Model {
	t.Helper()
	submission := tasks.NewSubmission(analyzer, shared.NewLogger(io.Discard))
	return NewModel(context.Background(), submission, filepath.Join(t.TempDir(), "result.csv"))
}

func writeExports(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	followers := tu.WriteFile(t, filepath.Join(dir, "followers_1.json"), tu.FollowersExport("alice", "bob"))
	following := tu.WriteFile(t, filepath.Join(dir, "following.json"), tu.FollowingExport("bob", "carol"))
	return followers, following
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// runSubmit presses enter and feeds the completed submission back into the model.
func runSubmit(t *testing.T, m *Model) {
	t.Helper()
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != SubmittingView {
		t.Fatalf("expected SubmittingView after enter, got %d", m.view)
	}
	m.Update(m.submit()())
}

func TestModel(t *testing.T) {
	t.Run("Missing Files Stay On Form", func(t *testing.T) {
		analyzer := &tu.MockAnalyzer{}
		m := newTestModel(t, analyzer)

		runSubmit(t, m)

		if m.view != FormView {
			t.Fatalf("expected FormView, got %d", m.view)
		}
		if analyzer.Calls() != 0 {
			t.Errorf("expected no upload, got %d", analyzer.Calls())
		}
		if !strings.Contains(m.View(), "Please upload both files.") {
			t.Errorf("expected inline validation message, got:\n%s", m.View())
		}
	})

	t.Run("Successful Submit Shows Lists", func(t *testing.T) {
		analyzer := &tu.MockAnalyzer{Result: &models.AnalysisResult{
			NotFollowingBack: []string{"carol"},
			NotFollowedBy:    []string{"alice"},
		}}
		m := newTestModel(t, analyzer)
		m.SetPaths(writeExports(t))

		runSubmit(t, m)

		if m.view != ResultView {
			t.Fatalf("expected ResultView, got %d", m.view)
		}
		if analyzer.Calls() != 1 {
			t.Errorf("expected one upload, got %d", analyzer.Calls())
		}
		if got := analyzer.Received()[0]; got != [2]string{"followers_1.json", "following.json"} {
			t.Errorf("unexpected upload names %v", got)
		}
		if len(m.lists) != 2 || len(m.lists[0].Items()) != 1 || len(m.lists[1].Items()) != 1 {
			t.Fatalf("expected one item in each list")
		}

		view := m.View()
		for _, want := range []string{"Not Following Back", "Not Followed By", "carol", "alice"} {
			if !strings.Contains(view, want) {
				t.Errorf("result view missing %q", want)
			}
		}
	})

	t.Run("Export Writes CSV", func(t *testing.T) {
		analyzer := &tu.MockAnalyzer{Result: &models.AnalysisResult{
			NotFollowingBack: []string{"carol"},
			NotFollowedBy:    []string{"alice", "dave"},
		}}
		m := newTestModel(t, analyzer)
		m.SetPaths(writeExports(t))
		runSubmit(t, m)

		_, cmd := m.Update(keyRune('e'))
		if cmd == nil {
			t.Fatal("expected export command")
		}
		m.Update(cmd())

		tu.AssertFileExists(t, m.exportPath)
		if got := tu.MustReadFile(t, m.exportPath); got != "Not Following Back,Not Followed By\ncarol,alice\n,dave" {
			t.Errorf("unexpected CSV %q", got)
		}
		if !strings.Contains(m.View(), "Saved") {
			t.Error("expected saved status in view")
		}
	})

	t.Run("Transport Error Returns To Form", func(t *testing.T) {
		analyzer := &tu.MockAnalyzer{Err: errors.New("connection refused")}
		m := newTestModel(t, analyzer)
		followers, following := writeExports(t)
		m.SetPaths(followers, following)

		runSubmit(t, m)

		if m.view != FormView {
			t.Fatalf("expected FormView, got %d", m.view)
		}
		if !strings.Contains(m.message, "Error: ") || !strings.Contains(m.message, "connection refused") {
			t.Errorf("unexpected message %q", m.message)
		}
		if m.inputs[followersInput].Value() != followers {
			t.Error("expected paths to survive the error")
		}

		analyzer.Err = nil
		analyzer.Result = &models.AnalysisResult{NotFollowingBack: []string{}, NotFollowedBy: []string{}}
		runSubmit(t, m)

		if m.view != ResultView {
			t.Errorf("expected resubmission to succeed, got view %d", m.view)
		}
		if m.message != "" {
			t.Errorf("expected error cleared, got %q", m.message)
		}
		if analyzer.Calls() != 2 {
			t.Errorf("expected two uploads, got %d", analyzer.Calls())
		}
	})

	t.Run("Restart", func(t *testing.T) {
		analyzer := &tu.MockAnalyzer{Result: &models.AnalysisResult{NotFollowingBack: []string{"a"}, NotFollowedBy: []string{}}}
		m := newTestModel(t, analyzer)
		m.SetPaths(writeExports(t))
		runSubmit(t, m)

		m.Update(keyRune('r'))
		if m.view != FormView {
			t.Errorf("expected FormView after restart, got %d", m.view)
		}
		if m.submission.Snapshot().State != tasks.Idle {
			t.Errorf("expected submission reset, got %s", m.submission.Snapshot().State)
		}
	})

	t.Run("Filter Input Keeps Shortcut Keys", func(t *testing.T) {
		analyzer := &tu.MockAnalyzer{Result: &models.AnalysisResult{
			NotFollowingBack: []string{"carol", "rebecca"},
			NotFollowedBy:    []string{"alice"},
		}}
		m := newTestModel(t, analyzer)
		m.SetPaths(writeExports(t))
		runSubmit(t, m)

		m.Update(keyRune('/'))
		if m.lists[m.active].FilterState() != list.Filtering {
			t.Fatalf("expected list to be filtering, got %s", m.lists[m.active].FilterState())
		}

		for _, r := range "req" {
			_, cmd := m.Update(keyRune(r))
			if cmd != nil {
				if _, quit := cmd().(tea.QuitMsg); quit {
					t.Fatalf("typing %q in the filter quit the program", r)
				}
			}
		}

		if m.view != ResultView {
			t.Fatalf("expected ResultView while filtering, got %d", m.view)
		}
		if m.result == nil {
			t.Fatal("expected result to be kept")
		}
		if got := m.lists[m.active].FilterValue(); got != "req" {
			t.Errorf("expected filter text %q, got %q", "req", got)
		}
		if m.status != "" {
			t.Errorf("expected no export while filtering, got status %q", m.status)
		}
		if m.submission.Snapshot().State != tasks.ResultReady {
			t.Errorf("expected submission to keep its result, got %s", m.submission.Snapshot().State)
		}
	})

	t.Run("Focus Cycles", func(t *testing.T) {
		m := newTestModel(t, &tu.MockAnalyzer{})

		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.focus != followingInput {
			t.Errorf("expected following input focused, got %d", m.focus)
		}
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.focus != followersInput {
			t.Errorf("expected focus to wrap, got %d", m.focus)
		}
	})

	t.Run("Typing q Does Not Quit Form", func(t *testing.T) {
		m := newTestModel(t, &tu.MockAnalyzer{})

		m.Update(keyRune('q'))
		if m.inputs[followersInput].Value() != "q" {
			t.Errorf("expected q in input, got %q", m.inputs[followersInput].Value())
		}
	})
}
