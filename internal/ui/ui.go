package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/followback/internal/formatter"
	"github.com/desertthunder/followback/internal/models"
	"github.com/desertthunder/followback/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	FormView ViewState = iota
	SubmittingView
	ResultView
)

const (
	followersInput = iota
	followingInput
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	submission *tasks.Submission
	inputs     []textinput.Model
	focus      int
	spinner    spinner.Model
	lists      []list.Model
	active     int
	result     *models.AnalysisResult
	message    string // inline error, cleared on the next submit
	status     string
	exportPath string
	width      int
	height     int
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model that submits through submission and exports to exportPath
// (defaults to result.csv).
func NewModel(ctx context.Context, submission *tasks.Submission, exportPath string) *Model {
	followers := textinput.New()
	followers.Placeholder = "followers_1.json"
	followers.Prompt = "Followers file: "
	followers.Focus()

	following := textinput.New()
	following.Placeholder = "following.json"
	following.Prompt = "Following file: "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.title.UnsetMarginBottom()

	if exportPath == "" {
		exportPath = formatter.DefaultCSVFilename
	}

	return &Model{
		ctx:        ctx,
		view:       FormView,
		submission: submission,
		inputs:     []textinput.Model{followers, following},
		spinner:    s,
		exportPath: exportPath,
		width:      defaultWidth,
		height:     defaultHeight,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// SetPaths pre-fills the two path inputs.
func (m *Model) SetPaths(followers, following string) {
	m.inputs[followersInput].SetValue(followers)
	m.inputs[followingInput].SetValue(following)
}

// Init starts the cursor blink on the focused input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case FormView:
			return m.handleFormKeys(msg)
		case SubmittingView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case spinner.TickMsg:
		if m.view != SubmittingView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateInputs(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSubmitted:
		snap := msg.data.(tasks.Snapshot)
		if snap.State == tasks.ResultReady && snap.Result != nil {
			m.showResult(snap.Result)
			return m, nil
		}
		m.view = FormView
		m.result = nil
		m.message = snap.Message
		return m, m.inputs[m.focus].Focus()

	case MsgExported:
		res := msg.data.(exportResult)
		if res.err != nil {
			m.status = ""
			m.message = fmt.Sprintf("Error: %v", res.err)
			return m, nil
		}
		m.message = ""
		m.status = fmt.Sprintf("Saved %s", res.path)
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case FormView:
		return m.renderForm()
	case SubmittingView:
		return m.renderSubmitting()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		return m, m.setFocus((m.focus + 1) % len(m.inputs))
	case key.Matches(msg, m.keys.prev):
		return m, m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
	case key.Matches(msg, m.keys.submit):
		return m, m.startSubmit()
	}

	return m.updateInputs(msg)
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the filter input is open every key except ctrl+c belongs to the list.
	if m.lists[m.active].FilterState() == list.Filtering {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateActiveList(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next), key.Matches(msg, m.keys.prev):
		m.active = 1 - m.active
		return m, nil
	case key.Matches(msg, m.keys.export):
		return m, m.export()
	case key.Matches(msg, m.keys.restart):
		m.view = FormView
		m.status = ""
		m.message = ""
		m.submission.Reset()
		return m, m.inputs[m.focus].Focus()
	}

	return m.updateActiveList(msg)
}

func (m *Model) updateActiveList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.lists[m.active], cmd = m.lists[m.active].Update(msg)
	return m, cmd
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view != FormView {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// startSubmit hands the current paths to the submission and switches to the spinner.
//
// An empty path leaves that file unselected; the submission then fails validation without a request.
func (m *Model) startSubmit() tea.Cmd {
	m.submission.SetFollowers(uploadFor(m.inputs[followersInput].Value()))
	m.submission.SetFollowing(uploadFor(m.inputs[followingInput].Value()))

	m.view = SubmittingView
	m.message = ""
	m.status = ""
	m.result = nil
	for i := range m.inputs {
		m.inputs[i].Blur()
	}

	return tea.Batch(m.spinner.Tick, m.submit())
}

func (m *Model) submit() tea.Cmd {
	return func() tea.Msg {
		_, _ = m.submission.Submit(m.ctx)
		return submittedMsg(m.submission.Snapshot())
	}
}

func (m *Model) export() tea.Cmd {
	result, path := m.result, m.exportPath
	return func() tea.Msg {
		written, err := formatter.WriteCSVExport(result, path)
		return exportedMsg(written, err)
	}
}

func (m *Model) showResult(result *models.AnalysisResult) {
	m.result = result
	m.view = ResultView
	m.active = 0
	m.message = ""
	w, h := m.listSize()
	m.lists = []list.Model{
		newAccountList("Not Following Back", result.NotFollowingBack, w, h),
		newAccountList("Not Followed By", result.NotFollowedBy, w, h),
	}
}

func (m *Model) listSize() (int, int) {
	return max(m.width/2-4, 20), max(m.height-8, 5)
}

func (m *Model) resizeLists() {
	w, h := m.listSize()
	for i := range m.lists {
		m.lists[i].SetSize(w, h)
	}
}

func uploadFor(path string) *models.Upload {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	return models.NewFileUpload(path)
}

func (m *Model) renderForm() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("followback"))
	b.WriteString("\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(styles.err.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.formHelp()))
	return b.String()
}

func (m *Model) renderSubmitting() string {
	return fmt.Sprintf("%s\n\n%s Checking followers...", styles.title.Render("followback"), m.spinner.View())
}

func (m *Model) renderResult() string {
	panes := make([]string, len(m.lists))
	for i, l := range m.lists {
		style := styles.pane
		if i == m.active {
			style = styles.focus
		}
		panes[i] = style.Render(l.View())
	}

	var footer string
	switch {
	case m.message != "":
		footer = styles.err.Render(m.message)
	case m.status != "":
		footer = styles.ok.Render(m.status)
	}

	return fmt.Sprintf("%s\n%s\n%s\n\n%s",
		styles.title.Render("followback"),
		lipgloss.JoinHorizontal(lipgloss.Top, panes...),
		footer,
		m.help.ShortHelpView(m.keys.resultHelp()),
	)
}
