package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codeberg.org/snonux/flashy/internal/session"
	"codeberg.org/snonux/flashy/internal/words"
)

// SnapshotMsg tells the model that the session changed outside of Update,
// usually because the reveal timer fired
type SnapshotMsg struct {
	Snapshot session.Snapshot
}

// Model is the bubbletea model of the trainer screen
type Model struct {
	session *session.Session
	columns words.Columns
	snap    session.Snapshot
	keys    keyMap
	help    help.Model
	styles  Styles
	err     error
	width   int
	height  int
}

// New creates a model for a started session
func New(s *session.Session, columns words.Columns) Model {
	if columns == (words.Columns{}) {
		columns = words.DefaultColumns()
	}
	return Model{
		session: s,
		columns: columns,
		snap:    s.Snapshot(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  DefaultStyles(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case SnapshotMsg:
		// Messages sent from the timer goroutine may arrive out of order,
		// the session itself is always current
		m.snap = m.session.Snapshot()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Wrong):
			m.session.MarkWrong()
			m.err = nil

		case key.Matches(msg, m.keys.Correct):
			m.err = m.session.MarkCorrect()

		case key.Matches(msg, m.keys.Reset):
			m.err = m.session.ResetProgress()
		}
		m.snap = m.session.Snapshot()
	}

	return m, nil
}

// Snapshot returns what the model currently shows
func (m Model) Snapshot() session.Snapshot {
	return m.snap
}

// Err returns the error of the last action, if any
func (m Model) Err() error {
	return m.err
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("flashy"))
	b.WriteString("\n\n")
	b.WriteString(m.renderCard())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Status.Render(StatusLine(m.snap)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	view := b.String()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

func (m Model) renderCard() string {
	switch m.snap.State {
	case session.StateFront:
		return m.styles.Front.Render(m.cardContent(m.columns.Source))
	case session.StateBack:
		return m.styles.Back.Render(m.cardContent(m.columns.Target))
	case session.StateExhausted:
		return m.styles.Done.Render(m.styles.Word.Render("Congratulations!") +
			"\n\nAll words learned.\nPress r to start over.")
	default:
		return m.styles.Front.Render("Loading...")
	}
}

func (m Model) cardContent(title string) string {
	return m.styles.CardTitle.Render(title) + "\n\n" + m.styles.Word.Render(m.snap.Text())
}

// StatusLine summarises the progress shown below the card
func StatusLine(snap session.Snapshot) string {
	return snap.Status()
}
