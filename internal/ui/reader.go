// Package ui is the interactive terminal reader: one chapter at a time,
// rendered with glamour inside a scrollable viewport, with chapter
// navigation and a table-of-contents overlay.
package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"mdbook/internal/book"
	"mdbook/internal/document"
	"mdbook/internal/logging"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type KeyMap struct {
	Next key.Binding
	Prev key.Binding
	TOC  key.Binding
	Jump key.Binding
	Quit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next chapter")),
		Prev: key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "previous chapter")),
		TOC:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "contents")),
		Jump: key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "jump to chapter")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type mode int

const (
	modeReading mode = iota
	modeTOC
	modeJump
)

// chapterRenderedMsg carries a glamour-rendered chapter into the model.
type chapterRenderedMsg struct {
	index   int
	content string
}

type renderErrMsg struct{ err error }

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
	tocStyle    = lipgloss.NewStyle().Padding(1, 2)
)

// Reader is the bubbletea model for the interactive reader.
type Reader struct {
	book    *book.Book
	logger  *logging.AppLogger
	keys    KeyMap
	mode    mode
	current int

	viewport viewport.Model
	jump     textinput.Model
	width    int
	height   int
	ready    bool
	err      error
}

// NewReader builds the reader positioned at the chapter with the given
// number, or the first chapter when the number is absent.
func NewReader(b *book.Book, startNumber int, logger *logging.AppLogger) Reader {
	if logger == nil {
		logger = logging.GetDefault()
	}

	current := 0
	for i, ch := range b.Chapters {
		if ch.Number == startNumber {
			current = i
			break
		}
	}

	jump := textinput.New()
	jump.Placeholder = "chapter number"
	jump.CharLimit = 4
	jump.Width = 16

	return Reader{
		book:    b,
		logger:  logger,
		keys:    DefaultKeyMap(),
		current: current,
		jump:    jump,
	}
}

func (r Reader) Init() tea.Cmd {
	return r.renderChapterCmd(r.current)
}

// renderChapterCmd reads and glamour-renders one chapter off the update
// loop.
func (r Reader) renderChapterCmd(index int) tea.Cmd {
	b, width := r.book, r.width
	return func() tea.Msg {
		if index < 0 || index >= len(b.Chapters) {
			return renderErrMsg{fmt.Errorf("chapter index %d out of range", index)}
		}
		ch := b.Chapters[index]
		raw, err := os.ReadFile(ch.Path)
		if err != nil {
			return renderErrMsg{fmt.Errorf("failed to read %s: %w", ch.RelPath, err)}
		}
		body := document.Parse(string(raw)).Body

		if width <= 0 {
			width = 80
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width-2),
		)
		if err != nil {
			return renderErrMsg{fmt.Errorf("failed to build renderer: %w", err)}
		}
		out, err := renderer.Render(body)
		if err != nil {
			return renderErrMsg{fmt.Errorf("failed to render %s: %w", ch.RelPath, err)}
		}
		return chapterRenderedMsg{index: index, content: out}
	}
}

func (r Reader) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width, r.height = msg.Width, msg.Height
		contentHeight := msg.Height - 3
		if contentHeight < 1 {
			contentHeight = 1
		}
		if !r.ready {
			r.viewport = viewport.New(msg.Width, contentHeight)
			r.ready = true
		} else {
			r.viewport.Width = msg.Width
			r.viewport.Height = contentHeight
		}
		return r, r.renderChapterCmd(r.current)

	case chapterRenderedMsg:
		if msg.index == r.current {
			r.err = nil
			r.viewport.SetContent(msg.content)
			r.viewport.GotoTop()
		}
		return r, nil

	case renderErrMsg:
		r.err = msg.err
		return r, nil

	case tea.KeyMsg:
		switch r.mode {
		case modeJump:
			return r.updateJump(msg)
		case modeTOC:
			return r.updateTOC(msg)
		default:
			return r.updateReading(msg)
		}
	}

	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return r, cmd
}

func (r Reader) updateReading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, r.keys.Quit):
		return r, tea.Quit
	case key.Matches(msg, r.keys.Next):
		return r.gotoChapter(r.current + 1)
	case key.Matches(msg, r.keys.Prev):
		return r.gotoChapter(r.current - 1)
	case key.Matches(msg, r.keys.TOC):
		r.mode = modeTOC
		return r, nil
	case key.Matches(msg, r.keys.Jump):
		r.mode = modeJump
		r.jump.SetValue("")
		return r, r.jump.Focus()
	}

	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return r, cmd
}

func (r Reader) updateTOC(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, r.keys.Quit), key.Matches(msg, r.keys.TOC):
		r.mode = modeReading
		return r, nil
	}
	return r, nil
}

func (r Reader) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		r.mode = modeReading
		r.jump.Blur()
		n, err := strconv.Atoi(strings.TrimSpace(r.jump.Value()))
		if err != nil {
			r.err = fmt.Errorf("invalid chapter number %q", r.jump.Value())
			return r, nil
		}
		for i, ch := range r.book.Chapters {
			if ch.Number == n {
				return r.gotoChapter(i)
			}
		}
		r.err = fmt.Errorf("chapter %d not found", n)
		return r, nil
	case "esc", "ctrl+c":
		r.mode = modeReading
		r.jump.Blur()
		return r, nil
	}

	var cmd tea.Cmd
	r.jump, cmd = r.jump.Update(msg)
	return r, cmd
}

func (r Reader) gotoChapter(index int) (tea.Model, tea.Cmd) {
	if index < 0 || index >= len(r.book.Chapters) {
		return r, nil
	}
	r.current = index
	r.err = nil
	return r, r.renderChapterCmd(index)
}

func (r Reader) View() string {
	if !r.ready {
		return "Loading..."
	}

	ch := r.book.Chapters[r.current]
	title := titleStyle.Render(fmt.Sprintf("%s — Chapter %d: %s", r.book.Meta.Title, ch.Number, ch.Title))

	switch r.mode {
	case modeTOC:
		return title + "\n" + tocStyle.Render(r.tocView()) + "\n" + statusStyle.Render("t/q: back to reading")
	case modeJump:
		return title + "\n\n" + statusStyle.Render("Jump to chapter: ") + r.jump.View() + "\n" + statusStyle.Render("enter: go • esc: cancel")
	}

	status := statusStyle.Render("n: next • p: prev • t: contents • j: jump • q: quit")
	if r.err != nil {
		status = errorStyle.Render(r.err.Error())
	}
	return title + "\n" + r.viewport.View() + "\n" + status
}

func (r Reader) tocView() string {
	var sb strings.Builder
	sb.WriteString("Contents\n\n")
	for i, ch := range r.book.Chapters {
		marker := "  "
		if i == r.current {
			marker = "> "
		}
		label := fmt.Sprintf("%d", ch.Number)
		if ch.IsIntro() {
			label = "Intro"
		}
		fmt.Fprintf(&sb, "%s%s. %s\n", marker, label, ch.Title)
	}
	return sb.String()
}

// Run starts the reader in the alternate screen until the user quits.
func Run(b *book.Book, startNumber int, logger *logging.AppLogger) error {
	if len(b.Chapters) == 0 {
		return fmt.Errorf("book has no chapters to read")
	}
	p := tea.NewProgram(NewReader(b, startNumber, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
