package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bujinkan-tools/densho/internal/core/domain"
	"github.com/bujinkan-tools/densho/internal/core/ports"
)

// askTimeout caps one question round trip. Generation is the slow leg, so
// this sits well above the LLM client timeout.
const askTimeout = 90 * time.Second

// chromeHeight is the number of fixed lines around the transcript:
// header, input line, help line.
const chromeHeight = 3

// answerMsg carries one completed query back into the update loop.
type answerMsg struct {
	question string
	response *domain.Response
	err      error
}

// Model is the chat console: a transcript viewport over an input line,
// asking the query service asynchronously so the UI keeps drawing while
// generation runs.
type Model struct {
	query ports.QueryService
	topK  int

	styles   Styles
	viewport viewport.Model
	input    textinput.Model

	transcript []string
	waiting    bool
	ready      bool
	width      int
	height     int
}

func NewModel(query ports.QueryService, topK int) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about ranks, techniques, schools..."
	ti.CharLimit = 512
	ti.Focus()

	return Model{
		query:  query,
		topK:   topK,
		styles: DefaultStyles(),
		input:  ti,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(msg.Height-chromeHeight, 1))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(msg.Height-chromeHeight, 1)
		}
		m.input.Width = max(msg.Width-4, 20)
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.transcript = append(m.transcript, m.styles.ErrorText.Render("error: "+msg.err.Error()))
		} else {
			m.transcript = append(m.transcript, m.renderAnswer(msg.response))
		}
		m.refreshTranscript()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	header := m.styles.Header.Render("densho") + " " + m.styles.Help.Render("Bujinkan curriculum chat")
	inputLine := m.styles.Prompt.Render("> ") + m.input.View()
	if m.waiting {
		inputLine = m.styles.Waiting.Render("waiting for the answer...")
	}
	help := m.styles.Help.Render("enter ask | pgup/pgdn scroll | esc quit")

	return strings.Join([]string{header, m.viewport.View(), inputLine, help}, "\n")
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(m.input.Value())
	if question == "" || m.waiting {
		return m, nil
	}

	m.waiting = true
	m.input.SetValue("")
	m.transcript = append(m.transcript, m.styles.Question.Render("you")+" "+question)
	m.refreshTranscript()
	return m, m.ask(question)
}

func (m Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()

		response, err := m.query.Answer(ctx, question, m.topK)
		return answerMsg{question: question, response: response, err: err}
	}
}

func (m *Model) refreshTranscript() {
	m.viewport.SetContent(strings.Join(m.transcript, "\n\n"))
	m.viewport.GotoBottom()
}

func (m Model) renderAnswer(response *domain.Response) string {
	var b strings.Builder
	b.WriteString(m.badge(response.DetPath))
	b.WriteString("\n")
	b.WriteString(m.styles.Answer.Render(response.Answer))

	if response.DetPath == "hybrid" {
		b.WriteString("\n")
		b.WriteString(m.styles.Note.Render("retrieval was weak; parts may come from general knowledge"))
	}
	for i, src := range response.Sources {
		b.WriteString("\n")
		b.WriteString(m.styles.Source.Render(fmt.Sprintf("[%d] %s (%.2f)", i+1, src.Source, src.Score)))
	}
	return b.String()
}

// badge names the path the answer took, so a reader can tell a verbatim
// curriculum quote from generated text at a glance.
func (m Model) badge(detPath string) string {
	switch {
	case strings.HasPrefix(detPath, "deterministic/"):
		return m.styles.BadgeDet.Render(detPath)
	case detPath == "hybrid":
		return m.styles.BadgeHybrid.Render("hybrid")
	default:
		return m.styles.BadgeRAG.Render("retrieved")
	}
}
