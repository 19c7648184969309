package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmorgan81/imagegen/internal/controller"
	"github.com/dmorgan81/imagegen/internal/page"
	"github.com/samber/lo"
)

type focus int

const (
	focusPrompt focus = iota
	focusGallery
)

const labelLength = 30

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	currentStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type generatedMsg struct {
	err error
}

// Model drives a controller from the terminal: Enter in the prompt generates,
// Tab moves to the gallery where Enter selects a past image.
type Model struct {
	ctx        context.Context
	controller *controller.Controller
	input      textinput.Model
	spinner    spinner.Model
	focus      focus
	cursor     int
	width      int
}

func New(ctx context.Context, c *controller.Controller, placeholder string) Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{ctx: ctx, controller: c, input: ti, spinner: s}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case generatedMsg:
		state := m.controller.State()
		m.input.SetValue(state.Prompt)
		m.cursor = max(len(state.History)-1, 0)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil
		}
		if m.focus == focusGallery {
			return m.updateGallery(msg)
		}
		return m.updatePrompt(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) toggleFocus() {
	if m.focus == focusPrompt && len(m.controller.State().History) > 0 {
		m.focus = focusGallery
		m.input.Blur()
		return
	}
	m.focus = focusPrompt
	m.input.Focus()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.controller.Loading() {
		return m, nil
	}
	if msg.Type == tea.KeyEnter {
		return m, m.generate()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	_ = m.controller.Dispatch(m.ctx, controller.PromptChanged{Text: m.input.Value()})
	return m, cmd
}

func (m Model) generate() tea.Cmd {
	c, ctx := m.controller, m.ctx
	return func() tea.Msg {
		return generatedMsg{err: c.Dispatch(ctx, controller.KeyPressed{Key: controller.KeyEnter})}
	}
}

func (m Model) updateGallery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	history := m.controller.State().History
	if len(history) == 0 {
		return m, nil
	}
	switch msg.String() {
	case "up", "left", "k", "h":
		m.cursor = max(m.cursor-1, 0)
	case "down", "right", "j", "l":
		m.cursor = min(m.cursor+1, len(history)-1)
	case "enter", " ":
		m.cursor = min(m.cursor, len(history)-1)
		_ = m.controller.Dispatch(m.ctx, controller.ThumbnailSelected{URL: history[m.cursor].ImageURL})
	}
	return m, nil
}

func (m Model) View() string {
	state := m.controller.State()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Image Generation App"))
	b.WriteString("\nGenerate stunning images based on your prompts!\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if state.Loading {
		b.WriteString(m.spinner.View() + " Loading...\n")
	} else {
		b.WriteString(helpStyle.Render("[enter] Generate Image") + "\n")
	}
	if state.Notice != "" {
		b.WriteString(noticeStyle.Render(state.Notice) + "\n")
	}

	if state.CurrentURL != "" {
		label := state.Prompt
		if cur, ok := state.Current(); ok {
			label = cur.Prompt
		}
		b.WriteString("\n" + currentStyle.Render("Current Image\n"+state.CurrentURL+"\n"+label) + "\n")
	}

	if len(state.History) > 0 {
		fmt.Fprintf(&b, "\nGenerated Images (%d)\n", len(state.History))
		for i, img := range state.History {
			cursor := lo.Ternary(m.focus == focusGallery && i == m.cursor, ">", " ")
			line := fmt.Sprintf("%s %s  %s", cursor, page.Truncate(img.Prompt, labelLength), img.ImageURL)
			if img.ImageURL == state.CurrentURL {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}

	if state.LastError != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+state.LastError) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("tab switch focus • enter generate/select • esc quit"))
	return b.String()
}
