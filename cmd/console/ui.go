package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const PlaceHolderText = "Type a menu number or an answer..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	menu         *Menu
	ctx          context.Context
	mainViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int

	// transcript holds everything written to the main panel; last is the most recent result.
	transcript []string
	last       string
	status     string

	showQuitModal bool
	// copyText is swapped out in tests.
	copyText func(string) error
}

var (
	mainPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(ctx context.Context, menu *Menu) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	mainVp := viewport.New(50, 20)
	mainVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		menu:         menu,
		ctx:          ctx,
		textarea:     ta,
		mainViewport: mainVp,
		metaViewport: metaVp,
		transcript:   []string{titleStyle.Render("POKÉDEX") + "\n\n" + menu.MainMenu()},
		copyText:     clipboard.WriteAll,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.mainViewport, vpCmd = m.mainViewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		mainWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - mainWidth - 6

		m.mainViewport.Width = mainWidth - 2
		m.mainViewport.Height = m.height - 5
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(mainWidth - 4)
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEsc:
			if m.menu.current == nil {
				m.showQuitModal = true
				return m, nil
			}
			m.menu.Cancel()
			m.write(statusStyle.Render("Cancelled.") + "\n\n" + m.menu.MainMenu())
			m.textarea.Reset()
			return m, nil
		case tea.KeyCtrlY:
			m.copyLast()
			return m, nil
		case tea.KeyEnter:
			line := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			return m.submit(line)
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.mainViewport, vpCmd = m.mainViewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

// submit hands one line to the menu and appends the exchange to the transcript.
func (m ConsoleUI) submit(line string) (tea.Model, tea.Cmd) {
	echo := userStyle.Render("> " + line)
	out, quit := m.menu.Submit(m.ctx, line)
	if quit {
		return m, tea.Quit
	}

	var b strings.Builder
	b.WriteString(echo)
	if out != "" {
		b.WriteString("\n")
		if strings.HasPrefix(out, "Error: ") || strings.HasSuffix(out, "Try again.") {
			b.WriteString(errorStyle.Render(out))
		} else {
			b.WriteString(out)
			m.last = out
		}
	}
	if m.menu.current == nil {
		b.WriteString("\n\n" + m.menu.MainMenu())
	}
	m.write(b.String())
	return m, nil
}

func (m *ConsoleUI) copyLast() {
	if m.last == "" {
		m.status = "Nothing to copy yet."
	} else if err := m.copyText(m.last); err != nil {
		m.status = fmt.Sprintf("Copy failed: %v", err)
	} else {
		m.status = "Copied the last result to the clipboard."
	}
	m.refresh()
}

func (m *ConsoleUI) write(s string) {
	m.transcript = append(m.transcript, s)
	m.status = ""
	m.refresh()
}

func (m *ConsoleUI) refresh() {
	var b strings.Builder
	for _, s := range m.transcript {
		b.WriteString(s)
		b.WriteString("\n\n")
	}
	m.mainViewport.SetContent(b.String())
	m.mainViewport.GotoBottom()
	m.metaViewport.SetContent(m.writeMetadata())
}

func (m ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("CATALOGS") + "\n\n")

	e := m.menu.engine
	fmt.Fprintf(&content, "Species:  %d\n", e.Species().Len())
	fmt.Fprintf(&content, "Moves:    %d\n", e.Moves().Len())
	fmt.Fprintf(&content, "Items:    %d\n", e.Items().Len())
	fmt.Fprintf(&content, "Trainers: %d\n\n", e.Trainers().Len())

	content.WriteString("Waiting for:\n")
	content.WriteString(m.menu.Prompt() + "\n\n")

	content.WriteString("Commands:\n")
	content.WriteString("• Enter: Submit\n")
	content.WriteString("• Esc: Cancel action\n")
	content.WriteString("• Ctrl+Y: Copy result\n")
	content.WriteString("• Ctrl+C: Quit\n")

	if m.status != "" {
		content.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	return content.String()
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N", "esc":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Catalog changes are not saved.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	mainWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - mainWidth - 6

	mainPanel := mainPanelStyle.Width(mainWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.mainViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", mainWidth-4)),
			promptStyle.Render(m.menu.Prompt()+":"),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, mainPanel, metaPanel)
}
