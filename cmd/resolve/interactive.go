package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sourcevfs "github.com/solium-lang/source-vfs"
	"github.com/solium-lang/source-vfs/vfs"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	reader   *vfs.FileReader
	input    textinput.Model
	lastName string
	result   string
	failed   bool
	state    modelState
}

type modelState int

const (
	stateInputName modelState = iota
	stateShowResult
)

func newInteractiveModel(reader *vfs.FileReader) *interactiveModel {
	input := textinput.New()
	input.Placeholder = "contracts/A.sol"
	input.Focus()
	input.CharLimit = 512
	input.Width = 60

	return &interactiveModel{
		reader: reader,
		input:  input,
		state:  stateInputName,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateShowResult {
				return m, tea.Quit
			}

		case "enter":
			switch m.state {
			case stateInputName:
				name := strings.TrimSpace(m.input.Value())
				if name == "" {
					return m, nil
				}
				m.lastName = name
				res := m.reader.ReadFile(sourcevfs.KindReadFile, name)
				m.result = res.Value
				m.failed = !res.Success
				m.state = stateShowResult

			case stateShowResult:
				m.state = stateInputName
				m.input.SetValue("")
				m.input.Focus()
			}

		case "esc":
			if m.state == stateShowResult {
				m.state = stateInputName
				m.input.SetValue("")
				m.input.Focus()
			}
		}
	}

	if m.state == stateInputName {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("source resolver"))
	b.WriteString("\n\n")
	b.WriteString(m.configSummary())
	b.WriteString("\n")

	switch m.state {
	case stateInputName:
		b.WriteString("Source unit name:\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.cachedList())
		b.WriteString(helpStyle.Render("enter resolve · ctrl+c quit"))

	case stateShowResult:
		b.WriteString(nameStyle.Render(m.lastName))
		b.WriteString("\n\n")
		if m.failed {
			b.WriteString(failStyle.Render(m.result))
		} else {
			b.WriteString(resultStyle.Render(truncate(m.result, 2000)))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter/esc back · q quit"))
	}

	b.WriteString("\n")
	return b.String()
}

func (m *interactiveModel) configSummary() string {
	var b strings.Builder
	if base := m.reader.BasePath(); base != "" {
		fmt.Fprintf(&b, "base: %s\n", base)
	}
	for _, include := range m.reader.IncludePaths() {
		fmt.Fprintf(&b, "include: %s\n", include)
	}
	for _, dir := range m.reader.AllowedDirectories() {
		fmt.Fprintf(&b, "allow: %s\n", dir)
	}
	return b.String()
}

func (m *interactiveModel) cachedList() string {
	sources := m.reader.Sources()
	if len(sources) == 0 {
		return ""
	}
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Cached source units:\n")
	for _, name := range names {
		b.WriteString("  ")
		b.WriteString(nameStyle.Render(name))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "\n… (truncated)"
}

func runInteractive(reader *vfs.FileReader) error {
	p := tea.NewProgram(newInteractiveModel(reader))
	_, err := p.Run()
	return err
}
