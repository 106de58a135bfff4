// Package tui is a read-only terminal browser for a run's summary tables.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

type viewState int

const (
	statePicking viewState = iota
	stateViewing
)

type summaryItem string

func (i summaryItem) Title() string       { return string(i) }
func (i summaryItem) Description() string { return "" }
func (i summaryItem) FilterValue() string { return string(i) }

type model struct {
	dir    string
	reader ports.TableReader

	state  viewState
	list   list.Model
	table  *domain.Table
	scroll int
	height int
	err    error
}

// Run starts the browser over the summaries in dir.
func Run(dir string, reader ports.TableReader) error {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Summaries"
	l.SetShowStatusBar(false)

	m := model{
		dir:    dir,
		reader: reader,
		state:  statePicking,
		list:   l,
		height: 24,
	}

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return listSummariesCmd(m.dir)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		m.height = msg.Height
		return m, nil

	case summariesListedMsg:
		items := make([]list.Item, 0, len(msg.files))
		for _, f := range msg.files {
			items = append(items, summaryItem(f))
		}
		return m, m.list.SetItems(items)

	case tableLoadedMsg:
		m.state = stateViewing
		m.table = msg.table
		m.scroll = 0
		m.err = nil
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateViewing {
				m.state = statePicking
				m.table = nil
				return m, nil
			}
			return m, tea.Quit

		case "enter":
			if m.state == statePicking {
				if it, ok := m.list.SelectedItem().(summaryItem); ok {
					return m, loadTableCmd(m.reader, m.dir, string(it))
				}
			}
			return m, nil

		case "up", "k":
			if m.state == stateViewing && m.scroll > 0 {
				m.scroll--
				return m, nil
			}

		case "down", "j":
			if m.state == stateViewing && m.table != nil && m.scroll < len(m.table.Rows)-1 {
				m.scroll++
				return m, nil
			}
		}
	}

	if m.state == statePicking {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n" +
			helpStyle.Render("q: back  ctrl+c: quit")
	}

	if m.state == statePicking {
		return m.list.View()
	}
	return m.tableView()
}

func (m model) tableView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.table.Name))
	b.WriteString("\n")

	widths := columnWidths(m.table)
	b.WriteString(renderRow(m.table.Cols, widths, headerStyle))
	b.WriteString("\n")

	visible := m.height - 4
	if visible < 1 {
		visible = 1
	}
	end := m.scroll + visible
	if end > len(m.table.Rows) {
		end = len(m.table.Rows)
	}
	for _, row := range m.table.Rows[m.scroll:end] {
		b.WriteString(renderRow(row, widths, cellStyle))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(fmt.Sprintf("rows %d-%d of %d  j/k: scroll  q: back", m.scroll+1, end, len(m.table.Rows))))
	return b.String()
}

func renderRow(cells []string, widths []int, style interface{ Render(...string) string }) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = style.Render(pad(c, widths[i]))
	}
	return strings.Join(parts, " ")
}

func columnWidths(t *domain.Table) []int {
	widths := make([]int, len(t.Cols))
	for i, c := range t.Cols {
		widths[i] = len(c)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
