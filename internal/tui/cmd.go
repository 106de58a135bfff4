package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BayAreaMetro/tm2kit/internal/ports"
)

func listSummariesCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return errMsg{err: err}
		}

		var files []string
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
				continue
			}
			files = append(files, e.Name())
		}
		sort.Strings(files)
		return summariesListedMsg{files: files}
	}
}

func loadTableCmd(reader ports.TableReader, dir, file string) tea.Cmd {
	return func() tea.Msg {
		t, err := reader.ReadTable(filepath.Join(dir, file))
		if err != nil {
			return errMsg{err: err}
		}
		return tableLoadedMsg{table: t}
	}
}
