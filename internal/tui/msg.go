package tui

import "github.com/BayAreaMetro/tm2kit/internal/domain"

type summariesListedMsg struct {
	files []string
}

type tableLoadedMsg struct {
	table *domain.Table
}

type errMsg struct {
	err error
}
