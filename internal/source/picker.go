// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// SelectVersions runs an interactive picker over the object's versions and
// returns the two selected, or nil if the user bailed.
func SelectVersions(items []ObjectVersion) []ObjectVersion {
	p := tea.NewProgram(pickerModel{items: items})
	m, _ := p.Run()
	return m.(pickerModel).selected
}

type pickerModel struct {
	items    []ObjectVersion
	cursor   int
	selected []ObjectVersion
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc":
			m.selected = nil
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			if contains(m.selected, m.items[m.cursor]) {
				// Remove item from selected
				for i, v := range m.selected {
					if v.ID == m.items[m.cursor].ID {
						m.selected = append(m.selected[:i], m.selected[i+1:]...)
						break
					}
				}
			} else if len(m.selected) < 2 {
				m.selected = append(m.selected, m.items[m.cursor])
			}
		case "enter":
			if len(m.selected) == 2 {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := "Select two object versions:\n\n"
	for i, v := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if contains(m.selected, v) {
			mark = "x"
		}
		latest := " "
		if v.IsLatest {
			latest = "*"
		}

		s += fmt.Sprintf("%s [%s] %s%s %8s %s\n",
			cursor, mark, v.ID, latest,
			humanize.Bytes(uint64(v.Size)),
			humanize.Time(v.LastModified))
	}
	return s + "\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n"
}

func contains(versions []ObjectVersion, version ObjectVersion) bool {
	for _, v := range versions {
		if v.ID == version.ID {
			return true
		}
	}
	return false
}
