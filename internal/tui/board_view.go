package tui

import (
	"strings"

	"restack-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m *Board) View() string {
	header := lipgloss.NewStyle().Bold(true).Render("restack") + "  " + styleMuted().Render(m.helpLine())

	// Lane columns are rendered in content coordinates, then cut to the
	// visible window at the current scroll offset.
	cols := make([][]string, 0, len(m.lanes))
	tallest := 0
	for _, l := range m.lanes {
		col := m.renderLane(l)
		if len(col) > tallest {
			tallest = len(col)
		}
		cols = append(cols, col)
	}
	gap := strings.Repeat(" ", laneGap)
	strip := make([]string, tallest)
	for y := range strip {
		var sb strings.Builder
		for _, col := range cols {
			cell := ""
			if y < len(col) {
				cell = col[y]
			}
			sb.WriteString(fitWidth(cell, laneWidth))
			sb.WriteString(gap)
		}
		strip[y] = sb.String()
	}
	if len(m.lanes) == 0 {
		strip = []string{styleMuted().Render("no stacks; run `restack import <file.yaml>`")}
	}

	stripH := m.height - laneTop - 1
	body := viewport(strip, m.scroll, m.width, stripH)
	return strings.Join([]string{
		fitWidth(header, m.width),
		"",
		body,
		m.statusLine(),
	}, "\n")
}

func (m *Board) renderLane(l model.Lane) []string {
	title := l.Title
	if title == "" {
		title = l.StackID
	}
	titleStyle := styleLaneTitle()
	if b, ok := m.boxes["lane/"+l.StackID]; ok && b.dimmed {
		titleStyle = styleDragged()
	}
	lines := []string{
		titleStyle.Render(fitWidth(" "+title, laneWidth)),
		styleMuted().Render(strings.Repeat("─", laneWidth)),
	}
	st := m.stacks[l.StackID]
	for _, s := range st.Series {
		t := model.DropTarget{SeriesName: s.Name, Anchor: model.AnchorTop}
		lines = append(lines, m.renderTarget(l.StackID, t, styleSeries(), "▾ "+s.Name))
		for _, c := range s.CommitIDs {
			t := model.DropTarget{SeriesName: s.Name, Anchor: model.After(c)}
			lines = append(lines, m.renderTarget(l.StackID, t, lipgloss.NewStyle(), "  ● "+string(c)))
		}
	}
	return lines
}

func (m *Board) renderTarget(stackID string, t model.DropTarget, st lipgloss.Style, text string) string {
	b, ok := m.boxes[targetKey(stackID, t)]
	if !ok {
		return st.Render(text)
	}
	armed, hovered := b.zoneState()
	switch {
	case b.dimmed:
		return styleDragged().Render(text)
	case hovered:
		return styleTargetHover().Render(fitWidth(text+"  ⏎", laneWidth))
	case armed:
		return styleTargetArmed().Render(text)
	default:
		return st.Render(text)
	}
}

func (m *Board) helpLine() string {
	parts := make([]string, 0, 4)
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

func (m *Board) statusLine() string {
	var parts []string
	if m.preview != nil {
		parts = append(parts, lipgloss.NewStyle().Reverse(true).Render(" ⠿ "+m.preview.label+" "))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.err != nil {
		parts = append(parts, styleError().Render("error: "+m.err.Error()))
	}
	return fitWidth(strings.Join(parts, "  "), m.width)
}
