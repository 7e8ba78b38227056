package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tannerbroberts/abouttime/pkg/selection"
	"github.com/tannerbroberts/abouttime/pkg/template"
	"github.com/tannerbroberts/abouttime/pkg/timeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	panelSelectedStyle = panelStyle.BorderForeground(colorCyan)
)

// =============================================================================
// laneSearch - Shared search-as-you-type component
// =============================================================================

// laneSearch wraps one Selection instance behind bubbletea key handling.
// Every viewer owns its own laneSearch, so viewers never share selection
// state.
type laneSearch struct {
	sel     *selection.Selection
	cursor  int
	focused bool
}

func newLaneSearch(lanes []template.Template) *laneSearch {
	return &laneSearch{sel: selection.New(lanes), focused: true}
}

// handleKey processes one key while the search is focused. It returns the
// newly selected lane (if the key completed a selection) and whether the
// key was consumed.
func (ls *laneSearch) handleKey(key tea.KeyMsg) (template.Template, bool, bool) {
	switch key.String() {
	case "esc":
		ls.sel.Blur()
		ls.focused = false
		return template.Template{}, false, true
	case "up":
		if ls.cursor > 0 {
			ls.cursor--
		}
		return template.Template{}, false, true
	case "down":
		if ls.cursor < len(ls.sel.Suggestions())-1 {
			ls.cursor++
		}
		return template.Template{}, false, true
	case "enter":
		suggestions := ls.sel.Suggestions()
		if len(suggestions) == 0 || ls.cursor >= len(suggestions) {
			return template.Template{}, false, true
		}
		lane := suggestions[ls.cursor]
		ls.sel.SelectLane(lane)
		ls.focused = false
		return lane, true, true
	case "backspace":
		if q := ls.sel.Query(); q != "" {
			_, size := utf8.DecodeLastRuneInString(q)
			ls.sel.SetQuery(q[:len(q)-size])
			ls.cursor = 0
		}
		return template.Template{}, false, true
	}
	if key.Type == tea.KeyRunes {
		ls.sel.SetQuery(ls.sel.Query() + string(key.Runes))
		ls.cursor = 0
		return template.Template{}, false, true
	}
	return template.Template{}, false, false
}

// focus re-opens the search for typing.
func (ls *laneSearch) focus() {
	ls.sel.Focus()
	ls.sel.SetShowSuggestions(true)
	ls.focused = true
}

func (ls *laneSearch) view() string {
	var b strings.Builder

	b.WriteString("  " + StyleHighlight.Render("› ") + StyleValue.Render(ls.sel.Query()))
	if ls.focused {
		b.WriteString(StyleHighlight.Render("▌"))
	}
	b.WriteString("\n")

	if !ls.focused || !ls.sel.ShowSuggestions() {
		return b.String()
	}

	suggestions := ls.sel.Suggestions()
	if len(suggestions) == 0 {
		b.WriteString(listDimStyle.Render("  no matching lanes"))
		b.WriteString("\n")
		return b.String()
	}
	for i, lane := range suggestions {
		line := fmt.Sprintf("  %s  %s", lane.Intent,
			listDimStyle.Render(formatDuration(lane.EstimatedDuration)))
		if i == ls.cursor {
			b.WriteString(listSelectedStyle.Render("▸" + line[1:]))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (ls *laneSearch) close() {
	ls.sel.Close()
}

// =============================================================================
// ViewerModel - Lane, panel, and list viewer surfaces
// =============================================================================

// viewStyle selects how a chosen lane is rendered.
type viewStyle int

const (
	viewLane  viewStyle = iota // proportional timeline bars
	viewPanel                  // one bordered panel per segment
	viewList                   // nested listing indented by depth
)

// viewStyleFromName maps a --view flag value to a style.
func viewStyleFromName(name string) (viewStyle, error) {
	switch name {
	case "", "lane":
		return viewLane, nil
	case "panel":
		return viewPanel, nil
	case "list":
		return viewList, nil
	}
	return viewLane, fmt.Errorf("unknown view %q (want lane, panel, or list)", name)
}

// ViewerModel is the bubbletea model behind the three viewer surfaces.
// Each instance owns its own search (and therefore its own Selection);
// the style only changes how the selected lane's layout is rendered.
type ViewerModel struct {
	store  *template.Store
	search *laneSearch
	style  viewStyle

	stack  []string // selected lane plus drill-down path
	layout timeline.LaneLayout
	Cursor int
}

// NewViewerModel creates a viewer over the store's lanes.
// If laneID names a lane, it starts selected with the search collapsed.
func NewViewerModel(store *template.Store, style viewStyle, laneID string) ViewerModel {
	m := ViewerModel{
		store:  store,
		search: newLaneSearch(store.Lanes()),
		style:  style,
	}
	if lane, ok := store.Lookup(laneID); ok && lane.IsLane() {
		m.search.sel.SelectLane(lane)
		m.search.focused = false
		m.openLane(laneID)
	}
	return m
}

func (m *ViewerModel) openLane(id string) {
	m.stack = []string{id}
	m.layout, _ = timeline.Layout(id, m.store)
	m.Cursor = 0
}

func (m ViewerModel) Init() tea.Cmd {
	return nil
}

func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.search.focused {
		if lane, selected, handled := m.search.handleKey(key); handled {
			if selected {
				m.openLane(lane.ID)
			} else if !m.search.focused && len(m.stack) == 0 {
				// Escaping an empty viewer quits it.
				return m, tea.Quit
			}
			return m, nil
		}
		return m, nil
	}

	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "/":
		m.search.focus()
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.layout.Segments)-1 {
			m.Cursor++
		}
	case "enter":
		if m.style == viewLane && m.Cursor < len(m.layout.Segments) {
			seg := m.layout.Segments[m.Cursor]
			if child, ok := m.store.Lookup(seg.TemplateID); ok && child.IsLane() {
				m.stack = append(m.stack, child.ID)
				m.layout, _ = timeline.Layout(child.ID, m.store)
				m.Cursor = 0
			}
		}
	case "backspace":
		if len(m.stack) > 1 {
			m.stack = m.stack[:len(m.stack)-1]
			m.layout, _ = timeline.Layout(m.stack[len(m.stack)-1], m.store)
			m.Cursor = 0
		}
	}
	return m, nil
}

func (m ViewerModel) View() string {
	var b strings.Builder

	titles := map[viewStyle]string{
		viewLane:  "Lane Viewer",
		viewPanel: "Panel Viewer",
		viewList:  "List Viewer",
	}
	b.WriteString(StyleTitle.Render(titles[m.style]))
	b.WriteString("\n")
	if m.search.focused {
		b.WriteString(listDimStyle.Render("type to filter  ↑/↓ navigate  ⏎ select  esc close"))
	} else {
		b.WriteString(listDimStyle.Render("/ search  ↑/↓ navigate  ⏎ drill in  ⌫ back  q quit"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.search.view())

	if len(m.stack) == 0 {
		return b.String()
	}
	b.WriteString("\n")

	crumbs := make([]string, len(m.stack))
	for i, id := range m.stack {
		if t, ok := m.store.Lookup(id); ok {
			crumbs[i] = t.Intent
		} else {
			crumbs[i] = id
		}
	}
	b.WriteString(StyleTitle.Render(strings.Join(crumbs, " "+iconArrow+" ")))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s · depth %d",
		formatDuration(m.layout.Duration), m.layout.Depth)))
	b.WriteString("\n\n")

	switch m.style {
	case viewPanel:
		m.renderPanels(&b)
	case viewList:
		m.renderNestedList(&b)
	default:
		m.renderBars(&b)
	}
	return b.String()
}

// renderBars draws the proportional timeline: one bar per segment plus the
// gap set underneath.
func (m ViewerModel) renderBars(b *strings.Builder) {
	for i, seg := range m.layout.Segments {
		style := styleSegment
		label := seg.Intent
		if !seg.Known {
			style = styleDangling
			label = seg.TemplateID + " (missing)"
		}
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
			label = listSelectedStyle.Render(label)
		}
		bar := renderSpan(seg.Position, seg.Width, '█')
		fmt.Fprintf(b, "%s%s %s\n", cursor, style.Render(bar), label)
		if i == m.Cursor {
			b.WriteString(listDimStyle.Render(fmt.Sprintf(
				"    at %s · %s wide · offset %s",
				formatPercent(seg.Position), formatPercent(seg.Width),
				formatDuration(seg.Offset))))
			b.WriteString("\n")
		}
	}

	for _, gap := range m.layout.Gaps {
		start := timeline.Position(gap.Start, m.layout.Duration)
		width := timeline.Width(gap.Duration(), m.layout.Duration)
		bar := renderSpan(start, width, '░')
		fmt.Fprintf(b, "  %s %s\n", styleGap.Render(bar),
			listDimStyle.Render(fmt.Sprintf("gap [%s, %s)",
				formatDuration(gap.Start), formatDuration(gap.End))))
	}
}

// renderPanels draws one bordered panel per segment.
func (m ViewerModel) renderPanels(b *strings.Builder) {
	for i, seg := range m.layout.Segments {
		label := seg.Intent
		if !seg.Known {
			label = styleDangling.Render(seg.TemplateID + " (missing)")
		}
		body := fmt.Sprintf("%s\n%s",
			label,
			listDimStyle.Render(fmt.Sprintf("offset %s · %s · at %s, %s wide",
				formatDuration(seg.Offset), formatDuration(seg.Duration),
				formatPercent(seg.Position), formatPercent(seg.Width))))
		style := panelStyle
		if i == m.Cursor {
			style = panelSelectedStyle
		}
		b.WriteString(style.Render(body))
		b.WriteString("\n")
	}
	if len(m.layout.Gaps) > 0 {
		var total int64
		for _, g := range m.layout.Gaps {
			total += g.Duration()
		}
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d empty region(s), %s total",
			len(m.layout.Gaps), formatDuration(total))))
		b.WriteString("\n")
	}
}

// renderNestedList draws the lane's composition as an indented tree.
// Revisited lanes are cut off with a cycle marker so the listing stays
// finite on cyclic libraries.
func (m ViewerModel) renderNestedList(b *strings.Builder) {
	m.renderListLevel(b, m.stack[len(m.stack)-1], 0, map[string]bool{})
}

func (m ViewerModel) renderListLevel(b *strings.Builder, id string, indent int, visited map[string]bool) {
	if visited[id] {
		b.WriteString(strings.Repeat("  ", indent+1))
		b.WriteString(listDimStyle.Render("↺ cycle"))
		b.WriteString("\n")
		return
	}
	visited[id] = true

	lane, ok := m.store.Lookup(id)
	if !ok || !lane.IsLane() {
		return
	}

	for _, seg := range lane.Segments {
		b.WriteString(strings.Repeat("  ", indent+1))
		child, known := m.store.Lookup(seg.TemplateID)
		switch {
		case !known:
			b.WriteString(styleDangling.Render(seg.TemplateID + " (missing)"))
		case child.IsLane():
			b.WriteString(listNormalStyle.Render(child.Intent))
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  +%s · %s",
				formatDuration(seg.Offset), formatDuration(child.EstimatedDuration))))
		default:
			b.WriteString(listDimStyle.Render(fmt.Sprintf("%s  +%s · %s",
				child.Intent, formatDuration(seg.Offset), formatDuration(child.EstimatedDuration))))
		}
		b.WriteString("\n")
		if known && child.IsLane() {
			m.renderListLevel(b, child.ID, indent+1, visited)
		}
	}
}

// Selected returns the lane currently selected in the viewer, if any.
func (m ViewerModel) Selected() (template.Template, bool) {
	return m.search.sel.Selected()
}

// runViewer runs one viewer surface over the store.
func (c *CLI) runViewer(store *template.Store, style viewStyle, laneID string) error {
	if len(store.Lanes()) == 0 {
		printInfo("Library has no lanes")
		return nil
	}

	model := NewViewerModel(store, style, laneID)
	defer model.search.close()

	_, err := tea.NewProgram(model).Run()
	return err
}

// runPicker runs the lane picker and prints the selection.
// It is the list viewer in select-and-exit mode.
func (c *CLI) runPicker(store *template.Store) error {
	if len(store.Lanes()) == 0 {
		printInfo("Library has no lanes")
		return nil
	}

	model := NewViewerModel(store, viewList, "")
	defer model.search.close()

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}
	viewer := final.(ViewerModel)
	if lane, ok := viewer.Selected(); ok {
		printSuccess("Selected %q", lane.Intent)
		printDetail("ID: %s", lane.ID)
		printNextStep("Inspect it", "abouttime show "+lane.ID)
	}
	return nil
}
