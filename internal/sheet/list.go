// Copyright (c) Liam Stanley <liam@liam.sh>. All rights reserved. Use of
// this source code is governed by the MIT license that can be found in
// the LICENSE file.

package sheet

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sahilm/fuzzy"

	"github.com/rileylov/gosheet/internal/drawer"
)

var (
	listItemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	listSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(highlight).
				Foreground(highlight)
	listDetailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#969B86", Dark: "#696969"})
	listMatchStyle = lipgloss.NewStyle().Foreground(special).Bold(true)
)

// Item is one row of the sheet body.
type Item struct {
	Icon   string
	Title  string
	Detail string
	// Value is what enter copies to the clipboard; Title when empty.
	Value string
}

func (i Item) value() string {
	if i.Value != "" {
		return i.Value
	}
	return i.Title
}

type items []Item

func (it items) String(i int) string { return it[i].Title }
func (it items) Len() int            { return len(it) }

type row struct {
	item    Item
	matched []int
}

// list is the scrollable body: a filtered item list in a viewport.
type list struct {
	id       string
	items    items
	rows     []row
	query    string
	cursor   int
	viewport viewport.Model
}

func newList(all []Item) *list {
	l := &list{
		id:       zone.NewPrefix() + "body",
		items:    all,
		viewport: viewport.New(0, 0),
	}
	l.filter("")
	return l
}

// setItems replaces the items, keeping the current query.
func (l *list) setItems(all []Item) {
	l.items = all
	l.filter(l.query)
}

// filter fuzzy-matches titles against query. An empty query keeps every item
// in its original order.
func (l *list) filter(query string) {
	l.query = query
	l.rows = l.rows[:0]
	if query == "" {
		for _, it := range l.items {
			l.rows = append(l.rows, row{item: it})
		}
	} else {
		for _, m := range fuzzy.FindFrom(query, l.items) {
			l.rows = append(l.rows, row{item: l.items[m.Index], matched: m.MatchedIndexes})
		}
	}
	l.cursor = 0
	l.viewport.SetYOffset(0)
	l.render()
}

func (l *list) setSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	l.viewport.Width = width
	l.viewport.Height = height
	l.render()
}

// selected returns the item under the cursor.
func (l *list) selected() (Item, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return Item{}, false
	}
	return l.rows[l.cursor].item, true
}

// move shifts the cursor and keeps it visible.
func (l *list) move(n int) {
	if len(l.rows) == 0 {
		return
	}
	l.cursor = max(0, min(len(l.rows)-1, l.cursor+n))
	if l.cursor < l.viewport.YOffset {
		l.viewport.SetYOffset(l.cursor)
	}
	if h := l.viewport.Height; h > 0 && l.cursor >= l.viewport.YOffset+h {
		l.viewport.SetYOffset(l.cursor - h + 1)
	}
	l.render()
}

// scroll moves the viewport by n lines without touching the cursor.
func (l *list) scroll(n int) {
	l.viewport.SetYOffset(l.viewport.YOffset + n)
}

// selectAt places the cursor on the row under a click at zone-relative y.
func (l *list) selectAt(y int) bool {
	i := l.viewport.YOffset + y
	if y < 0 || i >= len(l.rows) {
		return false
	}
	l.cursor = i
	l.render()
	return true
}

// metrics reports the scroll position in px.
func (l *list) metrics(cellH float64) drawer.ScrollMetrics {
	return drawer.ScrollMetrics{
		Top:          float64(l.viewport.YOffset) * cellH,
		Height:       float64(l.viewport.TotalLineCount()) * cellH,
		ClientHeight: float64(l.viewport.Height) * cellH,
	}
}

func (l *list) render() {
	out := make([]string, 0, len(l.rows))
	for i, r := range l.rows {
		line := r.item.Icon + " " + highlightMatches(r.item.Title, r.matched)
		if r.item.Detail != "" {
			line += "  " + listDetailStyle.Render(r.item.Detail)
		}
		if i == l.cursor {
			out = append(out, listSelectedStyle.Render(line))
			continue
		}
		out = append(out, listItemStyle.Render(line))
	}
	l.viewport.SetContent(strings.Join(out, "\n"))
}

func (l *list) View() string {
	return zone.Mark(l.id, l.viewport.View())
}

func highlightMatches(s string, matched []int) string {
	if len(matched) == 0 {
		return s
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(listMatchStyle.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
