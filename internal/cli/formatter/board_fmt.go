package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/mintabi/internal/board"
	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/alexanderramin/mintabi/internal/service"
	"github.com/charmbracelet/lipgloss"
)

const (
	StockTitle    = "ストック"
	TrashTitle    = "ゴミ箱"
	MissingSuffix = " (存在しません)"

	defaultColumnWidth = 24
)

// BoardView is everything RenderBoard draws. Focus and drag fields are empty
// outside the interactive board.
type BoardView struct {
	Title    string
	Snapshot board.Snapshot
	Filter   domain.CategoryFilter

	FocusColumn string
	FocusCard   string
	ActiveCard  string
	OverID      string

	// ColumnWidth is the inner width of each column box.
	ColumnWidth int
}

// RenderBoard draws the stock bucket on top and the day columns plus the
// trash target side by side below it.
func RenderBoard(v BoardView) string {
	width := v.ColumnWidth
	if width <= 0 {
		width = defaultColumnWidth
	}

	stockCards := v.Snapshot.CardsInFiltered(domain.StockColumnID, v.Filter)
	stockWidth := max(width, (width+4)*max(len(v.Snapshot.Days()), 1)-4)
	stock := renderColumn(v, domain.StockColumnID, StockTitle, FilterTabs(v.Filter), "", stockCards, stockWidth)

	cols := make([]string, 0, len(v.Snapshot.Days())+1)
	for _, d := range v.Snapshot.Days() {
		cols = append(cols, renderColumn(v, d.ID, d.Title, d.DateLabel, d.Memo, v.Snapshot.CardsIn(d.ID), width))
	}
	cols = append(cols, renderTrash(v, width))

	var b strings.Builder
	if v.Title != "" {
		b.WriteString(StyleBold.Render(v.Title) + "\n")
	}
	b.WriteString(stock + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	return b.String()
}

// FilterTabs renders the stock filter with the current choice bracketed.
func FilterTabs(f domain.CategoryFilter) string {
	if f == "" {
		f = domain.FilterAll
	}
	tabs := make([]string, 0, 3)
	for _, opt := range []domain.CategoryFilter{domain.FilterAll, domain.FilterSpot, domain.FilterFood} {
		if opt == f {
			tabs = append(tabs, StyleBold.Render("["+string(opt)+"]"))
			continue
		}
		tabs = append(tabs, Dim(string(opt)))
	}
	return strings.Join(tabs, " ")
}

func renderColumn(v BoardView, id, heading, sub, memo string, cards []domain.Card, width int) string {
	headStyle := StyleBold
	if v.FocusColumn == id {
		headStyle = StyleHeader
	}
	lines := []string{headStyle.Render(Truncate(heading, width))}
	if sub != "" {
		lines = append(lines, Dim(sub))
	}
	if memo != "" {
		lines = append(lines, StyleBlue.Render(MemoPreview(memo, width)))
	}
	if len(cards) == 0 {
		lines = append(lines, Dim("(なし)"))
	}
	for _, c := range cards {
		lines = append(lines, cardLine(v, c, width))
	}
	return columnBox(v, id, width).Render(strings.Join(lines, "\n"))
}

func renderTrash(v BoardView, width int) string {
	label := StyleRed.Render("✖ " + TrashTitle)
	return columnBox(v, domain.TrashID, width/2).Render(label)
}

func columnBox(v BoardView, id string, width int) lipgloss.Style {
	border := ColorDim
	switch {
	case v.OverID == id:
		border = ColorPurple
	case v.FocusColumn == id:
		border = ColorHeader
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		PaddingLeft(1).
		PaddingRight(1)
}

func cardLine(v BoardView, c domain.Card, width int) string {
	prefix := "  "
	switch {
	case c.ID == v.ActiveCard:
		prefix = StylePurple.Render("✥ ")
	case c.ID == v.FocusCard:
		prefix = StyleHeader.Render("› ")
	}
	dot := CategoryStyle(c.Category).Render("●")
	title := Truncate(c.Title, width-4)
	if c.ID == v.OverID && c.ID != v.ActiveCard {
		title = lipgloss.NewStyle().Reverse(true).Render(title)
	}
	return prefix + dot + " " + title
}

// FormatPlanShow renders a plan for `plan show`: header, board, and a
// warning per card whose column no longer exists.
func FormatPlanShow(plan *domain.Plan, filter domain.CategoryFilter) string {
	snap := board.FromPlan(*plan)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleBold.Render(plan.Title), TruncID(plan.ID)))
	b.WriteString(Dim(fmt.Sprintf("cards %d · days %d · updated %s",
		snap.Len(), len(snap.Days()), HumanTimestamp(plan.UpdatedAt))) + "\n\n")
	b.WriteString(RenderBoard(BoardView{Snapshot: snap, Filter: filter}))
	b.WriteString("\n")

	for _, c := range snap.DanglingCards() {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("⚠ %s (%s) references unknown column %q", c.Title, c.ID, c.ColumnID)) + "\n")
	}
	return b.String()
}

// FormatCard renders one card with its memo as markdown.
func FormatCard(c domain.Card, width int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n\n", StyleBold.Render(c.Title), CategoryBadge(c.Category)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("ID    "), c.ID))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("COLUMN"), c.ColumnID))
	if c.URL != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("URL   "), StyleBlue.Render(c.URL)))
	}
	if c.ImageURL != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("IMAGE "), Dim(c.ImageURL)))
	}
	if memo := RenderMemo(c.Memo, width); memo != "" {
		b.WriteString("\n" + Header("Memo") + "\n" + memo + "\n")
	}
	return b.String()
}

// FormatHistory renders the revalidated history list.
func FormatHistory(items []service.HistoryItem) string {
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		title := Bold(it.Title)
		note := ""
		switch {
		case it.Missing:
			title = Dim(it.Title + MissingSuffix)
		case it.LookupErr != nil:
			note = StyleRed.Render("lookup failed")
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), title, it.ID, note})
	}
	return RenderTable([]string{"#", "TITLE", "ID", ""}, rows)
}

// FormatTemplateList renders the templates available to `plan create`.
func FormatTemplateList(infos []service.TemplateInfo) string {
	rows := make([][]string, 0, len(infos))
	for _, t := range infos {
		rows = append(rows, []string{
			strconv.Itoa(t.Index),
			Bold(t.Name),
			Dim(t.ID),
			fmt.Sprintf("%d days, %d cards", t.DayCount, t.CardCount),
			Dim(t.Description),
		})
	}
	return RenderBox("Templates", RenderTable([]string{"#", "NAME", "ID", "SIZE", "DESCRIPTION"}, rows))
}
