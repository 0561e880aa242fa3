package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mintabi/internal/cli/formatter"
	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/alexanderramin/mintabi/internal/drag"
	"github.com/alexanderramin/mintabi/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Remote subscription callbacks reach the model through these messages, so
// snapshots are applied on the same loop as key handling.
type (
	snapshotMsg  struct{ plan domain.Plan }
	notFoundMsg  struct{}
	remoteErrMsg struct{ err error }
)

type editMode int

const (
	editNone editMode = iota
	editTitle
	editMemo
	editDate
	editCard
)

const notFoundStatus = "このプランは存在しません"

// boardModel is the interactive board for one plan.
type boardModel struct {
	session *service.BoardSession
	saving  func() bool

	keys    boardKeyMap
	help    help.Model
	spinner spinner.Model
	input   textinput.Model

	mode    editMode
	editDay string
	form    *huh.Form
	draft   *cardDraft

	// focus while browsing: column index into ColumnIDs, row within it
	col, row int
	// hover position while dragging: layout column, row (-1 is the column)
	dragCol, dragRow int

	status   string
	width    int
	quitting bool
}

func newBoardModel(session *service.BoardSession, saving func() bool) boardModel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return boardModel{
		session: session,
		saving:  saving,
		keys:    newBoardKeyMap(),
		help:    help.New(),
		spinner: sp,
		input:   ti,
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case snapshotMsg:
		m.session.ApplySnapshot(msg.plan)
		m.clampFocus()
		return m, nil

	case notFoundMsg:
		m.session.MarkNotFound()
		m.status = notFoundStatus
		m.quitting = true
		return m, tea.Quit

	case remoteErrMsg:
		m.status = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.form != nil:
			return m.updateForm(msg)
		case m.mode != editNone:
			return m.updateInput(msg)
		case m.session.Drag().Dragging():
			return m.updateDrag(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// ── browsing ─────────────────────────────────────────────────────────────────

func (m boardModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Left):
		m.col--
		m.clampFocus()
	case key.Matches(msg, m.keys.Right):
		m.col++
		m.clampFocus()
	case key.Matches(msg, m.keys.Up):
		m.row--
		m.clampFocus()
	case key.Matches(msg, m.keys.Down):
		m.row++
		m.clampFocus()

	case key.Matches(msg, m.keys.Grab):
		card, ok := m.focusedCard()
		if !ok {
			return m, nil
		}
		if err := m.session.Drag().Start(card.ID); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.dragCol, m.dragRow = m.col, m.row
		m.hover()

	case key.Matches(msg, m.keys.AddCard):
		card, err := m.session.AddCard()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.focusCard(card.ID)
		return m.openCardForm(card)

	case key.Matches(msg, m.keys.Edit):
		card, ok := m.focusedCard()
		if !ok {
			return m, nil
		}
		return m.openCardForm(card)

	case key.Matches(msg, m.keys.AddDay):
		day, err := m.session.AddDay()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = day.Title + " を追加しました"

	case key.Matches(msg, m.keys.Title):
		m.session.FocusTitle()
		m.mode = editTitle
		return m, m.startInput(m.session.Title(), "プラン名")

	case key.Matches(msg, m.keys.Memo):
		day, ok := m.focusedDay()
		if !ok {
			m.status = "メモは日付列にのみ設定できます"
			return m, nil
		}
		m.mode, m.editDay = editMemo, day.ID
		return m, m.startInput(day.Memo, "メモ")

	case key.Matches(msg, m.keys.Date):
		day, ok := m.focusedDay()
		if !ok {
			m.status = "日付は日付列にのみ設定できます"
			return m, nil
		}
		m.mode, m.editDay = editDate, day.ID
		return m, m.startInput(day.DateValue, "YYYY-MM-DD")

	case key.Matches(msg, m.keys.Filter):
		m.session.CycleFilter()
		m.clampFocus()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// ── dragging ─────────────────────────────────────────────────────────────────

func (m boardModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.dragCol--
		m.dragRow = -1
		m.hover()
	case key.Matches(msg, m.keys.Right):
		m.dragCol++
		m.dragRow = -1
		m.hover()
	case key.Matches(msg, m.keys.Up):
		m.dragRow--
		m.hover()
	case key.Matches(msg, m.keys.Down):
		m.dragRow++
		m.hover()
	case key.Matches(msg, m.keys.Trash):
		m.dragCol = len(m.session.Layout().Columns) - 1
		m.dragRow = -1
		m.hover()

	case key.Matches(msg, m.keys.Drop):
		activeID := m.session.Drag().ActiveID()
		outcome := m.session.EndDrag(m.session.Drag().OverID())
		m.status = dropStatus(outcome)
		if outcome != drag.Trashed {
			m.focusCard(activeID)
		}
		m.clampFocus()

	case key.Matches(msg, m.keys.Cancel):
		activeID := m.session.Drag().ActiveID()
		m.session.EndDrag("")
		m.status = dropStatus(drag.Cancelled)
		m.focusCard(activeID)
		m.clampFocus()

	case key.Matches(msg, m.keys.Quit):
		m.session.EndDrag("")
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// hover moves the dragged card's rectangle to the current grid slot and lets
// nearest-corner collision pick the element under it.
func (m *boardModel) hover() {
	layout := m.session.Layout()
	m.dragCol = clamp(m.dragCol, 0, len(layout.Columns)-1)
	m.dragRow = clamp(m.dragRow, -1, layout.Rows(m.dragCol)-1)
	m.session.Drag().OverAt(drag.SlotRect(m.dragCol, m.dragRow), layout)
}

func dropStatus(o drag.Outcome) string {
	switch o {
	case drag.Trashed:
		return "カードを削除しました"
	case drag.Dropped, drag.Reordered:
		return "移動しました"
	default:
		return "ドラッグを取り消しました"
	}
}

// ── text input (title, day memo, day date) ───────────────────────────────────

func (m *boardModel) startInput(value, placeholder string) tea.Cmd {
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m boardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.finishInput(true)
		return m, nil
	case tea.KeyEsc:
		// esc blurs like enter, except a half-typed date is discarded
		m.finishInput(m.mode != editDate)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	switch m.mode {
	case editTitle:
		m.session.EditTitle(m.input.Value())
	case editMemo:
		if err := m.session.EditDayMemo(m.editDay, m.input.Value()); err != nil {
			m.status = err.Error()
		}
	}
	return m, cmd
}

func (m *boardModel) finishInput(apply bool) {
	switch m.mode {
	case editTitle:
		m.session.BlurTitle()
	case editMemo:
		// a remote snapshot may have replaced the days since the last keystroke
		if day, ok := m.session.Snapshot().Column(m.editDay); ok && day.Memo != m.input.Value() {
			if err := m.session.EditDayMemo(m.editDay, m.input.Value()); err != nil {
				m.status = err.Error()
			}
		}
		m.session.BlurDay()
	case editDate:
		if value := strings.TrimSpace(m.input.Value()); apply && value != "" {
			if err := m.session.SetDayDate(m.editDay, value); err != nil {
				m.status = fmt.Sprintf("日付の形式が正しくありません: %s", value)
			}
		}
		m.session.BlurDay()
	}
	m.mode, m.editDay = editNone, ""
	m.input.Blur()
}

// ── card form ────────────────────────────────────────────────────────────────

func (m boardModel) openCardForm(card domain.Card) (tea.Model, tea.Cmd) {
	m.draft = newCardDraft(card)
	m.form = cardForm(m.draft)
	m.mode = editCard
	return m, m.form.Init()
}

func (m boardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.closeForm()
		m.status = "編集を取り消しました"
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.session.SaveCard(m.draft.Card()); err != nil {
			m.status = err.Error()
		} else {
			m.status = "保存しました"
		}
		m.closeForm()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *boardModel) closeForm() {
	m.form, m.draft = nil, nil
	m.mode = editNone
}

// ── focus helpers ────────────────────────────────────────────────────────────

func (m boardModel) columns() []string {
	return m.session.Snapshot().ColumnIDs()
}

func (m boardModel) visibleCards(colID string) []domain.Card {
	if colID == domain.StockColumnID {
		return m.session.StockCards()
	}
	return m.session.Snapshot().CardsIn(colID)
}

func (m boardModel) focusedColumn() string {
	cols := m.columns()
	return cols[clamp(m.col, 0, len(cols)-1)]
}

func (m boardModel) focusedCard() (domain.Card, bool) {
	cards := m.visibleCards(m.focusedColumn())
	if m.row < 0 || m.row >= len(cards) {
		return domain.Card{}, false
	}
	return cards[m.row], true
}

func (m boardModel) focusedDay() (domain.Column, bool) {
	return m.session.Snapshot().Column(m.focusedColumn())
}

func (m *boardModel) clampFocus() {
	m.col = clamp(m.col, 0, len(m.columns())-1)
	m.row = clamp(m.row, 0, max(len(m.visibleCards(m.focusedColumn()))-1, 0))
}

func (m *boardModel) focusCard(id string) {
	for ci, colID := range m.columns() {
		for ri, c := range m.visibleCards(colID) {
			if c.ID == id {
				m.col, m.row = ci, ri
				return
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m boardModel) View() string {
	if m.quitting {
		if m.status != "" {
			return m.status + "\n"
		}
		return ""
	}

	var b strings.Builder

	title := formatter.StyleBold.Render(m.session.Title())
	if m.mode == editTitle {
		title = m.input.View()
	}
	b.WriteString(title)
	if m.saving != nil && m.saving() {
		b.WriteString("  " + m.spinner.View() + formatter.Dim("保存中…"))
	}
	b.WriteString("\n")

	if m.form != nil {
		b.WriteString(m.form.View())
		b.WriteString("\n" + formatter.Dim("esc: cancel") + "\n")
		return b.String()
	}

	view := formatter.BoardView{
		Snapshot:   m.session.Snapshot(),
		Filter:     m.session.Filter(),
		ActiveCard: m.session.Drag().ActiveID(),
		OverID:     m.session.Drag().OverID(),
	}
	if !m.session.Drag().Dragging() {
		view.FocusColumn = m.focusedColumn()
		if card, ok := m.focusedCard(); ok {
			view.FocusCard = card.ID
		}
	}
	if m.width > 0 {
		view.ColumnWidth = clamp(m.width/(len(m.session.Snapshot().Days())+2)-4, 12, 32)
	}
	b.WriteString(formatter.RenderBoard(view))
	b.WriteString("\n")

	switch m.mode {
	case editMemo:
		b.WriteString(formatter.Dim("メモ ") + m.input.View() + "\n")
	case editDate:
		b.WriteString(formatter.Dim("日付 ") + m.input.View() + "\n")
	}
	if m.status != "" {
		b.WriteString(formatter.StyleYellow.Render(m.status) + "\n")
	}

	if m.session.Drag().Dragging() {
		b.WriteString(m.help.ShortHelpView(m.keys.dragHelp()))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}
