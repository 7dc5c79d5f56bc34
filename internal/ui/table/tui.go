package table

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/imgajeed76/vgrid/internal/grid"
	"github.com/imgajeed76/vgrid/internal/ui/styles"
	"github.com/imgajeed76/vgrid/internal/util"
	"github.com/imgajeed76/vgrid/internal/virtual"
)

// ═══════════════════════════════════════════════════════════════════════════
// Constants
// ═══════════════════════════════════════════════════════════════════════════

const (
	gutterWidth     = 2 // selection marker + space
	chromeLines     = 5 // title, column header, separator, status, help
	resizeStepCells = 2
	wheelRows       = 3
	statusDuration  = 3 * time.Second
)

// Exit mode: what to do after quitting the TUI
type exitMode int

const (
	exitNormal exitMode = iota
	exitJSON
	exitRaw
	exitPlain
)

// commitResultMsg carries the answer of the edit handler back into the
// update loop
type commitResultMsg struct {
	pending grid.PendingCommit
	err     error
}

type statusClearMsg struct{}

// ═══════════════════════════════════════════════════════════════════════════
// Model
// ═══════════════════════════════════════════════════════════════════════════

// gridModel renders a grid store. All grid state lives in the store; the
// model only holds terminal state and in-flight saves.
type gridModel struct {
	ctx         context.Context
	store       *grid.Store
	title       string
	geo         Geometry
	onEdit      grid.EditHandler
	editTimeout time.Duration
	log         *slog.Logger
	header      *headerFeed

	width  int
	height int
	ready  bool

	editor      textinput.Model
	editorToken string
	spinner     spinner.Model
	saving      map[grid.CellRef]int

	statusMsg   string
	statusErr   bool
	statusUntil time.Time
	exitMode    exitMode
}

func newGridModel(ctx context.Context, title string, opts DisplayOptions) gridModel {
	store := grid.FromContext(ctx)

	geo := opts.Geometry
	if geo.RowHeightPx <= 0 || geo.CellWidthPx <= 0 {
		geo = DefaultGeometry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 4096
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Warning)

	if snap := store.Snapshot(); snap.Focus == nil && len(snap.RowOrder) > 0 {
		store.MoveFocus(grid.NavHome, 1)
	}

	return gridModel{
		ctx:         ctx,
		store:       store,
		title:       title,
		geo:         geo,
		onEdit:      opts.OnCellEdit,
		editTimeout: opts.EditTimeout,
		log:         logger,
		header:      newHeaderFeed(store),
		editor:      ti,
		spinner:     sp,
		saving:      map[grid.CellRef]int{},
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Entry Point
// ═══════════════════════════════════════════════════════════════════════════

// RunGridTUI launches the interactive grid for the store attached to ctx. It
// blocks until the user quits. If the user requests an export (J/R/P), the
// grid as it was at exit is printed to stdout.
func RunGridTUI(ctx context.Context, title string, opts DisplayOptions) error {
	m := newGridModel(ctx, title, opts)
	defer m.header.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if opts.Out != nil {
		out = opts.Out
	}

	if fm, ok := finalModel.(gridModel); ok {
		snap := m.store.Snapshot()
		switch fm.exitMode {
		case exitJSON:
			return PrintJSON(out, snap)
		case exitRaw:
			PrintRaw(out, snap)
		case exitPlain:
			PrintPlainTable(out, snap)
		}
	}

	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Bubble Tea Interface
// ═══════════════════════════════════════════════════════════════════════════

func (m gridModel) Init() tea.Cmd {
	return nil
}

func (m gridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.clampScroll()
		return m, nil

	case spinner.TickMsg:
		if m.inflight() == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case commitResultMsg:
		cmd := m.resolve(msg)
		return m, cmd

	case statusClearMsg:
		// Clear the flash message if it has expired
		if !m.statusUntil.IsZero() && time.Now().After(m.statusUntil) {
			m.statusMsg = ""
			m.statusUntil = time.Time{}
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.scrollRows(-wheelRows)
			case tea.MouseButtonWheelDown:
				m.scrollRows(wheelRows)
			}
		}
		return m, nil

	case tea.KeyMsg:
		if e := m.store.Snapshot().Editing; e != nil && !e.IsSaving {
			return m.updateEditor(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m gridModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	for _, nav := range navIntents {
		if key.Matches(msg, *nav.binding) {
			m.store.MoveFocus(nav.intent, m.bodyHeight())
			m.followFocus()
			return m, nil
		}
	}

	snap := m.store.Snapshot()
	focus := snap.Focus

	switch {
	case key.Matches(msg, gridKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, gridKeys.ExportJSON):
		m.exitMode = exitJSON
		return m, tea.Quit

	case key.Matches(msg, gridKeys.ExportRaw):
		m.exitMode = exitRaw
		return m, tea.Quit

	case key.Matches(msg, gridKeys.ExportPlain):
		m.exitMode = exitPlain
		return m, tea.Quit

	case key.Matches(msg, gridKeys.SelectAll):
		m.store.SetSelection(snap.RowOrder)
		return m, nil

	case key.Matches(msg, gridKeys.Deselect):
		m.store.ClearSelection()
		return m, nil

	case key.Matches(msg, gridKeys.ShowAll):
		for _, id := range snap.ColumnOrder {
			if v, ok := snap.ColumnVisibility[id]; ok && !v {
				m.store.ToggleColumnVisibility(id)
			}
		}
		m.followFocus()
		return m, nil
	}

	if focus == nil {
		return m, nil
	}
	def, _ := snap.Column(focus.ColID)

	switch {
	case key.Matches(msg, gridKeys.Sort), key.Matches(msg, gridKeys.SortMulti):
		if !def.Sortable {
			return m, m.setStatus(fmt.Sprintf("%s is not sortable", focus.ColID), true)
		}
		m.store.ToggleSort(focus.ColID, key.Matches(msg, gridKeys.SortMulti))
		m.followFocus()

	case key.Matches(msg, gridKeys.Wider):
		return m, m.resize(snap, def, 1)

	case key.Matches(msg, gridKeys.Narrower):
		return m, m.resize(snap, def, -1)

	case key.Matches(msg, gridKeys.MoveLeft):
		return m, m.move(snap, -1)

	case key.Matches(msg, gridKeys.MoveRight):
		return m, m.move(snap, 1)

	case key.Matches(msg, gridKeys.Pin):
		next := virtual.PinLeft
		switch snap.PinnedColumns.Side(focus.ColID) {
		case virtual.PinLeft:
			next = virtual.PinRight
		case virtual.PinRight:
			next = virtual.PinNone
		}
		m.store.PinColumn(focus.ColID, next)
		m.followFocus()

	case key.Matches(msg, gridKeys.Hide):
		return m, m.hide(snap)

	case key.Matches(msg, gridKeys.Select):
		m.store.ToggleRowSelection(focus.RowID)

	case key.Matches(msg, gridKeys.Edit):
		if m.saving[*focus] > 0 {
			return m, m.setStatus("cell is still saving", true)
		}
		row, ok := snap.Rows[focus.RowID]
		if !ok {
			return m, nil
		}
		m.store.StartEdit(focus.RowID, focus.ColID, row[focus.ColID])
		m.syncEditor()
		return m, textinput.Blink
	}

	return m, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Editing
// ═══════════════════════════════════════════════════════════════════════════

func (m gridModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.store.CancelEdit()
		m.syncEditor()
		return m, nil
	case tea.KeyEnter:
		cmd := m.commit()
		return m, cmd
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.store.UpdateEditValue(m.editor.Value())
	return m, cmd
}

// commit starts the optimistic commit of the open edit. Without a handler
// the edit is only applied locally.
func (m *gridModel) commit() tea.Cmd {
	snap := m.store.Snapshot()
	e := snap.Editing
	if e == nil {
		return nil
	}
	m.store.UpdateEditValue(coerceLike(typeTemplate(snap, e), m.editor.Value()))

	p, ok := m.store.BeginCommit()
	m.syncEditor()
	if !ok {
		return nil
	}

	if m.onEdit == nil {
		m.store.ResolveCommit(p, nil)
		return m.committed(p)
	}

	ref := grid.CellRef{RowID: p.RowID, ColID: p.ColID}
	startSpinner := m.inflight() == 0
	m.saving[ref]++

	handler, ctx, timeout := m.onEdit, m.ctx, m.editTimeout
	persist := func() tea.Msg {
		cctx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			cctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return commitResultMsg{pending: p, err: handler(cctx, p.CellEdit)}
	}

	if startSpinner {
		return tea.Batch(persist, m.spinner.Tick)
	}
	return persist
}

// resolve hands the handler's answer to the store
func (m *gridModel) resolve(msg commitResultMsg) tea.Cmd {
	ref := grid.CellRef{RowID: msg.pending.RowID, ColID: msg.pending.ColID}
	if m.saving[ref] <= 1 {
		delete(m.saving, ref)
	} else {
		m.saving[ref]--
	}

	m.store.ResolveCommit(msg.pending, msg.err)
	m.syncEditor()

	if msg.err != nil {
		m.log.Warn("cell edit rejected", "row", msg.pending.RowID, "col", msg.pending.ColID, "token", util.ShortID(msg.pending.Token), "error", msg.err)
		return m.setStatus(fmt.Sprintf("%s: %s", ref.ColID, msg.err), true)
	}
	m.log.Info("cell edit persisted", "row", msg.pending.RowID, "col", msg.pending.ColID, "token", util.ShortID(msg.pending.Token))
	return m.committed(msg.pending)
}

func (m *gridModel) committed(p grid.PendingCommit) tea.Cmd {
	diff := InlineDiff(editText(p.Previous), editText(p.Value))
	return m.setStatus(fmt.Sprintf("row %s %s: %s", p.RowID, p.ColID, diff), false)
}

// syncEditor points the text input at the store's open edit. A new edit
// token means a new session (or one reopened after a rejection), so the
// input is reloaded from the store.
func (m *gridModel) syncEditor() {
	e := m.store.Snapshot().Editing
	if e == nil || e.IsSaving {
		m.editor.Blur()
		m.editorToken = ""
		return
	}
	if e.Token != m.editorToken {
		m.editorToken = e.Token
		m.editor.SetValue(editText(e.Value))
		m.editor.CursorEnd()
		m.editor.Focus()
	}
}

func (m gridModel) inflight() int {
	n := 0
	for _, c := range m.saving {
		n += c
	}
	return n
}

// editText is the editable text of a value. Unlike FormatValue, nil is empty.
func editText(v any) string {
	if v == nil {
		return ""
	}
	return FormatValue(v)
}

// typeTemplate is the value whose type edited text is converted to. The row
// holds the last accepted value even after a rejection reopened the editor
// with the refused text, so it wins over the edit's original value. A null
// cell borrows the type of the first non-null value in its column.
func typeTemplate(snap *grid.State, e *grid.EditingState) any {
	if v := snap.Rows[e.RowID][e.ColID]; v != nil {
		return v
	}
	for _, id := range snap.RowOrder {
		if v := snap.Rows[id][e.ColID]; v != nil {
			return v
		}
	}
	return e.OriginalValue
}

// coerceLike converts edited text back to the type of the original value so
// that numeric and time columns keep sorting by value. Text that does not
// parse stays text and is left to the edit handler to reject.
func coerceLike(original any, text string) any {
	t := strings.TrimSpace(text)
	if t == "" {
		if _, ok := original.(string); ok {
			return ""
		}
		return nil
	}

	switch o := original.(type) {
	case int64:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	case int32:
		if n, err := strconv.ParseInt(t, 10, 32); err == nil {
			return int32(n)
		}
	case int:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	case float64:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	case grid.Decimal:
		if f, err := strconv.ParseFloat(t, 64); err == nil && !strings.ContainsAny(t, "xX") {
			return grid.Decimal{Text: t, Float: f}
		}
	case bool:
		if b, err := strconv.ParseBool(t); err == nil {
			return b
		}
	case time.Time:
		for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02", time.RFC3339} {
			if ts, err := time.ParseInLocation(layout, t, o.Location()); err == nil {
				return ts
			}
		}
	}
	return text
}

// ═══════════════════════════════════════════════════════════════════════════
// Column Operations
// ═══════════════════════════════════════════════════════════════════════════

func (m *gridModel) resize(snap *grid.State, def grid.ColumnDef, dir int) tea.Cmd {
	if def.ID == "" {
		return nil
	}
	if !def.Resizable {
		return m.setStatus(fmt.Sprintf("%s is not resizable", def.ID), true)
	}

	w, ok := snap.ColumnWidths[def.ID]
	if !ok {
		w = virtual.DefaultColumnWidth
	}
	w += float64(dir*resizeStepCells) * m.geo.CellWidthPx
	if def.MinWidth > 0 {
		w = max(w, def.MinWidth)
	}
	if def.MaxWidth > 0 {
		w = min(w, def.MaxWidth)
	}
	m.store.ResizeColumn(def.ID, w)
	m.followFocus()
	return nil
}

// move swaps the focused column with its visual neighbour. Pinned columns
// keep their pin order.
func (m *gridModel) move(snap *grid.State, dir int) tea.Cmd {
	id := snap.Focus.ColID
	if snap.PinnedColumns.Side(id) != virtual.PinNone {
		return m.setStatus("pinned columns keep their pin order", true)
	}
	cols := snap.VisualColumns()
	j := slices.Index(cols, id)
	if j < 0 || j+dir < 0 || j+dir >= len(cols) {
		return nil
	}
	target := cols[j+dir]
	if snap.PinnedColumns.Side(target) != virtual.PinNone {
		return nil
	}
	m.store.MoveColumn(id, target)
	m.followFocus()
	return nil
}

// hide hides the focused column and moves focus to a neighbour
func (m *gridModel) hide(snap *grid.State) tea.Cmd {
	cols := snap.VisualColumns()
	if len(cols) <= 1 {
		return m.setStatus("cannot hide the last column", true)
	}
	id := snap.Focus.ColID
	j := slices.Index(cols, id)
	neighbour := cols[0]
	switch {
	case j >= 0 && j+1 < len(cols):
		neighbour = cols[j+1]
	case j > 0:
		neighbour = cols[j-1]
	}

	m.store.ToggleColumnVisibility(id)
	m.store.SetFocus(snap.Focus.RowID, neighbour)
	m.followFocus()
	return m.setStatus(fmt.Sprintf("hid %s (U shows all)", id), false)
}

// ═══════════════════════════════════════════════════════════════════════════
// Scroll Helpers
// ═══════════════════════════════════════════════════════════════════════════

func (m gridModel) bodyHeight() int {
	return max(1, m.height-chromeLines)
}

func (m gridModel) viewWidth() int {
	return max(1, m.width-gutterWidth)
}

// followFocus scrolls the least amount that brings the focused cell on screen
func (m gridModel) followFocus() {
	snap := m.store.Snapshot()
	top, left := scrollToShow(snap, m.geo, m.viewWidth(), m.bodyHeight())
	if top != snap.ScrollTop || left != snap.ScrollLeft {
		m.store.SetScroll(top, left)
	}
}

// scrollRows scrolls by whole rows without moving focus
func (m gridModel) scrollRows(n int) {
	snap := m.store.Snapshot()
	f := computeFrame(snap, m.geo, m.viewWidth(), m.bodyHeight())
	top := snap.ScrollTop + float64(n)*m.geo.RowHeightPx
	top = min(max(top, 0), f.MaxScrollTop)
	m.store.SetScroll(top, snap.ScrollLeft)
}

// clampScroll keeps the scroll position valid after the terminal resized
func (m gridModel) clampScroll() {
	snap := m.store.Snapshot()
	f := computeFrame(snap, m.geo, m.viewWidth(), m.bodyHeight())
	top := min(snap.ScrollTop, f.MaxScrollTop)
	left := min(snap.ScrollLeft, f.MaxScrollLeft)
	if top != snap.ScrollTop || left != snap.ScrollLeft {
		m.store.SetScroll(top, left)
	}
	m.followFocus()
}

// ═══════════════════════════════════════════════════════════════════════════
// Status Message (flash notification)
// ═══════════════════════════════════════════════════════════════════════════

// setStatus sets a temporary status message that auto-clears.
func (m *gridModel) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusUntil = time.Now().Add(statusDuration)
	return tea.Tick(statusDuration, func(t time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

// ═══════════════════════════════════════════════════════════════════════════
// View
// ═══════════════════════════════════════════════════════════════════════════

func (m gridModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	snap := m.store.Snapshot()
	f := computeFrame(snap, m.geo, m.viewWidth(), m.bodyHeight())

	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)
	sb.WriteString(styles.Render(titleStyle, m.title))
	sb.WriteString("  ")
	sb.WriteString(styles.MutedMsg(m.header.Load().String()))
	sb.WriteString("\n")

	if len(snap.VisualColumns()) == 0 {
		sb.WriteString("No columns\n")
		return sb.String()
	}

	sb.WriteString(m.renderHeader(snap, f))
	sb.WriteString("\n")
	sb.WriteString(composeLine(f, "  ",
		func(c frameColumn) string { return strings.Repeat("─", c.Width) },
		func(frameColumn) lipgloss.Style { return styles.SeparatorStyle }))
	sb.WriteString("\n")

	for _, r := range f.Rows {
		sb.WriteString(m.renderRow(snap, f, r))
		sb.WriteString("\n")
	}
	for i := len(f.Rows); i < f.BodyHeight; i++ {
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderStatus(snap, f))
	sb.WriteString("\n")
	sb.WriteString(m.renderHelp(snap))

	return sb.String()
}

func (m gridModel) renderHeader(snap *grid.State, f frame) string {
	focusCol := ""
	if snap.Focus != nil {
		focusCol = snap.Focus.ColID
	}

	return composeLine(f, "  ",
		func(c frameColumn) string {
			def, _ := snap.Column(c.ID)
			title := def.Title
			if title == "" {
				title = c.ID
			}
			if c.Pin != virtual.PinNone {
				title = styles.SymbolPinned + title
			}
			if dir, prio, ok := snap.SortFor(c.ID); ok {
				title += " " + styles.SortIndicator(dir == grid.SortDesc, prio, len(snap.Sort))
			}
			return title
		},
		func(c frameColumn) lipgloss.Style {
			switch {
			case c.ID == focusCol:
				return styles.FocusedHeaderStyle
			case slices.ContainsFunc(snap.Sort, func(d grid.SortDescriptor) bool { return d.ColumnID == c.ID }):
				return styles.SortedHeaderStyle
			default:
				return styles.HeaderStyle
			}
		})
}

func (m gridModel) renderRow(snap *grid.State, f frame, r frameRow) string {
	row := snap.Rows[r.ID]
	selected := snap.IsSelected(r.ID)
	gutter := styles.SelectionMark(selected) + " "
	e := snap.Editing

	return composeLine(f, gutter,
		func(c frameColumn) string {
			if e != nil && e.RowID == r.ID && e.ColID == c.ID {
				return editText(e.Value)
			}
			def, ok := snap.Column(c.ID)
			if !ok {
				def = grid.ColumnDef{ID: c.ID}
			}
			return cellText(def, row)
		},
		func(c frameColumn) lipgloss.Style {
			ref := grid.CellRef{RowID: r.ID, ColID: c.ID}
			st := lipgloss.NewStyle()
			if c.Pin != virtual.PinNone {
				st = styles.PinnedCellStyle
			}
			if selected {
				st = styles.SelectedRowStyle
			}
			if row[c.ID] == nil {
				st = styles.NullStyle
			}
			if snap.Focus != nil && *snap.Focus == ref {
				st = styles.FocusedCellStyle
			}
			if m.saving[ref] > 0 {
				st = styles.SavingCellStyle
			}
			if e != nil && e.RowID == r.ID && e.ColID == c.ID {
				st = styles.EditingCellStyle
				if e.Error != "" {
					st = styles.RejectedCellStyle
				}
			}
			return st
		})
}

// composeLine lays frame columns out on one terminal line. text returns the
// full (unclipped) cell text; clipping to the visible part happens here.
func composeLine(f frame, gutter string, text func(frameColumn) string, style func(frameColumn) lipgloss.Style) string {
	var sb strings.Builder
	sb.WriteString(gutter)

	x := 0
	for _, c := range f.Columns {
		skip, visible := c.Skip, c.Visible
		if c.X < x {
			d := x - c.X
			if d >= visible {
				continue
			}
			skip += d
			visible -= d
		} else if c.X > x {
			sb.WriteString(strings.Repeat(" ", c.X-x))
		}

		full := fitCell(text(c), c.Width-1) + " "
		sb.WriteString(styles.Render(style(c), sliceCells(full, skip, visible)))
		x = max(x, c.X) + visible
	}
	if x < f.ViewWidth {
		sb.WriteString(strings.Repeat(" ", f.ViewWidth-x))
	}
	return sb.String()
}

func (m gridModel) renderStatus(snap *grid.State, f frame) string {
	var parts []string

	if e := snap.Editing; e != nil && !e.IsSaving {
		line := fmt.Sprintf("%s[%s]: %s", e.ColID, e.RowID, m.editor.View())
		if e.Error != "" {
			line += "  " + styles.ErrorText(e.Error)
		}
		return line
	}

	if idx := focusIndex(snap); idx >= 0 {
		parts = append(parts, styles.Mutef("row %d/%d", idx+1, len(snap.RowOrder)))
	}

	var indicators []string
	if snap.ScrollLeft > 0 {
		indicators = append(indicators, "◀")
	}
	if snap.ScrollLeft < f.MaxScrollLeft {
		indicators = append(indicators, "▶")
	}
	if snap.ScrollTop > 0 {
		indicators = append(indicators, "▲")
	}
	if snap.ScrollTop < f.MaxScrollTop {
		indicators = append(indicators, "▼")
	}
	if len(indicators) > 0 {
		parts = append(parts, styles.MutedMsg(strings.Join(indicators, " ")))
	}

	if n := m.inflight(); n > 0 {
		parts = append(parts, fmt.Sprintf("%s saving %d edit(s)", m.spinner.View(), n))
	}

	if m.statusMsg != "" && time.Now().Before(m.statusUntil) {
		if m.statusErr {
			parts = append(parts, styles.ErrorText(m.statusMsg))
		} else {
			parts = append(parts, styles.SuccessMsg(m.statusMsg))
		}
	}

	return strings.Join(parts, "  ")
}

func (m gridModel) renderHelp(snap *grid.State) string {
	if e := snap.Editing; e != nil && !e.IsSaving {
		return styles.HelpBar("enter", "save", "esc", "cancel")
	}
	return styles.HelpBar(helpPairs(
		gridKeys.Sort, gridKeys.SortMulti, gridKeys.Edit, gridKeys.Pin,
		gridKeys.Wider, gridKeys.Narrower, gridKeys.MoveLeft, gridKeys.MoveRight,
		gridKeys.Hide, gridKeys.Select, gridKeys.ExportJSON, gridKeys.Quit,
	)...)
}

func focusIndex(snap *grid.State) int {
	if snap.Focus == nil {
		return -1
	}
	return indexOf(snap.RowOrder, snap.Focus.RowID)
}
