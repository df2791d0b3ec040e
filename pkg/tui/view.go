package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/stefanpenner/brandpilot/pkg/program"
	"github.com/stefanpenner/brandpilot/pkg/reward"
)

const minWidth = 60
const minHeight = 20

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	switch {
	case m.showHelpModal:
		return placeOverlay(m.renderHelpModal(), w, h)
	case m.showDeleteConfirm:
		return placeOverlay(m.renderDeleteModal(), w, h)
	case m.showDetail:
		return placeOverlay(m.renderDetailModal(w), w, h)
	case m.form != nil:
		return placeOverlay(m.renderForm(), w, h)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(m.renderBrandTabs(w))
	b.WriteString("\n")

	headerLines := 3
	footerLines := 2

	searchActive := m.isSearching || m.searchQuery != ""
	if searchActive {
		b.WriteString(m.renderSearchBar(w))
		b.WriteString("\n")
		headerLines++
	}

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	if m.showChart {
		chart := m.renderChart(w)
		b.WriteString(chart)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("─", w))
		b.WriteString("\n")
		headerLines += strings.Count(chart, "\n") + 2
	}

	contentHeight := h - headerLines - footerLines
	if contentHeight < cardHeight+1 {
		contentHeight = cardHeight + 1
	}

	// Three columns separated by a thin divider
	colWidth := (w - len(m.columns) + 1) / len(m.columns)
	panels := make([]string, len(m.columns))
	for i := range m.columns {
		panels[i] = m.renderColumn(i, colWidth, contentHeight)
	}
	sep := lipgloss.NewStyle().Foreground(ColorGrayDim).Render("│")
	for line := 0; line < contentHeight; line++ {
		for i, panel := range panels {
			if i > 0 {
				b.WriteString(sep)
			}
			b.WriteString(getLine(panel, line, colWidth))
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("Brand Programs")

	counts := fmt.Sprintf("%d programs", m.total)
	if len(m.visible) != m.total {
		counts = fmt.Sprintf("%d of %d programs", len(m.visible), m.total)
	}
	stats := HeaderCountStyle.Render(counts)

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = StatusMsgStyle.Render(m.statusMsg) + "  "
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(stats) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + status + stats
}

func (m Model) renderBrandTabs(width int) string {
	tabs := []string{FooterStyle.Render("Brand: ")}
	for _, brand := range brandOptions(m.catalog.Brands) {
		if brand == m.brandFilter {
			tabs = append(tabs, ActiveTabStyle.Render(brand))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(brand))
		}
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(tabs, ""))
}

func (m Model) renderSearchBar(width int) string {
	prefix := SearchBarStyle.Render(" / ")
	query := SearchBarStyle.Render(m.searchQuery)
	cursor := ""
	if m.isSearching {
		cursor = SearchBarStyle.Render("█")
	}

	countStr := ""
	if m.searchQuery != "" {
		countStr = SearchCountStyle.Render(fmt.Sprintf(" %d matches", len(m.visible)))
	}

	left := prefix + query + cursor
	padWidth := width - lipgloss.Width(left) - lipgloss.Width(countStr)
	if padWidth < 1 {
		padWidth = 1
	}

	return left + strings.Repeat(" ", padWidth) + countStr
}

// renderChart draws one bar per brand of the visible programs, largest first.
func (m Model) renderChart(width int) string {
	if len(m.brandCounts) == 0 {
		return FooterStyle.Render(" No programs to chart")
	}

	labelWidth := 0
	for _, bc := range m.brandCounts {
		if lw := lipgloss.Width(bc.Brand); lw > labelWidth {
			labelWidth = lw
		}
	}
	barMax := width - labelWidth - 16
	if barMax < 10 {
		barMax = 10
	}

	total := len(m.visible)
	lines := []string{ModalTitleStyle.Render(" Programs by brand")}
	for i, bc := range m.brandCounts {
		share := bc.Share(total)
		barLen := int(share*float64(barMax) + 0.5)
		if barLen < 1 {
			barLen = 1
		}
		color := chartColors[i%len(chartColors)]
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", barLen))
		label := lipgloss.NewStyle().Width(labelWidth).Render(bc.Brand)
		lines = append(lines, fmt.Sprintf(" %s %s %s", label, bar,
			CardMutedStyle.Render(fmt.Sprintf("%d (%.0f%%)", bc.Count, share*100))))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderColumn(idx, width, height int) string {
	col := m.columns[idx]
	focused := idx == m.col

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(statusColors[col.Status])
	title := titleStyle.Render(fmt.Sprintf(" ● %s", col.Status)) +
		HeaderCountStyle.Render(fmt.Sprintf(" (%d)", len(col.Cards)))

	lines := []string{title}
	if len(col.Cards) == 0 {
		lines = append(lines, FooterStyle.Render(" No programs"))
		return strings.Join(lines, "\n")
	}

	// Window the cards so the selected one stays visible
	fit := (height - 1) / cardHeight
	if fit < 1 {
		fit = 1
	}
	selected := m.rows[idx]
	start := 0
	if selected >= fit {
		start = selected - fit + 1
	}
	end := start + fit
	if end > len(col.Cards) {
		end = len(col.Cards)
	}

	for i := start; i < end; i++ {
		card := renderCard(col.Cards[i], focused && i == selected, width)
		lines = append(lines, strings.Split(card, "\n")...)
	}
	if end < len(col.Cards) {
		lines = append(lines, FooterStyle.Render(fmt.Sprintf(" ↓ %d more", len(col.Cards)-end)))
	}
	return strings.Join(lines, "\n")
}

// renderCard draws a program card exactly cardHeight lines tall.
func renderCard(c Card, selected bool, width int) string {
	style := CardStyle
	if selected {
		style = SelectedCardStyle
	}
	inner := width - style.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}
	fit := lipgloss.NewStyle().MaxWidth(inner)

	p, mt := c.Program, c.Metrics

	remaining := RemainingStyle.Render(humanize.Commaf(mt.RemainingTarget) + " left")
	if mt.OverTarget() {
		remaining = OverTargetStyle.Render(humanize.Commaf(-mt.RemainingTarget) + " over")
	}

	lines := []string{
		fit.Render(CardTitleStyle.Render(p.Brand)),
		fit.Render(CardMutedStyle.Render(p.ProgramType)),
		fit.Render(firstLine(p.Description)),
		spread(CardMutedStyle.Render("Achievement"), fmt.Sprintf("%d%%", mt.AchievementProgress), inner),
		progressBar(mt.AchievementProgress, inner, ColorGreen),
		spread(CardMutedStyle.Render(humanize.Commaf(p.Achievement)+" / "+humanize.Commaf(p.Target)), remaining, inner),
		spread(CardMutedStyle.Render("Time gone"), fmt.Sprintf("%d%%", mt.TimeGoneProgress), inner),
		progressBar(mt.TimeGoneProgress, inner, ColorBlue),
		CardMutedStyle.Render(formatRange(p.StartDate, p.EndDate)),
		badgeStyles[mt.PaymentVariant].Render(string(p.PaymentStatus)),
	}
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func progressBar(percent, width int, color lipgloss.Color) string {
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	return bar.ViewAs(float64(percent) / 100)
}

// spread puts left and right at the two edges of a line of the given width.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func formatRange(start, end time.Time) string {
	return start.Format("Jan 2") + " – " + end.Format("Jan 2, 2006")
}

func (m Model) renderFooter() string {
	help := m.keys.ShortHelp()
	switch {
	case m.isSearching:
		help = "type to search  enter/↓ keep filter  esc clear"
	case m.searchQuery != "":
		help = "esc clear search  " + help
	}
	return FooterStyle.Render(help)
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorBlue).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderDeleteModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Are you absolutely sure?"))
	b.WriteString("\n\n")
	b.WriteString("This action cannot be undone. This will permanently delete\n")
	b.WriteString(fmt.Sprintf("the program %q for %s.\n\n", m.deleteTarget.ID, m.deleteTarget.Brand))
	b.WriteString(lipgloss.NewStyle().Foreground(ColorGreen).Render("[y]") + " Delete  ")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorRed).Render("[n]") + " Cancel")

	return ModalStyle.Render(b.String())
}

// detailWidth is the word-wrap width of the detail modal for a terminal width.
func detailWidth(termWidth int) int {
	w := termWidth*2/3 - ModalStyle.GetHorizontalFrameSize()
	if w < 30 {
		w = 30
	}
	return w
}

// ProgramMarkdown describes p and its metrics as a markdown document.
func ProgramMarkdown(p program.Program, mt program.Metrics) string {
	var md strings.Builder

	md.WriteString("# " + p.Brand + "\n\n")
	md.WriteString(fmt.Sprintf("**%s** | %s | %s | `%s`\n\n", p.ProgramType, p.Status, p.PaymentStatus, p.ID))
	if p.Description != "" {
		md.WriteString(p.Description)
		md.WriteString("\n\n")
	}

	md.WriteString("| | |\n|---|---|\n")
	md.WriteString(fmt.Sprintf("| Period | %s |\n", formatRange(p.StartDate, p.EndDate)))
	md.WriteString(fmt.Sprintf("| Target | %s |\n", humanize.Commaf(p.Target)))
	md.WriteString(fmt.Sprintf("| Achievement | %s (%d%%) |\n", humanize.Commaf(p.Achievement), mt.AchievementProgress))
	md.WriteString(fmt.Sprintf("| Remaining | %s |\n", humanize.Commaf(mt.RemainingTarget)))
	md.WriteString(fmt.Sprintf("| Time gone | %d%% |\n", mt.TimeGoneProgress))
	md.WriteString(fmt.Sprintf("| Reward | %s%% |\n", formatAmount(p.RewardPercentage)))
	return md.String()
}

func (m Model) renderDetailModal(width int) string {
	p := m.detailTarget
	md := ProgramMarkdown(p, program.ComputeMetrics(p, m.now()))

	rendered := md
	if r := m.glamourRenderer; r != nil {
		if out, err := r.Render(md); err == nil {
			rendered = strings.Trim(out, "\n")
		}
	}

	footer := FooterStyle.Render("Press Esc or Enter to close")
	return ModalStyle.Width(detailWidth(width) + ModalStyle.GetHorizontalPadding()).
		Render(rendered + "\n\n" + footer)
}

func (m Model) renderForm() string {
	f := m.form
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render(f.title()))
	b.WriteString("\n")
	b.WriteString(FooterStyle.Render(f.subtitle()))
	b.WriteString("\n\n")

	for i := range f.fields {
		field := &f.fields[i]
		label := ModalLabelStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = ModalFocusedLabelStyle.Render(fieldLabels[i])
		}

		var value string
		if field.isSelect() {
			value = ModalValueStyle.Render("‹ " + field.value() + " ›")
			if i != f.focus {
				value = CardMutedStyle.Render(field.value())
			}
		} else if field.multiline {
			value = field.area.View()
		} else {
			value = field.input.View()
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, value) + "\n")
	}

	b.WriteString("\n")
	estimate := reward.FormatIDR(f.estimated)
	if f.calculating {
		estimate = "calculating…"
	}
	b.WriteString(ModalLabelStyle.Render("Estimated reward") + InputPromptStyle.Render(estimate))
	b.WriteString("\n")

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(f.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render(m.keys.FormHelp()))

	return ModalStyle.Render(b.String())
}

// Helper functions

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		lineWidth := lipgloss.Width(line)
		if lineWidth < width {
			return line + strings.Repeat(" ", width-lineWidth)
		}
		return line
	}
	return strings.Repeat(" ", width)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
