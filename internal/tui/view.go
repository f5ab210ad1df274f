package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avocadotools/avx/internal/registry"
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	title := "avx · avocado volume explorer"
	summary := summaryStyle.Render(m.store.Summary(folderPaths(m.projects)))
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(summary) - 4
	if gap < 1 {
		gap = 1
	}
	header := headerStyle.Width(m.width).Render(title + strings.Repeat(" ", gap) + summary)

	if len(m.projects) == 0 {
		return m.renderEmptyState(header)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	for i, proj := range m.projects {
		b.WriteString(m.renderProject(i, proj))
		b.WriteString("\n")
	}

	b.WriteString(dividerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	treeHeight, previewHeight := m.paneHeights()
	b.WriteString(m.renderTree(treeHeight))
	b.WriteString(dividerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")
	b.WriteString(m.renderPreview(previewHeight))

	b.WriteString(dividerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")
	if m.focus == focusTree {
		b.WriteString(hotkeysStyle.Render("[↑↓] move  [enter] open  [h] collapse  [esc] projects  [t]arget  [x] remove container  [q] quit"))
	} else {
		b.WriteString(hotkeysStyle.Render("[↑↓] select  [enter/tab] browse volume  [t]arget  [r]escan  [x] remove container  [q] quit"))
	}
	b.WriteString("\n")
	m.renderStatus(&b)

	if m.picking {
		return m.renderPickerOverlay(b.String())
	}
	return b.String()
}

func folderPaths(projects []registry.Project) []string {
	folders := make([]string, len(projects))
	for i, p := range projects {
		folders[i] = p.Folder
	}
	return folders
}

func (m model) paneHeights() (tree, preview int) {
	// header + projects + three dividers + hotkeys + status line
	used := 1 + len(m.projects) + 3 + 1 + 1
	free := m.height - used
	if free < 6 {
		free = 6
	}
	tree = free * 2 / 3
	preview = free - tree
	return tree, preview
}

func (m model) renderEmptyState(header string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(emptyStyle.Render("No avocado projects found. Point --root at a folder containing avocado.yaml."))
	b.WriteString("\n\n")
	b.WriteString(hotkeysStyle.Render("[r]escan  [q] quit"))
	b.WriteString("\n")
	m.renderStatus(&b)
	return b.String()
}

func (m model) renderProject(index int, proj registry.Project) string {
	cursor := "  "
	nStyle := nameStyle
	if index == m.cursor {
		cursor = "▸ "
		nStyle = selectedNameStyle
	}

	icon := statusStopped.Render("○")
	if m.running[proj.Folder] {
		icon = statusRunning.Render("●")
	}

	line := fmt.Sprintf("  %s%s %s", cursor, icon, nStyle.Render(proj.Name))
	if t, ok := m.store.Get(proj.Folder); ok {
		line += "  " + targetStyle.Render(t)
	} else {
		line += "  " + placeholderStyle.Render("no target")
	}
	return line
}

func (m model) renderTree(height int) string {
	var b strings.Builder

	proj, ok := m.selectedProject()
	if !ok {
		b.WriteString(previewEmptyStyle.Render("No project selected"))
		b.WriteString("\n")
		padLines(&b, 1, height)
		return b.String()
	}

	t := m.tree(proj.Folder)
	rows := t.visible()
	if len(rows) == 0 {
		b.WriteString(previewEmptyStyle.Render("Press enter to browse the build volume"))
		b.WriteString("\n")
		padLines(&b, 1, height)
		return b.String()
	}

	// Scroll window around the cursor.
	start := 0
	if t.cursor >= height {
		start = t.cursor - height + 1
	}
	end := start + height
	if end > len(rows) {
		end = len(rows)
	}

	for i := start; i < end; i++ {
		b.WriteString(m.renderTreeRow(rows[i], i == t.cursor))
		b.WriteString("\n")
	}
	padLines(&b, end-start, height)
	return b.String()
}

func (m model) renderTreeRow(row treeRow, selected bool) string {
	cursor := "  "
	if selected && m.focus == focusTree {
		cursor = "▸ "
	}
	indent := strings.Repeat("  ", row.depth)

	if row.placeholder != "" {
		return "  " + cursor + indent + placeholderStyle.Render(row.placeholder)
	}

	if row.info.IsDir {
		return "  " + cursor + indent + dirStyle.Render(row.info.Name+"/")
	}
	label := fileStyle.Render(row.info.Name)
	meta := placeholderStyle.Render(fmt.Sprintf(" %d B  %s", row.info.SizeBytes, row.info.Permissions))
	return "  " + cursor + indent + label + meta
}

func (m model) renderPreview(height int) string {
	var b strings.Builder

	if m.previewPath == "" {
		b.WriteString(previewEmptyStyle.Render("Select a file to preview it"))
		b.WriteString("\n")
		padLines(&b, 1, height)
		return b.String()
	}

	b.WriteString(previewEmptyStyle.Render(m.previewPath))
	b.WriteString("\n")

	lines := strings.Split(strings.TrimRight(m.previewContent, "\n"), "\n")
	if len(lines) > height-1 {
		lines = lines[:height-1]
	}
	for _, line := range lines {
		if lipgloss.Width(line) > m.width-4 {
			line = line[:m.width-4]
		}
		b.WriteString(previewStyle.Render(line))
		b.WriteString("\n")
	}
	padLines(&b, len(lines)+1, height)
	return b.String()
}

func (m model) renderStatus(b *strings.Builder) {
	if m.message == "" {
		b.WriteString("\n")
		return
	}
	if m.isError {
		b.WriteString(errorStyle.Render(m.message))
	} else {
		b.WriteString(messageStyle.Render(m.message))
	}
	b.WriteString("\n")
}

func (m model) renderPickerOverlay(base string) string {
	current, _ := m.store.Get(m.pickerFolder)

	var lines []string
	lines = append(lines, selectedNameStyle.Render("Select target"))
	lines = append(lines, "  "+m.filter.View())
	lines = append(lines, "")

	items := m.filteredPickerItems()
	if len(items) == 0 {
		lines = append(lines, placeholderStyle.Render("  no matches"))
	}
	for i, item := range items {
		cursor := "  "
		style := nameStyle
		if i == m.pickerCursor {
			cursor = "▸ "
			style = selectedNameStyle
		}
		label := style.Render(item)
		if item == current {
			label += pickerCurrentStyle.Render("  (current)")
		}
		lines = append(lines, "  "+cursor+label)
	}
	lines = append(lines, "")
	lines = append(lines, hotkeysStyle.Render("[enter] select  [esc] cancel"))

	modal := pickerStyle.Render(strings.Join(lines, "\n"))

	// Center the modal over the base view.
	modalWidth := lipgloss.Width(modal)
	modalHeight := lipgloss.Height(modal)
	baseLines := strings.Split(base, "\n")
	xOffset := max(0, (m.width-modalWidth)/2)
	yOffset := max(0, (m.height-modalHeight)/2)

	modalLines := strings.Split(modal, "\n")
	padding := strings.Repeat(" ", xOffset)
	for i, mLine := range modalLines {
		row := yOffset + i
		if row < len(baseLines) {
			baseLines[row] = padding + mLine + strings.Repeat(" ", max(0, m.width-xOffset-lipgloss.Width(mLine)))
		}
	}
	return strings.Join(baseLines, "\n")
}

func padLines(b *strings.Builder, have, want int) {
	for i := have; i < want; i++ {
		b.WriteString("\n")
	}
}
