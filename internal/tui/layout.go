package tui

// Layout computes the dimensions for each panel.
type Layout struct {
	ListWidth    int
	DocWidth     int
	TOCWidth     int
	Height       int
	StatusHeight int
}

// ComputeLayout calculates panel dimensions based on total width/height
// and whether each side panel is visible.
func ComputeLayout(totalWidth, totalHeight int, showList, showTOC bool, listWidth, tocWidth int) Layout {
	// During live resizes some terminals momentarily report 0 (or even
	// negative) dimensions; clamp to avoid propagating invalid sizes.
	if totalWidth < 1 {
		totalWidth = 1
	}
	if totalHeight < 2 { // need at least 1 row for content + 1 for status
		totalHeight = 2
	}

	l := Layout{
		StatusHeight: 1,
		Height:       totalHeight - 1, // reserve 1 row for the status bar
	}

	remaining := totalWidth

	if showList {
		l.ListWidth = listWidth
		if l.ListWidth > remaining/3 {
			l.ListWidth = remaining / 3
		}
		remaining -= l.ListWidth - 1 // -1 for border overlap
	}

	if showTOC {
		l.TOCWidth = tocWidth
		if l.TOCWidth > remaining/3 {
			l.TOCWidth = remaining / 3
		}
		remaining -= l.TOCWidth - 1 // -1 for border overlap
	}

	l.DocWidth = remaining
	if l.DocWidth < 1 {
		l.DocWidth = 1
	}

	return l
}
