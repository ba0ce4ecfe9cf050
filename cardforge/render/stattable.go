package render

import (
	"math"
	"sort"
	"strconv"
)

// Stat table geometry. The panel box comes from the authored stats-rectangle
// element when present; these are the historical defaults for layouts that
// predate it.
const (
	statPanelElementID = "stats-rectangle"
	statAnchorID       = "stats-title"

	defaultPanelX = 140
	defaultPanelY = 180
	defaultPanelW = 600
	defaultPanelH = 280

	panelPadding    = 20
	yearColumnWidth = 50
	headerRowOffset = 50 // header row sits below the panel's title band
	rowSpacing      = 25

	// maxTableStats caps the spacing math. The font size is always computed
	// for a full table so that adding stats later never re-sizes the ones
	// already placed.
	maxTableStats = 10

	dynamicIDPrefix = "dynamic-stat-"

	tableThemeColor = "#3f7f4f"
	tableFontFamily = "Arial, sans-serif"
)

// SynthesizeStatTable builds the dynamic statistics grid for a bordered-back
// layout: one abbreviation header and one value cell per live stat, plus an
// optional year label in the reserved leading column. The result is empty
// when the card has no live stats.
func SynthesizeStatTable(l *Layout, data *CardData) []Element {
	live := data.Stats.Live()
	if len(live) == 0 {
		return nil
	}
	// More than the table can hold: keep the first ten in authoring order.
	if len(live) > maxTableStats {
		live = live[:maxTableStats]
	}

	panelX, panelY, panelW := defaultPanelX, defaultPanelY, defaultPanelW
	if panel := l.FindElement(statPanelElementID); panel != nil && panel.Type == ElementRectangle && panel.Width > 0 {
		panelX, panelY, panelW = int(panel.X), int(panel.Y), int(panel.Width)
	}

	availableWidth := float64(panelW) - 2*panelPadding - yearColumnWidth
	numCols := len(live)
	colSpacing := availableWidth / float64(numCols)
	colWidth := colSpacing * 0.95

	headerFontSize, valueFontSize := statTableFontSizes(live, availableWidth)

	headerRowY := float64(panelY) + headerRowOffset
	dataRowY := headerRowY + rowSpacing
	tableStartX := float64(panelX) + panelPadding + yearColumnWidth

	elements := make([]Element, 0, 2*numCols+1)
	for i, entry := range live {
		x := tableStartX + float64(i)*colSpacing
		elements = append(elements, Element{
			ID:      dynamicIDPrefix + "header-" + entry.Key,
			Type:    ElementText,
			X:       x,
			Y:       headerRowY,
			Width:   colWidth,
			ZIndex:  10,
			Visible: true,
			Text: &TextAttrs{
				Content: Abbreviate(entry.Key),
				TextStyle: TextStyle{
					FontSize:   headerFontSize,
					FontFamily: tableFontFamily,
					FontWeight: "bold",
					Color:      tableThemeColor,
					TextAlign:  "center",
				},
			},
		})
	}
	for i, entry := range live {
		x := tableStartX + float64(i)*colSpacing
		elements = append(elements, Element{
			ID:      dynamicIDPrefix + "value-" + entry.Key,
			Type:    ElementStat,
			X:       x,
			Y:       dataRowY,
			Width:   colWidth,
			ZIndex:  10,
			Visible: true,
			Stat: &StatAttrs{
				StatKey: entry.Key,
				Format:  FormatValueOnly,
				TextStyle: TextStyle{
					FontSize:   valueFontSize,
					FontFamily: tableFontFamily,
					FontWeight: "normal",
					Color:      "#000000",
					TextAlign:  "center",
				},
			},
		})
	}
	if data.Player.Year != nil {
		elements = append(elements, Element{
			ID:      dynamicIDPrefix + "year-label",
			Type:    ElementText,
			X:       float64(panelX) + panelPadding,
			Y:       dataRowY,
			Width:   yearColumnWidth,
			ZIndex:  10,
			Visible: true,
			Text: &TextAttrs{
				Content: strconv.Itoa(*data.Player.Year),
				TextStyle: TextStyle{
					FontSize:   valueFontSize,
					FontFamily: tableFontFamily,
					FontWeight: "bold",
					Color:      "#000000",
					TextAlign:  "right",
				},
			},
		})
	}
	return elements
}

// statTableFontSizes sizes the grid's type for the worst case of a full
// table, so a card that grows from 2 to 10 stats keeps its existing cells
// unchanged. Character width is estimated from the longest abbreviation
// among the selected stats, never assuming fewer than 4 characters.
func statTableFontSizes(live []StatEntry, availableWidth float64) (header, value float64) {
	maxContentLength := 4
	for _, entry := range live {
		if n := len(Abbreviate(entry.Key)); n > maxContentLength {
			maxContentLength = n
		}
	}
	estimatedCharWidth := float64(maxContentLength) * 0.6
	colWidthForMax := (availableWidth / maxTableStats) * 0.95
	calculated := (colWidthForMax / estimatedCharWidth) * 0.85

	maxFontSize := math.Min(calculated, 18)
	maxFontSize = math.Min(maxFontSize, (availableWidth/maxTableStats)*0.3)

	header = math.Max(12, math.Floor(maxFontSize*0.9))
	value = math.Max(14, math.Floor(maxFontSize))
	return header, value
}

// spliceStatTable inserts the synthesized grid immediately after the stats
// title anchor, or appends it when the layout has no anchor. The authored
// list is not mutated.
func spliceStatTable(elements []Element, table []Element) []Element {
	if len(table) == 0 {
		return elements
	}
	anchor := -1
	for i := range elements {
		if elements[i].ID == statAnchorID {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		out := make([]Element, 0, len(elements)+len(table))
		out = append(out, elements...)
		return append(out, table...)
	}
	out := make([]Element, 0, len(elements)+len(table))
	out = append(out, elements[:anchor+1]...)
	out = append(out, table...)
	return append(out, elements[anchor+1:]...)
}

// sortByPaintOrder orders primitives by ascending z-index, preserving list
// order between equal values.
func sortByPaintOrder(prims []Primitive) {
	sort.SliceStable(prims, func(i, j int) bool {
		return prims[i].Z < prims[j].Z
	})
}
