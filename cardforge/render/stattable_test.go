package render

import (
	"fmt"
	"testing"
)

func borderedBackLayout() *Layout {
	return &Layout{
		Width:           880,
		Height:          630,
		BackgroundColor: "#3f7f4f",
		Kind:            LayoutBordered,
		Elements: []Element{
			{
				ID: "stats-rectangle", Type: ElementRectangle,
				X: 140, Y: 180, Width: 600, Height: 280,
				ZIndex: 1, Visible: true,
				Rect: &RectAttrs{BackgroundColor: "#FFFFFF", BorderColor: "#3f7f4f", BorderWidth: 3},
			},
			{
				ID: "stats-title", Type: ElementText,
				X: 140, Y: 195, Width: 600,
				ZIndex: 10, Visible: true,
				Text: &TextAttrs{Content: "SEASON STATISTICS", TextStyle: TextStyle{FontSize: 22}},
			},
			{
				ID: "highlights-title", Type: ElementText,
				X: 50, Y: 490, Width: 780,
				ZIndex: 10, Visible: true,
				Text: &TextAttrs{Content: "CAREER HIGHLIGHTS", TextStyle: TextStyle{FontSize: 22}},
			},
		},
	}
}

func statsOf(pairs ...string) Stats {
	var s Stats
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Set(pairs[i], pairs[i+1])
	}
	return s
}

func TestSynthesizeStatTable(t *testing.T) {
	layout := borderedBackLayout()
	data := &CardData{
		Player: Player{Name: "Babe Ruth", Year: intp(1990)},
		Stats:  statsOf("atBats", "500", "hits", "200"),
	}

	table := SynthesizeStatTable(layout, data)

	// 2 headers + 2 values + year label
	if len(table) != 5 {
		t.Fatalf("got %d elements, want 5", len(table))
	}

	byID := make(map[string]Element)
	for _, el := range table {
		byID[el.ID] = el
	}

	header := byID["dynamic-stat-header-atBats"]
	if header.Text == nil || header.Text.Content != "AB" {
		t.Errorf("atBats header content = %+v, want AB", header.Text)
	}
	if h2 := byID["dynamic-stat-header-hits"]; h2.Text == nil || h2.Text.Content != "H" {
		t.Errorf("hits header content = %+v, want H", h2.Text)
	}

	value := byID["dynamic-stat-value-atBats"]
	if value.Stat == nil || value.Stat.StatKey != "atBats" || value.Stat.Format != FormatValueOnly {
		t.Errorf("atBats value element = %+v, want value-only stat", value.Stat)
	}

	year := byID["dynamic-stat-year-label"]
	if year.Text == nil || year.Text.Content != "1990" {
		t.Errorf("year label = %+v, want 1990", year.Text)
	}
	if year.X != 140+panelPadding {
		t.Errorf("year label X = %g, want %g", year.X, float64(140+panelPadding))
	}

	// Headers sit one row above values.
	if header.Y != 180+headerRowOffset {
		t.Errorf("header Y = %g, want %g", header.Y, float64(180+headerRowOffset))
	}
	if value.Y != header.Y+rowSpacing {
		t.Errorf("value Y = %g, want header Y + %d", value.Y, rowSpacing)
	}
}

func TestSynthesizeStatTableNoStats(t *testing.T) {
	layout := borderedBackLayout()
	data := &CardData{Player: Player{Year: intp(1990)}}

	if table := SynthesizeStatTable(layout, data); table != nil {
		t.Errorf("got %d elements for empty stats, want none", len(table))
	}
}

func TestSynthesizeStatTableNoYear(t *testing.T) {
	layout := borderedBackLayout()
	data := &CardData{Stats: statsOf("hits", "200")}

	table := SynthesizeStatTable(layout, data)
	for _, el := range table {
		if el.ID == "dynamic-stat-year-label" {
			t.Error("year label synthesized without a player year")
		}
	}
}

func TestSynthesizeStatTableClampsToTen(t *testing.T) {
	layout := borderedBackLayout()
	data := &CardData{}
	for i := 0; i < 11; i++ {
		data.Stats.Set(fmt.Sprintf("stat%02d", i), fmt.Sprintf("%d", i))
	}

	table := SynthesizeStatTable(layout, data)

	headers := 0
	for _, el := range table {
		if el.Type == ElementText && el.Text != nil && el.Text.Content == "stat10" {
			t.Error("eleventh stat was not dropped")
		}
		if el.Stat != nil {
			headers++
		}
	}
	if headers != 10 {
		t.Errorf("got %d value cells, want 10", headers)
	}
}

func TestSynthesizeStatTableColumnsFitPanel(t *testing.T) {
	layout := borderedBackLayout()
	data := &CardData{}
	for i := 0; i < 10; i++ {
		data.Stats.Set(fmt.Sprintf("stat%02d", i), "1")
	}

	table := SynthesizeStatTable(layout, data)

	panelRight := 140.0 + 600 - panelPadding
	var prev *Element
	for i := range table {
		el := &table[i]
		if el.Stat == nil {
			continue
		}
		if el.X+el.Width > panelRight+0.001 {
			t.Errorf("column %s overflows panel: right edge %g > %g", el.ID, el.X+el.Width, panelRight)
		}
		if prev != nil && prev.X+prev.Width > el.X {
			t.Errorf("columns %s and %s overlap", prev.ID, el.ID)
		}
		prev = el
	}
}

func TestStatTableFontSizes(t *testing.T) {
	tests := []struct {
		name string
		live []StatEntry
	}{
		{"short keys", []StatEntry{{Key: "hits"}, {Key: "runs"}}},
		{"long abbreviations", []StatEntry{{Key: "whip"}, {Key: "strikeoutsPer9"}}},
		{"custom long key", []StatEntry{{Key: "averageExitVelocity"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, value := statTableFontSizes(tt.live, 510)
			if header < 12 {
				t.Errorf("header font %g below floor 12", header)
			}
			if value < 14 {
				t.Errorf("value font %g below floor 14", value)
			}
			if header > 18 || value > 18 {
				t.Errorf("font sizes %g/%g above ceiling 18", header, value)
			}
		})
	}
}

func TestSpliceStatTable(t *testing.T) {
	elements := borderedBackLayout().Elements
	table := []Element{
		{ID: "dynamic-stat-header-hits", Type: ElementText, Visible: true},
		{ID: "dynamic-stat-value-hits", Type: ElementStat, Visible: true},
	}

	out := spliceStatTable(elements, table)

	if len(out) != len(elements)+len(table) {
		t.Fatalf("got %d elements, want %d", len(out), len(elements)+len(table))
	}
	// Table goes directly after the anchor.
	if out[1].ID != "stats-title" {
		t.Fatalf("anchor moved: out[1] = %s", out[1].ID)
	}
	if out[2].ID != "dynamic-stat-header-hits" || out[3].ID != "dynamic-stat-value-hits" {
		t.Errorf("table not spliced after anchor: got %s, %s", out[2].ID, out[3].ID)
	}
	if out[4].ID != "highlights-title" {
		t.Errorf("trailing element lost: out[4] = %s", out[4].ID)
	}

	// Input slice untouched.
	if elements[2].ID != "highlights-title" {
		t.Error("input element slice was mutated")
	}
}

func TestSpliceStatTableNoAnchor(t *testing.T) {
	elements := []Element{
		{ID: "back-title", Type: ElementText, Visible: true},
	}
	table := []Element{
		{ID: "dynamic-stat-header-hits", Type: ElementText, Visible: true},
	}

	out := spliceStatTable(elements, table)
	if len(out) != 2 || out[1].ID != "dynamic-stat-header-hits" {
		t.Errorf("table not appended without anchor: %+v", out)
	}

	if got := spliceStatTable(elements, nil); len(got) != 1 {
		t.Errorf("empty table changed element list: %+v", got)
	}
}
