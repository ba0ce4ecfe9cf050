package render

import (
	"strings"
	"testing"
)

const genericFrontJSON = `{
  "width": 630,
  "height": 880,
  "backgroundColor": "#FFFFFF",
  "elements": [
    {"id": "a", "type": "text", "x": 0, "y": 0, "zIndex": 5, "visible": true, "content": "A", "fontSize": 10},
    {"id": "b", "type": "text", "x": 0, "y": 20, "zIndex": 1, "visible": true, "content": "B", "fontSize": 10},
    {"id": "c", "type": "text", "x": 0, "y": 40, "zIndex": 5, "visible": true, "content": "C", "fontSize": 10}
  ]
}`

func TestParseLayout(t *testing.T) {
	t.Run("object form", func(t *testing.T) {
		l, err := ParseLayout([]byte(genericFrontJSON), KindHints{})
		if err != nil {
			t.Fatalf("ParseLayout: %v", err)
		}
		if l.Width != 630 || l.Height != 880 || len(l.Elements) != 3 {
			t.Errorf("layout = %gx%g with %d elements", l.Width, l.Height, len(l.Elements))
		}
		if l.Kind != LayoutGeneric {
			t.Errorf("kind = %v, want generic", l.Kind)
		}
	})

	t.Run("string form", func(t *testing.T) {
		// Older rows store the layout serialized inside a JSON string.
		quoted := `"{\"width\": 100, \"height\": 200, \"elements\": []}"`
		l, err := ParseLayout([]byte(quoted), KindHints{})
		if err != nil {
			t.Fatalf("ParseLayout: %v", err)
		}
		if l.Width != 100 || l.Height != 200 {
			t.Errorf("layout = %gx%g, want 100x200", l.Width, l.Height)
		}
	})

	t.Run("rejects invalid", func(t *testing.T) {
		cases := map[string]string{
			"empty":         "",
			"not json":      "{nope",
			"zero width":    `{"width": 0, "height": 10, "elements": []}`,
			"unknown type":  `{"width": 10, "height": 10, "elements": [{"id": "x", "type": "blob"}]}`,
			"bad inner":     `"{not json}"`,
			"negative dims": `{"width": -5, "height": 10, "elements": []}`,
		}
		for name, raw := range cases {
			if _, err := ParseLayout([]byte(raw), KindHints{}); err == nil {
				t.Errorf("%s: parse succeeded, want error", name)
			}
		}
	})
}

func TestDetectKind(t *testing.T) {
	bw := 12.0
	tests := []struct {
		name   string
		layout Layout
		hints  KindHints
		want   LayoutKind
	}{
		{
			name:   "border width alone",
			layout: Layout{BorderWidth: &bw},
			want:   LayoutBordered,
		},
		{
			name:   "inner padding alone",
			layout: Layout{InnerPadding: &bw},
			want:   LayoutBordered,
		},
		{
			name:   "green background alone",
			layout: Layout{BackgroundColor: "#3f7f4f"},
			want:   LayoutBordered,
		},
		{
			name:  "template name hint",
			hints: KindHints{TemplateName: "Donruss 1991 Style"},
			want:  LayoutBordered,
		},
		{
			name:  "template id hint",
			hints: KindHints{TemplateID: "donruss-1991-style"},
			want:  LayoutBordered,
		},
		{
			name:   "plain layout",
			layout: Layout{BackgroundColor: "#FFFFFF"},
			hints:  KindHints{TemplateName: "Topps 1990 Style"},
			want:   LayoutGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectKind(&tt.layout, tt.hints); got != tt.want {
				t.Errorf("detectKind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposeSidePaintOrder(t *testing.T) {
	l, err := ParseLayout([]byte(genericFrontJSON), KindHints{})
	if err != nil {
		t.Fatal(err)
	}

	surface := ComposeSide(l, &CardData{}, SideFront)
	if len(surface.Primitives) != 3 {
		t.Fatalf("got %d primitives, want 3", len(surface.Primitives))
	}

	// Ascending z, stable between equals: b (z1), then a and c (z5) in
	// authored order.
	wantOrder := []string{"b", "a", "c"}
	for i, want := range wantOrder {
		if surface.Primitives[i].ID != want {
			t.Errorf("primitive[%d] = %s, want %s", i, surface.Primitives[i].ID, want)
		}
	}
}

func TestComposeBorderedFront(t *testing.T) {
	bw, ip := 12.0, 6.0
	l := &Layout{
		Width: 350, Height: 490,
		BackgroundColor:      "#3f7f4f",
		BorderWidth:          &bw,
		InnerPadding:         &ip,
		InnerBackgroundColor: "#FFFFFF",
		Kind:                 LayoutBordered,
		Elements: []Element{
			{
				ID: "player-photo", Type: ElementImage,
				X: 18, Y: 18, Width: 314, Height: 382, Visible: true,
				Image: &ImageAttrs{Src: ""},
			},
			{
				ID: "player-name", Type: ElementText,
				X: 38, Y: 420, Visible: true,
				Text: &TextAttrs{Content: "{{player.name}}", TextStyle: TextStyle{FontSize: 20, FontWeight: "bold", Color: "#FFFFFF"}},
			},
			{
				ID: "player-position", Type: ElementText,
				X: 250, Y: 440, Visible: true,
				Text: &TextAttrs{Content: "{{player.position}}", TextStyle: TextStyle{FontSize: 14}, BackgroundColor: "#86a8b8"},
			},
		},
	}
	data := &CardData{
		Player:   Player{Name: "Babe Ruth", Position: "RF"},
		ImageURL: "https://cdn.example.com/ruth.jpg",
	}

	surface := ComposeSide(l, data, SideFront)

	wantIDs := []string{"card-border", "card-inner", "card-photo", "card-banner", "card-player-name", "card-player-position"}
	if len(surface.Primitives) != len(wantIDs) {
		t.Fatalf("got %d primitives, want %d", len(surface.Primitives), len(wantIDs))
	}
	byID := make(map[string]Primitive)
	for i, p := range surface.Primitives {
		if p.ID != wantIDs[i] {
			t.Errorf("primitive[%d] = %s, want %s", i, p.ID, wantIDs[i])
		}
		byID[p.ID] = p
	}

	photo := byID["card-photo"]
	if photo.Style.BackgroundImage != data.ImageURL {
		t.Errorf("photo background = %q, want card image", photo.Style.BackgroundImage)
	}
	// 78% of the content height.
	contentH := 490.0 - 2*12 - 2*6
	if photo.Geom.Height != contentH*0.78 {
		t.Errorf("photo height = %g, want %g", photo.Geom.Height, contentH*0.78)
	}

	banner := byID["card-banner"]
	if banner.Style.Gradient == "" || banner.Style.SkewYDeg != -10 {
		t.Errorf("banner style = %+v", banner.Style)
	}
	if banner.Geom.Bottom == nil || *banner.Geom.Bottom != 18 {
		t.Errorf("banner bottom = %v, want 18", banner.Geom.Bottom)
	}
	// Banner and photo share the content box as their sizing basis.
	if banner.Geom.Height != contentH*0.22 {
		t.Errorf("banner height = %g, want %g", banner.Geom.Height, contentH*0.22)
	}

	name := byID["card-player-name"]
	if name.Content != "Babe Ruth" {
		t.Errorf("name content = %q", name.Content)
	}
	badge := byID["card-player-position"]
	if badge.Content != "RF" || badge.Style.Background != "#86a8b8" {
		t.Errorf("badge = %q / %+v", badge.Content, badge.Style)
	}
}

func TestComposeBorderedFrontFallbacks(t *testing.T) {
	l := &Layout{
		Width: 350, Height: 490,
		BackgroundColor: "#3f7f4f",
		Kind:            LayoutBordered,
	}

	surface := ComposeSide(l, &CardData{}, SideFront)

	var name, badge *Primitive
	for i := range surface.Primitives {
		switch surface.Primitives[i].ID {
		case "card-player-name":
			name = &surface.Primitives[i]
		case "card-player-position":
			badge = &surface.Primitives[i]
		}
	}
	if name == nil || name.Content != "Player Name" {
		t.Errorf("name fallback = %+v", name)
	}
	if badge == nil || badge.Content != "POSITION" {
		t.Errorf("position fallback = %+v", badge)
	}
}

func TestComposeBorderedBackInjectsStatTable(t *testing.T) {
	l := borderedBackLayout()
	data := &CardData{
		Player: Player{Year: intp(1927)},
		Stats:  statsOf("atBats", "540", "homeRuns", "60"),
	}

	surface := ComposeSide(l, data, SideBack)

	var sawHeader, sawValue, sawYear bool
	for _, p := range surface.Primitives {
		switch p.ID {
		case "dynamic-stat-header-homeRuns":
			sawHeader = p.Content == "HR"
		case "dynamic-stat-value-homeRuns":
			sawValue = p.Content == "60"
		case "dynamic-stat-year-label":
			sawYear = p.Content == "1927"
		}
	}
	if !sawHeader || !sawValue || !sawYear {
		t.Errorf("stat table incomplete: header=%v value=%v year=%v", sawHeader, sawValue, sawYear)
	}
}

func TestComposeDocumentDeterministic(t *testing.T) {
	front := []byte(genericFrontJSON)
	back := []byte(`{"width": 630, "height": 880, "backgroundColor": "#F5F5F5", "elements": []}`)
	cardData := []byte(`{"player": {"name": "Babe Ruth", "team": "Yankees"}, "stats": {"homeRuns": 60}}`)

	first, err := ComposeDocument("t1", "Test", front, back, cardData)
	if err != nil {
		t.Fatalf("ComposeDocument: %v", err)
	}
	second, err := ComposeDocument("t1", "Test", front, back, cardData)
	if err != nil {
		t.Fatalf("ComposeDocument: %v", err)
	}
	if first != second {
		t.Error("two compositions of the same input differ")
	}
	if !strings.Contains(first, "card-container") {
		t.Error("document missing card container")
	}
}

func TestComposeDocumentMalformed(t *testing.T) {
	good := []byte(`{"width": 10, "height": 10, "elements": []}`)

	if _, err := ComposeDocument("t", "T", []byte("{bad"), good, []byte("{}")); err == nil {
		t.Error("malformed front accepted")
	}
	if _, err := ComposeDocument("t", "T", good, good, []byte("{bad")); err == nil {
		t.Error("malformed card data accepted")
	}
}

func TestRenderSurfaceEscapesContent(t *testing.T) {
	surface := &Surface{
		Width: 100, Height: 100, Background: "#FFFFFF",
		Primitives: []Primitive{
			{ID: "t", Kind: PrimText, Geom: at(0, 0), Content: `<script>alert("x")</script>`},
		},
	}
	html := RenderSurface(surface)
	if strings.Contains(html, "<script>") {
		t.Error("text content not escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("escaped content missing")
	}
}
