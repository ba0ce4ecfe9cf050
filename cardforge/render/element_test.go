package render

import (
	"testing"
)

func TestRenderElementVisibility(t *testing.T) {
	el := Element{
		ID: "player-name", Type: ElementText,
		X: 10, Y: 20, Visible: false,
		Text: &TextAttrs{Content: "hello"},
	}
	if p := RenderElement(el, &CardData{}); p != nil {
		t.Errorf("invisible element rendered: %+v", p)
	}

	el.Visible = true
	if p := RenderElement(el, &CardData{}); p == nil {
		t.Error("visible element did not render")
	}
}

func TestRenderTextElement(t *testing.T) {
	el := Element{
		ID: "player-name", Type: ElementText,
		X: 50, Y: 480, Width: 280, ZIndex: 2, Visible: true,
		Text: &TextAttrs{
			Content:   "{{player.name}}",
			TextStyle: TextStyle{FontSize: 32, FontWeight: "bold"},
		},
	}
	p := RenderElement(el, testCardData())
	if p == nil {
		t.Fatal("text element did not render")
	}
	if p.Content != "Babe Ruth" {
		t.Errorf("content = %q, want Babe Ruth", p.Content)
	}
	if p.Kind != PrimText || p.Z != 2 {
		t.Errorf("kind/z = %v/%d, want text/2", p.Kind, p.Z)
	}
	if *p.Geom.Left != 50 || *p.Geom.Top != 480 || p.Geom.Width != 280 {
		t.Errorf("geometry = %+v", p.Geom)
	}
	// Typography defaults fill in where the author left blanks.
	if p.Style.FontFamily != "Arial, sans-serif" || p.Style.Color != "#000000" || p.Style.WhiteSpace != "nowrap" {
		t.Errorf("style defaults not applied: %+v", p.Style)
	}
}

func TestRenderStatElement(t *testing.T) {
	data := &CardData{
		Player: Player{Year: intp(0)},
		Stats:  statsOf("hits", "200"),
	}

	tests := []struct {
		name        string
		attrs       StatAttrs
		data        *CardData
		wantNil     bool
		wantContent string
	}{
		{
			name:        "label-value default",
			attrs:       StatAttrs{StatKey: "hits", Label: "Hits"},
			data:        data,
			wantContent: "Hits: 200",
		},
		{
			name:        "label defaults to key",
			attrs:       StatAttrs{StatKey: "hits"},
			data:        data,
			wantContent: "hits: 200",
		},
		{
			name:        "value only",
			attrs:       StatAttrs{StatKey: "hits", Format: FormatValueOnly},
			data:        data,
			wantContent: "200",
		},
		{
			name:    "missing stat suppressed",
			attrs:   StatAttrs{StatKey: "homeRuns"},
			data:    data,
			wantNil: true,
		},
		{
			name:        "year zero still renders",
			attrs:       StatAttrs{StatKey: "year", Format: FormatValueOnly},
			data:        data,
			wantContent: "0",
		},
		{
			name:    "year undefined suppressed",
			attrs:   StatAttrs{StatKey: "year"},
			data:    &CardData{Stats: statsOf("hits", "200")},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := Element{ID: "s", Type: ElementStat, Visible: true, Stat: &tt.attrs}
			p := RenderElement(el, tt.data)
			if tt.wantNil {
				if p != nil {
					t.Errorf("got %+v, want nil", p)
				}
				return
			}
			if p == nil {
				t.Fatal("stat element did not render")
			}
			if p.Content != tt.wantContent {
				t.Errorf("content = %q, want %q", p.Content, tt.wantContent)
			}
		})
	}
}

func TestRenderImageElement(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		imageURL string
		wantNil  bool
		wantSrc  string
	}{
		{
			name:    "https src",
			src:     "https://cdn.example.com/ruth.jpg",
			wantSrc: "https://cdn.example.com/ruth.jpg",
		},
		{
			name:    "data url src",
			src:     "data:image/png;base64,iVBOR",
			wantSrc: "data:image/png;base64,iVBOR",
		},
		{
			name:    "root-relative src",
			src:     "/uploads/ruth.jpg",
			wantSrc: "/uploads/ruth.jpg",
		},
		{
			name:     "empty src falls back to card image",
			src:      "",
			imageURL: "https://cdn.example.com/card.jpg",
			wantSrc:  "https://cdn.example.com/card.jpg",
		},
		{
			name:     "bare filename rejected, falls back",
			src:      "ruth.jpg",
			imageURL: "https://cdn.example.com/card.jpg",
			wantSrc:  "https://cdn.example.com/card.jpg",
		},
		{
			name:     "placeholder src falls back",
			src:      "{{player.photo}}",
			imageURL: "https://cdn.example.com/card.jpg",
			wantSrc:  "https://cdn.example.com/card.jpg",
		},
		{
			name:    "no usable source renders nothing",
			src:     "",
			wantNil: true,
		},
		{
			name:     "both invalid renders nothing",
			src:      "ruth.jpg",
			imageURL: "<script>",
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := Element{
				ID: "player-image", Type: ElementImage,
				X: 50, Y: 100, Width: 280, Height: 350, Visible: true,
				Image: &ImageAttrs{Src: tt.src},
			}
			p := RenderElement(el, &CardData{ImageURL: tt.imageURL})
			if tt.wantNil {
				if p != nil {
					t.Errorf("got %+v, want nil", p)
				}
				return
			}
			if p == nil {
				t.Fatal("image element did not render")
			}
			if p.Src != tt.wantSrc {
				t.Errorf("src = %q, want %q", p.Src, tt.wantSrc)
			}
			if p.Style.ObjectFit != "cover" {
				t.Errorf("objectFit = %q, want cover default", p.Style.ObjectFit)
			}
		})
	}
}

func TestRenderRectangleElement(t *testing.T) {
	el := Element{
		ID: "stats-rectangle", Type: ElementRectangle,
		X: 140, Y: 180, Width: 600, Height: 280, ZIndex: 1, Visible: true,
		Rect: &RectAttrs{BorderColor: "#3f7f4f", BorderWidth: 3, BorderRadius: "10px"},
	}
	p := RenderElement(el, &CardData{})
	if p == nil {
		t.Fatal("rectangle did not render")
	}
	if p.Kind != PrimBox {
		t.Errorf("kind = %v, want box", p.Kind)
	}
	if p.Style.Background != "#FFFFFF" {
		t.Errorf("background = %q, want default #FFFFFF", p.Style.Background)
	}
	if p.Style.Border != "3px solid #3f7f4f" {
		t.Errorf("border = %q", p.Style.Border)
	}

	// Border width defaults to 1 when a color is set without one.
	el.Rect = &RectAttrs{BorderColor: "#000000"}
	p = RenderElement(el, &CardData{})
	if p.Style.Border != "1px solid #000000" {
		t.Errorf("border = %q, want 1px default", p.Style.Border)
	}
}

func TestTextOutlineSynthesis(t *testing.T) {
	style := textStyleFor(TextStyle{TextOutline: true, TextOutlineColor: "#112233"})
	want := "0 0 3px #112233, 0 0 3px #112233"
	if style.TextShadow != want {
		t.Errorf("text shadow = %q, want %q", style.TextShadow, want)
	}
	if style.TextStroke != "2px #112233" {
		t.Errorf("text stroke = %q, want 2px #112233", style.TextStroke)
	}

	// An explicit shadow wins over the synthesized glow.
	style = textStyleFor(TextStyle{TextOutline: true, TextShadow: "1px 1px #000"})
	if style.TextShadow != "1px 1px #000" {
		t.Errorf("explicit shadow overridden: %q", style.TextShadow)
	}
}

func TestZIndexDefault(t *testing.T) {
	el := Element{ID: "t", Type: ElementText, Visible: true, Text: &TextAttrs{Content: "x"}}
	p := RenderElement(el, &CardData{})
	if p.Z != 1 {
		t.Errorf("z = %d, want default 1", p.Z)
	}
}
