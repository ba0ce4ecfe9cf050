package render

import (
	"fmt"
	"strings"
)

// PrimitiveKind discriminates the drawable primitives a painter backend must
// support.
type PrimitiveKind int

const (
	PrimText PrimitiveKind = iota
	PrimImage
	PrimBox
)

// Geometry positions a primitive on the canvas. Offsets are pixels from the
// canvas edges; nil means the edge is unconstrained. Width/Height of 0 mean
// auto.
type Geometry struct {
	Left   *float64
	Top    *float64
	Right  *float64
	Bottom *float64
	Width  float64
	Height float64
}

func at(x, y float64) Geometry {
	return Geometry{Left: ptr(x), Top: ptr(y)}
}

func ptr(v float64) *float64 { return &v }

// Style carries the visual attributes a primitive may use; which fields are
// meaningful depends on the kind.
type Style struct {
	FontSize   float64
	FontFamily string
	FontWeight string
	Color      string
	TextAlign  string
	TextShadow string
	TextStroke string
	WhiteSpace string

	Background      string
	BackgroundImage string // URL painted as a covering background
	Gradient        string // raw CSS background value, wins over Background
	Padding         string
	BorderRadius    string
	Border          string
	ObjectFit       string
	SkewYDeg        float64
}

// Primitive is one positioned visual: text, an image, or a box. The pipeline
// emits primitives in paint order.
type Primitive struct {
	ID      string
	Kind    PrimitiveKind
	Geom    Geometry
	Z       int
	Content string // text primitives
	Src     string // image primitives
	Style   Style
}

// RenderElement resolves one layout element against the card data and turns
// it into a primitive. A nil result renders nothing: the element is
// invisible, a stat with no value, or an image with no usable source.
func RenderElement(el Element, data *CardData) *Primitive {
	if !el.Visible {
		return nil
	}

	switch el.Type {
	case ElementText:
		return renderTextElement(el, data)
	case ElementImage:
		return renderImageElement(el, data)
	case ElementStat:
		return renderStatElement(el, data)
	case ElementRectangle:
		return renderRectangleElement(el)
	}
	return nil
}

func renderTextElement(el Element, data *CardData) *Primitive {
	attrs := el.Text
	if attrs == nil {
		return nil
	}
	style := textStyleFor(attrs.TextStyle)
	style.Background = attrs.BackgroundColor
	style.Padding = string(attrs.Padding)
	style.BorderRadius = string(attrs.BorderRadius)

	return &Primitive{
		ID:      el.ID,
		Kind:    PrimText,
		Geom:    geometryFor(el),
		Z:       zIndexOr(el.ZIndex, 1),
		Content: ResolvePlaceholders(attrs.Content, data),
		Style:   style,
	}
}

func renderImageElement(el Element, data *CardData) *Primitive {
	attrs := el.Image
	if attrs == nil {
		return nil
	}
	src := resolveImageSource(attrs.Src, data.ImageURL)
	if src == "" {
		return nil
	}
	objectFit := attrs.ObjectFit
	if objectFit == "" {
		objectFit = "cover"
	}
	return &Primitive{
		ID:   el.ID,
		Kind: PrimImage,
		Geom: geometryFor(el),
		Z:    zIndexOr(el.ZIndex, 1),
		Src:  src,
		Style: Style{
			ObjectFit: objectFit,
		},
	}
}

func renderStatElement(el Element, data *CardData) *Primitive {
	attrs := el.Stat
	if attrs == nil {
		return nil
	}

	var value string
	if attrs.StatKey == "year" {
		// Year lives in player data, not stats, and renders whenever it is
		// defined, zero included.
		if data.Player.Year == nil {
			return nil
		}
		value = fmt.Sprintf("%d", *data.Player.Year)
	} else {
		v, ok := data.Stats.Get(attrs.StatKey)
		if !ok || v == "" {
			return nil
		}
		value = v
	}

	label := attrs.Label
	if label == "" {
		label = attrs.StatKey
	}
	content := label + ": " + value
	if attrs.Format == FormatValueOnly {
		content = value
	}

	return &Primitive{
		ID:      el.ID,
		Kind:    PrimText,
		Geom:    geometryFor(el),
		Z:       zIndexOr(el.ZIndex, 1),
		Content: content,
		Style:   textStyleFor(attrs.TextStyle),
	}
}

func renderRectangleElement(el Element) *Primitive {
	attrs := el.Rect
	if attrs == nil {
		return nil
	}
	background := attrs.BackgroundColor
	if background == "" {
		background = "#FFFFFF"
	}
	var border string
	if attrs.BorderColor != "" {
		width := attrs.BorderWidth
		if width == 0 {
			width = 1
		}
		border = fmt.Sprintf("%spx solid %s", trimFloat(width), attrs.BorderColor)
	}
	return &Primitive{
		ID:   el.ID,
		Kind: PrimBox,
		Geom: geometryFor(el),
		Z:    zIndexOr(el.ZIndex, 1),
		Style: Style{
			Background:   background,
			Border:       border,
			BorderRadius: string(attrs.BorderRadius),
		},
	}
}

func geometryFor(el Element) Geometry {
	g := at(el.X, el.Y)
	g.Width = el.Width
	g.Height = el.Height
	return g
}

func zIndexOr(z, fallback int) int {
	if z == 0 {
		return fallback
	}
	return z
}

// textStyleFor applies the shared typographic defaults and synthesizes the
// outline approximation: a doubled glow shadow plus a stroke hint for
// painters with real text-stroke support.
func textStyleFor(ts TextStyle) Style {
	style := Style{
		FontSize:   ts.FontSize,
		FontFamily: defaultString(ts.FontFamily, "Arial, sans-serif"),
		FontWeight: defaultString(ts.FontWeight, "normal"),
		Color:      defaultString(ts.Color, "#000000"),
		TextAlign:  defaultString(ts.TextAlign, "left"),
		WhiteSpace: defaultString(ts.WhiteSpace, "nowrap"),
		TextShadow: ts.TextShadow,
	}
	if ts.TextOutline {
		color := defaultString(ts.TextOutlineColor, "#000000")
		if style.TextShadow == "" {
			width := ts.TextOutlineWidth
			if width == 0 {
				width = 3
			}
			glow := fmt.Sprintf("0 0 %spx %s", trimFloat(width), color)
			style.TextShadow = glow + ", " + glow
		}
		strokeWidth := ts.TextOutlineWidth
		if strokeWidth == 0 {
			strokeWidth = 2
		}
		style.TextStroke = fmt.Sprintf("%spx %s", trimFloat(strokeWidth), color)
	}
	return style
}

// resolveImageSource picks the element's own src unless it is empty or an
// unresolved placeholder, falling back to the card's image. Either way the
// value must look like a usable reference; bare filenames or markup are
// rejected.
func resolveImageSource(elementSrc, cardImageURL string) string {
	if elementSrc != "" && !strings.Contains(elementSrc, "{{") {
		if src := validAssetRef(elementSrc); src != "" {
			return src
		}
	}
	return validAssetRef(cardImageURL)
}

func validAssetRef(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") ||
		strings.HasPrefix(url, "https://") ||
		strings.HasPrefix(url, "data:") ||
		strings.HasPrefix(url, "/") {
		return url
	}
	return ""
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}
