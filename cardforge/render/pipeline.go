package render

import (
	"fmt"
)

// Template is a parsed front/back layout pair plus the identity hints that
// fed variant detection.
type Template struct {
	ID    string
	Name  string
	Front *Layout
	Back  *Layout
}

// ParseTemplate decodes both faces of a stored template. Layouts may arrive
// structured or as serialized strings; either is accepted.
func ParseTemplate(id, name string, frontRaw, backRaw []byte) (*Template, error) {
	hints := KindHints{TemplateID: id, TemplateName: name}
	front, err := ParseLayout(frontRaw, hints)
	if err != nil {
		return nil, fmt.Errorf("front layout: %w", err)
	}
	back, err := ParseLayout(backRaw, hints)
	if err != nil {
		return nil, fmt.Errorf("back layout: %w", err)
	}
	return &Template{ID: id, Name: name, Front: front, Back: back}, nil
}

// Surface is one composed card face: canvas dimensions, base background and
// the primitives in paint order.
type Surface struct {
	Width           float64
	Height          float64
	Background      string
	BackgroundImage string
	Primitives      []Primitive
}

// Sheet is the composed front and back of one card.
type Sheet struct {
	Front *Surface
	Back  *Surface
}

// ComposeSide runs the full composition for one face: variant selection,
// dynamic stat synthesis for a bordered back, placeholder resolution and
// element rendering, all in z-index paint order. It is deterministic and
// shares no state between calls, so composing for the live preview and for
// export yields identical surfaces.
func ComposeSide(l *Layout, data *CardData, side Side) *Surface {
	surface := &Surface{
		Width:           l.Width,
		Height:          l.Height,
		Background:      defaultString(l.BackgroundColor, "#FFFFFF"),
		BackgroundImage: l.BackgroundImage,
	}

	if l.Kind == LayoutBordered && side == SideFront {
		surface.Primitives = composeBorderedFront(l, data)
		return surface
	}

	elements := l.Elements
	if l.Kind == LayoutBordered && side == SideBack {
		elements = spliceStatTable(elements, SynthesizeStatTable(l, data))
	}

	prims := make([]Primitive, 0, len(elements))
	for _, el := range elements {
		if p := RenderElement(el, data); p != nil {
			prims = append(prims, *p)
		}
	}
	sortByPaintOrder(prims)
	surface.Primitives = prims
	return surface
}

// Compose builds both faces of a card.
func Compose(tpl *Template, data *CardData) *Sheet {
	return &Sheet{
		Front: ComposeSide(tpl.Front, data, SideFront),
		Back:  ComposeSide(tpl.Back, data, SideBack),
	}
}

// ComposeDocument parses raw layouts and card data and renders the
// self-contained markup document handed to the rasterizer and returned as
// the preview. This is the single entry point both paths go through.
func ComposeDocument(id, name string, frontRaw, backRaw, cardDataRaw []byte) (string, error) {
	tpl, err := ParseTemplate(id, name, frontRaw, backRaw)
	if err != nil {
		return "", err
	}
	data, err := ParseCardData(cardDataRaw)
	if err != nil {
		return "", err
	}
	return RenderDocument(Compose(tpl, data)), nil
}
