package render

import (
	"fmt"
	"html"
	"strings"
)

// The HTML painter backend. It turns composed surfaces into a self-contained
// markup document; the rasterizer screenshots it and the preview serves it
// verbatim, which is what keeps the two pixel-identical.

// RenderDocument renders the front and back surfaces side by side in one
// document.
func RenderDocument(sheet *Sheet) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
body { margin: 0; padding: 20px; font-family: Arial, sans-serif; background-color: #f0f0f0; }
.card-container { display: flex; gap: 20px; justify-content: center; flex-wrap: wrap; }
.card { box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); }
</style>
</head>
<body>
<div class="card-container">
`)
	b.WriteString(RenderSurface(sheet.Front))
	b.WriteString("\n")
	b.WriteString(RenderSurface(sheet.Back))
	b.WriteString("\n</div>\n</body>\n</html>\n")
	return b.String()
}

// RenderSurface renders one composed face as a card div with its primitives
// in paint order.
func RenderSurface(s *Surface) string {
	var b strings.Builder

	base := []string{
		cssPx("width", s.Width),
		cssPx("height", s.Height),
		"background-color: " + s.Background,
	}
	if s.BackgroundImage != "" {
		base = append(base,
			fmt.Sprintf("background-image: url('%s')", s.BackgroundImage),
			"background-size: cover",
			"background-position: center",
			"background-repeat: no-repeat",
		)
	}
	base = append(base, "position: relative", "overflow: hidden")

	b.WriteString(`<div class="card" style="` + strings.Join(base, "; ") + `">`)
	for _, p := range s.Primitives {
		b.WriteString("\n")
		b.WriteString(renderPrimitive(p))
	}
	b.WriteString("\n</div>")
	return b.String()
}

func renderPrimitive(p Primitive) string {
	switch p.Kind {
	case PrimText:
		return fmt.Sprintf(`<div class="element text-element" style="%s">%s</div>`,
			primitiveCSS(p), html.EscapeString(p.Content))
	case PrimImage:
		// A broken image suppresses itself instead of showing the glyph.
		return fmt.Sprintf(`<img class="element image-element" src="%s" style="%s" alt="" onerror="this.style.display='none';" />`,
			html.EscapeString(p.Src), primitiveCSS(p))
	case PrimBox:
		return fmt.Sprintf(`<div class="element box-element" style="%s"></div>`, primitiveCSS(p))
	}
	return ""
}

func primitiveCSS(p Primitive) string {
	decl := []string{"position: absolute"}

	g := p.Geom
	if g.Left != nil {
		decl = append(decl, cssPx("left", *g.Left))
	}
	if g.Top != nil {
		decl = append(decl, cssPx("top", *g.Top))
	}
	if g.Right != nil {
		decl = append(decl, cssPx("right", *g.Right))
	}
	if g.Bottom != nil {
		decl = append(decl, cssPx("bottom", *g.Bottom))
	}
	if g.Width > 0 {
		decl = append(decl, cssPx("width", g.Width))
	}
	if g.Height > 0 {
		decl = append(decl, cssPx("height", g.Height))
	}

	st := p.Style
	if p.Kind == PrimText {
		decl = append(decl,
			cssPx("font-size", st.FontSize),
			"font-family: "+defaultString(st.FontFamily, "Arial, sans-serif"),
			"font-weight: "+defaultString(st.FontWeight, "normal"),
			"color: "+defaultString(st.Color, "#000000"),
			"text-align: "+defaultString(st.TextAlign, "left"),
		)
		if st.TextShadow != "" {
			decl = append(decl, "text-shadow: "+st.TextShadow)
		}
		if st.TextStroke != "" {
			decl = append(decl, "-webkit-text-stroke: "+st.TextStroke)
		}
		decl = append(decl, "white-space: "+defaultString(st.WhiteSpace, "nowrap"))
	}
	if st.Background != "" && st.Gradient == "" {
		decl = append(decl, "background-color: "+st.Background)
	}
	if st.Gradient != "" {
		decl = append(decl, "background: "+st.Gradient)
	}
	if st.BackgroundImage != "" {
		decl = append(decl,
			fmt.Sprintf("background-image: url('%s')", st.BackgroundImage),
			"background-size: cover",
			"background-position: center",
		)
	}
	if st.Padding != "" {
		decl = append(decl, "padding: "+st.Padding)
	}
	if st.Border != "" {
		decl = append(decl, "border: "+st.Border)
	}
	if st.BorderRadius != "" {
		decl = append(decl, "border-radius: "+st.BorderRadius)
	}
	if p.Kind == PrimImage {
		decl = append(decl, "object-fit: "+defaultString(st.ObjectFit, "cover"))
	}
	if st.SkewYDeg != 0 {
		decl = append(decl,
			fmt.Sprintf("transform: skewY(%sdeg)", trimFloat(st.SkewYDeg)),
			"transform-origin: bottom left",
		)
	}
	decl = append(decl, fmt.Sprintf("z-index: %d", p.Z))

	return strings.Join(decl, "; ")
}

func cssPx(prop string, v float64) string {
	return fmt.Sprintf("%s: %spx", prop, trimFloat(v))
}
