package render

import "strings"

// Bordered-variant detection constants. The signals are redundant on
// purpose: depending on the code path that stored a layout, some of them may
// be missing, and any single one is enough.
const (
	borderedBackground = "#3f7f4f"
	borderedNameHint   = "donruss"

	photoElementID    = "player-photo"
	nameElementID     = "player-name"
	positionElementID = "player-position"
)

// Bordered front geometry defaults, used when the layout omits the fields.
const (
	defaultBorderWidth  = 12.0
	defaultInnerPadding = 6.0

	photoHeightRatio  = 0.78
	bannerHeightRatio = 0.22

	bannerGradient = "linear-gradient(10deg, #b4463f 60%, #4a90a6 60%)"
	bannerSkewDeg  = -10.0
)

// detectKind classifies a layout once at load time. Downstream code only
// looks at Layout.Kind.
func detectKind(l *Layout, hints KindHints) LayoutKind {
	if l.BorderWidth != nil || l.InnerPadding != nil {
		return LayoutBordered
	}
	if l.BackgroundColor == borderedBackground {
		return LayoutBordered
	}
	if strings.Contains(strings.ToLower(hints.TemplateName), borderedNameHint) ||
		strings.Contains(strings.ToLower(hints.TemplateID), borderedNameHint) {
		return LayoutBordered
	}
	return LayoutGeneric
}

// composeBorderedFront paints the structural front of a bordered card:
// colored border panel, inner white panel, photo region, and the diagonal
// two-tone banner carrying name and position. The authored element list is
// consulted only for typography and the photo source; its image elements are
// never rendered generically on this face.
func composeBorderedFront(l *Layout, data *CardData) []Primitive {
	borderWidth := defaultBorderWidth
	if l.BorderWidth != nil && *l.BorderWidth != 0 {
		borderWidth = *l.BorderWidth
	}
	innerPadding := defaultInnerPadding
	if l.InnerPadding != nil && *l.InnerPadding != 0 {
		innerPadding = *l.InnerPadding
	}

	photoEl := l.FindElement(photoElementID)
	if photoEl == nil {
		for i := range l.Elements {
			if l.Elements[i].Type == ElementImage {
				photoEl = &l.Elements[i]
				break
			}
		}
	}
	nameEl := l.FindElement(nameElementID)
	positionEl := l.FindElement(positionElementID)

	photoSrc := validAssetRef(data.ImageURL)
	if photoSrc == "" && photoEl != nil && photoEl.Image != nil {
		photoSrc = validAssetRef(photoEl.Image.Src)
	}

	playerName := data.Player.Name
	if playerName == "" {
		playerName = "Player Name"
	}
	playerPosition := data.Player.Position
	if playerPosition == "" {
		playerPosition = "POSITION"
	}

	innerW := l.Width - 2*borderWidth
	innerH := l.Height - 2*borderWidth
	contentW := innerW - 2*innerPadding
	contentH := innerH - 2*innerPadding
	contentX := borderWidth + innerPadding
	contentY := borderWidth + innerPadding

	outerBackground := l.BackgroundColor
	if outerBackground == "" {
		outerBackground = borderedBackground
	}
	innerBackground := l.InnerBackgroundColor
	if innerBackground == "" {
		innerBackground = "#FFFFFF"
	}

	prims := make([]Primitive, 0, 6)

	outer := Primitive{
		ID:   "card-border",
		Kind: PrimBox,
		Geom: Geometry{Left: ptr(0), Top: ptr(0), Width: l.Width, Height: l.Height},
		Style: Style{
			Background:   outerBackground,
			BorderRadius: "4px",
		},
	}
	inner := Primitive{
		ID:   "card-inner",
		Kind: PrimBox,
		Geom: Geometry{Left: ptr(borderWidth), Top: ptr(borderWidth), Width: innerW, Height: innerH},
		Style: Style{
			Background:   innerBackground,
			BorderRadius: "3px",
		},
	}
	photo := Primitive{
		ID:   "card-photo",
		Kind: PrimBox,
		Geom: Geometry{Left: ptr(contentX), Top: ptr(contentY), Width: contentW, Height: contentH * photoHeightRatio},
		Style: Style{
			Background:      "#ccc",
			BorderRadius:    "2px",
			BackgroundImage: photoSrc,
		},
	}
	banner := Primitive{
		ID:   "card-banner",
		Kind: PrimBox,
		Z:    1,
		Geom: Geometry{Left: ptr(contentX), Bottom: ptr(contentY), Width: contentW, Height: contentH * bannerHeightRatio},
		Style: Style{
			Gradient: bannerGradient,
			SkewYDeg: bannerSkewDeg,
		},
	}

	nameStyle := TextStyle{FontSize: 20, FontWeight: "bold", Color: "#FFFFFF"}
	if nameEl != nil && nameEl.Text != nil {
		if nameEl.Text.FontSize != 0 {
			nameStyle.FontSize = nameEl.Text.FontSize
		}
		if nameEl.Text.FontWeight != "" {
			nameStyle.FontWeight = nameEl.Text.FontWeight
		}
		if nameEl.Text.Color != "" {
			nameStyle.Color = nameEl.Text.Color
		}
	}
	name := Primitive{
		ID:      "card-player-name",
		Kind:    PrimText,
		Z:       2,
		Geom:    Geometry{Left: ptr(contentX + 20), Bottom: ptr(contentY + 40)},
		Content: playerName,
		Style: Style{
			FontSize:   nameStyle.FontSize,
			FontWeight: nameStyle.FontWeight,
			Color:      nameStyle.Color,
			WhiteSpace: "nowrap",
		},
	}

	badgeStyle := Style{
		FontSize:     14,
		Color:        "#000000",
		Background:   "#86a8b8",
		Padding:      "2px 8px",
		BorderRadius: "2px",
		WhiteSpace:   "nowrap",
	}
	if positionEl != nil && positionEl.Text != nil {
		if positionEl.Text.FontSize != 0 {
			badgeStyle.FontSize = positionEl.Text.FontSize
		}
		if positionEl.Text.Color != "" {
			badgeStyle.Color = positionEl.Text.Color
		}
		if positionEl.Text.BackgroundColor != "" {
			badgeStyle.Background = positionEl.Text.BackgroundColor
		}
		if positionEl.Text.Padding != "" {
			badgeStyle.Padding = string(positionEl.Text.Padding)
		}
		if positionEl.Text.BorderRadius != "" {
			badgeStyle.BorderRadius = string(positionEl.Text.BorderRadius)
		}
	}
	badge := Primitive{
		ID:      "card-player-position",
		Kind:    PrimText,
		Z:       2,
		Geom:    Geometry{Right: ptr(l.Width - contentX - contentW + 20), Bottom: ptr(contentY + 20)},
		Content: playerPosition,
		Style:   badgeStyle,
	}

	prims = append(prims, outer, inner, photo, banner, name, badge)
	return prims
}
