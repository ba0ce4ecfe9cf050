// Package render is the card composition core shared by the interactive
// preview and the export rasterizer. It is pure: no database, no HTTP, no
// browser. A template layout plus card data goes in, positioned paint
// primitives come out.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Side identifies which face of a card is being composed.
type Side string

const (
	SideFront Side = "front"
	SideBack  Side = "back"
)

// LayoutKind is the structural composition strategy for a layout. It is
// computed once when the layout is parsed and consumed as a plain tag
// everywhere downstream; the legacy detection heuristics live only in
// detectKind.
type LayoutKind int

const (
	// LayoutGeneric renders the authored element list as-is.
	LayoutGeneric LayoutKind = iota
	// LayoutBordered renders the border/photo/banner front composition and
	// injects the dynamic stat table on the back.
	LayoutBordered
)

func (k LayoutKind) String() string {
	if k == LayoutBordered {
		return "bordered"
	}
	return "generic"
}

// ElementType discriminates the TemplateElement union.
type ElementType string

const (
	ElementText      ElementType = "text"
	ElementImage     ElementType = "image"
	ElementStat      ElementType = "stat"
	ElementRectangle ElementType = "rectangle"
)

const (
	FormatLabelValue = "label-value"
	FormatValueOnly  = "value-only"
)

// CSSValue holds a CSS dimension that template authors write either as a
// bare number (pixels) or as a string ("2px", "2px 8px").
type CSSValue string

func (v *CSSValue) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*v = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = CSSValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = CSSValue(n.String() + "px")
	return nil
}

// TextStyle carries the typographic fields shared by text and stat elements.
type TextStyle struct {
	FontSize         float64 `json:"fontSize"`
	FontFamily       string  `json:"fontFamily"`
	FontWeight       string  `json:"fontWeight"`
	Color            string  `json:"color"`
	TextAlign        string  `json:"textAlign"`
	TextShadow       string  `json:"textShadow,omitempty"`
	TextOutline      bool    `json:"textOutline,omitempty"`
	TextOutlineWidth float64 `json:"textOutlineWidth,omitempty"`
	TextOutlineColor string  `json:"textOutlineColor,omitempty"`
	WhiteSpace       string  `json:"whiteSpace,omitempty"`
}

type TextAttrs struct {
	Content string `json:"content"`
	TextStyle
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	Padding         CSSValue `json:"padding,omitempty"`
	BorderRadius    CSSValue `json:"borderRadius,omitempty"`
}

type ImageAttrs struct {
	Src       string `json:"src"`
	ObjectFit string `json:"objectFit,omitempty"`
}

type StatAttrs struct {
	StatKey string `json:"statKey"`
	Label   string `json:"label,omitempty"`
	Format  string `json:"format,omitempty"`
	TextStyle
}

type RectAttrs struct {
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	BorderColor     string   `json:"borderColor,omitempty"`
	BorderWidth     float64  `json:"borderWidth,omitempty"`
	BorderRadius    CSSValue `json:"borderRadius,omitempty"`
}

// Element is the tagged template-element union. Exactly one of Text, Image,
// Stat, Rect is non-nil, matching Type.
type Element struct {
	ID      string
	Type    ElementType
	X, Y    float64
	Width   float64 // 0 means unset
	Height  float64 // 0 means unset
	ZIndex  int
	Visible bool

	Text  *TextAttrs
	Image *ImageAttrs
	Stat  *StatAttrs
	Rect  *RectAttrs
}

// elementJSON is the flat wire form of an element; UnmarshalJSON sorts the
// fields into the union case named by "type".
type elementJSON struct {
	ID      string      `json:"id"`
	Type    ElementType `json:"type"`
	X       float64     `json:"x"`
	Y       float64     `json:"y"`
	Width   float64     `json:"width,omitempty"`
	Height  float64     `json:"height,omitempty"`
	ZIndex  int         `json:"zIndex"`
	Visible bool        `json:"visible"`

	Content string `json:"content,omitempty"`
	TextStyle
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	Padding         CSSValue `json:"padding,omitempty"`

	Src       string `json:"src,omitempty"`
	ObjectFit string `json:"objectFit,omitempty"`

	StatKey string `json:"statKey,omitempty"`
	Label   string `json:"label,omitempty"`
	Format  string `json:"format,omitempty"`

	BorderColor  string   `json:"borderColor,omitempty"`
	BorderWidth  float64  `json:"borderWidth,omitempty"`
	BorderRadius CSSValue `json:"borderRadius,omitempty"`
}

func (e *Element) UnmarshalJSON(b []byte) error {
	var raw elementJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*e = Element{
		ID:      raw.ID,
		Type:    raw.Type,
		X:       raw.X,
		Y:       raw.Y,
		Width:   raw.Width,
		Height:  raw.Height,
		ZIndex:  raw.ZIndex,
		Visible: raw.Visible,
	}

	switch raw.Type {
	case ElementText:
		e.Text = &TextAttrs{
			Content:         raw.Content,
			TextStyle:       raw.TextStyle,
			BackgroundColor: raw.BackgroundColor,
			Padding:         raw.Padding,
			BorderRadius:    raw.BorderRadius,
		}
	case ElementImage:
		e.Image = &ImageAttrs{
			Src:       raw.Src,
			ObjectFit: raw.ObjectFit,
		}
	case ElementStat:
		e.Stat = &StatAttrs{
			StatKey:   raw.StatKey,
			Label:     raw.Label,
			Format:    raw.Format,
			TextStyle: raw.TextStyle,
		}
	case ElementRectangle:
		e.Rect = &RectAttrs{
			BackgroundColor: raw.BackgroundColor,
			BorderColor:     raw.BorderColor,
			BorderWidth:     raw.BorderWidth,
			BorderRadius:    raw.BorderRadius,
		}
	default:
		return fmt.Errorf("unknown element type %q (element %q)", raw.Type, raw.ID)
	}
	return nil
}

func (e Element) MarshalJSON() ([]byte, error) {
	raw := elementJSON{
		ID:      e.ID,
		Type:    e.Type,
		X:       e.X,
		Y:       e.Y,
		Width:   e.Width,
		Height:  e.Height,
		ZIndex:  e.ZIndex,
		Visible: e.Visible,
	}
	switch e.Type {
	case ElementText:
		if e.Text != nil {
			raw.Content = e.Text.Content
			raw.TextStyle = e.Text.TextStyle
			raw.BackgroundColor = e.Text.BackgroundColor
			raw.Padding = e.Text.Padding
			raw.BorderRadius = e.Text.BorderRadius
		}
	case ElementImage:
		if e.Image != nil {
			raw.Src = e.Image.Src
			raw.ObjectFit = e.Image.ObjectFit
		}
	case ElementStat:
		if e.Stat != nil {
			raw.StatKey = e.Stat.StatKey
			raw.Label = e.Stat.Label
			raw.Format = e.Stat.Format
			raw.TextStyle = e.Stat.TextStyle
		}
	case ElementRectangle:
		if e.Rect != nil {
			raw.BackgroundColor = e.Rect.BackgroundColor
			raw.BorderColor = e.Rect.BorderColor
			raw.BorderWidth = e.Rect.BorderWidth
			raw.BorderRadius = e.Rect.BorderRadius
		}
	}
	return json.Marshal(raw)
}

// Layout is one card face: a canvas plus an ordered element list. Kind is
// filled in by ParseLayout and never re-inferred afterwards.
type Layout struct {
	Width                float64    `json:"width"`
	Height               float64    `json:"height"`
	BackgroundColor      string     `json:"backgroundColor,omitempty"`
	BackgroundImage      string     `json:"backgroundImage,omitempty"`
	BorderWidth          *float64   `json:"borderWidth,omitempty"`
	InnerPadding         *float64   `json:"innerPadding,omitempty"`
	InnerBackgroundColor string     `json:"innerBackgroundColor,omitempty"`
	Elements             []Element  `json:"elements"`
	Kind                 LayoutKind `json:"-"`
}

// KindHints carries the template identity signals that feed legacy variant
// detection alongside the layout's own fields.
type KindHints struct {
	TemplateID   string
	TemplateName string
}

// ParseLayout decodes a stored layout. Layouts arrive either as a structured
// JSON object or, from older rows, as that object serialized inside a JSON
// string; both forms are accepted.
func ParseLayout(raw []byte, hints KindHints) (*Layout, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty layout")
	}
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("decode layout string: %w", err)
		}
		data = []byte(inner)
	}

	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("layout has non-positive dimensions %gx%g", l.Width, l.Height)
	}
	l.Kind = detectKind(&l, hints)
	return &l, nil
}

// FindElement returns the first element with the given id, or nil.
func (l *Layout) FindElement(id string) *Element {
	for i := range l.Elements {
		if l.Elements[i].ID == id {
			return &l.Elements[i]
		}
	}
	return nil
}

// FlexString accepts a JSON string or number; jersey numbers and custom
// fields are authored both ways.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// Player is the biographical portion of the card data.
type Player struct {
	Name         string     `json:"name"`
	Team         string     `json:"team,omitempty"`
	Position     string     `json:"position,omitempty"`
	JerseyNumber FlexString `json:"jerseyNumber,omitempty"`
	Year         *int       `json:"year,omitempty"`
	Throws       string     `json:"throws,omitempty"`
}

// CardData is one render invocation's input record.
type CardData struct {
	Player       Player                `json:"player"`
	Stats        Stats                 `json:"stats,omitempty"`
	ImageURL     string                `json:"imageUrl,omitempty"`
	CustomFields map[string]FlexString `json:"customFields,omitempty"`
}

// ParseCardData decodes card data, tolerating the serialized-string form the
// same way ParseLayout does.
func ParseCardData(raw []byte) (*CardData, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty card data")
	}
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("decode card data string: %w", err)
		}
		data = []byte(inner)
	}
	var cd CardData
	if err := json.Unmarshal(data, &cd); err != nil {
		return nil, fmt.Errorf("decode card data: %w", err)
	}
	return &cd, nil
}

// StatEntry is one live statistic in authoring order.
type StatEntry struct {
	Key   string
	Value string
}

// Stats is the card's statistics map. JSON object key order is the order the
// user added the stats in, and it drives stat table column order, so the
// decoder preserves it instead of round-tripping through a Go map.
type Stats struct {
	keys   []string
	values map[string]statValue
}

type statValue struct {
	text    string
	defined bool
}

func (s *Stats) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = Stats{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("stats: expected object, got %v", tok)
	}

	s.keys = nil
	s.values = make(map[string]statValue)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		var v statValue
		switch t := valTok.(type) {
		case json.Number:
			v = statValue{text: t.String(), defined: true}
		case string:
			v = statValue{text: t, defined: true}
		case bool:
			v = statValue{text: strconv.FormatBool(t), defined: true}
		case nil:
			v = statValue{}
		default:
			return fmt.Errorf("stats: unsupported value for %q", key)
		}
		if _, seen := s.values[key]; !seen {
			s.keys = append(s.keys, key)
		}
		s.values[key] = v
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func (s Stats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		v := s.values[key]
		switch {
		case !v.defined:
			buf.WriteString("null")
		case isJSONNumber(v.text):
			buf.WriteString(v.text)
		default:
			q, _ := json.Marshal(v.text)
			buf.Write(q)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func isJSONNumber(s string) bool {
	if s == "" {
		return false
	}
	var n json.Number
	return json.Unmarshal([]byte(s), &n) == nil && !strings.ContainsAny(s, "\"\\ ")
}

// Set appends or replaces a stat, preserving first-insertion order.
func (s *Stats) Set(key, value string) {
	if s.values == nil {
		s.values = make(map[string]statValue)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = statValue{text: value, defined: true}
}

// Get returns the stat's display text. ok is false when the key is absent or
// its value was null.
func (s Stats) Get(key string) (string, bool) {
	v, ok := s.values[key]
	if !ok || !v.defined {
		return "", false
	}
	return v.text, true
}

// Live returns the non-empty, non-null stats in authoring order.
func (s Stats) Live() []StatEntry {
	var live []StatEntry
	for _, key := range s.keys {
		v := s.values[key]
		if v.defined && v.text != "" {
			live = append(live, StatEntry{Key: key, Value: v.text})
		}
	}
	return live
}

func (s Stats) Len() int { return len(s.keys) }
