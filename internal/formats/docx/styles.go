package docx

import (
	"encoding/xml"
	"strings"
)

type xmlStyles struct {
	Styles []struct {
		Type    string `xml:"type,attr"`
		StyleID string `xml:"styleId,attr"`
		Default string `xml:"default,attr"`
		Name    struct {
			Val string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

// styleSheet maps paragraph style IDs to display names.
type styleSheet struct {
	names        map[string]string
	defaultStyle string
}

// Word stores a few built-in style names in lowercase; report them the way
// the Word UI shows them.
var builtinStyleNames = map[string]string{
	"caption": "Caption",
	"footer":  "Footer",
	"header":  "Header",
	"title":   "Title",
}

func init() {
	for i := '1'; i <= '9'; i++ {
		builtinStyleNames["heading "+string(i)] = "Heading " + string(i)
	}
}

func uiStyleName(name string) string {
	if ui, ok := builtinStyleNames[strings.ToLower(name)]; ok && name == strings.ToLower(name) {
		return ui
	}
	return name
}

func parseStyles(data []byte) *styleSheet {
	ss := &styleSheet{names: make(map[string]string)}
	if len(data) == 0 {
		return ss
	}

	var parsed xmlStyles
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return ss
	}
	for _, s := range parsed.Styles {
		if s.Type != "" && s.Type != "paragraph" {
			continue
		}
		name := uiStyleName(s.Name.Val)
		if name == "" {
			name = s.StyleID
		}
		ss.names[s.StyleID] = name
		if s.Default == "1" || s.Default == "true" {
			ss.defaultStyle = name
		}
	}
	return ss
}

// paragraphStyleName resolves a style ID. Unknown or empty IDs resolve to
// the default paragraph style, and to "Normal" when none is declared.
func (ss *styleSheet) paragraphStyleName(id string) string {
	if ss != nil {
		if name, ok := ss.names[id]; ok && id != "" {
			return name
		}
		if ss.defaultStyle != "" {
			return ss.defaultStyle
		}
	}
	return "Normal"
}
