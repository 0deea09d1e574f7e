package action

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Acknowledgement replaces a reply that was nothing but structured data.
const Acknowledgement = "Got it!"

var (
	// One level deep on purpose: nested JSON is not matched, and the scan never
	// spans from one brace on line 1 to a closing brace paragraphs later.
	fragmentPattern = regexp.MustCompile(`\{[^{}]*\}`)

	emptyFencePattern = regexp.MustCompile("```(?:json|JSON)?\\s*```")
	blankLinesPattern = regexp.MustCompile(`\n\s*\n`)
	spacePattern      = regexp.MustCompile(`\s+`)
)

// fragment is the wire shape of an action object.
type fragment struct {
	Action    string   `json:"action"`
	ItemID    string   `json:"item_id"`
	Name      string   `json:"name"`
	Modifiers []string `json:"modifiers"`
	Price     *float64 `json:"price"`
}

// Extract splits raw agent output into the text to show the customer and the
// actions embedded in it, in the order they appear. It never fails.
//
// Every brace group that decodes as a JSON object is cut from the text, whether
// or not it became an action. Groups that do not decode stay in the text.
func Extract(raw string) (string, []Action) {
	var (
		actions []Action
		b       strings.Builder
		last    int
	)

	for _, loc := range fragmentPattern.FindAllStringIndex(raw, -1) {
		candidate := raw[loc[0]:loc[1]]

		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
			continue
		}

		if a, ok := decode(candidate); ok {
			actions = append(actions, a)
		}

		b.WriteString(raw[last:loc[0]])
		last = loc[1]
	}
	b.WriteString(raw[last:])

	return Clean(b.String()), actions
}

// Clean collapses whitespace the way replies are shown on the display.
func Clean(text string) string {
	text = emptyFencePattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	text = blankLinesPattern.ReplaceAllString(text, "\n")
	text = spacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if text == "" {
		return Acknowledgement
	}
	return text
}

func decode(candidate string) (Action, bool) {
	var f fragment
	if err := json.Unmarshal([]byte(candidate), &f); err != nil {
		return nil, false
	}

	switch Kind(f.Action) {
	case KindAddToCart:
		if f.ItemID == "" {
			return nil, false
		}
		mods := f.Modifiers
		if mods == nil {
			mods = []string{}
		}
		return AddToCart{ItemID: f.ItemID, Name: f.Name, Modifiers: mods, Price: f.Price}, true
	case KindRemoveItem:
		if f.ItemID == "" {
			return nil, false
		}
		return RemoveItem{ItemID: f.ItemID}, true
	case KindClearCart:
		return ClearCart{}, true
	case KindFinalizeOrder:
		return FinalizeOrder{}, true
	default:
		return nil, false
	}
}
