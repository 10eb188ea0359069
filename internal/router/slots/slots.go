// Package slots performs deterministic slot extraction from a free-text
// utterance. Extraction runs before any model call so the model receives
// strong priors instead of guessing, and every rule is order-stable: the same
// utterance always yields the same slots.
package slots

import (
	"regexp"
	"strings"
)

// SlotMap maps an argument name to the raw string value detected for it.
type SlotMap map[string]string

// PreferredToolKey is the reserved hint key attached when an app-name keyword
// group matches the utterance. The underscore keeps it out of any tool's
// declared parameter namespace.
const PreferredToolKey = "_preferred_tool"

// synonym maps one transport phrase to its canonical one-letter code.
// Table order is the tie-break: the first phrase contained in the utterance
// wins, so broader words (e.g. "car") sit after their longer forms.
type synonym struct {
	Phrase string
	Code   string
}

// TransportSynonyms is the ordered transport vocabulary. Codes follow the
// Apple Maps dirflg convention: d(rive), w(alk), r (transit), c(ycle).
var TransportSynonyms = []synonym{
	{"driving", "d"}, {"drive", "d"}, {"by car", "d"}, {"car", "d"},
	{"walking", "w"}, {"walk", "w"}, {"on foot", "w"},
	{"transit", "r"}, {"public transit", "r"}, {"bus", "r"},
	{"train", "r"}, {"metro", "r"}, {"subway", "r"},
	{"cycling", "c"}, {"bike", "c"}, {"biking", "c"},
}

// appHint associates a tool name with the keyword group that suggests it.
type appHint struct {
	Tool     string
	Keywords []string
}

// appHints is ordered; the first group with a matching keyword wins.
var appHints = []appHint{
	{"google_maps", []string{"google maps", "street view", "streetview"}},
	{"apple_maps", []string{"apple maps", "maps"}},
	{"facetime", []string{"facetime", "video call"}},
	{"mailto", []string{"email", "mailto"}},
	{"settings", []string{"settings", "wifi", "bluetooth", "cellular"}},
	{"calendar", []string{"calendar", "calshow"}},
	{"spotify", []string{"spotify"}},
	{"things", []string{"things 3", "things app", "todo", "to-do", "task"}},
	{"whatsapp", []string{"whatsapp"}},
	{"uber", []string{"uber"}},
}

var (
	reFromTo  = regexp.MustCompile(`(?i)\bfrom\s+(.+?)\s+(?:to|->)\s+(.+)$`)
	reToFrom  = regexp.MustCompile(`(?i)\bto\s+(.+?)\s+(?:from|<-)\s+(.+)$`)
	reBareAtoB = regexp.MustCompile(`(?i)\b([^,]+?)\s+(?:to|->)\s+([^,]+)$`)

	rePhone   = regexp.MustCompile(`(\+?\d[\d\s\-().]{6,}\d)`)
	reEmail   = regexp.MustCompile(`([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`)
	reMailTo  = regexp.MustCompile(`(?:email|mailto)\s+(?:to\s+)?([^\s,;]+)`)
	reSubject = regexp.MustCompile(`(?i)subject\s*[:=]\s*(.+?)(?:\s+body[:=]|$)`)
	reBody    = regexp.MustCompile(`(?i)body\s*[:=]\s*(.+)$`)
	reISODate = regexp.MustCompile(`\b(20\d{2}-\d{2}-\d{2})\b`)
	reLatLng  = regexp.MustCompile(`\b(-?\d{1,3}\.\d+)\s*,\s*(-?\d{1,3}\.\d+)\b`)
	reSpotify = regexp.MustCompile(`(?i)spotify\s+(?:search\s+)?(.+)$`)
	reThings  = regexp.MustCompile(`(?i)(?:things|todo|to-do|task)\s+(?:add\s+)?([^|]+)`)
	reText    = regexp.MustCompile(`(?i)text\s*[:=]\s*(.+)$`)
	rePickup  = regexp.MustCompile(`(?i)pickup\s*[:=]\s*(-?\d{1,3}\.\d+)\s*,\s*(-?\d{1,3}\.\d+)`)
	reDropoff = regexp.MustCompile(`(?i)dropoff\s*[:=]\s*(-?\d{1,3}\.\d+)\s*,\s*(-?\d{1,3}\.\d+)`)
)

// clean trims whitespace, surrounding quote characters and trailing
// punctuation from a captured value.
func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `'"`)
	s = strings.TrimSpace(s)
	return strings.TrimRight(s, " .,!?:;")
}

// findTransport returns the canonical code for the first transport synonym
// contained in text, or "" when none is present.
func findTransport(text string) string {
	low := strings.ToLower(text)
	for _, syn := range TransportSynonyms {
		if strings.Contains(low, syn.Phrase) {
			return syn.Code
		}
	}
	return ""
}

// ResolveTransport maps a whole transport word (e.g. "driving") to its
// canonical code. Unlike findTransport it requires an exact match, so it is
// safe to use on already-isolated values during enum validation.
func ResolveTransport(word string) (string, bool) {
	low := strings.ToLower(strings.TrimSpace(word))
	for _, syn := range TransportSynonyms {
		if syn.Phrase == low {
			return syn.Code, true
		}
	}
	return "", false
}

// Extract returns the base slot layer for an utterance: transport plus
// source/destination when one of the three routing patterns matches, or a
// generic query slot otherwise. The three patterns are mutually exclusive
// and tried in order; the first match returns immediately.
func Extract(utterance string) SlotMap {
	text := strings.TrimSpace(utterance)
	out := SlotMap{}

	if t := findTransport(text); t != "" {
		out["transport"] = t
	}

	// 1) "from X to Y"
	if m := reFromTo.FindStringSubmatch(text); m != nil {
		out["source"] = clean(m[1])
		out["destination"] = clean(m[2])
		return out
	}

	// 2) "to Y from X"
	if m := reToFrom.FindStringSubmatch(text); m != nil {
		out["source"] = clean(m[2])
		out["destination"] = clean(m[1])
		return out
	}

	// 3) "X to Y"
	if m := reBareAtoB.FindStringSubmatch(text); m != nil {
		out["source"] = clean(m[1])
		out["destination"] = clean(m[2])
		return out
	}

	out["query"] = clean(text)
	return out
}

// DetectPreferredTool scans the app-hint table and returns the first tool
// whose keyword group matches the utterance, or "" when none does.
func DetectPreferredTool(utterance string) string {
	low := strings.ToLower(utterance)
	for _, hint := range appHints {
		for _, k := range hint.Keywords {
			if strings.Contains(low, k) {
				return hint.Tool
			}
		}
	}
	return ""
}

// ExtractExtra returns the domain-specific slot layer. Each rule fires
// independently on a keyword trigger, so one utterance can produce slots for
// several apps; the model decides which tool actually wins.
func ExtractExtra(utterance string) SlotMap {
	low := strings.ToLower(strings.TrimSpace(utterance))
	out := SlotMap{}

	// FaceTime: phone number first, Apple ID email as fallback.
	if strings.Contains(low, "facetime") || strings.Contains(low, "video call") {
		if m := rePhone.FindStringSubmatch(utterance); m != nil {
			out["phone_or_email"] = strings.TrimSpace(m[1])
		} else if m := reEmail.FindStringSubmatch(utterance); m != nil {
			out["phone_or_email"] = m[1]
		}
	}

	// Mail compose fields.
	if strings.Contains(low, "mailto") || strings.Contains(low, "email") {
		if m := reMailTo.FindStringSubmatch(low); m != nil {
			out["recipient"] = m[1]
		}
		if m := reSubject.FindStringSubmatch(utterance); m != nil {
			out["subject"] = strings.TrimSpace(m[1])
		}
		if m := reBody.FindStringSubmatch(utterance); m != nil {
			out["body"] = strings.TrimSpace(m[1])
		}
	}

	// Settings pane root.
	if strings.Contains(low, "settings") {
		switch {
		case strings.Contains(low, "wifi"):
			out["root"] = "WIFI"
		case strings.Contains(low, "bluetooth"):
			out["root"] = "Bluetooth"
		case strings.Contains(low, "cellular"):
			out["root"] = "MOBILE_DATA_SETTINGS_ID"
		}
	}

	// Calendar date.
	if m := reISODate.FindStringSubmatch(low); m != nil {
		out["date_yyyy_mm_dd"] = m[1]
	}

	// Google Maps street view center.
	if strings.Contains(low, "street view") || strings.Contains(low, "streetview") || strings.Contains(low, "google maps") {
		if m := reLatLng.FindStringSubmatch(utterance); m != nil {
			out["center_lat"] = m[1]
			out["center_lng"] = m[2]
		}
	}

	// Spotify search query.
	if strings.Contains(low, "spotify") {
		if m := reSpotify.FindStringSubmatch(utterance); m != nil {
			out["query"] = strings.TrimSpace(m[1])
		}
	}

	// Things to-do title, up to a literal | delimiter.
	if strings.Contains(low, "things") || strings.Contains(low, "to-do") || strings.Contains(low, "todo") || strings.Contains(low, "task") {
		if m := reThings.FindStringSubmatch(utterance); m != nil {
			out["title"] = strings.TrimSpace(m[1])
		}
	}

	// WhatsApp phone and prefilled text.
	if strings.Contains(low, "whatsapp") {
		if m := rePhone.FindStringSubmatch(utterance); m != nil {
			out["phone"] = strings.TrimSpace(m[1])
		}
		if m := reText.FindStringSubmatch(utterance); m != nil {
			out["text"] = strings.TrimSpace(m[1])
		}
	}

	// Uber pickup/dropoff coordinates.
	if strings.Contains(low, "uber") {
		if m := rePickup.FindStringSubmatch(utterance); m != nil {
			out["pickup_lat"] = m[1]
			out["pickup_lng"] = m[2]
		}
		if m := reDropoff.FindStringSubmatch(utterance); m != nil {
			out["dropoff_lat"] = m[1]
			out["dropoff_lng"] = m[2]
		}
	}

	if hint := DetectPreferredTool(utterance); hint != "" {
		out[PreferredToolKey] = hint
	}

	return out
}
