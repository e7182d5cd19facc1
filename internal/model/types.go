package model

import "strings"

// ComparisonEntry is one line of the model-comparison JSONL manifest: one
// benchmark video id and the result video of every model that produced one.
type ComparisonEntry struct {
	SequenceID int               `json:"sequence_id"`
	VideoID    string            `json:"video_id"`
	Prompt     string            `json:"prompt"`
	Videos     map[string]string `json:"videos"`
}

// modelKeys maps raw model labels taken from filenames to the canonical keys
// the frontend expects. The set of known labels is closed; anything else is
// lowercased as-is.
var modelKeys = map[string]string{
	"HIFI-Foley":   "hifi-foley",
	"FoleyCrafter": "foleycrafter",
	"Frieren":      "frieren",
	"MMAudio":      "mmaudio",
	"ThinkSound":   "thinksound",
	"V_AURA":       "v-aura",
}

// CanonicalModelKey returns the manifest key for a raw model label.
func CanonicalModelKey(label string) string {
	if key, ok := modelKeys[label]; ok {
		return key
	}
	return strings.ToLower(label)
}
