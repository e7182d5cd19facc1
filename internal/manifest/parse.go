package manifest

import (
	"strings"
	"unicode"
)

const (
	// Result videos of the proposed model carry a checkpoint-style prefix
	// instead of the usual <model>_<id> shape.
	oursPrefix = "Ours__128d_200k__"
	oursLabel  = "HIFI-Foley"

	// V-AURA filenames contain underscores inside the model name itself,
	// so the generic first-token rule would truncate the label.
	vauraPrefix = "V_AURA_"
	vauraLabel  = "V_AURA"

	videoExt = ".mp4"
)

// ParseVideoFilename extracts the raw model label and video id from a result
// video filename. ok is false for filenames that contribute no manifest entry:
// numbered baseline videos (digit prefix plus a hyphen, already listed in the
// hand-maintained manifests) and names without an underscore.
//
// The rules are a point-in-time contract for the demo_show dataset, quirks
// included; do not tidy them without regenerating the dataset.
func ParseVideoFilename(name string) (label, id string, ok bool) {
	if name == "" {
		return "", "", false
	}
	if unicode.IsDigit(rune(name[0])) && strings.Contains(name, "-") {
		return "", "", false
	}
	if !strings.Contains(name, "_") {
		return "", "", false
	}

	base := strings.TrimSuffix(name, videoExt)

	if strings.HasPrefix(name, oursPrefix) {
		return oursLabel, strings.TrimPrefix(base, oursPrefix), true
	}

	parts := strings.Split(base, "_")
	if len(parts) < 2 {
		return "", "", false
	}
	if strings.HasPrefix(name, vauraPrefix) {
		return vauraLabel, parts[len(parts)-1], true
	}
	return parts[0], parts[len(parts)-1], true
}
