package speech

import "strings"

// Persona voice IDs map onto provider speakers here so the rest of the
// system never sees provider-specific names.
var voiceProfiles = map[string]string{
	"lumipet-buddy": "en_male_corey_emo_v2_mars_bigtts",
	"lumipet-luna":  "en_female_skye_emo_v2_mars_bigtts",
}

const defaultSpeaker = "en_female_candice_emo_v2_mars_bigtts"

// resolveSpeaker returns the provider speaker for a persona voice ID. An
// unknown or empty ID gets the default speaker so synthesis still works.
func resolveSpeaker(voiceID string) string {
	normalized := strings.ToLower(strings.TrimSpace(voiceID))
	if speaker, ok := voiceProfiles[normalized]; ok {
		return speaker
	}
	return defaultSpeaker
}
