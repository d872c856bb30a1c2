package resolve

import "strings"

// Labeled is the multi-field text protocol some generated responses use.
// Lines of the form "[VOICE]: ..." are split out; everything else stays in
// Display. When no labeled line is present the whole string is display text.
type Labeled struct {
	Voice    string
	Visual   string
	Progress string
	Text     string
	Action   string
	Display  string
}

// ParseLabeled extracts labeled lines from a response string. The [VOICE]
// line is unquoted for speech synthesis; remaining lines are rendered
// verbatim by the consumer.
func ParseLabeled(raw string) Labeled {
	var out Labeled
	var display []string

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "[VOICE]:"):
			out.Voice = unquote(strings.TrimPrefix(trimmed, "[VOICE]:"))
		case strings.HasPrefix(trimmed, "[VISUAL]:"):
			out.Visual = strings.TrimSpace(strings.TrimPrefix(trimmed, "[VISUAL]:"))
			display = append(display, line)
		case strings.HasPrefix(trimmed, "[PROGRESS]:"):
			out.Progress = strings.TrimSpace(strings.TrimPrefix(trimmed, "[PROGRESS]:"))
			display = append(display, line)
		case strings.HasPrefix(trimmed, "[TEXT]:"):
			out.Text = strings.TrimSpace(strings.TrimPrefix(trimmed, "[TEXT]:"))
			display = append(display, line)
		case strings.HasPrefix(trimmed, "[ACTION]:"):
			out.Action = strings.TrimSpace(strings.TrimPrefix(trimmed, "[ACTION]:"))
			display = append(display, line)
		default:
			display = append(display, line)
		}
	}

	out.Display = strings.TrimSpace(strings.Join(display, "\n"))
	if out.Display == "" {
		out.Display = raw
	}
	return out
}

// VoiceOrDisplay returns the line speech synthesis should use.
func (l Labeled) VoiceOrDisplay() string {
	if l.Voice != "" {
		return l.Voice
	}
	return l.Display
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.TrimSpace(s)
}
