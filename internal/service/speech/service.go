// Package speech implements the generateSpeech port: a voice line in,
// audio bytes out, nil audio on any failure. The interaction path never
// fails because synthesis did.
package speech

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode"

	speechmodel "github.com/linmiao/lumipet/backend/internal/model/speech"
)

// Service fronts the synthesis provider.
type Service struct {
	config *speechmodel.Config
	client *ttsClient
}

// NewService creates the speech service.
func NewService(config *speechmodel.Config) *Service {
	return &Service{
		config: config,
		client: newTTSClient(config),
	}
}

// SynthesizeSpeech converts a voice line to audio. The text is cleaned of
// emoji first; when nothing speakable remains, or the provider fails, the
// result is nil without an error for the caller to treat as "no audio".
func (s *Service) SynthesizeSpeech(ctx context.Context, text, voiceID string) *speechmodel.TTSResponse {
	clean := StripEmoji(text)
	if clean == "" {
		return nil
	}

	timeout := time.Duration(s.config.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := s.client.synthesize(callCtx, &speechmodel.TTSRequest{
		Text:    clean,
		VoiceID: voiceID,
	})
	if err != nil {
		log.Printf("[tts] synthesis unavailable voice=%s: %v", voiceID, err)
		return nil
	}
	return resp
}

// StripEmoji removes emoji and pictographs so the voice doesn't try to
// pronounce them, then trims the remainder.
func StripEmoji(text string) string {
	var b strings.Builder
	for _, r := range text {
		if isEmoji(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, symbols
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r == 0x200D || r == 0xFE0F: // zero-width joiner, variation selector
		return true
	case unicode.Is(unicode.Sk, r) && r > 0x2000:
		return true
	}
	return false
}
