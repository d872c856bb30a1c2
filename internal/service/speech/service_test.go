package speech

import "testing"

func TestStripEmoji(t *testing.T) {
	cases := map[string]string{
		"Hello friend! 🐾":             "Hello friend!",
		"I missed you! ❤️":             "I missed you!",
		"🦴 Preparing Buddy's meal...": "Preparing Buddy's meal...",
		"plain words":                  "plain words",
		"✨🌙":                          "",
	}
	for input, want := range cases {
		if got := StripEmoji(input); got != want {
			t.Errorf("StripEmoji(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestResolveSpeaker(t *testing.T) {
	if got := resolveSpeaker("lumipet-buddy"); got != voiceProfiles["lumipet-buddy"] {
		t.Fatalf("buddy speaker: got %q", got)
	}
	if got := resolveSpeaker("unknown-voice"); got != defaultSpeaker {
		t.Fatalf("unknown voice should use the default speaker, got %q", got)
	}
	if got := resolveSpeaker("  LUMIPET-LUNA "); got != voiceProfiles["lumipet-luna"] {
		t.Fatalf("voice id lookup should be case-insensitive, got %q", got)
	}
}

func TestProtocolRoundTrip(t *testing.T) {
	frame := encodeRequest([]byte(`{"hello":"world"}`))

	msg, err := decodeMessage(frame)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if msg.Header.MessageType != fullClientRequest {
		t.Fatalf("message type: got %d", msg.Header.MessageType)
	}
	if string(msg.Payload) != `{"hello":"world"}` {
		t.Fatalf("payload: got %q", msg.Payload)
	}
	if msg.isLastPacket() {
		t.Fatal("request frame should not read as final")
	}
}

func TestDecodeMessageRejectsBadVersion(t *testing.T) {
	frame := encodeRequest([]byte("x"))
	frame[0] = 0xF1 // corrupt the protocol version nibble

	if _, err := decodeMessage(frame); err == nil {
		t.Fatal("expected protocol version error")
	}
}
