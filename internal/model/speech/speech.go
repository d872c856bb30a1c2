package speech

import "time"

// Config carries the synthesis provider settings.
type Config struct {
	AppID       string  `json:"appId"`
	AccessToken string  `json:"accessToken"`
	AccessKey   string  `json:"accessKey"`
	SecretKey   string  `json:"secretKey"`
	TTSSpeed    float32 `json:"ttsSpeed"`
	TTSVolume   float32 `json:"ttsVolume"`
	Timeout     int     `json:"timeout"` // seconds
}

// TTSRequest asks for one spoken line.
type TTSRequest struct {
	Text    string  `json:"text"`
	VoiceID string  `json:"voiceId"` // persona voice id, mapped to a provider speaker
	Speed   float32 `json:"speed,omitempty"`
	Volume  float32 `json:"volume,omitempty"`
	Format  string  `json:"format,omitempty"` // mp3 by default
}

// TTSResponse carries the synthesized audio.
type TTSResponse struct {
	AudioData []byte    `json:"-"`
	Duration  int64     `json:"duration"` // milliseconds
	Format    string    `json:"format"`
	RequestID string    `json:"requestId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
