package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	speechmodel "github.com/linmiao/lumipet/backend/internal/model/speech"
)

const ttsEndpoint = "wss://openspeech.bytedance.com/api/v3/tts/unidirectional/stream"
const ttsResourceID = "volc.service_type.10029"

// ttsClient streams synthesis over the provider's binary WebSocket protocol.
type ttsClient struct {
	config *speechmodel.Config
	dialer *websocket.Dialer
}

func newTTSClient(config *speechmodel.Config) *ttsClient {
	return &ttsClient{
		config: config,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 30 * time.Second,
		},
	}
}

type ttsRequestPayload struct {
	User struct {
		UID string `json:"uid"`
	} `json:"user"`
	ReqParams struct {
		Speaker     string `json:"speaker"`
		Text        string `json:"text"`
		AudioParams struct {
			Format      string  `json:"format"`
			SampleRate  int     `json:"sample_rate"`
			SpeedRatio  float32 `json:"speed_ratio,omitempty"`
			VolumeRatio float32 `json:"volume_ratio,omitempty"`
		} `json:"audio_params"`
	} `json:"req_params"`
}

type ttsServerMessage struct {
	ReqID    string `json:"reqid"`
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Sequence int    `json:"sequence"`
	Data     string `json:"data"`
	Addition struct {
		Duration string `json:"duration,omitempty"`
	} `json:"addition,omitempty"`
}

// synthesize runs one full request/stream/collect cycle.
func (c *ttsClient) synthesize(ctx context.Context, req *speechmodel.TTSRequest) (*speechmodel.TTSResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("synthesis text is empty")
	}

	appID, token, err := resolveCredentials(c.config)
	if err != nil {
		return nil, err
	}

	connectID := uuid.NewString()
	headers := http.Header{}
	headers.Set("X-Api-App-Key", appID)
	headers.Set("X-Api-Access-Key", token)
	headers.Set("X-Api-Resource-Id", ttsResourceID)
	headers.Set("X-Api-Connect-Id", connectID)

	conn, _, err := c.dialer.DialContext(ctx, ttsEndpoint, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to synthesis endpoint: %w", err)
	}
	defer conn.Close()

	payload, err := json.Marshal(c.buildPayload(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal synthesis request: %w", err)
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, encodeRequest(payload)); err != nil {
		return nil, fmt.Errorf("failed to send synthesis request: %w", err)
	}

	return c.collect(ctx, conn, connectID, req.Format)
}

func (c *ttsClient) buildPayload(req *speechmodel.TTSRequest) *ttsRequestPayload {
	p := &ttsRequestPayload{}
	p.User.UID = uuid.NewString()
	p.ReqParams.Speaker = resolveSpeaker(req.VoiceID)
	p.ReqParams.Text = req.Text

	format := strings.TrimSpace(req.Format)
	if format == "" {
		format = "mp3"
	}
	p.ReqParams.AudioParams.Format = format
	p.ReqParams.AudioParams.SampleRate = 24000

	speed := req.Speed
	if speed == 0 {
		speed = c.config.TTSSpeed
	}
	p.ReqParams.AudioParams.SpeedRatio = speed

	volume := req.Volume
	if volume == 0 {
		volume = c.config.TTSVolume
	}
	p.ReqParams.AudioParams.VolumeRatio = volume

	return p
}

// collect reads server frames until the stream finalizes, accumulating
// audio chunks.
func (c *ttsClient) collect(ctx context.Context, conn *websocket.Conn, connectID, format string) (*speechmodel.TTSResponse, error) {
	var (
		audio    bytes.Buffer
		reqID    string
		duration int64
	)

	if format == "" {
		format = "mp3"
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if deadline, ok := ctx.Deadline(); ok {
			_ = conn.SetReadDeadline(deadline)
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("failed to read synthesis response: %w", err)
		}

		msg, err := decodeMessage(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode synthesis frame: %w", err)
		}

		switch msg.Header.MessageType {
		case errorMessage:
			payload, derr := decompressPayload(msg.Payload, msg.Header.CompressionMethod)
			if derr != nil {
				return nil, fmt.Errorf("synthesis error frame undecodable: %w", derr)
			}
			return nil, fmt.Errorf("synthesis failed: %s", string(payload))

		case audioOnlyServerResponse:
			chunk, derr := decompressPayload(msg.Payload, msg.Header.CompressionMethod)
			if derr != nil {
				return nil, fmt.Errorf("failed to decompress audio chunk: %w", derr)
			}
			audio.Write(chunk)
			if msg.isLastPacket() {
				return c.finish(&audio, reqID, connectID, format, duration)
			}

		case fullServerResponse:
			payload, derr := decompressPayload(msg.Payload, msg.Header.CompressionMethod)
			if derr != nil {
				return nil, fmt.Errorf("failed to decompress response payload: %w", derr)
			}

			var server ttsServerMessage
			if len(payload) > 0 {
				if uerr := json.Unmarshal(payload, &server); uerr != nil {
					log.Printf("[tts] skipping unparseable response payload: %v", uerr)
				} else {
					if server.Code != 0 && server.Code != 3000 {
						return nil, fmt.Errorf("synthesis rejected with code %d: %s", server.Code, server.Message)
					}
					if server.ReqID != "" {
						reqID = server.ReqID
					}
					if server.Addition.Duration != "" {
						if parsed, perr := strconv.ParseInt(server.Addition.Duration, 10, 64); perr == nil {
							duration = parsed
						}
					}
					if server.Data != "" {
						chunk, berr := base64.StdEncoding.DecodeString(server.Data)
						if berr != nil {
							return nil, fmt.Errorf("failed to decode base64 audio chunk: %w", berr)
						}
						audio.Write(chunk)
					}
				}
			}

			if msg.isLastPacket() || server.Sequence < 0 {
				return c.finish(&audio, reqID, connectID, format, duration)
			}

		default:
			log.Printf("[tts] unexpected frame type: %d", msg.Header.MessageType)
		}
	}
}

func (c *ttsClient) finish(audio *bytes.Buffer, reqID, connectID, format string, duration int64) (*speechmodel.TTSResponse, error) {
	if audio.Len() == 0 {
		return nil, fmt.Errorf("synthesis produced no audio")
	}
	if reqID == "" {
		reqID = connectID
	}
	return &speechmodel.TTSResponse{
		AudioData: audio.Bytes(),
		Duration:  duration,
		Format:    format,
		RequestID: reqID,
		CreatedAt: time.Now(),
	}, nil
}
