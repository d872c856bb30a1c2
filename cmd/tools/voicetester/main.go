// voicetester sends one line of text through the synthesis provider and
// writes the audio to disk. Useful for checking credentials and voice
// mappings without running the API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/linmiao/lumipet/backend/internal/config"
	speechmodel "github.com/linmiao/lumipet/backend/internal/model/speech"
	"github.com/linmiao/lumipet/backend/internal/service/speech"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] failed to load .env, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if !cfg.Speech.Enabled {
		log.Fatal("speech service not configured, set the SPEECH_* environment variables first")
	}

	text := flag.String("text", "Hello friend! I missed you!", "text to synthesize")
	voice := flag.String("voice", "lumipet-buddy", "voice id (lumipet-buddy, lumipet-luna)")
	outputPath := flag.String("out", "", "output file path (default voice-test.mp3)")
	timeout := flag.Duration("timeout", 45*time.Second, "request timeout")
	flag.Parse()

	svc := speech.NewService(&speechmodel.Config{
		AppID:       cfg.Speech.AppID,
		AccessToken: cfg.Speech.AccessToken,
		AccessKey:   cfg.Speech.AccessKey,
		SecretKey:   cfg.Speech.SecretKey,
		TTSSpeed:    cfg.Speech.TTSSpeed,
		TTSVolume:   cfg.Speech.TTSVolume,
		Timeout:     int(timeout.Seconds()),
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	resp := svc.SynthesizeSpeech(ctx, *text, *voice)
	if resp == nil {
		log.Fatal("synthesis failed, check the server log above for details")
	}

	out := *outputPath
	if out == "" {
		out = fmt.Sprintf("voice-test.%s", resp.Format)
	}

	if err := os.WriteFile(out, resp.AudioData, 0o644); err != nil {
		log.Fatalf("failed to write audio file: %v", err)
	}

	log.Printf("synthesized %d bytes in %s, wrote %s (reported duration %dms)",
		len(resp.AudioData), time.Since(start).Round(time.Millisecond), out, resp.Duration)
}
