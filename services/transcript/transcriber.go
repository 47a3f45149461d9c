package transcript

import (
	"context"
	"fmt"
	"strings"

	"github.com/Happyesss/careerlive---alpha/config"

	speech "cloud.google.com/go/speech/apiv1"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

// Transcriber converts recorded session audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// googleTranscriber runs recognition against Google Cloud Speech-to-Text.
// Recordings come out of the browser as WebM/Opus at 48kHz, so the config is
// fixed to that encoding.
type googleTranscriber struct{}

// NewGoogleTranscriber creates a Transcriber backed by Google STT.
func NewGoogleTranscriber() Transcriber {
	return &googleTranscriber{}
}

func (t *googleTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if language == "" {
		language = "en-US"
	}

	var opts []option.ClientOption
	if config.AppConfig.GoogleServiceAccountFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.AppConfig.GoogleServiceAccountFile))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to initialize speech client: %w", err)
	}
	defer client.Close()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_WEBM_OPUS,
			SampleRateHertz:            48000,
			LanguageCode:               language,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audio,
			},
		},
	}

	resp, err := client.Recognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}
