package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	appcfg "github.com/zeroclick/core/internal/config"
)

// Segment is one recognized stretch of speech. Alternatives are ordered
// best-first; only the best one reaches the transcript.
type Segment struct {
	Alternatives []string
}

// Transcriber converts a stored audio object into recognized segments.
type Transcriber interface {
	Transcribe(ctx context.Context, bucket, key string) ([]Segment, error)
}

// JoinBestAlternatives builds the transcript the rest of the pipeline
// consumes: the best alternative of each segment, newline-joined.
// Segments with no alternatives are skipped.
func JoinBestAlternatives(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if len(seg.Alternatives) == 0 {
			continue
		}
		parts = append(parts, seg.Alternatives[0])
	}
	return strings.Join(parts, "\n")
}

// ObjectFetcher is the subset of the S3 client the transcriber needs.
type ObjectFetcher interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// WhisperTranscriber fetches the uploaded object and runs it through an
// OpenAI-compatible audio transcription endpoint.
type WhisperTranscriber struct {
	fetcher  ObjectFetcher
	client   openai.Client
	model    string
	language string
}

func NewWhisperTranscriber(fetcher ObjectFetcher, cfg appcfg.TranscribeConfig) *WhisperTranscriber {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	return &WhisperTranscriber{
		fetcher:  fetcher,
		client:   openai.NewClient(opts...),
		model:    cfg.Model,
		language: cfg.Language,
	}
}

func (w *WhisperTranscriber) Transcribe(ctx context.Context, bucket, key string) ([]Segment, error) {
	obj, err := w.fetcher.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch audio object: %w", err)
	}
	defer obj.Body.Close()

	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(obj.Body, key, aws.ToString(obj.ContentType)),
		Model: openai.AudioModel(w.model),
	}
	if w.language != "" {
		params.Language = openai.String(w.language)
	}

	resp, err := w.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcribe audio: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, nil
	}
	return []Segment{{Alternatives: []string{text}}}, nil
}
