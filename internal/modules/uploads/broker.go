package uploads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	appcfg "github.com/zeroclick/core/internal/config"
)

var (
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
)

// Presigner is the subset of the S3 presign client the broker needs.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Broker hands out short-lived presigned PUT URLs so audio uploads go
// straight to object storage without passing through this service.
type Broker struct {
	presigner    Presigner
	bucket       string
	maxBytes     int64
	ttl          time.Duration
	allowedTypes map[string]struct{}
}

func NewBroker(presigner Presigner, cfg appcfg.StorageConfig) *Broker {
	allowed := make(map[string]struct{}, len(cfg.AllowedAudioTypes))
	for _, t := range cfg.AllowedAudioTypes {
		allowed[strings.ToLower(t)] = struct{}{}
	}
	return &Broker{
		presigner:    presigner,
		bucket:       cfg.Bucket,
		maxBytes:     int64(cfg.MaxUploadMB) * 1024 * 1024,
		ttl:          time.Duration(cfg.UploadTTLMinutes) * time.Minute,
		allowedTypes: allowed,
	}
}

// Grant is one approved upload slot.
type Grant struct {
	URL       string    `json:"url"`
	ObjectKey string    `json:"object_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authorize validates the declared file and returns a presigned PUT URL
// scoped to the declared content type.
func (b *Broker) Authorize(ctx context.Context, fileName, fileType string, fileSize int64) (*Grant, error) {
	if _, ok := b.allowedTypes[strings.ToLower(strings.TrimSpace(fileType))]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, fileType)
	}
	if fileSize <= 0 || fileSize > b.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, fileSize)
	}

	key := objectKey(fileName)
	req, err := b.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(fileType),
		ContentLength: aws.Int64(fileSize),
	}, s3.WithPresignExpires(b.ttl))
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &Grant{
		URL:       req.URL,
		ObjectKey: key,
		ExpiresAt: time.Now().UTC().Add(b.ttl),
	}, nil
}

// objectKey namespaces uploads by day and prefixes a uuid so concurrent
// uploads of the same file name never collide.
func objectKey(fileName string) string {
	return fmt.Sprintf("uploads/%s/%s-%s",
		time.Now().UTC().Format("2006-01-02"),
		uuid.NewString(),
		sanitizeFileName(fileName))
}

// sanitizeFileName keeps the key printable and path-traversal free.
func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.LastIndexAny(name, "/\\"); idx >= 0 {
		name = name[idx+1:]
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
