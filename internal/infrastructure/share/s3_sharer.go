package share

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jhoicas/bodega-app/pkg/config"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

const (
	defaultRegion     = "us-east-1"
	defaultPresignTTL = 24 * time.Hour
	keyPrefix         = "reportes"
)

// objectPutter subconjunto del cliente S3 que se usa; permite probar sin red.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type getPresigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Sharer sube el PDF y devuelve una URL firmada para descargarlo.
type S3Sharer struct {
	client    objectPutter
	presigner getPresigner
	bucket    string
	ttl       time.Duration
	log       *logger.Logger
	now       func() time.Time
}

// NewS3Sharer arma el cliente con credenciales estáticas; sirve para AWS, MinIO o similares.
func NewS3Sharer(ctx context.Context, cfg config.S3Config, log *logger.Logger) (*S3Sharer, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("share: S3_BUCKET es obligatorio")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("share: S3_ACCESS_KEY y S3_SECRET_KEY son obligatorios")
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("share: configuración AWS: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return newS3Sharer(client, s3.NewPresignClient(client), cfg.Bucket, cfg.PresignTTL, log), nil
}

func newS3Sharer(client objectPutter, presigner getPresigner, bucket string, ttl time.Duration, log *logger.Logger) *S3Sharer {
	if log == nil {
		log = logger.Nop()
	}
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}
	return &S3Sharer{client: client, presigner: presigner, bucket: bucket, ttl: ttl, log: log.Named("share"), now: time.Now}
}

// Key ruta del objeto: reportes/<aaaa-mm-dd>/<archivo>.
func (s *S3Sharer) Key(fileName string) string {
	return path.Join(keyPrefix, s.now().Format("2006-01-02"), path.Base(fileName))
}

func (s *S3Sharer) Share(ctx context.Context, fileName string, data []byte) (string, error) {
	key := s.Key(fileName)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("application/pdf"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("share: subir %s: %w", key, err)
	}
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", fmt.Errorf("share: firmar URL de %s: %w", key, err)
	}
	s.log.Info().Str("bucket", s.bucket).Str("key", key).Dur("ttl", s.ttl).Msg("reporte subido")
	return req.URL, nil
}
