package upload

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"

	"github.com/diillson/fuellog-go/internal/domain/repository"
	"github.com/diillson/fuellog-go/internal/shared/types"
)

// ObjectPutter is the subset of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// IdentityGetter is the subset of the STS client used to resolve the caller.
type IdentityGetter interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// S3RepositoryImpl implementa o UploadRepository com clientes criados sob demanda.
type S3RepositoryImpl struct {
	dest types.UploadConfig
	log  zerolog.Logger

	mu       sync.Mutex
	putter   ObjectPutter
	identity IdentityGetter
}

// NewS3Repository cria um UploadRepository para o bucket configurado. Os
// clientes AWS só são criados no primeiro uso.
func NewS3Repository(dest types.UploadConfig, log zerolog.Logger) repository.UploadRepository {
	return &S3RepositoryImpl{dest: dest, log: log.With().Str("component", "s3").Logger()}
}

// NewS3RepositoryWithClients é usado quando os clientes já existem (ex.: testes).
func NewS3RepositoryWithClients(dest types.UploadConfig, putter ObjectPutter, identity IdentityGetter, log zerolog.Logger) *S3RepositoryImpl {
	return &S3RepositoryImpl{dest: dest, log: log, putter: putter, identity: identity}
}

func (r *S3RepositoryImpl) clients(ctx context.Context) (ObjectPutter, IdentityGetter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.putter != nil && r.identity != nil {
		return r.putter, r.identity, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.dest.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.dest.Profile))
	}
	if r.dest.Region != "" {
		opts = append(opts, config.WithRegion(r.dest.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load AWS config for profile %s: %w", r.dest.Profile, err)
	}

	r.putter = s3.NewFromConfig(cfg)
	r.identity = sts.NewFromConfig(cfg)
	return r.putter, r.identity, nil
}

// CallerAccount returns the AWS account id of the configured credentials.
func (r *S3RepositoryImpl) CallerAccount(ctx context.Context) (string, error) {
	_, identity, err := r.clients(ctx)
	if err != nil {
		return "", err
	}
	out, err := identity.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %w", err)
	}
	return aws.ToString(out.Account), nil
}

// Upload envia o arquivo para s3://bucket/prefix/<nome> e devolve a URI.
func (r *S3RepositoryImpl) Upload(ctx context.Context, localPath string) (string, error) {
	if !r.dest.Enabled() {
		return "", fmt.Errorf("no upload bucket configured")
	}
	putter, _, err := r.clients(ctx)
	if err != nil {
		return "", err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening %s: %w", localPath, err)
	}
	defer file.Close()

	key := objectKey(r.dest.Prefix, localPath)
	input := &s3.PutObjectInput{
		Bucket: aws.String(r.dest.Bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := putter.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	uri := fmt.Sprintf("s3://%s/%s", r.dest.Bucket, key)
	r.log.Debug().Str("uri", uri).Msg("report uploaded")
	return uri, nil
}

func objectKey(prefix, localPath string) string {
	prefix = strings.Trim(prefix, "/")
	name := filepath.Base(localPath)
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
