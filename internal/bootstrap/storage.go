package bootstrap

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/GoSim-25-26J-441/projects-catalog/config"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/attachments"
)

// NewAttachmentStore selects the image backend. USE_MOCK_S3 picks the local
// filesystem; otherwise S3 is used, disabled when credentials are missing.
func NewAttachmentStore(ctx context.Context, cfg *config.StorageConfig, log zerolog.Logger) (attachments.Store, error) {
	p := attachments.NewPipeline(
		attachments.NewValidator(cfg.MaxUploadBytes, cfg.AllowedImageTypes),
		attachments.NewCodec(cfg.JPEGQuality),
		cfg.ImageMaxWidth,
		cfg.ImageMaxHeight,
	)

	if cfg.UseMock {
		log.Info().Str("dir", cfg.LocalDir).Str("base_url", cfg.LocalBaseURL).Msg("using local image storage")
		return attachments.NewLocalStore(cfg.LocalDir, cfg.LocalBaseURL, p), nil
	}

	s3cfg := attachments.S3Config{
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Region:          cfg.AWSRegion,
		Bucket:          cfg.S3Bucket,
		BaseURL:         cfg.S3BaseURL,
		Endpoint:        cfg.S3Endpoint,
	}
	store, err := attachments.NewS3Store(ctx, s3cfg, p)
	if err != nil {
		return nil, err
	}
	if !store.Enabled() {
		log.Warn().Msg("AWS credentials missing; image uploads are disabled")
	} else {
		log.Info().Str("bucket", cfg.S3Bucket).Str("region", cfg.AWSRegion).Msg("using S3 image storage")
	}
	return store, nil
}
