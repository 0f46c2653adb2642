package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/contribgraph/backend/internal/util"
	"github.com/contribgraph/backend/pkg/contrib"
	"github.com/contribgraph/backend/pkg/loader"
	ioloader "github.com/contribgraph/backend/pkg/loader/io"
	s3loader "github.com/contribgraph/backend/pkg/loader/s3"
)

const (
	BackendFS = "fs"
	BackendS3 = "s3"

	defaultDataDir        = "csv"
	defaultInternalSource = "contributeurices_int.csv"
	defaultExternalSource = "contributeurices_ext.csv"
)

// SourceConfig says where the two contributor tables live.
type SourceConfig struct {
	Backend  string
	DataDir  string
	Internal string
	External string
	Bucket   string
	Retries  int
}

// SourceConfigFromEnv reads DATA_BACKEND, DATA_DIR, INTERNAL_SOURCE,
// EXTERNAL_SOURCE, AWS_BUCKET and S3_RETRIES.
func SourceConfigFromEnv() SourceConfig {
	return SourceConfig{
		Backend:  strings.ToLower(util.GetEnvString("DATA_BACKEND", BackendFS)),
		DataDir:  util.GetEnvString("DATA_DIR", defaultDataDir),
		Internal: util.GetEnvString("INTERNAL_SOURCE", defaultInternalSource),
		External: util.GetEnvString("EXTERNAL_SOURCE", defaultExternalSource),
		Bucket:   util.GetEnv("AWS_BUCKET"),
		Retries:  util.GetEnvNumeric("S3_RETRIES", 3),
	}
}

// NewSourceLoader returns the loader for cfg.Backend.
func NewSourceLoader(ctx context.Context, cfg SourceConfig) (loader.SourceLoader, error) {
	switch cfg.Backend {
	case "", BackendFS:
		return ioloader.NewIOSourceLoader(cfg.DataDir), nil
	case BackendS3:
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("DATA_BACKEND=s3 requires AWS_BUCKET")
		}
		client, err := NewS3Client(ctx)
		if err != nil {
			return nil, err
		}
		return s3loader.NewS3SourceLoader(s3loader.NewS3SourceLoaderParams{
			Bucket:  cfg.Bucket,
			Prefix:  cfg.DataDir,
			Client:  client,
			Retries: cfg.Retries,
			Delay:   200 * time.Millisecond,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported DATA_BACKEND: %s", cfg.Backend)
	}
}

// NewReader wires a contrib.Reader over the internal and external sources,
// in that order.
func NewReader(l loader.SourceLoader, cfg SourceConfig) *contrib.Reader {
	return contrib.NewReader(contrib.DefaultColumns,
		contrib.Source{
			Provenance: contrib.Internal,
			File:       loader.NewSourceFile(string(contrib.Internal), cfg.Internal, l),
		},
		contrib.Source{
			Provenance: contrib.External,
			File:       loader.NewSourceFile(string(contrib.External), cfg.External, l),
		},
	)
}
