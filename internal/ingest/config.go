package ingest

import (
	"time"
)

type Config struct {
	RequestTimeout time.Duration `envconfig:"KDR_INGEST_REQUEST_TIMEOUT" default:"60s"`
	MaxPoints      int           `envconfig:"KDR_INGEST_MAX_POINTS" default:"1000000"`
}
