package search

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"KDR_SEARCH_REQUEST_TIMEOUT" default:"30s"`
	MaxRanges      int           `envconfig:"KDR_SEARCH_MAX_RANGES" default:"64"`
}
