package index

import "time"

type Config struct {
	// Zero disables the limit
	MaxDepth       int           `envconfig:"KDR_INDEX_MAX_DEPTH" default:"0"`
	MaxDatasets    int           `envconfig:"KDR_INDEX_MAX_DATASETS" default:"0"`
	MaxStorageTime time.Duration `envconfig:"KDR_INDEX_MAX_STORAGE_TIME" default:"0s"`
	RebuildDBTime  time.Duration `envconfig:"KDR_INDEX_REBUILD_DB_TIME" default:"1m"`
}
