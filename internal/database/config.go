package database

import "time"

type Config struct {
	FileName string        `envconfig:"KDR_DB_FILE" default:"kdrange.db"`
	Timeout  time.Duration `envconfig:"KDR_DB_OPEN_TIMEOUT" default:"1s"`
}
