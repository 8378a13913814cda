// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"

	log "github.com/sirupsen/logrus"

	"storage-price-estimator/internal/config"
)

// Init applies level and format from cfg. Unknown levels fall back to info;
// any format other than "json" uses the text formatter.
func Init(cfg config.LoggerConfig) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// SetOutput redirects log output, used by the CLI to keep stdout clean.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
