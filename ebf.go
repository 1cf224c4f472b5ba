/*
Package ebf is a library implementing the ebf, ebu and ebc echo, compare and
convert tools, along with a small catalog of decoded images.
*/
package ebf

import (
	"github.com/rs/zerolog"
)

// EBF runs tools against files on disk.
type EBF struct {
	config  Config
	catalog *Catalog
	logger  zerolog.Logger
}

// New returns an EBF using config. The catalog may be nil, in which case
// Scan and Find return an error.
func New(config Config, catalog *Catalog, logger zerolog.Logger) *EBF {
	return &EBF{
		config:  config,
		catalog: catalog,
		logger:  logger,
	}
}
