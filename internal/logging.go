package internal

import (
	"log"
	"os"
)

// InitLogging routes the progress output of the crosswalk builder, the trip
// pipeline and the mapping validator to stdout with microsecond timestamps.
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
