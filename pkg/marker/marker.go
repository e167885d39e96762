// Package marker implements the completion-marker protocol the stages use to
// rendezvous through the shared filesystem. A producer publishes a single
// fully-formed marker file after all of its per-item work has concluded; a
// consumer polls for the marker's existence on a fixed interval and blocks
// until it appears.
package marker

import (
	"log/slog"
	"os"
	"time"

	"webcorpus/pkg/storage"
)

// Wait blocks until the file at path exists. The poll interval is constant,
// there is no timeout and no cancellation; liveness depends on the upstream
// stage eventually publishing its marker.
func Wait(path string, interval time.Duration, logger *slog.Logger) {
	for {
		if _, err := os.Stat(path); err == nil {
			return
		}
		logger.Info("waiting for marker", "path", path)
		time.Sleep(interval)
	}
}

// Publish writes v as the marker at path. The write is atomic, so a waiting
// consumer either sees no marker or a complete one. Publishing must be the
// last action of the producing stage.
func Publish(path string, v any) error {
	return storage.WriteJSONAtomic(path, v)
}
