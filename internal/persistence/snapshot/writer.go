package snapshot

import "log"

const archiveKeep = 20

// RunWriter drains the sink channel and persists each document. It runs on
// its own goroutine so a slow disk never blocks the office loop; write
// failures are logged, in-memory state stays the source of truth.
func RunWriter(sink <-chan Document, path, archiveDir string, logger *log.Logger) {
	for doc := range sink {
		if err := Write(path, doc); err != nil {
			logger.Printf("snapshot write: %v", err)
			continue
		}
		if archiveDir != "" {
			if err := WriteArchive(archiveDir, doc, archiveKeep); err != nil {
				logger.Printf("snapshot archive: %v", err)
			}
		}
	}
}
