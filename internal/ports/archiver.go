package ports

import "context"

// Archiver bundles one directory into (or onto) a compressed archive.
// Implementations shell out to an external compressor; a non-zero exit is
// returned as a fatal execution error.
type Archiver interface {
	AddDir(ctx context.Context, archivePath, dir string) error
}
