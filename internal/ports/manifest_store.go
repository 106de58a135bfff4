package ports

import "github.com/BayAreaMetro/tm2kit/internal/domain"

// ManifestStore persists run and archive manifests for reproducibility.
type ManifestStore interface {
	SaveRunManifest(m domain.RunManifest) (path string, err error)
	SaveArchiveManifest(m domain.ArchiveManifest) (path string, err error)
}
