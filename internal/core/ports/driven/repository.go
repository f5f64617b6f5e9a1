package driven

import (
	"context"

	"github.com/Saechaoc/docgen/internal/core/domain"
)

// Repository provides read access to the repository tree being documented.
type Repository interface {
	// Scan walks the tree rooted at root and returns a manifest of its
	// files with sizes, roles, languages, and content hashes. Individual
	// unreadable files are skipped; only a failure to walk at all is an
	// error.
	Scan(ctx context.Context, root string) (*domain.Manifest, error)

	// ReadText returns the decoded text content of one file, identified
	// by its root-relative path. Missing files report ErrNotFound.
	ReadText(ctx context.Context, root, path string) (string, error)
}
