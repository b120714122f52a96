package ports

import (
	"context"
	"io"

	"statreport/domain/dataset"
)

// DatasetLoader turns an uploaded spreadsheet into a typed dataset.
// Malformed input fails with core.ErrMalformedInput and no partial result.
type DatasetLoader interface {
	Load(ctx context.Context, name string, src io.Reader) (*dataset.Dataset, error)
	LoadFile(ctx context.Context, path string) (*dataset.Dataset, error)
}
