package ports

import (
	"context"

	"lms-packages/internal/types"
)

// RegistryPort stores packages produced by this tool so that later builds
// can locate their include and library directories.
type RegistryPort interface {
	Register(ctx context.Context, record types.PackageRecord) error
	Lookup(ctx context.Context, ref types.Requirement) (types.PackageRecord, bool, error)
	List(ctx context.Context) ([]types.PackageRecord, error)
	Remove(ctx context.Context, ref types.Requirement) (int, error)
	Close() error
}
