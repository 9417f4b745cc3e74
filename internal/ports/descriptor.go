package ports

import "lms-packages/internal/types"

type DescriptorPort interface {
	LoadDescriptor(path string) (types.Descriptor, error)
}
