package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"lms-packages/internal/types"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	descriptor, requirements, err := s.loadDescriptor(ctx, req.DescriptorPath)
	if err != nil {
		return ValidateResult{}, err
	}
	if req.Settings != (types.Settings{}) {
		if err := s.Compiler.ValidateSettings(ctx, descriptor, req.Settings); err != nil {
			return ValidateResult{}, err
		}
	}
	return ValidateResult{
		Name:         descriptor.Name,
		Version:      descriptor.Version,
		Requirements: requirements,
	}, nil
}

// loadDescriptor reads and validates a descriptor once; every step works on
// the returned value.
func (s Service) loadDescriptor(ctx context.Context, path string) (types.Descriptor, []types.Requirement, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return types.Descriptor{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("descriptor path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return types.Descriptor{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid descriptor path").
			WithCause(err)
	}
	descriptor, err := s.Descriptors.LoadDescriptor(abs)
	if err != nil {
		return types.Descriptor{}, nil, err
	}
	requirements, err := s.Compiler.ValidateDescriptor(ctx, descriptor)
	if err != nil {
		return types.Descriptor{}, nil, err
	}
	return descriptor, requirements, nil
}

func absDir(value string, label string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(label + " is required")
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid " + label).
			WithCause(err)
	}
	return abs, nil
}
