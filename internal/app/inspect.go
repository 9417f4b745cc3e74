package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"lms-packages/internal/core"
	"lms-packages/internal/types"
)

// Inspect lists registry records, optionally restricted to one package name.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	if s.Registry == nil {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("package registry is not configured")
	}
	records, err := s.Registry.List(ctx)
	if err != nil {
		return InspectResult{}, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return InspectResult{Records: records}, nil
	}
	var filtered []types.PackageRecord
	for _, record := range records {
		if record.Reference.Name == name {
			filtered = append(filtered, record)
		}
	}
	return InspectResult{Records: filtered}, nil
}

func (s Service) Remove(ctx context.Context, req RemoveRequest) (RemoveResult, error) {
	if s.Registry == nil {
		return RemoveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("package registry is not configured")
	}
	reference, err := core.ParseRequirement(req.Reference)
	if err != nil {
		return RemoveResult{}, err
	}
	removed, err := s.Registry.Remove(ctx, reference)
	if err != nil {
		return RemoveResult{}, err
	}
	if removed == 0 {
		return RemoveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("package not found in registry: " + reference.String())
	}
	return RemoveResult{Reference: reference, Removed: removed}, nil
}
