package app

import (
	"context"
	"strings"
)

func (s Service) Info(ctx context.Context, req InfoRequest) (InfoResult, error) {
	descriptor, _, err := s.loadDescriptor(ctx, req.DescriptorPath)
	if err != nil {
		return InfoResult{}, err
	}
	result := InfoResult{Descriptor: descriptor}
	if strings.TrimSpace(req.Query) == "" {
		return result, nil
	}
	matches, err := s.Query.Query(descriptor, req.Query)
	if err != nil {
		return InfoResult{}, err
	}
	result.Matches = matches
	return result, nil
}
