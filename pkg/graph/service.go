package graph

import (
	"context"

	"github.com/contribgraph/backend/pkg/contrib"
)

// Service exposes the two read operations of the pipeline. Each call
// re-reads the sources; no result is shared between calls.
type Service struct {
	reader *contrib.Reader
}

func NewService(reader *contrib.Reader) *Service {
	return &Service{reader: reader}
}

// GetNormalizedRecords returns the records of both sources. Source failures
// are logged and yield empty sets.
func (s *Service) GetNormalizedRecords(ctx context.Context) contrib.Records {
	return s.reader.GetNormalizedRecords(ctx)
}

// GetGraph reads the sources and builds a fresh graph from them.
func (s *Service) GetGraph(ctx context.Context) *Graph {
	return Build(s.reader.GetNormalizedRecords(ctx))
}
