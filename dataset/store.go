package dataset

import (
	"context"

	"accident-map/logger"
	"accident-map/model"
)

// Store holds the loaded dataset. It is written once at startup and read
// concurrently afterwards.
type Store struct {
	points []model.AccidentPoint
}

// NewStore wraps an already loaded dataset.
func NewStore(points []model.AccidentPoint) *Store {
	return &Store{points: points}
}

// LoadStore loads the dataset from source. A load failure is logged and
// yields an empty store so the map still works without accident markers.
func LoadStore(ctx context.Context, l *Loader, source string, log *logger.Logger) *Store {
	points, err := l.Load(ctx, source)
	if err != nil {
		log.Error("error loading accident data", "source", source, "error", err)
		return NewStore(nil)
	}
	log.Info("accident dataset loaded", "source", source, "points", len(points))
	return NewStore(points)
}

// All returns the dataset. The slice must not be modified.
func (s *Store) All() []model.AccidentPoint {
	return s.points
}

func (s *Store) Len() int {
	return len(s.points)
}
