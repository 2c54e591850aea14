package service

import (
	"github.com/PolySpeedRunners/INF8808-Project/internal/adapters/repository"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of refresh workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the refresh queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the in-memory snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithScaleKeys sets the stats keys normalized by Profile.
func WithScaleKeys(keys []string) Option {
	return func(s *Service) {
		if len(keys) > 0 {
			s.scaleKeys = append([]string(nil), keys...)
		}
	}
}
