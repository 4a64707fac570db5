package service

import "context"

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// AppService reports service health and usage statistics.
type AppService struct {
	db    HealthChecker
	cache HealthChecker
	users UserRepository
	files FileRepository
}

// NewAppService creates a new app service
func NewAppService(db, cache HealthChecker, users UserRepository, files FileRepository) *AppService {
	return &AppService{
		db:    db,
		cache: cache,
		users: users,
		files: files,
	}
}

// Status reports the readiness of the database and the session cache.
type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// Status pings both backing stores.
func (s *AppService) Status(ctx context.Context) Status {
	return Status{
		Redis: s.cache.Ping(ctx) == nil,
		DB:    s.db.Ping(ctx) == nil,
	}
}

// Stats holds the total number of users and files.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// Stats counts users and files.
func (s *AppService) Stats(ctx context.Context) (Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return Stats{}, err
	}

	files, err := s.files.Count(ctx)
	if err != nil {
		return Stats{}, err
	}

	return Stats{Users: users, Files: files}, nil
}
