package store

import (
	"context"
	"sync"

	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/models"
)

// memoryUserRepository keeps users in process memory keyed by identity.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
	ids   idGenerator
}

func NewMemoryUserRepository(ids idGenerator, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating in-memory user repository")
	return &memoryUserRepository{
		users: make(map[string]models.User),
		ids:   ids,
	}
}

func (r *memoryUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Identity]; exists {
		return models.User{}, ErrLoginAlreadyExists
	}
	if user.ID == "" {
		user.ID = r.ids.Generate()
	}
	r.users[user.Identity] = user

	return user, nil
}

func (r *memoryUserRepository) FindUserByIdentity(ctx context.Context, identity string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[identity]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	return user, nil
}
