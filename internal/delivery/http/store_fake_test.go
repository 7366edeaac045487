package http_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// memoryStore is an in-memory credential and session store for HTTP tests.
type memoryStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	hashes   map[uuid.UUID]string
	sessions map[uuid.UUID]*entity.Session
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    map[uuid.UUID]*entity.User{},
		hashes:   map[uuid.UUID]string{},
		sessions: map[uuid.UUID]*entity.Session{},
	}
}

func (s *memoryStore) NewUserRepository() repository.UserRepository       { return (*memoryUsers)(s) }
func (s *memoryStore) NewSessionRepository() repository.SessionRepository { return (*memorySessions)(s) }

func (s *memoryStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s)
}

func (s *memoryStore) sessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

type memoryUsers memoryStore

func (r *memoryUsers) Create(_ context.Context, user *entity.User, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return errors.WithStack(repository.ErrDuplicateEmail)
		}
	}

	now := time.Now().UTC()
	user.ID = uuid.New()
	user.CreatedAt, user.UpdatedAt = now, now

	stored := *user
	r.users[user.ID] = &stored
	r.hashes[user.ID] = passwordHash

	return nil
}

func (r *memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	out := *u

	return &out, nil
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			out := *u

			return &out, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUsers) FindCredentialsByEmail(ctx context.Context, email string) (*entity.Credentials, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return &entity.Credentials{User: user, PasswordHash: r.hashes[user.ID]}, nil
}

func (r *memoryUsers) Update(_ context.Context, id uuid.UUID, patch *entity.UserPatch) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Picture != nil {
		u.Picture = *patch.Picture
	}
	if patch.PasswordHash != nil {
		r.hashes[id] = *patch.PasswordHash
	}
	u.UpdatedAt = time.Now().UTC()
	out := *u

	return &out, nil
}

func (r *memoryUsers) UpsertByEmail(ctx context.Context, user *entity.User) (*entity.User, error) {
	existing, err := r.FindByEmail(ctx, user.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		created := *user
		if err := r.Create(ctx, &created, ""); err != nil {
			return nil, err
		}

		return &created, nil
	}

	return r.Update(ctx, existing.ID, &entity.UserPatch{Name: &user.Name, Picture: &user.Picture})
}

type memorySessions memoryStore

func (r *memorySessions) Create(_ context.Context, userID uuid.UUID, userAgent string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return nil, repository.ErrUserNotFound
	}

	now := time.Now().UTC()
	session := &entity.Session{
		ID:        uuid.New(),
		UserID:    userID,
		UserAgent: userAgent,
		Valid:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.sessions[session.ID] = session
	out := *session

	return &out, nil
}

func (r *memorySessions) FindByID(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	out := *s

	return &out, nil
}

func (r *memorySessions) Find(_ context.Context, filter entity.SessionFilter) ([]*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Session
	for _, s := range r.sessions {
		if s.UserID != filter.UserID {
			continue
		}
		if filter.Valid != nil && s.Valid != *filter.Valid {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (r *memorySessions) Update(_ context.Context, id uuid.UUID, patch entity.SessionPatch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || patch.Valid == nil || *patch.Valid || !s.Valid {
		return false, nil
	}
	s.Valid = false
	s.UpdatedAt = time.Now().UTC()

	return true, nil
}
