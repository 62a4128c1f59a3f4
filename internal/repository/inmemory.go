package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"goaltracker/internal/domain"
)

// InMemoryUserRepository keeps users in a map. Useful for tests and
// local development without a database.
type InMemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]domain.User
	nextID uint
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:  make(map[uint]domain.User),
		nextID: 1,
	}
}

func (r *InMemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *InMemoryUserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryUserRepository) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := u
	return &user, nil
}

// Remove deletes a user record. Not part of UserRepository; exists so
// tests can exercise the guard's deleted-user path.
func (r *InMemoryUserRepository) Remove(id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

// Count reports the number of stored users.
func (r *InMemoryUserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// InMemoryGoalRepository keeps goals in a map, guarded by a mutex.
type InMemoryGoalRepository struct {
	mu     sync.RWMutex
	goals  map[uint]domain.Goal
	nextID uint
}

func NewInMemoryGoalRepository() *InMemoryGoalRepository {
	return &InMemoryGoalRepository{
		goals:  make(map[uint]domain.Goal),
		nextID: 1,
	}
}

func (r *InMemoryGoalRepository) Create(_ context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	goal.ID = r.nextID
	r.nextID++
	goal.CreatedAt = now
	goal.UpdatedAt = now
	r.goals[goal.ID] = *goal
	return nil
}

func (r *InMemoryGoalRepository) FindByID(_ context.Context, id uint) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.goals[id]
	if !ok {
		return nil, ErrNotFound
	}
	goal := g
	return &goal, nil
}

func (r *InMemoryGoalRepository) ListByUser(_ context.Context, userID uint) ([]domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	goals := make([]domain.Goal, 0)
	for _, g := range r.goals {
		if g.UserID == userID {
			goals = append(goals, g)
		}
	}
	// Stable insertion order, IDs are assigned monotonically
	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })
	return goals, nil
}

func (r *InMemoryGoalRepository) Save(_ context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[goal.ID]; !ok {
		return ErrNotFound
	}
	goal.UpdatedAt = time.Now()
	r.goals[goal.ID] = *goal
	return nil
}

func (r *InMemoryGoalRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[id]; !ok {
		return ErrNotFound
	}
	delete(r.goals, id)
	return nil
}
