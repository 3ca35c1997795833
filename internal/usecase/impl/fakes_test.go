package impl

import (
	"context"
	"sync"
	"time"

	"taskops/internal/domain/entity"
	"taskops/internal/domain/repository"
	"taskops/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// memoryStore is a shared in-memory backing store for the fake repositories.
type memoryStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
	tasks map[uuid.UUID]*entity.Task
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users: make(map[uuid.UUID]*entity.User),
		tasks: make(map[uuid.UUID]*entity.Task),
	}
}

// --- user repository fake ---

type fakeUserRepository struct {
	store *memoryStore

	// createErr, when set, is returned by Create to simulate storage failures.
	createErr error
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	user, ok := repo.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	for _, user := range repo.store.users {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (repo *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	if repo.createErr != nil {
		return repo.createErr
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	user.ID = uuid.New()
	copied := *user
	repo.store.users[user.ID] = &copied

	return nil
}

// --- task repository fake ---

type fakeTaskRepository struct {
	store *memoryStore

	createErr error
}

func (repo *fakeTaskRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Task, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	task, ok := repo.store.tasks[id]
	if !ok {
		return nil, repository.ErrTaskNotFound
	}
	copied := *task

	return &copied, nil
}

func (repo *fakeTaskRepository) ListByOwner(_ context.Context, ownerID uuid.UUID, offset, limit int) ([]*entity.Task, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	owned := make([]*entity.Task, 0)
	for _, task := range repo.store.tasks {
		if task.OwnerID == ownerID {
			copied := *task
			owned = append(owned, &copied)
		}
	}
	if offset >= len(owned) {
		return []*entity.Task{}, nil
	}
	owned = owned[offset:]
	if limit < len(owned) {
		owned = owned[:limit]
	}

	return owned, nil
}

func (repo *fakeTaskRepository) Create(_ context.Context, task *entity.Task) error {
	if repo.createErr != nil {
		return repo.createErr
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	task.ID = uuid.New()
	copied := *task
	repo.store.tasks[task.ID] = &copied

	return nil
}

func (repo *fakeTaskRepository) Update(_ context.Context, task *entity.Task) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	stored, ok := repo.store.tasks[task.ID]
	if !ok {
		return repository.ErrTaskNotFound
	}
	stored.Title = task.Title
	stored.Description = task.Description
	stored.Status = task.Status

	return nil
}

func (repo *fakeTaskRepository) Delete(_ context.Context, id uuid.UUID) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(repo.store.tasks, id)

	return nil
}

// --- transaction manager fake ---

type fakeRepositoryFactory struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
}

func (f *fakeRepositoryFactory) NewUserRepository() repository.UserRepository {
	return f.userRepo
}

func (f *fakeRepositoryFactory) NewTaskRepository() repository.TaskRepository {
	return f.taskRepo
}

// fakeTxManager runs the function directly against the in-memory repositories.
// There is no rollback; tests that need failure paths inject repo errors.
type fakeTxManager struct {
	factory *fakeRepositoryFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// --- password hasher fake ---

// fakeHasher marks hashes with a prefix so tests can assert the raw password
// never ends up stored.
type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// --- token service fake ---

type fakeTokenService struct {
	issueErr error
}

func (s *fakeTokenService) Issue(userID uuid.UUID) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}

	return "token-for-" + userID.String(), nil
}

func (s *fakeTokenService) Validate(_ string) (*service.Claims, error) {
	return nil, errors.New("not used in these tests")
}

func (s *fakeTokenService) AccessTokenDuration() time.Duration {
	return 30 * time.Minute
}
