package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/tasktrack/internal/common"
	"github.com/dmitrijs2005/tasktrack/internal/dbx"
	"github.com/dmitrijs2005/tasktrack/internal/server/auth"
	"github.com/dmitrijs2005/tasktrack/internal/server/config"
	"github.com/dmitrijs2005/tasktrack/internal/server/models"
	tasksrepo "github.com/dmitrijs2005/tasktrack/internal/server/repositories/tasks"
	usersrepo "github.com/dmitrijs2005/tasktrack/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm *fakeRepoManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		BcryptCost:            bcrypt.MinCost,
	}
	return NewUserService(db, rm, cfg)
}

type fakeUsersRepo struct {
	createdUser *models.User
	createOut   *models.User
	createErr   error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.createdUser = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-1"
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

// fakeTasksRepo backs TaskService tests in task_test.go; the state map lets
// the concurrency test exercise real flips.
type fakeTasksRepo struct {
	mu        sync.Mutex
	completed map[string]bool

	listOut []*models.Task
	listErr error

	createOut *models.Task
	createErr error

	toggleErr error

	deleteOut *models.Task
	deleteErr error
}

func (f *fakeTasksRepo) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	task.ID = "t-1"
	return task, nil
}

func (f *fakeTasksRepo) ToggleCompleted(ctx context.Context, userID string, taskID string) (bool, error) {
	if f.toggleErr != nil {
		return false, f.toggleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completed == nil {
		f.completed = map[string]bool{}
	}
	f.completed[taskID] = !f.completed[taskID]
	return f.completed[taskID], nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, userID string, taskID string) (*models.Task, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.deleteOut, nil
}

type fakeRepoManager struct {
	users *fakeUsersRepo
	tasks *fakeTasksRepo
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (f *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository             { return f.users }
func (f *fakeRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository             { return f.tasks }

// --- tests ---

func TestUserService_Register_HashesPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{}
	svc := newUserService(t, db, &fakeRepoManager{users: repo})

	u, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.ID == "" || u.Username != "alice" || u.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if repo.createdUser.PasswordHash == "s3cret" {
		t.Fatal("raw password stored instead of hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.createdUser.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{createErr: common.ErrorAlreadyExists}
	svc := newUserService(t, db, &fakeRepoManager{users: repo})

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestUserService_Login_Success_TokenEmbedsIdentity(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	repo := &fakeUsersRepo{getOut: &models.User{ID: "u-42", Username: "alice", Email: "alice@example.com", PasswordHash: string(hash)}}
	svc := newUserService(t, db, &fakeRepoManager{users: repo})

	token, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	userID, username, err := auth.ParseToken(token, []byte("k"))
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if userID != "u-42" || username != "alice" {
		t.Fatalf("token identity mismatch: %q %q", userID, username)
	}
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{getErr: common.ErrorNotFound}
	svc := newUserService(t, db, &fakeRepoManager{users: repo})

	token, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if token != "" {
		t.Fatal("token must be empty on failure")
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	repo := &fakeUsersRepo{getOut: &models.User{ID: "u-1", Username: "alice", PasswordHash: string(hash)}}
	svc := newUserService(t, db, &fakeRepoManager{users: repo})

	token, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, common.ErrorInvalidCredentials) {
		t.Fatalf("want common.ErrorInvalidCredentials, got %v", err)
	}
	if token != "" {
		t.Fatal("token must be empty on failure")
	}
}

func TestUserService_Login_RepoFailure(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{getErr: errors.New("db down")}
	svc := newUserService(t, db, &fakeRepoManager{users: repo})

	_, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}
