//go:build integration

package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tickbox/tickbox/internal/testutil"
)

// ============================================================================
// Credential Store Integration Tests
// ============================================================================

func TestIntegrationUserRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("create"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byID, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Email != user.Email {
		t.Errorf("Email mismatch: got %q, want %q", byID.Email, user.Email)
	}
	if byID.PasswordHash != user.PasswordHash {
		t.Errorf("PasswordHash mismatch: got %q, want %q", byID.PasswordHash, user.PasswordHash)
	}

	byEmail, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("ID mismatch: got %q, want %q", byEmail.ID, user.ID)
	}
}

func TestIntegrationUserRepository_NotFound(t *testing.T) {
	ctx, repo := newTestEnv(t)

	if _, err := repo.GetUserByID(ctx, "nonexistent"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
	if _, err := repo.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationUserRepository_ConcurrentDuplicateEmail(t *testing.T) {
	ctx, repo := newTestEnv(t)

	email := testutil.UniqueEmail("race")
	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateUser(ctx, testutil.NewTestUser(t, email))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrEmailExists):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("expected exactly one successful signup, got %d", successes)
	}
}

// ============================================================================
// Todo Store Integration Tests
// ============================================================================

func TestIntegrationTodoRepository_OwnerScoping(t *testing.T) {
	ctx, repo := newTestEnv(t)

	alice := testutil.NewTestUser(t, testutil.UniqueEmail("alice"))
	bob := testutil.NewTestUser(t, testutil.UniqueEmail("bob"))
	if err := repo.CreateUser(ctx, alice); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := repo.CreateUser(ctx, bob); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	aliceTodo := testutil.NewTestTodo(t, alice.ID, "alice's")
	bobTodo := testutil.NewTestTodo(t, bob.ID, "bob's")
	if err := repo.CreateTodo(ctx, aliceTodo); err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}
	if err := repo.CreateTodo(ctx, bobTodo); err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}

	todos, err := repo.ListTodosByOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListTodosByOwner failed: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != aliceTodo.ID {
		t.Fatalf("expected only alice's todo, got %+v", todos)
	}

	if _, err := repo.SetTodoCompleted(ctx, bobTodo.ID, alice.ID, true); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Expected ErrTodoNotFound updating foreign todo, got: %v", err)
	}
	if err := repo.DeleteTodo(ctx, bobTodo.ID, alice.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Expected ErrTodoNotFound deleting foreign todo, got: %v", err)
	}

	bobs, err := repo.ListTodosByOwner(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListTodosByOwner failed: %v", err)
	}
	if len(bobs) != 1 || bobs[0].Completed {
		t.Errorf("bob's todo should be untouched, got %+v", bobs)
	}
}

func TestIntegrationTodoRepository_UnknownOwner(t *testing.T) {
	ctx, repo := newTestEnv(t)

	err := repo.CreateTodo(ctx, testutil.NewTestTodo(t, "ghost", "orphan"))
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationTodoRepository_UpdateAndDelete(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("update"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	todo := testutil.NewTestTodo(t, user.ID, "Buy milk")
	if err := repo.CreateTodo(ctx, todo); err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}

	updated, err := repo.SetTodoCompleted(ctx, todo.ID, user.ID, true)
	if err != nil {
		t.Fatalf("SetTodoCompleted failed: %v", err)
	}
	if !updated.Completed || updated.ID != todo.ID {
		t.Errorf("unexpected updated todo: %+v", updated)
	}

	if err := repo.DeleteTodo(ctx, todo.ID, user.ID); err != nil {
		t.Fatalf("DeleteTodo failed: %v", err)
	}
	if err := repo.DeleteTodo(ctx, todo.ID, user.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Expected ErrTodoNotFound on second delete, got: %v", err)
	}
}

func newTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, repo
}
