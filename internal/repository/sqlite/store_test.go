package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tickbox/tickbox/internal/repository"
	"github.com/tickbox/tickbox/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "tickbox.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestOpen_RequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestOpen_Reopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tickbox.db")
	ctx := context.Background()

	first, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	user := testutil.NewTestUser(t, "persist@example.com")
	if err := first.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	got, err := second.GetUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail after reopen failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("ID = %q, want %q", got.ID, user.ID)
	}
}

func TestStore_Users(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTestStore(t)

	user := testutil.NewTestUser(t, "alice@example.com")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byID, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Email != user.Email || byID.PasswordHash != user.PasswordHash {
		t.Errorf("unexpected user: %+v", byID)
	}
	if !byID.CreatedAt.Equal(user.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", byID.CreatedAt, user.CreatedAt)
	}

	dup := testutil.NewTestUser(t, "alice@example.com")
	if err := store.CreateUser(ctx, dup); !errors.Is(err, repository.ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}

	if _, err := store.GetUserByID(ctx, "missing"); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := store.GetUserByEmail(ctx, "missing@example.com"); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestStore_ConcurrentDuplicateEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTestStore(t)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.CreateUser(ctx, testutil.NewTestUser(t, "race@example.com"))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, repository.ErrEmailExists):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("expected exactly one success, got %d", successes)
	}
}

func TestStore_Todos(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTestStore(t)

	alice := testutil.NewTestUser(t, "alice@example.com")
	bob := testutil.NewTestUser(t, "bob@example.com")
	if err := store.CreateUser(ctx, alice); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := store.CreateUser(ctx, bob); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	first := testutil.NewTestTodo(t, alice.ID, "first")
	second := testutil.NewTestTodo(t, alice.ID, "second")
	foreign := testutil.NewTestTodo(t, bob.ID, "bob's")
	if err := store.CreateTodo(ctx, first); err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}
	if err := store.CreateTodo(ctx, second); err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}
	if err := store.CreateTodo(ctx, foreign); err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}

	todos, err := store.ListTodosByOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListTodosByOwner failed: %v", err)
	}
	if len(todos) != 2 || todos[0].ID != first.ID || todos[1].ID != second.ID {
		t.Fatalf("unexpected todos: %+v", todos)
	}
	for _, todo := range todos {
		if todo.OwnerID != alice.ID || todo.Completed {
			t.Errorf("unexpected todo: %+v", todo)
		}
	}

	updated, err := store.SetTodoCompleted(ctx, first.ID, alice.ID, true)
	if err != nil {
		t.Fatalf("SetTodoCompleted failed: %v", err)
	}
	if !updated.Completed || updated.Title != "first" {
		t.Errorf("unexpected updated todo: %+v", updated)
	}

	if _, err := store.SetTodoCompleted(ctx, foreign.ID, alice.ID, true); !errors.Is(err, repository.ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound for foreign todo, got %v", err)
	}
	if err := store.DeleteTodo(ctx, foreign.ID, alice.ID); !errors.Is(err, repository.ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound for foreign delete, got %v", err)
	}

	if err := store.DeleteTodo(ctx, first.ID, alice.ID); err != nil {
		t.Fatalf("DeleteTodo failed: %v", err)
	}
	if err := store.DeleteTodo(ctx, first.ID, alice.ID); !errors.Is(err, repository.ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound on second delete, got %v", err)
	}

	empty, err := store.ListTodosByOwner(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListTodosByOwner failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestStore_TodoRequiresExistingOwner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTestStore(t)

	err := store.CreateTodo(ctx, testutil.NewTestTodo(t, "ghost", "orphan"))
	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("CreateTodo() error = %v, want ErrUserNotFound", err)
	}
}
