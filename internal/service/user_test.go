package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msomdec/taskboard/internal/domain"
	"github.com/msomdec/taskboard/internal/service"
)

func TestUserService_Create_NormalizesEmail(t *testing.T) {
	db := newTestDB(t)
	users := service.NewUserService(db.Users(), stubTokens{})
	ctx := context.Background()

	user, err := users.Create(ctx, "  TEST@EXAMPLE.COM  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Email != "test@example.com" {
		t.Fatalf("expected test@example.com, got %q", user.Email)
	}
	if user.ID == "" || user.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at to be set, got %+v", user)
	}

	stored, err := db.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Email != "test@example.com" {
		t.Fatalf("expected stored email test@example.com, got %q", stored.Email)
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	repo := newFakeUserRepo()
	users := service.NewUserService(repo, stubTokens{})
	ctx := context.Background()

	if _, err := users.Create(ctx, "dup@example.com"); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := users.Create(ctx, "  DUP@example.com")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if repo.creates != 1 {
		t.Fatalf("expected one repository Create, got %d", repo.creates)
	}
}

func TestUserService_Create_InvalidEmail(t *testing.T) {
	tests := []string{"", "   ", "@example.com", "test@", "test @example.com", "test@.com", "test", "te\u00a0st@example.com"}

	for _, email := range tests {
		t.Run(email, func(t *testing.T) {
			repo := newFakeUserRepo()
			users := service.NewUserService(repo, stubTokens{})

			_, err := users.Create(context.Background(), email)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if repo.creates != 0 {
				t.Fatal("expected repository Create not to be called")
			}
		})
	}
}

func TestUserService_Login_RejectsUnicodeWhitespace(t *testing.T) {
	repo := newFakeUserRepo()
	users := service.NewUserService(repo, stubTokens{})

	for _, email := range []string{"te\vst@example.com", "te\u00a0st@example.com", "te\u2003st@example.com"} {
		if _, err := users.Login(context.Background(), email); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("Login(%q): expected ErrInvalidInput, got %v", email, err)
		}
	}
	if repo.creates != 0 {
		t.Fatalf("expected no repository Create, got %d", repo.creates)
	}
}

func TestUserService_Login_FindOrCreate(t *testing.T) {
	db := newTestDB(t)
	users := service.NewUserService(db.Users(), service.NewTokenService(testJWTSecret, time.Hour))
	ctx := context.Background()

	first, err := users.Login(ctx, "login@example.com")
	if err != nil {
		t.Fatalf("first Login: %v", err)
	}
	if !first.IsNew {
		t.Fatal("expected first login to create the user")
	}
	if first.Token == "" {
		t.Fatal("expected non-empty token")
	}

	second, err := users.Login(ctx, "  LOGIN@example.com ")
	if err != nil {
		t.Fatalf("second Login: %v", err)
	}
	if second.IsNew {
		t.Fatal("expected second login to reuse the user")
	}
	if second.User.ID != first.User.ID {
		t.Fatalf("expected same user id, got %s and %s", first.User.ID, second.User.ID)
	}
}

func TestUserService_Login_TokenCarriesIdentity(t *testing.T) {
	tokens := service.NewTokenService(testJWTSecret, time.Hour)
	users := service.NewUserService(newFakeUserRepo(), tokens)

	result, err := users.Login(context.Background(), "who@example.com")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := tokens.Validate(result.Token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != result.User.ID || claims.Email != "who@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestUserService_Login_InvalidEmail(t *testing.T) {
	repo := newFakeUserRepo()
	users := service.NewUserService(repo, stubTokens{})

	_, err := users.Login(context.Background(), "not-an-email")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.creates != 0 {
		t.Fatal("expected repository Create not to be called")
	}
}

// Unknown users come back as nil without an error, unlike task lookups which
// fail with ErrNotFound.
func TestUserService_FindReturnsNilWhenMissing(t *testing.T) {
	users := service.NewUserService(newFakeUserRepo(), stubTokens{})
	ctx := context.Background()

	byID, err := users.FindByID(ctx, "nope")
	if err != nil || byID != nil {
		t.Fatalf("FindByID: expected (nil, nil), got (%v, %v)", byID, err)
	}

	byEmail, err := users.FindByEmail(ctx, "nobody@example.com")
	if err != nil || byEmail != nil {
		t.Fatalf("FindByEmail: expected (nil, nil), got (%v, %v)", byEmail, err)
	}
}

func TestUserService_FindByEmail_NormalizesWithoutValidating(t *testing.T) {
	repo := newFakeUserRepo()
	users := service.NewUserService(repo, stubTokens{})
	ctx := context.Background()

	created, err := users.Create(ctx, "find@example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := users.FindByEmail(ctx, "  FIND@EXAMPLE.COM ")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("expected user %s, got %v", created.ID, found)
	}

	// Malformed but non-empty input is looked up, not rejected.
	missing, err := users.FindByEmail(ctx, "not an email")
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", missing, err)
	}
}

func TestUserService_Find_EmptyInput(t *testing.T) {
	users := service.NewUserService(newFakeUserRepo(), stubTokens{})
	ctx := context.Background()

	if _, err := users.FindByID(ctx, "  "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("FindByID: expected ErrInvalidInput, got %v", err)
	}
	if _, err := users.FindByEmail(ctx, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("FindByEmail: expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_FindByID_TrimsID(t *testing.T) {
	repo := newFakeUserRepo()
	users := service.NewUserService(repo, stubTokens{})
	ctx := context.Background()

	created, err := users.Create(ctx, "trim@example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := users.FindByID(ctx, "  "+created.ID+"  ")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.Email != "trim@example.com" {
		t.Fatalf("expected trim@example.com, got %v", found)
	}
}
