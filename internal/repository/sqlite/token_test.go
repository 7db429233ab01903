package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/readme-studio/internal/apperror"
	"github.com/sakif/readme-studio/internal/model"
)

func TestSaveToken_AndGetToken(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 111, "carol")

	tok := &model.ProviderToken{
		UserID:      user.ID,
		Provider:    "github",
		AccessToken: "gho_abc123",
	}
	if err := db.SaveToken(context.Background(), tok); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}

	got, err := db.GetToken(context.Background(), user.ID, "github")
	if err != nil {
		t.Fatalf("GetToken() error = %v", err)
	}
	if got.AccessToken != "gho_abc123" {
		t.Errorf("AccessToken = %q, want %q", got.AccessToken, "gho_abc123")
	}
	if !got.ExpiresAt.IsZero() {
		t.Errorf("ExpiresAt = %v, want zero time (no expiry)", got.ExpiresAt)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("SaveToken() did not set UpdatedAt")
	}
}

func TestSaveToken_OverwritesPrevious(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 222, "dave")

	ctx := context.Background()
	first := &model.ProviderToken{UserID: user.ID, Provider: "github", AccessToken: "gho_old"}
	if err := db.SaveToken(ctx, first); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}

	second := &model.ProviderToken{
		UserID:      user.ID,
		Provider:    "github",
		AccessToken: "gho_new",
		ExpiresAt:   time.Now().Add(8 * time.Hour).UTC().Truncate(time.Second),
	}
	if err := db.SaveToken(ctx, second); err != nil {
		t.Fatalf("SaveToken() second error = %v", err)
	}

	got, err := db.GetToken(ctx, user.ID, "github")
	if err != nil {
		t.Fatalf("GetToken() error = %v", err)
	}
	if got.AccessToken != "gho_new" {
		t.Errorf("AccessToken = %q, want the overwritten token %q", got.AccessToken, "gho_new")
	}
	if got.ExpiresAt.IsZero() {
		t.Error("ExpiresAt should carry the new expiry")
	}
}

func TestGetToken_NotFound(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 333, "erin")

	_, err := db.GetToken(context.Background(), user.ID, "github")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetToken() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteToken(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, 444, "frank")
	ctx := context.Background()

	tok := &model.ProviderToken{UserID: user.ID, Provider: "github", AccessToken: "gho_x"}
	if err := db.SaveToken(ctx, tok); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}

	if err := db.DeleteToken(ctx, user.ID, "github"); err != nil {
		t.Fatalf("DeleteToken() error = %v", err)
	}

	if _, err := db.GetToken(ctx, user.ID, "github"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetToken() after delete error = %v, want ErrNotFound", err)
	}

	// Deleting again is a no-op, not an error
	if err := db.DeleteToken(ctx, user.ID, "github"); err != nil {
		t.Errorf("DeleteToken() repeated error = %v", err)
	}
}
