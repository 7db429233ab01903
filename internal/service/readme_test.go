package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/readme-studio/internal/apperror"
	"github.com/sakif/readme-studio/internal/model"
)

// =========================================================================
// FAKES
// =========================================================================

type fakeBroker struct {
	token string
	err   error
	calls int
}

func (f *fakeBroker) AccessToken(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

type fakeDirectory struct {
	repos     []model.Repository
	listErr   error
	repo      *model.Repository
	getErr    error
	readme    string
	readmeOK  bool
	readmeErr error

	listCalls   int
	getCalls    int
	readmeCalls int
	gotToken    string
	gotRepoID   string
}

func (f *fakeDirectory) ListRepositories(_ context.Context, token string) ([]model.Repository, error) {
	f.listCalls++
	f.gotToken = token
	return f.repos, f.listErr
}

func (f *fakeDirectory) GetRepository(_ context.Context, token, repoID string) (*model.Repository, error) {
	f.getCalls++
	f.gotToken = token
	f.gotRepoID = repoID
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.repo, nil
}

func (f *fakeDirectory) GetReadme(_ context.Context, _, _ string) (string, bool, error) {
	f.readmeCalls++
	return f.readme, f.readmeOK, f.readmeErr
}

type fakeGenerator struct {
	out       string
	err       error
	calls     int
	gotPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.gotPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func newTestService(broker *fakeBroker, dir *fakeDirectory, gen *fakeGenerator) *ReadmeService {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewReadmeService(broker, dir, gen, logger)
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestListRepositories(t *testing.T) {
	broker := &fakeBroker{token: "gho_test"}
	dir := &fakeDirectory{repos: []model.Repository{{ID: 42, FullName: "alice/demo"}}}
	svc := newTestService(broker, dir, &fakeGenerator{})

	repos, err := svc.ListRepositories(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "gho_test", dir.gotToken)
}

func TestListRepositories_TokenMissingShortCircuits(t *testing.T) {
	broker := &fakeBroker{err: apperror.TokenMissing()}
	dir := &fakeDirectory{}
	svc := newTestService(broker, dir, &fakeGenerator{})

	_, err := svc.ListRepositories(context.Background(), "user-1")
	assert.True(t, errors.Is(err, apperror.ErrTokenMissing))
	assert.Zero(t, dir.listCalls, "GitHub must not be called without a token")
}

func TestListRepositories_UpstreamErrorPropagates(t *testing.T) {
	broker := &fakeBroker{token: "gho_test"}
	dir := &fakeDirectory{listErr: apperror.Upstream(http.StatusForbidden)}
	svc := newTestService(broker, dir, &fakeGenerator{})

	_, err := svc.ListRepositories(context.Background(), "user-1")

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusForbidden, appErr.Status)
}

// =========================================================================
// GENERATE TESTS
// =========================================================================

func TestGenerate_EndToEnd(t *testing.T) {
	broker := &fakeBroker{token: "gho_test"}
	dir := &fakeDirectory{
		repo:     &model.Repository{ID: 42, FullName: "alice/demo", Description: "A demo"},
		readmeOK: false, // GitHub answered 404 for the readme
	}
	gen := &fakeGenerator{out: "```html<h1>demo</h1>```"}
	svc := newTestService(broker, dir, gen)

	repo, generated, err := svc.Generate(context.Background(), "user-1", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), repo.ID)
	assert.Equal(t, "<h1>demo</h1>", generated, "fences stripped, whitespace trimmed")

	assert.Equal(t, "42", dir.gotRepoID)
	assert.Contains(t, gen.gotPrompt, "Repo: https://github.com/alice/demo")
	assert.Contains(t, gen.gotPrompt, "Description: A demo")
	// No README on GitHub → prompt carries the fixed placeholder
	assert.Contains(t, gen.gotPrompt, "Existing README content (if any): None")
}

func TestGenerate_ExistingReadmeFlowsIntoPrompt(t *testing.T) {
	broker := &fakeBroker{token: "gho_test"}
	dir := &fakeDirectory{
		repo:     &model.Repository{ID: 42, FullName: "alice/demo"},
		readme:   "# demo\nold content",
		readmeOK: true,
	}
	gen := &fakeGenerator{out: "<h1>ok</h1>"}
	svc := newTestService(broker, dir, gen)

	_, _, err := svc.Generate(context.Background(), "user-1", "42")
	require.NoError(t, err)
	assert.Contains(t, gen.gotPrompt, "Existing README content (if any): # demo\nold content")
}

func TestGenerate_TokenMissingShortCircuits(t *testing.T) {
	broker := &fakeBroker{err: apperror.TokenMissing()}
	dir := &fakeDirectory{}
	gen := &fakeGenerator{}
	svc := newTestService(broker, dir, gen)

	_, _, err := svc.Generate(context.Background(), "user-1", "42")
	assert.True(t, errors.Is(err, apperror.ErrTokenMissing))
	assert.Zero(t, dir.getCalls)
	assert.Zero(t, gen.calls)
}

// Repository lookup failure passes the upstream status through and the
// generation service is never invoked.
func TestGenerate_RepoLookupFailureSkipsGeneration(t *testing.T) {
	broker := &fakeBroker{token: "gho_test"}
	dir := &fakeDirectory{getErr: apperror.Upstream(http.StatusNotFound)}
	gen := &fakeGenerator{}
	svc := newTestService(broker, dir, gen)

	_, _, err := svc.Generate(context.Background(), "user-1", "999")

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Zero(t, dir.readmeCalls)
	assert.Zero(t, gen.calls, "generation must not run when the repo lookup fails")
}

func TestGenerate_GeneratorFailureIsGenerationError(t *testing.T) {
	broker := &fakeBroker{token: "gho_test"}
	dir := &fakeDirectory{repo: &model.Repository{ID: 42, FullName: "alice/demo"}}
	gen := &fakeGenerator{err: errors.New("connection reset")}
	svc := newTestService(broker, dir, gen)

	_, _, err := svc.Generate(context.Background(), "user-1", "42")
	assert.True(t, errors.Is(err, apperror.ErrGeneration))
	// Provider detail is logged, not surfaced
	assert.NotContains(t, err.Error(), "connection reset")
}

func TestGenerate_OutputSanitizingToEmptyIsGenerationError(t *testing.T) {
	broker := &fakeBroker{token: "gho_test"}
	dir := &fakeDirectory{repo: &model.Repository{ID: 42, FullName: "alice/demo"}}
	gen := &fakeGenerator{out: "```html\n```"}
	svc := newTestService(broker, dir, gen)

	_, _, err := svc.Generate(context.Background(), "user-1", "42")
	assert.True(t, errors.Is(err, apperror.ErrGeneration),
		"an output that sanitizes to nothing must not be an empty success")
}

func TestGenerate_PromptIsDeterministicAcrossCalls(t *testing.T) {
	broker := &fakeBroker{token: "gho_test"}
	dir := &fakeDirectory{repo: &model.Repository{ID: 42, FullName: "alice/demo", Description: "A demo"}}
	gen := &fakeGenerator{out: "<h1>x</h1>"}
	svc := newTestService(broker, dir, gen)

	_, _, err := svc.Generate(context.Background(), "user-1", "42")
	require.NoError(t, err)
	first := gen.gotPrompt

	_, _, err = svc.Generate(context.Background(), "user-1", "42")
	require.NoError(t, err)

	assert.Equal(t, first, gen.gotPrompt)
	assert.False(t, strings.Contains(first, "%s"), "all template slots must be filled")
}
