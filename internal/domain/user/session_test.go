package user

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coffee-storefront/internal/infrastructure/storage"
)

type stubIssuer struct {
	token string
	err   error
	calls int
}

func (s *stubIssuer) GenerateAccessToken(userID, username string) (string, error) {
	s.calls++
	return s.token, s.err
}

func newSession(t *testing.T, store storage.Store) (*Session, *stubIssuer) {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	issuer := &stubIssuer{token: "issued-token"}
	return Open(context.Background(), store, issuer, log), issuer
}

func storedUser(t *testing.T, store storage.Store, key string) User {
	t.Helper()
	raw, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	var u User
	require.NoError(t, json.Unmarshal([]byte(raw), &u))
	return u
}

func TestLoginDerivesNameAndPersists(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	session, issuer := newSession(t, store)

	token, err := session.Login(ctx, User{ID: "u1", FirstName: "Sara", LastName: " "}, "given-token")
	require.NoError(t, err)
	assert.Equal(t, "given-token", token)
	assert.Zero(t, issuer.calls)

	current, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, "Sara", current.Name)
	assert.Equal(t, "Sara", storedUser(t, store, UserKey).Name)

	stored, ok := session.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "given-token", stored)
	assert.True(t, session.CheckAuth(ctx))
}

func TestLoginWithoutTokenIssuesOne(t *testing.T) {
	ctx := context.Background()
	session, issuer := newSession(t, storage.NewMemory())

	token, err := session.Login(ctx, User{ID: "u1", Name: "Ali"}, "")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)
	assert.Equal(t, 1, issuer.calls)

	current, _ := session.Current()
	assert.Equal(t, "Ali", current.Name)
}

func TestLoginFailsWhenTokenCannotBeIssued(t *testing.T) {
	session, issuer := newSession(t, storage.NewMemory())
	issuer.err = errors.New("signing failed")

	_, err := session.Login(context.Background(), User{ID: "u1"}, "")
	assert.Error(t, err)
	assert.False(t, session.IsAuthenticated())
}

func TestOpenRestoresSession(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Set(ctx, UserKey, `{"_id":"u1","firstName":"Sara","lastName":"Karimi"}`))
	require.NoError(t, store.Set(ctx, TokenKey, "tok"))

	session, _ := newSession(t, store)
	current, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, "Sara Karimi", current.Name)
}

func TestOpenNeedsBothHalves(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Set(ctx, UserKey, `{"_id":"u1"}`))

	session, _ := newSession(t, store)
	assert.False(t, session.IsAuthenticated())
}

func TestOpenMigratesLegacyKeys(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Set(ctx, legacyUserKey, `{"_id":"u9","username":"old"}`))
	require.NoError(t, store.Set(ctx, legacyTokenKey, "legacy-token"))

	session, _ := newSession(t, store)
	current, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, "old", current.Username)

	assert.Equal(t, "u9", storedUser(t, store, UserKey).ID)
	token, err := store.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "legacy-token", token)

	_, err = store.Get(ctx, legacyUserKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.Get(ctx, legacyTokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOpenIgnoresHalfLegacyRecord(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Set(ctx, legacyUserKey, `{"_id":"u9"}`))

	session, _ := newSession(t, store)
	assert.False(t, session.IsAuthenticated())

	_, err := store.Get(ctx, legacyUserKey)
	assert.NoError(t, err, "incomplete legacy record is left alone")
}

func TestOpenClearsCorruptRecord(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Set(ctx, UserKey, "{oops"))
	require.NoError(t, store.Set(ctx, TokenKey, "tok"))

	session, _ := newSession(t, store)
	assert.False(t, session.IsAuthenticated())
	assert.Equal(t, 0, store.Len())
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	session, _ := newSession(t, store)
	_, err := session.Login(ctx, User{ID: "u1"}, "tok")
	require.NoError(t, err)

	require.NoError(t, session.Logout(ctx))
	assert.False(t, session.IsAuthenticated())
	assert.False(t, session.CheckAuth(ctx))
	assert.Equal(t, 0, store.Len())
}

func TestCheckAuthNeedsStoredToken(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	session, _ := newSession(t, store)
	_, err := session.Login(ctx, User{ID: "u1"}, "tok")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, TokenKey))
	assert.True(t, session.IsAuthenticated())
	assert.False(t, session.CheckAuth(ctx))
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	session, _ := newSession(t, store)

	_, err := session.Update(ctx, Patch{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = session.Login(ctx, User{ID: "u1", Phone: "0912"}, "tok")
	require.NoError(t, err)

	first, last := "Reza", "Ahmadi"
	updated, err := session.Update(ctx, Patch{FirstName: &first, LastName: &last})
	require.NoError(t, err)
	assert.Equal(t, "Reza Ahmadi", updated.Name)
	assert.Equal(t, "0912", updated.Phone)
	assert.Equal(t, updated, storedUser(t, store, UserKey))
}

func TestUpdateCannotChangeRoles(t *testing.T) {
	ctx := context.Background()
	session, _ := newSession(t, storage.NewMemory())
	_, err := session.Login(ctx, User{ID: "u1", Roles: []string{"customer"}}, "tok")
	require.NoError(t, err)

	var patch Patch
	require.NoError(t, json.Unmarshal([]byte(`{"roles":["admin"],"phone":"0912"}`), &patch))
	updated, err := session.Update(ctx, patch)
	require.NoError(t, err)
	assert.Equal(t, []string{"customer"}, updated.Roles)
	assert.Equal(t, "0912", updated.Phone)
}
