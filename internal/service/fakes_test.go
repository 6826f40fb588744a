package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/mock"
	"github.com/MKhiriev/fast-home/internal/store"
	"github.com/MKhiriev/fast-home/internal/token"
	"github.com/MKhiriev/fast-home/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret  = "service-test-secret"
	testIssuer  = "fast-home"
	testBaseURL = "https://fasthome.test"
)

// memUsers is an in-memory UserRepository with the same compare-and-clear
// semantics as the SQL one.
type memUsers struct {
	mu    sync.Mutex
	users map[int64]*models.User
}

func newMemUsers(users ...models.User) *memUsers {
	m := &memUsers{users: make(map[int64]*models.User)}
	for _, u := range users {
		u := u
		m.users[u.UserID] = &u
	}
	return m
}

func (m *memUsers) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var maxID int64
	for id, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return models.User{}, store.ErrUserAlreadyExists
		}
		maxID = max(maxID, id)
	}
	user.UserID = maxID + 1
	m.users[user.UserID] = &user
	return user, nil
}

func (m *memUsers) find(match func(*models.User) bool) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return *u, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *memUsers) FindUserByUsername(_ context.Context, username string) (models.User, error) {
	return m.find(func(u *models.User) bool { return u.Username == username })
}

func (m *memUsers) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	return m.find(func(u *models.User) bool { return u.Email == email })
}

func (m *memUsers) FindUserByID(_ context.Context, userID int64) (models.User, error) {
	return m.find(func(u *models.User) bool { return u.UserID == userID })
}

func (m *memUsers) SetVerified(_ context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || u.EmailVerified {
		return 0, nil
	}
	u.EmailVerified = true
	return 1, nil
}

func (m *memUsers) SetPasswordHash(_ context.Context, userID int64, hash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return 0, nil
	}
	u.PasswordHash = hash
	return 1, nil
}

func (m *memUsers) SetTokenFragment(_ context.Context, userID int64, fragment *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	u.TokenFragment = fragment
	return nil
}

func (m *memUsers) GetTokenFragment(_ context.Context, userID int64) (*string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u.TokenFragment, nil
}

func (m *memUsers) ConsumeTokenFragment(_ context.Context, userID int64, fragment string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || u.TokenFragment == nil || *u.TokenFragment != fragment {
		return false, nil
	}
	u.TokenFragment = nil
	return true, nil
}

// user returns a snapshot of the stored row.
func (m *memUsers) user(t *testing.T, userID int64) models.User {
	t.Helper()
	u, err := m.FindUserByID(context.Background(), userID)
	require.NoError(t, err)
	return u
}

// fakeClock is a manually advanced clock for the token codec.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestCodec(t *testing.T) (*token.Codec, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec, err := token.NewCodec(testSecret, testIssuer, token.WithClock(clock.Now))
	require.NoError(t, err)
	return codec, clock
}

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:         testSecret,
		TokenIssuer:          testIssuer,
		SessionTokenDuration: 24 * time.Hour,
		ActionTokenTTL:       11 * time.Minute,
		PublicBaseURL:        testBaseURL,
		Version:              "test",
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func alice(t *testing.T) models.User {
	return models.User{
		UserID:       42,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashOf(t, "old-password"),
	}
}

// mailbox wires a gomock Mailer that records every accepted mail.
type mailbox struct {
	mu   sync.Mutex
	sent []models.Mail
}

func newMailbox(t *testing.T, ctrl *gomock.Controller) (*mock.MockMailer, *mailbox) {
	t.Helper()
	box := &mailbox{}
	m := mock.NewMockMailer(ctrl)
	m.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, mail models.Mail) error {
		box.mu.Lock()
		defer box.mu.Unlock()
		box.sent = append(box.sent, mail)
		return nil
	}).AnyTimes()
	return m, box
}

func (b *mailbox) last(t *testing.T) models.Mail {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	require.NotEmpty(t, b.sent)
	return b.sent[len(b.sent)-1]
}

func testLogger() *logger.Logger {
	return logger.Nop()
}
