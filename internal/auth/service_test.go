package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/minhvu-dev/crm-backend/internal/models"
	"github.com/minhvu-dev/crm-backend/internal/store"
	"github.com/minhvu-dev/crm-backend/internal/token"
)

func newTestService(st store.UserStore) *Service {
	codec := token.New("test-secret", 7*24*time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(st, codec, logger)
}

func validRegister() RegisterInput {
	return RegisterInput{
		FullName:      "Jane Doe",
		Email:         "Jane@Test.com",
		Phone:         "0912345678",
		Password:      "secret1",
		AgreedToTerms: true,
	}
}

// trackingStore counts email lookups so tests can assert the store is
// untouched when validation fails.
type trackingStore struct {
	*store.MemoryStore
	emailLookups int
}

func (s *trackingStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.emailLookups++
	return s.MemoryStore.FindByEmail(ctx, email)
}

func TestRegisterSuccess(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestService(st)

	user, tok, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	assert.Equal(t, "jane@test.com", user.Email)
	assert.Equal(t, models.RoleSales, user.Role)
	assert.True(t, user.IsActive)
	assert.True(t, user.AgreedToTerms)
	assert.Nil(t, user.LastLogin)
	assert.Nil(t, user.Company)

	stored, err := st.FindByEmail(context.Background(), "jane@test.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash, "password must be stored hashed")
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	svc := newTestService(store.NewMemoryStore())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	dup := validRegister()
	dup.Email = "jane@TEST.com"
	_, _, err = svc.Register(ctx, dup)

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindValidation, svcErr.Kind)
	assert.Equal(t, "email already used", svcErr.Message)
}

func TestRegisterTermsNotAgreed(t *testing.T) {
	svc := newTestService(store.NewMemoryStore())

	in := validRegister()
	in.AgreedToTerms = false
	_, _, err := svc.Register(context.Background(), in)

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindValidation, svcErr.Kind)
	assert.Equal(t, "terms not agreed", svcErr.Message)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(store.NewMemoryStore())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing full name", func(in *RegisterInput) { in.FullName = "" }},
		{"missing email", func(in *RegisterInput) { in.Email = "" }},
		{"invalid email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"missing phone", func(in *RegisterInput) { in.Phone = "" }},
		{"phone without leading zero", func(in *RegisterInput) { in.Phone = "9123456780" }},
		{"phone too short", func(in *RegisterInput) { in.Phone = "091234567" }},
		{"missing password", func(in *RegisterInput) { in.Password = "" }},
		{"password too short", func(in *RegisterInput) { in.Password = "abc12" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRegister()
			tt.mutate(&in)

			_, _, err := svc.Register(ctx, in)
			var svcErr *Error
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, KindValidation, svcErr.Kind)
		})
	}
}

func TestLoginSuccessUpdatesLastLogin(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestService(st)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	in := LoginInput{Email: "Jane@Test.com", Password: "secret1", RememberMe: true}
	user, tok, err := svc.Login(ctx, in, "203.0.113.9")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	require.NotNil(t, user.LastLogin)
	assert.Equal(t, "203.0.113.9", user.LastLogin.IPAddress)
	assert.True(t, user.LastLogin.Timestamp.After(registered.CreatedAt),
		"lastLogin must be strictly after createdAt")

	stored, err := st.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
}

func TestLoginBadCredentialsIndistinguishable(t *testing.T) {
	svc := newTestService(store.NewMemoryStore())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, LoginInput{Email: "jane@test.com", Password: "wrong-pass"}, "")
	_, _, unknownEmail := svc.Login(ctx, LoginInput{Email: "nobody@test.com", Password: "secret1"}, "")

	var e1, e2 *Error
	require.ErrorAs(t, wrongPassword, &e1)
	require.ErrorAs(t, unknownEmail, &e2)

	assert.Equal(t, KindUnauthorized, e1.Kind)
	assert.Equal(t, e1.Kind, e2.Kind)
	assert.Equal(t, e1.Message, e2.Message, "messages must not reveal which check failed")
}

func TestLoginDisabledAccount(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestService(st)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	_, err = st.Insert(ctx, &models.User{
		FullName:      "Jane Doe",
		Email:         "jane@test.com",
		Phone:         "0912345678",
		PasswordHash:  string(hash),
		Role:          models.RoleSales,
		IsActive:      false,
		AgreedToTerms: true,
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginInput{Email: "jane@test.com", Password: "secret1"}, "")
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindUnauthorized, svcErr.Kind)
	assert.Equal(t, "account disabled", svcErr.Message)
}

func TestLoginMissingFieldsSkipsStore(t *testing.T) {
	st := &trackingStore{MemoryStore: store.NewMemoryStore()}
	svc := newTestService(st)

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "jane@test.com"}, "")

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindValidation, svcErr.Kind)
	assert.Zero(t, st.emailLookups, "validation failures must not reach the store")
}

func TestCurrentUser(t *testing.T) {
	svc := newTestService(store.NewMemoryStore())
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, user.Email)

	_, err = svc.CurrentUser(ctx, 999)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindNotFound, svcErr.Kind)
}
