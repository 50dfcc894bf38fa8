package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer-groups-api/internal/core/auth"
	"customer-groups-api/internal/domain"
	"customer-groups-api/internal/repo/memory"
	"customer-groups-api/pkg/utils"
)

func strPtr(s string) *string { return &s }

func newUserService(store *memory.Store) *UserService {
	jwter := &auth.JWTer{Secret: []byte("test-secret"), TTL: 3 * time.Hour}
	return NewUserService(store.Users(), jwter)
}

func signupUser(t *testing.T, s *UserService, email string) *domain.User {
	t.Helper()
	u, err := s.Signup(context.Background(), "Ada", "Lovelace", email, "secret99")
	require.NoError(t, err)
	return u
}

func TestSignupHashesPassword(t *testing.T) {
	store := memory.NewStore()
	s := newUserService(store)

	u := signupUser(t, s, "ada@example.com")
	assert.NotEqual(t, "secret99", u.Password)
	assert.True(t, utils.CheckPassword("secret99", u.Password))
}

func TestSignupDuplicateEmail(t *testing.T) {
	store := memory.NewStore()
	s := newUserService(store)

	signupUser(t, s, "ada@example.com")
	_, err := s.Signup(context.Background(), "Eva", "Clone", "ada@example.com", "another1")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	n, err := s.Amount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLogin(t *testing.T) {
	store := memory.NewStore()
	s := newUserService(store)
	u := signupUser(t, s, "ada@example.com")

	token, got, err := s.Login(context.Background(), "ada@example.com", "secret99")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, u.ID, got.ID)
}

// 查无此人和密码不对必须是同一个错误，不能区分出账号是否存在
func TestLoginFailuresIndistinguishable(t *testing.T) {
	store := memory.NewStore()
	s := newUserService(store)
	signupUser(t, s, "ada@example.com")

	_, _, errNoUser := s.Login(context.Background(), "ghost@example.com", "secret99")
	_, _, errBadPass := s.Login(context.Background(), "ada@example.com", "wrongpass")

	assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	assert.ErrorIs(t, errBadPass, ErrInvalidCredentials)
	assert.Equal(t, errNoUser.Error(), errBadPass.Error())
}

func TestUpdateFieldRules(t *testing.T) {
	store := memory.NewStore()
	s := newUserService(store)
	u := signupUser(t, s, "ada@example.com")

	// 封闭集合之外的字段
	_, err := s.UpdateField(context.Background(), u.ID, "role", strPtr("admin"))
	assert.ErrorIs(t, err, ErrUnknownField)

	// 值不过校验
	var ve *ValidationError
	_, err = s.UpdateField(context.Background(), u.ID, "email", strPtr("not-an-email"))
	assert.ErrorAs(t, err, &ve)
	_, err = s.UpdateField(context.Background(), u.ID, "password", strPtr("short"))
	assert.ErrorAs(t, err, &ve)
	_, err = s.UpdateField(context.Background(), u.ID, "first_name", nil)
	assert.ErrorAs(t, err, &ve)

	// 正常改名
	got, err := s.UpdateField(context.Background(), u.ID, "first_name", strPtr("Augusta"))
	require.NoError(t, err)
	assert.Equal(t, "Augusta", got.FirstName)

	// 改密码要重新散列
	got, err = s.UpdateField(context.Background(), u.ID, "password", strPtr("newsecret"))
	require.NoError(t, err)
	assert.NotEqual(t, "newsecret", got.Password)
	assert.True(t, utils.CheckPassword("newsecret", got.Password))
}

func TestUpdateFieldEmailCollision(t *testing.T) {
	store := memory.NewStore()
	s := newUserService(store)
	signupUser(t, s, "taken@example.com")
	u := signupUser(t, s, "ada@example.com")

	_, err := s.UpdateField(context.Background(), u.ID, "email", strPtr("taken@example.com"))
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// 改成自己的邮箱没问题
	_, err = s.UpdateField(context.Background(), u.ID, "email", strPtr("ada@example.com"))
	assert.NoError(t, err)
}

func TestGetAndDeleteUser(t *testing.T) {
	store := memory.NewStore()
	s := newUserService(store)
	u := signupUser(t, s, "ada@example.com")

	got, err := s.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	require.NoError(t, s.Delete(context.Background(), u.ID))
	_, err = s.Get(context.Background(), u.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), u.ID), domain.ErrUserNotFound)
}
