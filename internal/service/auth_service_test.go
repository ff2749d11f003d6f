package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Eastyn7/cqt-cloudplatform-backend/internal/models"
	appErrors "github.com/Eastyn7/cqt-cloudplatform-backend/pkg/errors"
)

type accountRepoStub struct {
	byStudent map[string]*models.AuthAccount
	byEmail   map[string]*models.AuthAccount
	createErr error
	created   []*models.AuthAccount
}

func (s *accountRepoStub) FindByStudentID(ctx context.Context, studentID string) (*models.AuthAccount, error) {
	if account, ok := s.byStudent[studentID]; ok {
		return account, nil
	}
	return nil, sql.ErrNoRows
}

func (s *accountRepoStub) FindByEmail(ctx context.Context, email string) (*models.AuthAccount, error) {
	if account, ok := s.byEmail[email]; ok {
		return account, nil
	}
	return nil, sql.ErrNoRows
}

func (s *accountRepoStub) Create(ctx context.Context, account *models.AuthAccount) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, account)
	return nil
}

type identityReaderStub struct {
	info *models.AuthInfo
	err  error
}

func (s identityReaderStub) FindByStudentID(ctx context.Context, studentID string) (*models.AuthInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "cqt-cloudplatform"}
}

func hashedAccount(t *testing.T, password string) *models.AuthAccount {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.AuthAccount{
		ID:           "account-1",
		StudentID:    "2023214001",
		Email:        "zhangsan@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
	}
}

func TestAuthServiceRegisterHashesPassword(t *testing.T) {
	repo := &accountRepoStub{}
	svc := NewAuthService(repo, identityReaderStub{}, nil, nil, testAuthConfig())

	account, err := svc.Register(context.Background(), models.RegisterRequest{
		StudentID: "2023214001",
		Email:     "zhangsan@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, models.RoleStudent, account.Role)
	assert.NotEqual(t, "secret123", account.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret123")))
}

func TestAuthServiceLoginByStudentID(t *testing.T) {
	account := hashedAccount(t, "secret123")
	repo := &accountRepoStub{byStudent: map[string]*models.AuthAccount{account.StudentID: account}}
	svc := NewAuthService(repo, identityReaderStub{info: &models.AuthInfo{StudentID: account.StudentID, Name: "张三"}}, nil, nil, testAuthConfig())

	session, err := svc.Login(context.Background(), models.LoginRequest{Account: "2023214001", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "2023214001", session.StudentID)

	claims, err := svc.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "2023214001", claims.StudentID)
	assert.Equal(t, "张三", claims.Name)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestAuthServiceLoginByEmail(t *testing.T) {
	account := hashedAccount(t, "secret123")
	repo := &accountRepoStub{byEmail: map[string]*models.AuthAccount{account.Email: account}}
	svc := NewAuthService(repo, identityReaderStub{err: sql.ErrNoRows}, nil, nil, testAuthConfig())

	session, err := svc.Login(context.Background(), models.LoginRequest{Account: "zhangsan@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "2023214001", session.StudentID)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	account := hashedAccount(t, "secret123")
	repo := &accountRepoStub{byStudent: map[string]*models.AuthAccount{account.StudentID: account}}
	svc := NewAuthService(repo, identityReaderStub{}, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Account: "2023214001", Password: "wrongpass"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownAccount(t *testing.T) {
	svc := NewAuthService(&accountRepoStub{}, identityReaderStub{}, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Account: "2099999999", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsWrongSecret(t *testing.T) {
	account := hashedAccount(t, "secret123")
	repo := &accountRepoStub{byStudent: map[string]*models.AuthAccount{account.StudentID: account}}
	issuer := NewAuthService(repo, identityReaderStub{}, nil, nil, testAuthConfig())

	session, err := issuer.Login(context.Background(), models.LoginRequest{Account: "2023214001", Password: "secret123"})
	require.NoError(t, err)

	verifier := NewAuthService(repo, identityReaderStub{}, nil, nil, AuthConfig{Secret: "other-secret", Expiration: time.Hour})
	_, err = verifier.ValidateToken(session.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsExpired(t *testing.T) {
	svc := NewAuthService(&accountRepoStub{}, identityReaderStub{}, nil, nil, testAuthConfig())

	expired := &models.JWTClaims{
		StudentID: "2023214001",
		Role:      models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
