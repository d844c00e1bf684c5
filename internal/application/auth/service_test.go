package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/suittrip/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockStoreAccounts struct{ mock.Mock }

func (m *mockStoreAccounts) Put(ctx context.Context, s *domain.Store) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockStoreAccounts) Get(ctx context.Context, storeID string) (*domain.Store, error) {
	args := m.Called(ctx, storeID)
	if s, _ := args.Get(0).(*domain.Store); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStoreAccounts) GetByEmail(ctx context.Context, email string) (*domain.Store, error) {
	args := m.Called(ctx, email)
	if s, _ := args.Get(0).(*domain.Store); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Put(ctx context.Context, s *domain.Session) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockSessions) GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessions) Update(ctx context.Context, sessionID string, updates map[string]interface{}) error {
	return m.Called(ctx, sessionID, updates).Error(0)
}
func (m *mockSessions) SoftDeleteByStore(ctx context.Context, storeID string) error {
	return m.Called(ctx, storeID).Error(0)
}

type mockVerification struct{ mock.Mock }

func (m *mockVerification) SaveCode(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}
func (m *mockVerification) VerifyCode(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}
func (m *mockVerification) IsEmailVerified(ctx context.Context, email string) bool {
	return m.Called(ctx, email).Bool(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockJWTSigner struct{ mock.Mock }

func (m *mockJWTSigner) Sign(storeID, email, sessionID string) (string, error) {
	args := m.Called(storeID, email, sessionID)
	return args.String(0), args.Error(1)
}

// --- builder ---

func newService(sr *mockStoreAccounts, ss *mockSessions, vs *mockVerification, ml *mockMailer, jwt *mockJWTSigner) Service {
	return NewService(ServiceDeps{
		StoreRepo:       sr,
		SessionRepo:     ss,
		Verification:    vs,
		Mailer:          ml,
		JWTProvider:     jwt,
		CodeLength:      6,
		RefreshTokenDur: 30 * 24 * time.Hour,
	})
}

// --- RequestCode ---

func TestRequestCode_InvalidEmail(t *testing.T) {
	svc := newService(nil, nil, nil, nil, nil)
	err := svc.RequestCode(context.Background(), "not-an-email")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestRequestCode_EmailAlreadyRegistered(t *testing.T) {
	sr := &mockStoreAccounts{}
	sr.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.Store{StoreID: "s1"}, nil)

	svc := newService(sr, nil, nil, nil, nil)
	err := svc.RequestCode(context.Background(), "a@b.com")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRequestCode_HappyPath_SavesThenSends(t *testing.T) {
	sr := &mockStoreAccounts{}
	vs := &mockVerification{}
	ml := &mockMailer{}

	sr.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)
	var saved string
	vs.On("SaveCode", mock.Anything, "a@b.com", mock.MatchedBy(func(c string) bool {
		saved = c
		return len(c) == 6
	})).Return(nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, mock.MatchedBy(func(body string) bool {
		return saved != "" // body is built after SaveCode
	})).Return(nil)

	svc := newService(sr, nil, vs, ml, nil)
	require.NoError(t, svc.RequestCode(context.Background(), "a@b.com"))
	vs.AssertExpectations(t)
	ml.AssertExpectations(t)
}

func TestRequestCode_SaveFails_NoEmailSent(t *testing.T) {
	sr := &mockStoreAccounts{}
	vs := &mockVerification{}
	ml := &mockMailer{}

	sr.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)
	vs.On("SaveCode", mock.Anything, "a@b.com", mock.Anything).Return(errors.New("dynamo down"))

	svc := newService(sr, nil, vs, ml, nil)
	require.Error(t, svc.RequestCode(context.Background(), "a@b.com"))
	ml.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestCode_SendFails_CodeStaysSaved(t *testing.T) {
	sr := &mockStoreAccounts{}
	vs := &mockVerification{}
	ml := &mockMailer{}

	sr.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)
	vs.On("SaveCode", mock.Anything, "a@b.com", mock.Anything).Return(nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, mock.Anything).Return(errors.New("smtp refused"))

	svc := newService(sr, nil, vs, ml, nil)
	err := svc.RequestCode(context.Background(), "a@b.com")
	assert.ErrorIs(t, err, domain.ErrEmailSend)
	// No rollback call exists on the verification service; the saved code
	// remains redeemable.
	vs.AssertExpectations(t)
}

// --- ConfirmCode ---

func TestConfirmCode_DelegatesToVerification(t *testing.T) {
	vs := &mockVerification{}
	vs.On("VerifyCode", mock.Anything, "a@b.com", "123456").Return(domain.ErrCodeMismatch)

	svc := newService(nil, nil, vs, nil, nil)
	err := svc.ConfirmCode(context.Background(), "a@b.com", "123456")
	assert.ErrorIs(t, err, domain.ErrCodeMismatch)
}

func TestConfirmCode_InvalidEmail(t *testing.T) {
	svc := newService(nil, nil, nil, nil, nil)
	err := svc.ConfirmCode(context.Background(), "nope", "123456")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

// --- Register ---

func validRegister() RegisterRequest {
	return RegisterRequest{
		Email:          "a@b.com",
		Password:       "password123",
		Name:           "김가방 보관소",
		OwnerName:      "김가방",
		Phone:          "010-1234-5678",
		BusinessNumber: "123-45-67890",
		Address:        "서울시 중구 명동길 12",
	}
}

func TestRegister_EmailNotVerified(t *testing.T) {
	vs := &mockVerification{}
	vs.On("IsEmailVerified", mock.Anything, "a@b.com").Return(false)

	svc := newService(nil, nil, vs, nil, nil)
	_, err := svc.Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, domain.ErrEmailNotVerified)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	sr := &mockStoreAccounts{}
	vs := &mockVerification{}
	vs.On("IsEmailVerified", mock.Anything, "a@b.com").Return(true)
	sr.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.Store{StoreID: "s1"}, nil)

	svc := newService(sr, nil, vs, nil, nil)
	_, err := svc.Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_HappyPath(t *testing.T) {
	sr := &mockStoreAccounts{}
	vs := &mockVerification{}
	vs.On("IsEmailVerified", mock.Anything, "a@b.com").Return(true)
	sr.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)
	sr.On("Put", mock.Anything, mock.MatchedBy(func(s *domain.Store) bool {
		return s.Email == "a@b.com" &&
			s.Status == domain.StoreStatusPreparing &&
			s.PasswordHash != "" &&
			s.PasswordHash != "password123"
	})).Return(nil)

	svc := newService(sr, nil, vs, nil, nil)
	store, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.NotEmpty(t, store.StoreID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.PasswordHash), []byte("password123")))
	sr.AssertExpectations(t)
}

// --- Login ---

func hashOf(pw string) string {
	h, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	return string(h)
}

func TestLogin_WrongPassword(t *testing.T) {
	sr := &mockStoreAccounts{}
	sr.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.Store{
		StoreID: "s1", Email: "a@b.com", Enable: 1, PasswordHash: hashOf("correct"),
	}, nil)

	svc := newService(sr, nil, nil, nil, nil)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_DisabledAccount(t *testing.T) {
	sr := &mockStoreAccounts{}
	sr.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.Store{
		StoreID: "s1", Enable: 0, PasswordHash: hashOf("password123"),
	}, nil)

	svc := newService(sr, nil, nil, nil, nil)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_HappyPath(t *testing.T) {
	sr := &mockStoreAccounts{}
	ss := &mockSessions{}
	jwt := &mockJWTSigner{}

	sr.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.Store{
		StoreID: "s1", Email: "a@b.com", Enable: 1, PasswordHash: hashOf("password123"),
	}, nil)
	ss.On("SoftDeleteByStore", mock.Anything, "s1").Return(nil)
	ss.On("Put", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)
	jwt.On("Sign", "s1", "a@b.com", mock.Anything).Return("bearer-token", nil)

	svc := newService(sr, ss, nil, nil, jwt)
	result, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer-token", result.Bearer)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "s1", result.Session.StoreID)
}

// --- Refresh ---

func TestRefresh_UnknownToken(t *testing.T) {
	ss := &mockSessions{}
	ss.On("GetByRefreshToken", mock.Anything, "tok").Return(nil, domain.ErrNotFound)

	svc := newService(nil, ss, nil, nil, nil)
	_, err := svc.Refresh(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	ss := &mockSessions{}
	ss.On("GetByRefreshToken", mock.Anything, "tok").Return(&domain.Session{
		SessionID: "sess1", StoreID: "s1", Enable: true,
		RefreshExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}, nil)

	svc := newService(nil, ss, nil, nil, nil)
	_, err := svc.Refresh(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_RotatesToken(t *testing.T) {
	sr := &mockStoreAccounts{}
	ss := &mockSessions{}
	jwt := &mockJWTSigner{}

	ss.On("GetByRefreshToken", mock.Anything, "tok").Return(&domain.Session{
		SessionID: "sess1", StoreID: "s1", Enable: true,
		RefreshExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, nil)
	sr.On("Get", mock.Anything, "s1").Return(&domain.Store{StoreID: "s1", Email: "a@b.com"}, nil)
	ss.On("Update", mock.Anything, "sess1", mock.MatchedBy(func(m map[string]interface{}) bool {
		_, hasToken := m["refresh_token"]
		_, hasExpiry := m["refresh_expires_at"]
		return hasToken && hasExpiry
	})).Return(nil)
	jwt.On("Sign", "s1", "a@b.com", "sess1").Return("new-bearer", nil)

	svc := newService(sr, ss, nil, nil, jwt)
	result, err := svc.Refresh(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "new-bearer", result.Bearer)
	assert.NotEqual(t, "tok", result.RefreshToken)
}

// --- Logout ---

func TestLogout_DisablesSession(t *testing.T) {
	ss := &mockSessions{}
	ss.On("Update", mock.Anything, "sess1", map[string]interface{}{"enable": false}).Return(nil)

	svc := newService(nil, ss, nil, nil, nil)
	require.NoError(t, svc.Logout(context.Background(), "sess1"))
	ss.AssertExpectations(t)
}
