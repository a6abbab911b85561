package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/forumhq/backend/internal/handler"
	"github.com/forumhq/backend/internal/models"
	"github.com/forumhq/backend/internal/repository"
	"github.com/forumhq/backend/internal/service"
	"github.com/forumhq/backend/internal/testutil"
	"github.com/forumhq/backend/internal/utils"
	"github.com/forumhq/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const handlerTestSecret = "test-secret-key"

type AuthHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine
}

func (s *AuthHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	authService := service.NewAuthService(userRepo, handlerTestSecret, 1*time.Hour, service.PasswordPolicy{
		MinLength: 8,
	})
	authHandler := handler.NewAuthHandler(authService)

	s.router = gin.New()
	s.router.POST("/register", authHandler.Register)
	s.router.POST("/login", authHandler.Login)
}

func (s *AuthHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *AuthHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *AuthHandlerIntegrationTestSuite) postJSON(path string, body interface{}) *httptest.ResponseRecorder {
	bodyBytes, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterSuccess() {
	w := s.postJSON("/register", map[string]string{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "SecurePass123",
	})

	assert.Equal(s.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))

	// Token in the body decodes back to the new identity
	token, ok := response["token"].(string)
	require.True(s.T(), ok)
	claims, err := utils.ValidateToken(token, handlerTestSecret)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "newuser", claims.Username)
	assert.Equal(s.T(), models.RoleUser, claims.Role)

	user := response["user"].(map[string]interface{})
	assert.Equal(s.T(), "newuser", user["username"])
	assert.Equal(s.T(), "user", user["role"])
	assert.NotContains(s.T(), user, "password_hash")
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterDuplicateEmail() {
	existing, err := testutil.CreateTestUser("existing", "test@example.com", "Passw0rd!", models.RoleUser)
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(existing).Error)

	w := s.postJSON("/register", map[string]string{
		"username": "different",
		"email":    "test@example.com",
		"password": "SecurePass123",
	})

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(s.T(), response["error"], "already exists")
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterInvalidInput() {
	testCases := []struct {
		name     string
		reqBody  map[string]string
		expected string
	}{
		{
			name: "short_username",
			reqBody: map[string]string{
				"username": "ab",
				"email":    "test@example.com",
				"password": "Pass123456",
			},
			expected: "username must be at least 3 characters",
		},
		{
			name: "invalid_email",
			reqBody: map[string]string{
				"username": "testuser",
				"email":    "invalid-email",
				"password": "Pass123456",
			},
			expected: "invalid email format",
		},
		{
			name: "short_password",
			reqBody: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "short",
			},
			expected: "password too short",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			w := s.postJSON("/register", tc.reqBody)

			assert.Equal(s.T(), http.StatusBadRequest, w.Code)

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)
			assert.Contains(s.T(), response["error"], tc.expected)
		})
	}
}

func (s *AuthHandlerIntegrationTestSuite) TestLoginSuccess() {
	testUser, err := testutil.CreateTestUser("loginuser", "login@example.com", "LoginPass123", models.RoleUser)
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(testUser).Error)

	w := s.postJSON("/login", map[string]string{
		"username": "loginuser",
		"password": "LoginPass123",
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(s.T(), response["token"])

	user := response["user"].(map[string]interface{})
	assert.Equal(s.T(), "loginuser", user["username"])
}

func (s *AuthHandlerIntegrationTestSuite) TestLoginInvalidCredentials() {
	testUser, err := testutil.CreateTestUser("loginuser", "login@example.com", "CorrectPass123", models.RoleUser)
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(testUser).Error)

	w := s.postJSON("/login", map[string]string{
		"username": "loginuser",
		"password": "WrongPass123",
	})

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(s.T(), response["error"], "invalid credentials")
}

func (s *AuthHandlerIntegrationTestSuite) TestLoginNonExistentUser() {
	w := s.postJSON("/login", map[string]string{
		"username": "nobody",
		"password": "SomePass123",
	})

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(s.T(), response["error"], "invalid credentials")
}

func TestAuthHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerIntegrationTestSuite))
}
