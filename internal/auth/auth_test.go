package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/madhava-poojari/dashboard-web/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateAccessToken(secret, "STU001", models.RoleStudent, time.Minute)
	require.NoError(t, err)

	c, err := ParseAndValidateToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "STU001", c.UserID)
	assert.Equal(t, models.RoleStudent, c.Role)
	assert.NotEmpty(t, c.ID)
}

func TestRejectsExpiredAndForeignTokens(t *testing.T) {
	expired, err := GenerateAccessToken(secret, "STU001", models.RoleStudent, -time.Minute)
	require.NoError(t, err)
	_, err = ParseAndValidateToken(secret, expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	other, err := GenerateAccessToken("another-secret", "STU001", models.RoleAdmin, time.Minute)
	require.NoError(t, err)
	_, err = ParseAndValidateToken(secret, other)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseAndValidateToken("", other)
	assert.Error(t, err)
}

func TestRejectsTokenWithoutExpiry(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "STU001", Role: models.RoleAdmin}).
		SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = ParseAndValidateToken(secret, tok)
	assert.Error(t, err)
}

func protected(roles ...models.Role) http.Handler {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := GetClaimsFromCtx(r.Context())
		_, _ = w.Write([]byte(c.UserID + " " + GetTokenFromCtx(r.Context())))
	})
	if len(roles) > 0 {
		return AuthMiddleware(secret)(RoleMiddleware(roles...)(h))
	}
	return AuthMiddleware(secret)(h)
}

func TestAuthMiddleware(t *testing.T) {
	tok, err := GenerateAccessToken(secret, "CO1", models.RoleCoach, time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		roles  []models.Role
		status int
	}{
		{"missing header", "", nil, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized},
		{"garbage token", "Bearer abc", nil, http.StatusUnauthorized},
		{"valid", "Bearer " + tok, nil, http.StatusOK},
		{"role allowed", "Bearer " + tok, []models.Role{models.RoleAdmin, models.RoleCoach}, http.StatusOK},
		{"role denied", "Bearer " + tok, []models.Role{models.RoleAdmin}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			protected(tc.roles...).ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "CO1 "+tok, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"success":false`)
			}
		})
	}
}

func TestCanAccessStudent(t *testing.T) {
	assert.True(t, CanAccessStudent(&Claims{UserID: "S1", Role: models.RoleStudent}, "S1"))
	assert.False(t, CanAccessStudent(&Claims{UserID: "S1", Role: models.RoleStudent}, "S2"))
	assert.True(t, CanAccessStudent(&Claims{UserID: "C1", Role: models.RoleCoach}, "S2"))
	assert.True(t, CanAccessStudent(&Claims{UserID: "A1", Role: models.RoleAdmin}, "S2"))
	assert.False(t, CanAccessStudent(nil, "S1"))
}
