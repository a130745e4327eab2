package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedVerifier(secret, issuer string, now time.Time) *Verifier {
	v := NewVerifier(secret, issuer)
	v.now = func() time.Time { return now }

	return v
}

func TestVerifier_Verify(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	v := fixedVerifier("secret", "carteira-idp", now)

	valid, err := v.Sign("user-1", time.Hour)
	require.NoError(t, err)

	expired, err := fixedVerifier("secret", "carteira-idp", now.Add(-2*time.Hour)).Sign("user-1", time.Hour)
	require.NoError(t, err)

	otherKey, err := fixedVerifier("other", "carteira-idp", now).Sign("user-1", time.Hour)
	require.NoError(t, err)

	otherIssuer, err := fixedVerifier("secret", "someone-else", now).Sign("user-1", time.Hour)
	require.NoError(t, err)

	noSubject, err := fixedVerifier("secret", "carteira-idp", now).Sign("", time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-1",
		Issuer:  "carteira-idp",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "carteira-idp",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{name: "Valid", token: valid, want: "user-1"},
		{name: "Expired", token: expired, wantErr: true},
		{name: "WrongKey", token: otherKey, wantErr: true},
		{name: "WrongIssuer", token: otherIssuer, wantErr: true},
		{name: "NoSubject", token: noSubject, wantErr: true},
		{name: "NoExpiry", token: noExpiry, wantErr: true},
		{name: "AlgNone", token: none, wantErr: true},
		{name: "Garbage", token: "not.a.jwt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Verify(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMiddleware(t *testing.T) {
	v := NewVerifier("secret", "")

	token, err := v.Sign("user-1", time.Hour)
	require.NoError(t, err)

	var gotOwner string

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOwner, _ = OwnerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	onError := func(w http.ResponseWriter, _ *http.Request, err error) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
	}

	handler := Middleware(v, onError)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantOwner  string
	}{
		{name: "Valid", header: "Bearer " + token, wantStatus: http.StatusOK, wantOwner: "user-1"},
		{name: "LowercaseScheme", header: "bearer " + token, wantStatus: http.StatusOK, wantOwner: "user-1"},
		{name: "Missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "Basic", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "Invalid", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotOwner = ""

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOwner, gotOwner)
		})
	}
}
