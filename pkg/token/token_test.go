package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestService(t *testing.T, clock *fakeClock) *Service {
	t.Helper()
	svc, err := NewService(Config{
		Secret:   testSecret,
		Issuer:   "studynotes",
		Audience: "studynotes-web",
		Lifetime: 24 * time.Hour,
	}, WithClock(clock.Now))
	require.NoError(t, err)
	return svc
}

func testSubject() Subject {
	return Subject{CWID: "12345678", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.edu"}
}

func TestService_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	issued, err := svc.Issue(testSubject())
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(24*time.Hour), issued.ExpiresAt)
	assert.Len(t, strings.Split(issued.Token, "."), 3)

	claims, err := svc.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "12345678", claims.CWID())
	assert.Equal(t, "Ada", claims.FirstName)
	assert.Equal(t, "Lovelace", claims.LastName)
	assert.Equal(t, "ada@example.edu", claims.Email)
	assert.Equal(t, "studynotes", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"studynotes-web"}, claims.Audience)
	assert.Equal(t, clock.t.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, issued.ExpiresAt.Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, issued.Claims.ID, claims.ID)
	assert.NotEmpty(t, claims.ID)
}

func TestService_ExpiryBoundary(t *testing.T) {
	start := time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	svc := newTestService(t, clock)

	issued, err := svc.Issue(testSubject())
	require.NoError(t, err)

	clock.t = issued.ExpiresAt.Add(-time.Second)
	_, err = svc.Verify(issued.Token)
	assert.NoError(t, err)

	clock.t = issued.ExpiresAt
	_, err = svc.Verify(issued.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	clock.t = issued.ExpiresAt.Add(time.Hour)
	_, err = svc.Verify(issued.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_RejectsAnySingleCharacterChange(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	issued, err := svc.Issue(testSubject())
	require.NoError(t, err)

	raw := []byte(issued.Token)
	for i := range raw {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}

		_, err := svc.Verify(string(tampered))
		assert.ErrorIs(t, err, ErrInvalidToken, "position %d", i)
	}
}

func TestService_RejectsMalformed(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(t, clock)

	for _, raw := range []string{
		"",
		"abc",
		"a.b",
		"a.b.c.d",
		"..",
		"not.a.token",
	} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "raw %q", raw)
	}
}

func TestService_RejectsWrongSecretIssuerAudience(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "secret", cfg: Config{Secret: []byte("another-secret-another-secret-xx"), Issuer: "studynotes", Audience: "studynotes-web", Lifetime: time.Hour}},
		{name: "issuer", cfg: Config{Secret: testSecret, Issuer: "someone-else", Audience: "studynotes-web", Lifetime: time.Hour}},
		{name: "audience", cfg: Config{Secret: testSecret, Issuer: "studynotes", Audience: "mobile", Lifetime: time.Hour}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := NewService(tt.cfg, WithClock(clock.Now))
			require.NoError(t, err)

			issued, err := other.Issue(testSubject())
			require.NoError(t, err)

			_, err = svc.Verify(issued.Token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestService_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "12345678",
		Issuer:    "studynotes",
		Audience:  jwt.ClaimStrings{"studynotes-web"},
		IssuedAt:  jwt.NewNumericDate(clock.t),
		ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
	}}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_RequiresExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:  "12345678",
		Issuer:   "studynotes",
		Audience: jwt.ClaimStrings{"studynotes-web"},
		IssuedAt: jwt.NewNumericDate(clock.t),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewService_Validation(t *testing.T) {
	_, err := NewService(Config{Lifetime: time.Hour})
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = NewService(Config{Secret: testSecret})
	assert.ErrorIs(t, err, ErrInvalidLifetime)
}
