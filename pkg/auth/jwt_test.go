package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/market/pkg/auth"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func activeAccount(email string) auth.Account {
	return auth.Account{
		Subject:               email,
		Enabled:               true,
		AccountNonExpired:     true,
		CredentialsNonExpired: true,
		AccountNonLocked:      true,
	}
}

func TestIssue_EmbedsSubjectAndExpiry(t *testing.T) {
	clock := newClock()
	svc := auth.NewTokenService(secret, time.Hour, auth.WithClock(clock.Now))

	token, err := svc.Issue("ada@example.com")
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Subject)
	assert.True(t, claims.IssuedAt.Time.Equal(clock.t))
	assert.True(t, claims.ExpiresAt.Time.Equal(clock.t.Add(time.Hour)))
}

func TestValidate_LifecycleAgainstClock(t *testing.T) {
	clock := newClock()
	svc := auth.NewTokenService(secret, 30*time.Minute, auth.WithClock(clock.Now))
	user := activeAccount("ada@example.com")

	token, err := svc.Issue(user.Subject)
	require.NoError(t, err)

	assert.NoError(t, svc.Validate(token, user), "valid right after issue")

	clock.Advance(29 * time.Minute)
	assert.NoError(t, svc.Validate(token, user))

	clock.Advance(time.Minute)
	assert.ErrorIs(t, svc.Validate(token, user), auth.ErrTokenExpired, "now == exp is expired")

	clock.Advance(time.Hour)
	assert.ErrorIs(t, svc.Validate(token, user), auth.ErrTokenExpired)
}

func TestNewTokenService_SubSecondTimeout(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 400_000_000, time.UTC)}
	svc := auth.NewTokenService(secret, 500*time.Millisecond, auth.WithClock(clock.Now))
	user := activeAccount("ada@example.com")
	assert.Equal(t, auth.MinTimeout, svc.Timeout())

	token, err := svc.Issue(user.Subject)
	require.NoError(t, err)
	assert.NoError(t, svc.Validate(token, user), "valid right after issue")

	clock.Advance(time.Second)
	assert.ErrorIs(t, svc.Validate(token, user), auth.ErrTokenExpired)
}

func TestValidate_OtherUser(t *testing.T) {
	svc := auth.NewTokenService(secret, time.Hour)
	token, err := svc.Issue("ada@example.com")
	require.NoError(t, err)

	err = svc.Validate(token, activeAccount("bob@example.com"))
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestValidate_Order(t *testing.T) {
	clock := newClock()
	svc := auth.NewTokenService(secret, time.Minute, auth.WithClock(clock.Now))
	token, err := svc.Issue("ada@example.com")
	require.NoError(t, err)

	everythingWrong := auth.Account{Subject: "bob@example.com"}
	clock.Advance(time.Hour)

	// Subject wins over expiry and every flag.
	assert.ErrorIs(t, svc.Validate(token, everythingWrong), auth.ErrTokenInvalid)

	// Expiry wins over the flags.
	everythingWrong.Subject = "ada@example.com"
	assert.ErrorIs(t, svc.Validate(token, everythingWrong), auth.ErrTokenExpired)

	clock.t = clock.t.Add(-time.Hour)
	cases := []struct {
		name    string
		account auth.Account
		want    error
	}{
		{"disabled first", auth.Account{Subject: "ada@example.com"}, auth.ErrAccountDisabled},
		{"account expired next", auth.Account{Subject: "ada@example.com", Enabled: true}, auth.ErrAccountExpired},
		{"credentials expired next", auth.Account{Subject: "ada@example.com", Enabled: true, AccountNonExpired: true}, auth.ErrCredentialsExpired},
		{"locked last", auth.Account{Subject: "ada@example.com", Enabled: true, AccountNonExpired: true, CredentialsNonExpired: true}, auth.ErrAccountLocked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.Validate(token, tc.account), tc.want)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	svc := auth.NewTokenService(secret, time.Hour)

	_, err := svc.Parse("not-a-token")
	assert.ErrorIs(t, err, auth.ErrTokenMalformed)

	other := auth.NewTokenService([]byte("another-secret-another-secret-00"), time.Hour)
	foreign, err := other.Issue("ada@example.com")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Validate(foreign, activeAccount("ada@example.com")), auth.ErrTokenMalformed)

	token, err := svc.Issue("ada@example.com")
	require.NoError(t, err)
	tampered := token[:strings.LastIndexByte(token, '.')] + ".AAAA"
	assert.ErrorIs(t, svc.Validate(tampered, activeAccount("ada@example.com")), auth.ErrTokenMalformed)
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	svc := auth.NewTokenService(secret, time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "ada@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Parse(none)
	assert.ErrorIs(t, err, auth.ErrTokenMalformed)
}

func TestParse_ExpiredTokenStillParses(t *testing.T) {
	clock := newClock()
	svc := auth.NewTokenService(secret, time.Minute, auth.WithClock(clock.Now))
	token, err := svc.Issue("ada@example.com")
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	subject, err := svc.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", subject)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "ok", auth.Kind(nil))
	assert.Equal(t, "expired", auth.Kind(auth.ErrTokenExpired))
	assert.Equal(t, "locked", auth.Kind(auth.CheckAccount(auth.Account{Enabled: true, AccountNonExpired: true, CredentialsNonExpired: true})))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, auth.CheckPassword(hash, "s3cret!"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}

func TestIdentityContext(t *testing.T) {
	_, ok := auth.IdentityFromCtx(context.Background())
	assert.False(t, ok)

	ctx := auth.WithIdentity(context.Background(), auth.Identity{UserID: 7, Email: "ada@example.com"})
	id, ok := auth.IdentityFromCtx(ctx)
	require.True(t, ok)
	assert.Equal(t, uint(7), id.UserID)
}
