package token

import (
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/utilitech/utilicore/internal/config"
)

var ErrInvalidToken = errors.New("invalid_token")

// Issuer signs and parses HS256 bearer tokens carrying the user id as the
// subject claim. No expiry claim is set or enforced.
type Issuer struct {
	secret []byte
}

func NewIssuer(cfg config.Config) *Issuer {
	return &Issuer{secret: []byte(cfg.AuthJWTSecret)}
}

func (i *Issuer) Issue(userID snowflake.ID) (string, error) {
	claims := jwt.MapClaims{"sub": userID.String()}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

func (i *Issuer) Parse(raw string) (snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidToken
	}

	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrInvalidToken
	}
	id, err := snowflake.ParseString(sub)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}
