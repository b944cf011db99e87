package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/book-collections/internal/config"
	"github.com/MKhiriev/book-collections/internal/utils"
	"github.com/MKhiriev/book-collections/models"
)

// sessionClaims is the JWT payload. The subject is the user ID and the JWT
// ID keys the revocation denylist.
type sessionClaims struct {
	Identity string `json:"identity"`
	jwt.RegisteredClaims
}

type tokenService struct {
	signKey  []byte
	issuer   string
	duration time.Duration
	now      func() time.Time
	ids      interface{ Generate() string }
}

// NewTokenService returns an HS256 [TokenService] configured from cfg.
func NewTokenService(cfg config.App) TokenService {
	return &tokenService{
		signKey:  []byte(cfg.TokenSignKey),
		issuer:   cfg.TokenIssuer,
		duration: cfg.TokenDuration,
		now:      time.Now,
		ids:      utils.NewUUIDGenerator(),
	}
}

// Issue signs a token for the subject valid for the configured duration.
// Timestamps are kept at second precision, as encoded in the token.
func (s *tokenService) Issue(subjectID, subjectIdentity string) (models.Token, error) {
	if subjectID == "" || len(s.signKey) == 0 || s.duration <= 0 {
		return models.Token{}, fmt.Errorf("%w: invalid params", ErrTokenCreationFailed)
	}

	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.duration)
	claims := sessionClaims{
		Identity: subjectIdentity,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subjectID,
			ID:        s.ids.Generate(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.Token{
		SignedString: signed,
		Claims: models.Claims{
			SubjectID:       subjectID,
			SubjectIdentity: subjectIdentity,
			TokenID:         claims.ID,
			IssuedAt:        issuedAt,
			ExpiresAt:       expiresAt,
		},
	}, nil
}

// Verify checks signature, algorithm, issuer and expiry and returns the
// embedded claims. Failures map to ErrTokenMalformed,
// ErrTokenSignatureInvalid or ErrTokenExpired.
func (s *tokenService) Verify(tokenString string) (models.Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithStrictDecoding(),
	)

	var claims sessionClaims
	_, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.signKey, nil
	})
	if err != nil {
		return models.Claims{}, s.classify(parser, tokenString, err)
	}

	if claims.Subject == "" || claims.ID == "" || claims.IssuedAt == nil {
		return models.Claims{}, fmt.Errorf("%w: missing claims", ErrTokenMalformed)
	}

	return models.Claims{
		SubjectID:       claims.Subject,
		SubjectIdentity: claims.Identity,
		TokenID:         claims.ID,
		IssuedAt:        claims.IssuedAt.UTC(),
		ExpiresAt:       claims.ExpiresAt.UTC(),
	}, nil
}

// classify maps a parse failure to a token error. A token that fails to
// decode but still has three segments is checked against the signature
// first, so a tampered segment reports a signature mismatch.
func (s *tokenService) classify(parser *jwt.Parser, tokenString string, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenMalformed) && !s.signatureMatches(parser, tokenString):
		return ErrTokenSignatureInvalid
	default:
		return ErrTokenMalformed
	}
}

func (s *tokenService) signatureMatches(parser *jwt.Parser, tokenString string) bool {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return true
	}

	// non-canonical base64 cannot be the encoding of any issued MAC
	signature, err := parser.DecodeSegment(parts[2])
	if err != nil {
		return false
	}

	return jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], signature, s.signKey) == nil
}
