package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/book-collections/internal/crypto"
	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/store"
	"github.com/MKhiriev/book-collections/internal/validators"
	"github.com/MKhiriev/book-collections/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification and the session
// token lifecycle. Secrets and hashes are never logged.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher derives and checks the stored password hashes.
	hasher crypto.PasswordHasher

	// tokens signs and verifies session tokens.
	tokens TokenService

	// denylist holds the IDs of tokens revoked by logout.
	denylist store.TokenDenylist

	// dummyHash is checked for unknown identities so that every failed login
	// costs one hash verification.
	dummyHash func() string

	validator validators.Validator

	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	hasher crypto.PasswordHasher,
	tokens TokenService,
	denylist store.TokenDenylist,
	validator validators.Validator,
	logger *logger.Logger,
) AuthService {
	a := &authService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		denylist:       denylist,
		validator:      validator,
		now:            time.Now,
		logger:         logger,
	}
	a.dummyHash = sync.OnceValue(func() string {
		hash, err := hasher.Hash(dummySecret)
		if err != nil {
			logger.Err(err).Msg("error hashing dummy secret")
		}
		return hash
	})
	return a
}

const dummySecret = "unknown-identity"

// RegisterUser creates a new user account.
//
// The identity must be an e-mail address and the secret must be non-empty.
// Returns the persisted user or:
//   - *validators.ValidationError for an invalid identity or secret.
//   - store.ErrLoginAlreadyExists if the identity is taken.
//   - a wrapped store.ErrStoreUnavailable on storage failure.
func (a *authService) RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)
	credentials = credentials.Normalize()

	if err := a.validator.Validate(ctx, credentials); err != nil {
		log.Debug().Err(err).Str("identity", credentials.Identity).Msg("invalid credentials provided")
		return models.User{}, err
	}

	hash, err := a.hasher.Hash(credentials.Secret)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidInput) {
			return models.User{}, &validators.ValidationError{Field: "secret", Rule: "max"}
		}
		return models.User{}, fmt.Errorf("hashing secret: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Identity:   credentials.Identity,
		SecretHash: hash,
		CreatedAt:  a.now().UTC(),
	})
	if err != nil {
		log.Err(err).Str("identity", credentials.Identity).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", registeredUser.ID).Msg("user registered")
	return registeredUser, nil
}

// Login authenticates an existing user.
//
// An unknown identity and a wrong secret both return ErrWrongCredentials so
// callers cannot tell which one failed.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)
	credentials = credentials.Normalize()

	if credentials.Identity == "" {
		return models.User{}, &validators.ValidationError{Field: "identity", Rule: "required"}
	}
	if credentials.Secret == "" {
		return models.User{}, &validators.ValidationError{Field: "secret", Rule: "required"}
	}

	foundUser, err := a.userRepository.FindUserByIdentity(ctx, credentials.Identity)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Debug().Str("identity", credentials.Identity).Msg("login for unknown identity")
		_, _ = a.hasher.Verify(credentials.Secret, a.dummyHash())
		return models.User{}, ErrWrongCredentials
	}
	if err != nil {
		log.Err(err).Str("identity", credentials.Identity).Msg("user search by identity failed")
		return models.User{}, fmt.Errorf("user search by identity failed: %w", err)
	}

	ok, err := a.hasher.Verify(credentials.Secret, foundUser.SecretHash)
	if err != nil {
		log.Err(err).Str("user_id", foundUser.ID).Msg("stored hash cannot be verified")
		return models.User{}, ErrWrongCredentials
	}
	if !ok {
		log.Debug().Str("user_id", foundUser.ID).Msg("wrong secret")
		return models.User{}, ErrWrongCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed session token for user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := a.tokens.Issue(user.ID, user.Identity)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", user.ID).Msg("token creation failed")
		return models.Token{}, err
	}

	return token, nil
}

// ParseToken verifies tokenString and rejects tokens revoked by logout.
//
// Verification failures are returned as one of the ErrAuth errors. A
// denylist that cannot be reached is reported as store.ErrStoreUnavailable.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Claims, error) {
	claims, err := a.tokens.Verify(tokenString)
	if err != nil {
		return models.Claims{}, err
	}

	revoked, err := a.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("token_id", claims.TokenID).Msg("denylist lookup failed")
		return models.Claims{}, err
	}
	if revoked {
		return models.Claims{}, ErrTokenRevoked
	}

	return claims, nil
}

// RevokeToken adds the token described by claims to the denylist until it
// expires.
func (a *authService) RevokeToken(ctx context.Context, claims models.Claims) error {
	if claims.TokenID == "" {
		return ErrTokenMalformed
	}

	if err := a.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		logger.FromContext(ctx).Err(err).Str("token_id", claims.TokenID).Msg("token revocation failed")
		return err
	}

	logger.FromContext(ctx).Info().Str("user_id", claims.SubjectID).Msg("token revoked")
	return nil
}
