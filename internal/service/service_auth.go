package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/store"
	"github.com/MKhiriev/fast-home/internal/token"
	"github.com/MKhiriev/fast-home/models"
	"golang.org/x/crypto/bcrypt"
)

// bearerScheme is the only Authorization scheme the gate accepts.
const bearerScheme = "Bearer"

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and session token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// actionTokens starts email verification right after registration.
	actionTokens ActionTokenService

	// codec mints session tokens on login and verifies bearer tokens.
	codec TokenCodec

	// sessionDuration controls how long a newly issued session token remains valid.
	sessionDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository, action-token flows and codec.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, actionTokens ActionTokenService, codec TokenCodec, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		actionTokens:    actionTokens,
		codec:           codec,
		sessionDuration: cfg.SessionTokenDuration,
		logger:          logger,
	}
}

// Register creates a new, unverified user account and mails the
// verification link.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - A wrapped store.ErrUserAlreadyExists if the username or email is taken.
//   - A wrapped ErrMailNotAccepted if the account was created but the
//     verification mail could not be handed to the mailer.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	if _, err = a.actionTokens.BeginVerification(ctx, registeredUser.Username); err != nil {
		log.Err(err).Int64("id", registeredUser.UserID).Msg("verification could not be started")
		return models.User{}, fmt.Errorf("verification could not be started: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing, verified user and issues a session token.
//
// Returns the token or:
//   - ErrInvalidCredentials if the user does not exist or the password is wrong.
//   - ErrEmailNotVerified if the account has not completed verification.
//   - A wrapped ErrTokenCreation if signing fails.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Info().Str("username", req.Username).Msg("login for unknown user")
			return models.LoginResult{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", req.Username).Msg("user search by username failed")
		return models.LoginResult{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Info().Int64("id", foundUser.UserID).Msg("wrong password")
			return models.LoginResult{}, ErrInvalidCredentials
		}
		log.Err(err).Int64("id", foundUser.UserID).Msg("password comparison failed")
		return models.LoginResult{}, fmt.Errorf("password comparison failed: %w", err)
	}

	if !foundUser.EmailVerified {
		log.Info().Int64("id", foundUser.UserID).Msg("login before email verification")
		return models.LoginResult{}, ErrEmailNotVerified
	}

	raw, err := a.codec.Mint(foundUser.UserID, token.PurposeSession, a.sessionDuration)
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("session token creation failed")
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrTokenCreation, err)
	}

	return models.LoginResult{Token: raw}, nil
}

// Authorize validates an Authorization header value of the form
// "Bearer <token>".
//
// Returns the principal or:
//   - ErrForbidden if the header is absent, lacks the scheme, or the token is
//     malformed, forged, expired or carries an action purpose.
//   - ErrClientMisuse if the scheme is repeated.
//   - ErrAuthInternal for any other verification failure.
func (a *authService) Authorize(ctx context.Context, header string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	if header == "" || !strings.HasPrefix(header, bearerScheme) {
		log.Info().Msg("missing bearer token")
		return models.Principal{}, ErrForbidden
	}

	raw := strings.TrimSpace(strings.TrimPrefix(header, bearerScheme))
	if strings.HasPrefix(raw, bearerScheme) {
		log.Info().Msg("bearer scheme repeated")
		return models.Principal{}, ErrClientMisuse
	}
	if raw == "" {
		log.Info().Msg("empty bearer token")
		return models.Principal{}, ErrForbidden
	}

	claims, err := a.codec.Verify(raw)
	if err != nil {
		if token.KindOf(err) != 0 {
			log.Info().Err(err).Msg("bearer token rejected")
			return models.Principal{}, fmt.Errorf("%w: %w", ErrForbidden, err)
		}
		log.Err(err).Msg("bearer token verification failed")
		return models.Principal{}, fmt.Errorf("%w: %w", ErrAuthInternal, err)
	}

	if claims.HasPurpose() {
		log.Warn().Int64("id", claims.UserID).Str("purpose", string(claims.Purpose())).Msg("action token used as bearer token")
		return models.Principal{}, ErrForbidden
	}

	return models.Principal{UserID: claims.UserID}, nil
}
