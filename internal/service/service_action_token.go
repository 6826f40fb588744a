// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/mailer"
	"github.com/MKhiriev/fast-home/internal/store"
	"github.com/MKhiriev/fast-home/internal/token"
	"github.com/MKhiriev/fast-home/models"
	"golang.org/x/crypto/bcrypt"
)

// Paths the mailed links point to. The token is appended verbatim; it is
// already URL-safe.
const (
	verifyPath = "/api/auth/verify/"
	resetPath  = "/api/auth/reset/"
)

// actionTokenService issues and redeems single-use action tokens.
//
// Every issued token leaves its [token.Fragment] in the user's row; issuing
// again overwrites it, so only the latest token of a user can be redeemed.
// Redemption clears the fragment with a compare-and-clear so that the same
// token cannot succeed twice, even concurrently.
type actionTokenService struct {
	users   store.UserRepository
	codec   TokenCodec
	mailer  mailer.Mailer
	ttl     time.Duration
	baseURL string

	logger *logger.Logger
}

// NewActionTokenService builds the verification and reset flows on top of
// users, codec and m. Links are rooted at cfg.PublicBaseURL and tokens live
// for cfg.ActionTokenTTL.
func NewActionTokenService(users store.UserRepository, codec TokenCodec, m mailer.Mailer, cfg config.App, logger *logger.Logger) ActionTokenService {
	return &actionTokenService{
		users:   users,
		codec:   codec,
		mailer:  m,
		ttl:     cfg.ActionTokenTTL,
		baseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:  logger,
	}
}

func (s *actionTokenService) BeginVerification(ctx context.Context, username string) (string, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*actionTokenService.BeginVerification").Msg("user lookup failed")
		return "", fmt.Errorf("error finding user to verify: %w", err)
	}

	return s.begin(ctx, user, token.PurposeVerify, models.MailTemplateVerify, verifyPath)
}

func (s *actionTokenService) BeginReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*actionTokenService.BeginReset").Msg("user lookup failed")
		return "", fmt.Errorf("error finding user to reset: %w", err)
	}

	return s.begin(ctx, user, token.PurposeForgot, models.MailTemplateForgot, resetPath)
}

func (s *actionTokenService) begin(ctx context.Context, user models.User, purpose token.Purpose, template models.MailTemplate, path string) (string, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*actionTokenService.begin").
		Int64("user_id", user.UserID).
		Str("purpose", string(purpose)).
		Logger()

	raw, err := s.codec.Mint(user.UserID, purpose, s.ttl)
	if err != nil {
		log.Err(err).Msg("error minting action token")
		return "", fmt.Errorf("%w: %w", ErrTokenCreation, err)
	}

	fragment := token.Fragment(raw)
	if err = s.users.SetTokenFragment(ctx, user.UserID, &fragment); err != nil {
		log.Err(err).Msg("error storing token fragment")
		return "", fmt.Errorf("error storing token fragment: %w", err)
	}

	url := s.baseURL + path + raw
	err = s.mailer.Send(ctx, models.Mail{
		To:       user.Email,
		Template: template,
		Data: map[string]string{
			"username": user.Username,
			"url":      url,
			"ttl":      s.ttl.String(),
		},
	})
	if err != nil {
		log.Err(err).Msg("error sending action token mail")
		return "", fmt.Errorf("%w: %w", ErrMailNotAccepted, err)
	}

	log.Info().Msg("action token issued")
	return url, nil
}

func (s *actionTokenService) CompleteVerification(ctx context.Context, rawToken string) error {
	claims, err := s.redeem(ctx, rawToken, token.PurposeVerify)
	if err != nil {
		return err
	}

	affected, err := s.users.SetVerified(ctx, claims.UserID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*actionTokenService.CompleteVerification").Msg("error marking user verified")
		return fmt.Errorf("error marking user verified: %w", err)
	}

	logger.FromContext(ctx).Info().
		Int64("user_id", claims.UserID).
		Bool("already_verified", affected == 0).
		Msg("email verified")
	return nil
}

func (s *actionTokenService) CompleteReset(ctx context.Context, rawToken, newPassword string) error {
	log := logger.FromContext(ctx)

	// Hash first so a too-long password cannot burn the token.
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Str("func", "*actionTokenService.CompleteReset").Msg("error hashing new password")
		return fmt.Errorf("error hashing new password: %w", err)
	}

	claims, err := s.redeem(ctx, rawToken, token.PurposeForgot)
	if err != nil {
		return err
	}

	affected, err := s.users.SetPasswordHash(ctx, claims.UserID, string(hash))
	if err != nil {
		log.Err(err).Str("func", "*actionTokenService.CompleteReset").Msg("error writing password hash")
		return fmt.Errorf("error writing password hash: %w", err)
	}
	if affected == 0 {
		log.Error().Int64("user_id", claims.UserID).Str("func", "*actionTokenService.CompleteReset").Msg("user vanished after token consumption")
		return ErrPasswordNotWritten
	}

	log.Info().Int64("user_id", claims.UserID).Msg("password reset")
	return nil
}

// redeem runs every check on rawToken and, when all pass, consumes the
// stored fragment. Check order: signature, expiry, purpose, fragment.
func (s *actionTokenService) redeem(ctx context.Context, rawToken string, purpose token.Purpose) (token.Claims, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*actionTokenService.redeem").
		Str("purpose", string(purpose)).
		Logger()

	claims, err := s.codec.Verify(rawToken)
	if err != nil {
		var rejected *token.RejectedError
		if !errors.As(err, &rejected) {
			log.Err(err).Msg("token verification failed unexpectedly")
			return token.Claims{}, fmt.Errorf("error verifying action token: %w", err)
		}

		switch rejected.Kind {
		case token.Expired:
			if err := s.clearExpired(ctx, rejected.Claims.UserID, rawToken); err != nil {
				log.Err(err).Int64("user_id", rejected.Claims.UserID).Msg("error clearing expired token fragment")
				return token.Claims{}, err
			}
			log.Info().Int64("user_id", rejected.Claims.UserID).Msg("action token expired")
			return token.Claims{}, rejectToken(TokenExpired, err)
		case token.SignatureInvalid:
			log.Warn().Err(err).Msg("action token with invalid signature")
			return token.Claims{}, rejectToken(TokenSignatureInvalid, err)
		default:
			log.Info().Err(err).Msg("malformed action token")
			return token.Claims{}, rejectToken(TokenMalformed, err)
		}
	}

	log = log.With().Int64("user_id", claims.UserID).Logger()

	if claims.Purpose() != purpose {
		log.Warn().Str("token_purpose", string(claims.Purpose())).Msg("action token presented to the wrong endpoint")
		return token.Claims{}, rejectToken(TokenWrongPurpose, nil)
	}

	fragment := token.Fragment(rawToken)

	stored, err := s.users.GetTokenFragment(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Info().Msg("action token subject no longer exists")
			return token.Claims{}, rejectToken(TokenFragmentMismatch, nil)
		}
		log.Err(err).Msg("error reading token fragment")
		return token.Claims{}, fmt.Errorf("error reading token fragment: %w", err)
	}
	if stored == nil || *stored != fragment {
		log.Info().Bool("fragment_stored", stored != nil).Msg("action token superseded or already used")
		return token.Claims{}, rejectToken(TokenFragmentMismatch, nil)
	}

	consumed, err := s.users.ConsumeTokenFragment(ctx, claims.UserID, fragment)
	if err != nil {
		log.Err(err).Msg("error consuming token fragment")
		return token.Claims{}, fmt.Errorf("error consuming token fragment: %w", err)
	}
	if !consumed {
		log.Info().Msg("action token consumed concurrently")
		return token.Claims{}, rejectToken(TokenFragmentMismatch, nil)
	}

	return claims, nil
}

// clearExpired drops the stored fragment when it still belongs to the
// expired token. A newer outstanding token of the same user is left alone.
func (s *actionTokenService) clearExpired(ctx context.Context, userID int64, rawToken string) error {
	if _, err := s.users.ConsumeTokenFragment(ctx, userID, token.Fragment(rawToken)); err != nil {
		return fmt.Errorf("error clearing expired token fragment: %w", err)
	}
	return nil
}
