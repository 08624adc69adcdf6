package services

import (
	"context"
	"time"

	"bookstore_backend/internal/auth"
	"bookstore_backend/internal/config"
	"bookstore_backend/internal/email"
	"bookstore_backend/internal/logger"
	"bookstore_backend/internal/models"
	"bookstore_backend/internal/repositories"
	"bookstore_backend/internal/services/dto"
	"bookstore_backend/pkg/apperrors"
)

// passwordChangedSafetyMargin is subtracted from the password-change
// timestamp so a token issued in the same instant as the change still counts
// as issued before it.
const passwordChangedSafetyMargin = time.Second

type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, error)
	// ForgotPassword issues a reset token and mails resetURLBase + token to
	// the user. The plaintext token never appears in any response body.
	ForgotPassword(ctx context.Context, emailAddr, resetURLBase string) error
	ResetPassword(ctx context.Context, plainToken, password, passwordConfirm string) (string, error)
	UpdatePassword(ctx context.Context, userID, newPassword, newPasswordConfirm string) error
}

type AuthServiceImpl struct {
	cfg      *config.Config
	userRepo repositories.UserRepository
	mailer   email.Provider
}

func NewAuthService(cfg *config.Config, userRepo repositories.UserRepository, mailer email.Provider) AuthService {
	return &AuthServiceImpl{
		cfg:      cfg,
		userRepo: userRepo,
		mailer:   mailer,
	}
}

func (s *AuthServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, string, error) {
	if req.Password != req.PasswordConfirm {
		return nil, "", apperrors.ValidationError(map[string]string{
			"passwordConfirm": "Passwords are not the same",
		})
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, "", apperrors.ValidationError(map[string]string{
			"password": err.Error(),
		})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         models.RoleUser,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, "", apperrors.New(apperrors.CodeAlreadyExists,
				"Email already in use", 400)
		}
		return nil, "", apperrors.InternalError(err)
	}

	token, err := s.signToken(ctx, user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	logger.CtxInfo(ctx, "user signed up", "user_id", user.ID.Hex())
	return user, token, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			// Identical message for unknown email and wrong password, to
			// avoid user enumeration.
			return "", apperrors.New(apperrors.CodeInvalidCredentials,
				"Incorrect Email or Password!", 401)
		}
		return "", apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return "", apperrors.New(apperrors.CodeInvalidCredentials,
			"Incorrect Email or Password!", 401)
	}

	token, err := s.signToken(ctx, user.ID.Hex())
	if err != nil {
		return "", err
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID.Hex())
	return token, nil
}

func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, emailAddr, resetURLBase string) error {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("There is no user with this email address!")
		}
		return apperrors.InternalError(err)
	}

	plaintext, hash, err := auth.GenerateResetToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	expires := time.Now().Add(auth.ResetTokenTTL)
	if err := s.userRepo.SetResetToken(ctx, user.ID.Hex(), hash, expires); err != nil {
		return apperrors.InternalError(err)
	}

	resetURL := resetURLBase + plaintext
	if err := s.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		// Roll back: a token the user never received must not stay valid.
		if clearErr := s.userRepo.ClearResetToken(ctx, user.ID.Hex()); clearErr != nil {
			logger.CtxWithError(ctx, "failed to roll back reset token", clearErr,
				"user_id", user.ID.Hex())
		}
		return apperrors.NewDeliveryError(err,
			"There was an error sending the email. Try again later!")
	}

	logger.CtxInfo(ctx, "password reset token sent", "user_id", user.ID.Hex())
	return nil
}

func (s *AuthServiceImpl) ResetPassword(ctx context.Context, plainToken, password, passwordConfirm string) (string, error) {
	if password != passwordConfirm {
		return "", apperrors.ValidationError(map[string]string{
			"passwordConfirm": "Passwords are not the same",
		})
	}
	if err := auth.ValidatePassword(password); err != nil {
		return "", apperrors.ValidationError(map[string]string{
			"password": err.Error(),
		})
	}

	// Atomic find-and-clear: the same token can never be consumed twice.
	user, err := s.userRepo.ConsumeResetToken(ctx, auth.HashResetToken(plainToken), time.Now())
	if err != nil {
		if apperrors.Is(err, repositories.ErrResetTokenInvalid) {
			return "", apperrors.NewBadRequestError("Token is invalid or has expired")
		}
		return "", apperrors.InternalError(err)
	}

	if err := s.setPassword(ctx, user.ID.Hex(), password); err != nil {
		return "", err
	}

	token, err := s.signToken(ctx, user.ID.Hex())
	if err != nil {
		return "", err
	}

	logger.CtxInfo(ctx, "password reset completed", "user_id", user.ID.Hex())
	return token, nil
}

func (s *AuthServiceImpl) UpdatePassword(ctx context.Context, userID, newPassword, newPasswordConfirm string) error {
	if newPassword != newPasswordConfirm {
		return apperrors.ValidationError(map[string]string{
			"passwordConfirm": "Passwords are not the same",
		})
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ValidationError(map[string]string{
			"password": err.Error(),
		})
	}
	return s.setPassword(ctx, userID, newPassword)
}

// setPassword re-hashes and stores the password. The change timestamp is
// backdated by a small margin so a token issued in the same second is
// already stale; the repository clears any pending reset token in the same
// write.
func (s *AuthServiceImpl) setPassword(ctx context.Context, userID, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	changedAt := time.Now().Add(-passwordChangedSafetyMargin)
	if err := s.userRepo.UpdatePassword(ctx, userID, hash, changedAt); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("User no longer exists")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// signToken issues a bearer token. An unconfigured signing secret is a fatal
// configuration error: it is logged and surfaces as a server fault, never as
// a client error.
func (s *AuthServiceImpl) signToken(ctx context.Context, userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.cfg.JWT.Secret, s.cfg.JWT.ExpiresIn)
	if err != nil {
		logger.CtxWithError(ctx, "token not generated", err, "user_id", userID)
		return "", apperrors.InternalError(err)
	}
	return token, nil
}
