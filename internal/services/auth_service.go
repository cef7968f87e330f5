package services

import (
	"fmt"
	"math/rand"
	"time"

	"connecta_backend/internal/auth"
	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
	"connecta_backend/internal/pkg/email"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(refreshToken string) (*dto.LoginResponse, error)
	Logout(refreshToken string) error
	VerifyEmail(req *dto.VerifyEmailRequest) error
	ResendVerification(emailAddr string) error
	ChangePassword(userID, currentPassword, newPassword string) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	paymentRepo   repositories.PaymentRepository
	emailProvider email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	paymentRepo repositories.PaymentRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		paymentRepo:   paymentRepo,
		emailProvider: emailProvider,
	}
}

// ---------------- Registration ----------------

func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	if req.UserType != models.UserTypeClient && req.UserType != models.UserTypeFreelancer {
		return nil, apperrors.ErrInvalidUserType
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	otp := generateOTP()
	otpExpiry := time.Now().Add(15 * time.Minute)

	user := &models.User{
		Email:           req.Email,
		PasswordHash:    hashed,
		UserType:        req.UserType,
		FullName:        req.FullName,
		IsActive:        true,
		JobSuccessScore: 100,
		OTPCode:         otp,
		OTPExpiresAt:    &otpExpiry,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// A wallet exists from day one so payment flows never race its creation.
	if _, err := s.paymentRepo.GetOrCreateWallet(user.ID); err != nil {
		logger.SideEffectLog("create wallet on register", err, "user_id", user.ID)
	}

	s.sendVerificationEmail(user, otp)

	return s.issueTokens(user)
}

// ---------------- Login / tokens ----------------

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, invalidCredentials()
	}
	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("Account is deactivated")
	}

	if err := s.userRepo.UpdateLastSeen(user.ID); err != nil {
		logger.SideEffectLog("update last seen", err, "user_id", user.ID)
	}

	return s.issueTokens(user)
}

func (s *AuthServiceImpl) RefreshToken(refreshToken string) (*dto.LoginResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(refreshToken)
		return nil, apperrors.NewUnauthorizedError("Refresh token expired")
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}

	// Rotate: the old token is single use.
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		logger.SideEffectLog("delete rotated refresh token", err, "user_id", user.ID)
	}

	return s.issueTokens(user)
}

func (s *AuthServiceImpl) Logout(refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ---------------- Email verification ----------------

func (s *AuthServiceImpl) VerifyEmail(req *dto.VerifyEmailRequest) error {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if user.IsVerified {
		return nil
	}
	if user.OTPCode == "" || user.OTPCode != req.Code {
		return apperrors.NewBadRequestError("Invalid verification code")
	}
	if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return apperrors.NewBadRequestError("Verification code expired")
	}

	if err := s.userRepo.VerifyUser(user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) ResendVerification(emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if user.IsVerified {
		return apperrors.ErrInvalidOperation("auth", "Email is already verified")
	}

	otp := generateOTP()
	otpExpiry := time.Now().Add(15 * time.Minute)
	user.OTPCode = otp
	user.OTPExpiresAt = &otpExpiry
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	s.sendVerificationEmail(user, otp)
	return nil
}

// ---------------- Password ----------------

func (s *AuthServiceImpl) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return invalidCredentials()
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.PasswordHash = hashed
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	// All sessions drop after a password change.
	if err := s.userRepo.DeleteUserRefreshTokens(userID); err != nil {
		logger.SideEffectLog("revoke sessions after password change", err, "user_id", userID)
	}
	return nil
}

// ---------------- internals ----------------

func (s *AuthServiceImpl) issueTokens(user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.UserType))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, expiresAt := auth.GenerateRefreshToken()
	if err := s.userRepo.CreateRefreshToken(&models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(user),
	}, nil
}

func (s *AuthServiceImpl) sendVerificationEmail(user *models.User, otp string) {
	if s.emailProvider == nil {
		return
	}
	err := s.emailProvider.SendTemplate(
		[]string{user.Email},
		"Verify your email",
		"verification",
		email.TemplateData{"Name": user.FullName, "Code": otp},
	)
	if err != nil {
		logger.SideEffectLog("send verification email", err, "user_id", user.ID)
	}
}

func invalidCredentials() *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
}

func generateOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
