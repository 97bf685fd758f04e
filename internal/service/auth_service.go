package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/auth"
	"github.com/mmynk/splitcollect/internal/links"
	"github.com/mmynk/splitcollect/internal/models"
	"github.com/mmynk/splitcollect/internal/storage"
	"github.com/mmynk/splitcollect/pkg/api"
)

var _ api.AuthServiceHandler = (*AuthService)(nil)

const maxProfileField = 100

// AuthService implements the AuthService RPC interface.
// Register and Login are public; the profile calls need a token.
type AuthService struct {
	authenticator auth.Authenticator
	users         storage.UserStore
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, users storage.UserStore, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		users:         users,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// PublicProcedures are the AuthService calls that need no token.
var PublicProcedures = []string{api.AuthServiceRegisterProcedure, api.AuthServiceLoginProcedure}

// Register creates a new collector account.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.DisplayName == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("email and display name are required"))
	}

	user, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidEmail):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		s.logger.Error("Registration failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errors.New("registration failed"))
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered", "user_id", user.ID)
	return connect.NewResponse(&api.RegisterResponse{User: toAPIUser(user), Token: token}), nil
}

// Login authenticates a collector and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Error("Login failed", "email", req.Msg.Email, "error", err)
			return nil, connect.NewError(connect.CodeInternal, errors.New("login failed"))
		}
		s.logger.Warn("Login rejected", "email", req.Msg.Email)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return connect.NewResponse(&api.LoginResponse{User: toAPIUser(user), Token: token}), nil
}

// GetCurrentUser returns the authenticated collector's account and UPI profile.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetCurrentUser", err)
	}
	return connect.NewResponse(&api.GetCurrentUserResponse{User: toAPIUser(user)}), nil
}

// UpdateProfile replaces the collector's display name and UPI profile.
func (s *AuthService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(req.Msg.DisplayName)
	payeeVPA := strings.TrimSpace(req.Msg.PayeeVPA)
	payeeName := strings.TrimSpace(req.Msg.PayeeName)
	switch {
	case displayName == "":
		return nil, toConnectError(s.logger, "UpdateProfile", apperrors.Invalid("display_name", "is required"))
	case len(displayName) > maxProfileField || len(payeeName) > maxProfileField:
		return nil, toConnectError(s.logger, "UpdateProfile", apperrors.Invalid("profile", "fields must be at most 100 characters"))
	case payeeVPA != "" && !links.ValidVPA(payeeVPA):
		return nil, toConnectError(s.logger, "UpdateProfile", apperrors.Invalid("payee_vpa", "is not a valid UPI address"))
	case payeeVPA == "" && payeeName != "":
		return nil, toConnectError(s.logger, "UpdateProfile", apperrors.Invalid("payee_vpa", "is required with a payee name"))
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateProfile", err)
	}
	user.DisplayName = displayName
	user.PayeeVPA = payeeVPA
	user.PayeeName = payeeName
	if err := s.users.UpdateUserProfile(ctx, user); err != nil {
		return nil, toConnectError(s.logger, "UpdateProfile", err)
	}

	s.logger.Info("Profile updated", "user_id", userID)
	return connect.NewResponse(&api.UpdateProfileResponse{User: toAPIUser(user)}), nil
}

func toAPIUser(user *models.User) api.User {
	return api.User{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PayeeVPA:    user.PayeeVPA,
		PayeeName:   user.PayeeName,
		CreatedAt:   user.CreatedAt,
	}
}
