// Package grpcapi serves the authentication.Auth gRPC service.
package grpcapi

import (
	"context"

	"github.com/spec-kit/identity-service/internal/api/authflow"
	"github.com/spec-kit/identity-service/internal/api/dto"
	"github.com/spec-kit/identity-service/internal/api/grpc/authpb"
	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

// statusOK is the explicit status carried by every successful response.
const statusOK int32 = 0

// AuthHandler adapts the shared flow to authpb.AuthServer.
type AuthHandler struct {
	authpb.UnimplementedAuthServer
	flow *authflow.Flow
}

// NewAuthHandler constructs the handler. flow should be built with
// authflow.TransportGRPC.
func NewAuthHandler(flow *authflow.Flow) *AuthHandler {
	return &AuthHandler{flow: flow}
}

func (h *AuthHandler) LoginAdmin(ctx context.Context, req *authpb.LoginRequest) (*authpb.AdminAuthResponse, error) {
	resp, err := h.flow.LoginAdmin(ctx, loginRequest(req))
	if err != nil {
		return nil, toStatus(err)
	}
	return adminResponse(resp), nil
}

func (h *AuthHandler) LoginUser(ctx context.Context, req *authpb.LoginRequest) (*authpb.UserAuthResponse, error) {
	resp, err := h.flow.LoginUser(ctx, loginRequest(req))
	if err != nil {
		return nil, toStatus(err)
	}
	return userResponse(resp), nil
}

func (h *AuthHandler) RegisterAdmin(ctx context.Context, req *authpb.RegisterAdminRequest) (*authpb.AdminAuthResponse, error) {
	in := dto.RegisterAdminRequest{}
	if req != nil {
		in = dto.RegisterAdminRequest{Email: req.Email, Password: req.Password, Authorization: req.Authorization}
	}
	resp, err := h.flow.RegisterAdmin(ctx, in)
	if err != nil {
		return nil, toStatus(err)
	}
	return adminResponse(resp), nil
}

func (h *AuthHandler) RegisterUser(ctx context.Context, req *authpb.LoginRequest) (*authpb.UserAuthResponse, error) {
	resp, err := h.flow.RegisterUser(ctx, loginRequest(req))
	if err != nil {
		return nil, toStatus(err)
	}
	return userResponse(resp), nil
}

func loginRequest(req *authpb.LoginRequest) dto.LoginRequest {
	if req == nil {
		return dto.LoginRequest{}
	}
	return dto.LoginRequest{Email: req.Email, Password: req.Password}
}

func toStatus(err error) error {
	return apperrors.ToDomainError(err).GRPCStatus().Err()
}

func identity(v dto.IdentityView) *authpb.Identity {
	return &authpb.Identity{ID: v.ID, Email: v.Email, CreatedAt: v.CreatedAt.Unix()}
}

func adminResponse(resp *dto.AuthResponse) *authpb.AdminAuthResponse {
	return &authpb.AdminAuthResponse{
		Status:    statusOK,
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt.Unix(),
		Admin:     identity(resp.Identity),
	}
}

func userResponse(resp *dto.AuthResponse) *authpb.UserAuthResponse {
	return &authpb.UserAuthResponse{
		Status:    statusOK,
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt.Unix(),
		User:      identity(resp.Identity),
	}
}
