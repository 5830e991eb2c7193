package authpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Full method names.
const (
	MethodLoginAdmin    = "/" + ServiceName + "/LoginAdmin"
	MethodLoginUser     = "/" + ServiceName + "/LoginUser"
	MethodRegisterAdmin = "/" + ServiceName + "/RegisterAdmin"
	MethodRegisterUser  = "/" + ServiceName + "/RegisterUser"
)

// AuthServer is the server API for the authentication.Auth service.
type AuthServer interface {
	LoginAdmin(context.Context, *LoginRequest) (*AdminAuthResponse, error)
	LoginUser(context.Context, *LoginRequest) (*UserAuthResponse, error)
	RegisterAdmin(context.Context, *RegisterAdminRequest) (*AdminAuthResponse, error)
	RegisterUser(context.Context, *LoginRequest) (*UserAuthResponse, error)
}

// UnimplementedAuthServer can be embedded for forward compatibility.
type UnimplementedAuthServer struct{}

func (UnimplementedAuthServer) LoginAdmin(context.Context, *LoginRequest) (*AdminAuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method LoginAdmin not implemented")
}

func (UnimplementedAuthServer) LoginUser(context.Context, *LoginRequest) (*UserAuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method LoginUser not implemented")
}

func (UnimplementedAuthServer) RegisterAdmin(context.Context, *RegisterAdminRequest) (*AdminAuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterAdmin not implemented")
}

func (UnimplementedAuthServer) RegisterUser(context.Context, *LoginRequest) (*UserAuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterUser not implemented")
}

// RegisterAuthServer registers srv on s.
func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

// AuthServiceDesc describes the authentication.Auth service.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "LoginAdmin", Handler: loginAdminHandler},
		{MethodName: "LoginUser", Handler: loginUserHandler},
		{MethodName: "RegisterAdmin", Handler: registerAdminHandler},
		{MethodName: "RegisterUser", Handler: registerUserHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "auth.proto",
}

func loginAdminHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LoginRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServer).LoginAdmin(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodLoginAdmin}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServer).LoginAdmin(ctx, req.(*LoginRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func loginUserHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LoginRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServer).LoginUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodLoginUser}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServer).LoginUser(ctx, req.(*LoginRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func registerAdminHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RegisterAdminRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServer).RegisterAdmin(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodRegisterAdmin}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServer).RegisterAdmin(ctx, req.(*RegisterAdminRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func registerUserHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LoginRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServer).RegisterUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodRegisterUser}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServer).RegisterUser(ctx, req.(*LoginRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// AuthClient is the client API for the authentication.Auth service.
type AuthClient interface {
	LoginAdmin(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AdminAuthResponse, error)
	LoginUser(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*UserAuthResponse, error)
	RegisterAdmin(ctx context.Context, in *RegisterAdminRequest, opts ...grpc.CallOption) (*AdminAuthResponse, error)
	RegisterUser(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*UserAuthResponse, error)
}

type authClient struct {
	cc grpc.ClientConnInterface
}

// NewAuthClient returns a client that always uses the JSON codec.
func NewAuthClient(cc grpc.ClientConnInterface) AuthClient {
	return &authClient{cc: cc}
}

func (c *authClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *authClient) LoginAdmin(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AdminAuthResponse, error) {
	out := new(AdminAuthResponse)
	if err := c.invoke(ctx, MethodLoginAdmin, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authClient) LoginUser(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*UserAuthResponse, error) {
	out := new(UserAuthResponse)
	if err := c.invoke(ctx, MethodLoginUser, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authClient) RegisterAdmin(ctx context.Context, in *RegisterAdminRequest, opts ...grpc.CallOption) (*AdminAuthResponse, error) {
	out := new(AdminAuthResponse)
	if err := c.invoke(ctx, MethodRegisterAdmin, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authClient) RegisterUser(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*UserAuthResponse, error) {
	out := new(UserAuthResponse)
	if err := c.invoke(ctx, MethodRegisterUser, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
