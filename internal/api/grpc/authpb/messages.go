// Package authpb is the wire contract of the authentication.Auth service.
//
// Messages are plain structs carried with the "json" gRPC codec registered in
// codec.go; clients must call with grpc.CallContentSubtype(authpb.CodecName).
package authpb

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "authentication.Auth"

// LoginRequest is shared by LoginAdmin, LoginUser and RegisterUser.
type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// RegisterAdminRequest carries the caller's "<scheme> <token>" authorization.
type RegisterAdminRequest struct {
	Email         string `json:"email,omitempty"`
	Password      string `json:"password,omitempty"`
	Authorization string `json:"authorization,omitempty"`
}

// Identity is an admin or user record as exposed on the wire.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
}

// AdminAuthResponse is returned by LoginAdmin and RegisterAdmin.
type AdminAuthResponse struct {
	Status    int32     `json:"status"`
	Token     string    `json:"token"`
	ExpiresAt int64     `json:"expiresAt"`
	Admin     *Identity `json:"admin"`
}

// UserAuthResponse is returned by LoginUser and RegisterUser.
type UserAuthResponse struct {
	Status    int32     `json:"status"`
	Token     string    `json:"token"`
	ExpiresAt int64     `json:"expiresAt"`
	User      *Identity `json:"user"`
}
