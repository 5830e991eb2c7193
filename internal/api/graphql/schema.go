// Package graphqlapi exposes the auth operations as a GraphQL schema.
package graphqlapi

import (
	"github.com/graphql-go/graphql"

	"github.com/spec-kit/identity-service/internal/api/authflow"
	"github.com/spec-kit/identity-service/internal/api/dto"
	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/domain"
	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

const missingHeaderMessage = "Authorization header is missing."

func identityType(name string) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})
}

func authResponseType(name, field string, identity *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"token":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"expiresAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			field:       &graphql.Field{Type: graphql.NewNonNull(identity)},
		},
	})
}

var identityKindEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "IdentityKind",
	Values: graphql.EnumValueConfigMap{
		"ADMIN": &graphql.EnumValueConfig{Value: string(domain.IdentityKindAdmin)},
		"USER":  &graphql.EnumValueConfig{Value: string(domain.IdentityKindUser)},
	},
})

// Nullable so missing values fail in the shared validator with INVALID_ARGUMENT.
var credentialArgs = graphql.FieldConfigArgument{
	"email":    &graphql.ArgumentConfig{Type: graphql.String},
	"password": &graphql.ArgumentConfig{Type: graphql.String},
}

// NewSchema builds the schema around flow, which should be built with
// authflow.TransportGraphQL.
func NewSchema(flow *authflow.Flow) (graphql.Schema, error) {
	r := &resolver{flow: flow}

	admin := identityType("Admin")
	user := identityType("User")
	identity := identityType("Identity")
	adminAuth := authResponseType("AdminAuthResponse", "admin", admin)
	userAuth := authResponseType("UserAuthResponse", "user", user)

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"loginAdmin": &graphql.Field{Type: adminAuth, Args: credentialArgs, Resolve: r.loginAdmin},
			"loginUser":  &graphql.Field{Type: userAuth, Args: credentialArgs, Resolve: r.loginUser},
			"identities": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(identity))),
				Args: graphql.FieldConfigArgument{
					"kind":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(identityKindEnum)},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.identities,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"registerAdmin": &graphql.Field{Type: adminAuth, Args: credentialArgs, Resolve: r.registerAdmin},
			"registerUser":  &graphql.Field{Type: userAuth, Args: credentialArgs, Resolve: r.registerUser},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

type resolver struct {
	flow *authflow.Flow
}

func (r *resolver) loginAdmin(p graphql.ResolveParams) (any, error) {
	resp, err := r.flow.LoginAdmin(p.Context, loginArgs(p))
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return authPayload(resp, "admin"), nil
}

func (r *resolver) loginUser(p graphql.ResolveParams) (any, error) {
	resp, err := r.flow.LoginUser(p.Context, loginArgs(p))
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return authPayload(resp, "user"), nil
}

func (r *resolver) registerUser(p graphql.ResolveParams) (any, error) {
	resp, err := r.flow.RegisterUser(p.Context, loginArgs(p))
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return authPayload(resp, "user"), nil
}

func (r *resolver) registerAdmin(p graphql.ResolveParams) (any, error) {
	header, ok := auth.AuthorizationFromContext(p.Context)
	if !ok {
		return nil, toGraphQLError(apperrors.NewUnauthorized(missingHeaderMessage))
	}

	args := loginArgs(p)
	resp, err := r.flow.RegisterAdmin(p.Context, dto.RegisterAdminRequest{
		Email:         args.Email,
		Password:      args.Password,
		Authorization: header,
	})
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return authPayload(resp, "admin"), nil
}

func (r *resolver) identities(p graphql.ResolveParams) (any, error) {
	header, ok := auth.AuthorizationFromContext(p.Context)
	if !ok {
		return nil, toGraphQLError(apperrors.NewUnauthorized(missingHeaderMessage))
	}

	kind, _ := p.Args["kind"].(string)
	limit, _ := p.Args["limit"].(int)
	offset, _ := p.Args["offset"].(int)

	views, err := r.flow.ListIdentities(p.Context, header, domain.IdentityKind(kind), limit, offset)
	if err != nil {
		return nil, toGraphQLError(err)
	}

	out := make([]map[string]any, 0, len(views))
	for _, v := range views {
		out = append(out, identityPayload(v))
	}
	return out, nil
}

func loginArgs(p graphql.ResolveParams) dto.LoginRequest {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)
	return dto.LoginRequest{Email: email, Password: password}
}

func identityPayload(v dto.IdentityView) map[string]any {
	return map[string]any{
		"id":        v.ID,
		"email":     v.Email,
		"createdAt": v.CreatedAt.UTC(),
	}
}

func authPayload(resp *dto.AuthResponse, field string) map[string]any {
	return map[string]any{
		"token":     resp.Token,
		"expiresAt": resp.ExpiresAt.UTC(),
		field:       identityPayload(resp.Identity),
	}
}
