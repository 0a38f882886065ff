package middleware

import (
	"context"
	"errors"
	"net/http"
	"shareit/config"
	"shareit/infras/jwt"
	"shareit/infras/otel"
	"shareit/permissions"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/transport/http/response"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
)

type SkipAuthKey string

const trustedKey SkipAuthKey = "trusted"

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func (m *authRoleImpl) routePermission(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || m.permission == nil {
		return request.URL.Path, permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	return path, m.permission.FindPermissions(path, request.Method)
}

// Auth resolves the caller. Gateway calls trusted by APIKey name the user in X-Sharer-User-Id,
// everyone else presents a bearer access token.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		path, permission := m.routePermission(request)
		if permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		if trusted, _ := ctx.Value(trustedKey).(bool); trusted {
			userID := strings.TrimSpace(request.Header.Get(constant.RequestHeaderSharerUserID))
			if userID == constant.Empty {
				err := failure.Unauthorized("Missing " + constant.RequestHeaderSharerUserID + " header")
				scope.TraceError(err)
				response.WithError(writer, err)

				return
			}

			ctx = context.WithValue(request.Context(), constant.ContextKeyUserID, userID)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)

			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == constant.Empty {
			err := failure.Unauthorized("Missing authorization header")
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			err := failure.Unauthorized("Invalid authorization header format")
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		claims, err := m.jwtService.Validate(tokenString)
		if err != nil {
			err := failure.Unauthorized(tokenMessage(err))
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		ctx = context.WithValue(request.Context(), constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func tokenMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, jwt.ErrInvalidClaim):
		return "Invalid token claims"
	case errors.Is(err, jwt.ErrInvalidToken):
		return "Invalid token"
	default:
		return "Token validation failed"
	}
}

// RBAC checks if user has required role
// Requires prior authentication via Auth middleware
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if trusted, _ := ctx.Value(trustedKey).(bool); trusted {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		_, permission := m.routePermission(request)
		if permission.Skip || len(permission.Permissions) == 0 {
			next.ServeHTTP(writer, request)

			return
		}

		userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !slices.Contains(permission.Permissions, userRole) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     userRole,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey marks requests carrying the configured X-API-Key as trusted gateway traffic.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == constant.Empty {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == constant.Empty || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(request.Context(), trustedKey, true)))
	})
}
