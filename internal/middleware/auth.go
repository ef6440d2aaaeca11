package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/fitcompare/internal/auth"
	"github.com/2beens/fitcompare/internal/telemetry/tracing"
	"github.com/2beens/fitcompare/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const SharedPathPrefix = "/api/fit-files/shared/"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=middleware_test

type identityVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Identity, error)
}

type userRegistrar interface {
	Ensure(ctx context.Context, identity *auth.Identity) (auth.User, error)
}

type AuthMiddlewareHandler struct {
	verifier             identityVerifier
	registrar            userRegistrar
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(
	verifier identityVerifier,
	registrar userRegistrar,
) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		verifier:  verifier,
		registrar: registrar,
		allowedPaths: map[string]bool{
			"/":        true,
			"/version": true,
		},
		allowedPathsPrefixes: []string{
			// read only views of shared datasets, authorized by the share token itself
			SharedPathPrefix,
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PATCH, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				log.Tracef("[missing token] unauthorized => %s", r.URL.Path)
				span.SetStatus(codes.Error, "missing-token")
				writeJSONError(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			identity, err := h.verifier.Verify(ctx, token)
			if errors.Is(err, auth.ErrEmailNotVerified) {
				log.Tracef("[unverified email] forbidden => %s", r.URL.Path)
				span.SetStatus(codes.Error, "email-not-verified")
				writeJSONError(w, "Email not verified", http.StatusForbidden)
				return
			}
			if err != nil {
				log.Tracef("[invalid token] unauthorized => %s: %s", r.URL.Path, err)
				span.SetStatus(codes.Error, "invalid-token")
				writeJSONError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			user, err := h.registrar.Ensure(ctx, identity)
			if err != nil {
				log.Errorf("auth: ensure user [%s]: %s", identity.Subject, err)
				span.SetStatus(codes.Error, "ensure-user")
				writeJSONError(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			span.SetAttributes(attribute.String("user.id", user.ID))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	pkg.WriteJSON(w, map[string]string{"error": message}, status)
}
