package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/marketpulse/internal/common"
)

// Identity is the authenticated user of a request. Only requireAuth builds
// one, so a handler taking an Identity cannot be reached without a valid token.
type Identity struct {
	userID   int64
	userName string
}

func (id Identity) UserID() int64    { return id.userID }
func (id Identity) UserName() string { return id.userName }

// AuthedHandlerFunc is a handler behind the bearer guard.
type AuthedHandlerFunc func(w http.ResponseWriter, r *http.Request, id Identity)

func (s *Server) requireAuth(next AuthedHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, reason := bearerToken(r)
		if reason != "" {
			s.rejectUnauthenticated(w, r, reason)
			return
		}

		user, err := s.users.Authenticate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrInvalidToken):
				s.rejectUnauthenticated(w, r, "invalid_token")
			case errors.Is(err, common.ErrorUnauthorized):
				s.rejectUnauthenticated(w, r, "unknown_subject")
			default:
				s.logger.Error(r.Context(), "token lookup failed", "error", err)
				writeError(w, http.StatusInternalServerError, "internal", "internal error")
			}
			return
		}

		next(w, r, Identity{userID: user.ID, userName: user.UserName})
	}
}

// bearerToken returns the token from the Authorization header, or a
// non-empty failure reason.
func bearerToken(r *http.Request) (string, string) {
	h := r.Header.Get(common.AuthorizationHeaderName)
	if h == "" {
		return "", "missing_token"
	}

	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", "bad_scheme"
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", "missing_token"
	}
	return token, ""
}

func (s *Server) rejectUnauthenticated(w http.ResponseWriter, r *http.Request, reason string) {
	s.metrics.authFailures.WithLabelValues(reason).Inc()
	s.logger.Debug(r.Context(), "request rejected by auth guard", "reason", reason)

	w.Header().Set("WWW-Authenticate", common.BearerScheme)
	writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
}
