package rest

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/marketpulse/internal/common"
)

const (
	defaultNewsQuery = "finance"
	defaultLat       = -23.55
	defaultLon       = -46.63
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, common.ErrorConflict):
			writeError(w, http.StatusConflict, "conflict", "username already registered")
		default:
			s.logger.Error(r.Context(), "registration failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "internal error")
		}
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", user.UserName)
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Username: user.UserName})
}

// handleToken implements the OAuth2 password form: username and password
// as application/x-www-form-urlencoded fields.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed form")
		return
	}

	userName := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if userName == "" || password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}

	token, err := s.users.Login(r.Context(), userName, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.metrics.authFailures.WithLabelValues("bad_credentials").Inc()
			w.Header().Set("WWW-Authenticate", common.BearerScheme)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "incorrect username or password")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   int64(token.ExpiresIn.Seconds()),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, _ *http.Request, id Identity) {
	writeJSON(w, http.StatusOK, userResponse{ID: id.UserID(), Username: id.UserName()})
}

func (s *Server) handleMarketData(w http.ResponseWriter, r *http.Request, id Identity) {
	query := defaultNewsQuery
	if params := r.URL.Query(); params.Has("q") {
		query = params.Get("q")
		if query == "" {
			writeError(w, http.StatusUnprocessableEntity, "invalid_query", "q must not be empty")
			return
		}
	}

	articles, err := s.feeds.MarketNews(r.Context(), query)
	if err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}
	if articles == nil {
		articles = []json.RawMessage{}
	}

	s.logger.Debug(r.Context(), "market data served", "username", id.UserName(), "articles", len(articles))
	writeJSON(w, http.StatusOK, map[string]any{"data": articles})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request, _ Identity) {
	params := r.URL.Query()

	lat, hasLat, err := parseCoord(params.Get("lat"), params.Has("lat"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_coordinates", "lat must be a number")
		return
	}
	lon, hasLon, err := parseCoord(params.Get("lon"), params.Has("lon"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_coordinates", "lon must be a number")
		return
	}
	if !hasLat || !hasLon {
		lat, lon = defaultLat, defaultLon
	}

	body, err := s.feeds.CurrentWeather(r.Context(), lat, lon)
	if err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func parseCoord(raw string, present bool) (float64, bool, error) {
	if !present {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, true, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true, strconv.ErrSyntax
	}
	return v, true, nil
}

func (s *Server) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	var upErr *common.UpstreamError
	if errors.As(err, &upErr) && upErr.StatusCode >= http.StatusBadRequest {
		s.logger.Warn(r.Context(), "upstream rejected request", "service", upErr.Service, "status", upErr.StatusCode)
		writeError(w, upErr.StatusCode, "upstream_error", upErr.Error())
		return
	}

	s.logger.Error(r.Context(), "upstream request failed", "error", err)
	writeError(w, http.StatusBadGateway, "bad_gateway", "upstream service unavailable")
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.users.Ping(ctx); err != nil {
		s.logger.Info(r.Context(), "database not ready", "error", err)
		writeError(w, http.StatusServiceUnavailable, "not_ready", "database not ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
