// internal/httpserver/auth.go
//
// Authentication for the WordScramble API.
//   - POST /auth/signup, /auth/login: issue an HS256 JWT in a cookie.
//   - POST /auth/logout: clear the cookie.
//   - GET  /auth/me: current player (requires auth).
//
// Guests are identified by an anonymous cookie so their sessions still have
// an owner; logging in switches ownership to the user ID for new games.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordscramble/internal/accounts"
)

const anonCookieName = "wordscramble_anon"

// authUser is placed into request context by the auth middleware.
type authUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ctxUserKey is the context key type for storing authUser.
type ctxUserKey struct{}

// tokenClaims carries the username next to the standard claims; the user ID
// is the subject.
type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// credentials is the signup/login payload.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// mountAuthRoutes registers /auth/*.
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)
	s.r.With(s.requireAuth()).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, currentUser(r.Context()))
	})
}

// handleSignup creates a user and signs them in.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.deps.Accounts.Create(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, accounts.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username_taken")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.issueToken(w, r, u) {
		return
	}
	writeJSON(w, http.StatusCreated, authUser{ID: u.ID, Username: u.Username})
}

// handleLogin authenticates and sets the auth cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.deps.Accounts.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		if !errors.Is(err, accounts.ErrInvalidCredentials) {
			hlog.FromRequest(r).Error().Err(err).Msg("authenticate")
		}
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	if !s.issueToken(w, r, u) {
		return
	}
	writeJSON(w, http.StatusOK, authUser{ID: u.ID, Username: u.Username})
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.setCookie(w, s.deps.Config.CookieName, "", time.Time{}, -1)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) issueToken(w http.ResponseWriter, r *http.Request, u *accounts.User) bool {
	tok, exp, err := s.signJWT(u.ID, u.Username)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	s.setCookie(w, s.deps.Config.CookieName, tok, exp, 0)
	return true
}

// ------------------------------ JWT & cookies ------------------------------

// signJWT creates an HS256 token for the user, valid for Config.JWTExpires.
func (s *Server) signJWT(id, username string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.deps.Config.JWTExpires)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString([]byte(s.deps.Config.JWTSecret))
	return ss, exp, err
}

// parseJWT validates a token and returns its claims.
func (s *Server) parseJWT(tok string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.deps.Config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !t.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// setCookie writes an HttpOnly cookie. maxAge < 0 deletes it.
func (s *Server) setCookie(w http.ResponseWriter, name, value string, exp time.Time, maxAge int) {
	secure := s.deps.Config.SecureCookies
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
		MaxAge:   maxAge,
	})
}

// bearerOrCookie extracts a token from the Authorization header or cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.deps.Config.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// --------------------------- auth middleware -------------------------------

// authenticate resolves the request's token to a live user, or nil.
func (s *Server) authenticate(r *http.Request) *authUser {
	tok := s.bearerOrCookie(r)
	if tok == "" || s.deps.Accounts == nil {
		return nil
	}
	claims, err := s.parseJWT(tok)
	if err != nil {
		return nil
	}
	u, err := s.deps.Accounts.FindByID(r.Context(), claims.Subject)
	if err != nil {
		return nil
	}
	return &authUser{ID: u.ID, Username: u.Username}
}

// withOptionalAuth decorates requests with the user when a valid token is
// present. It never rejects.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u := s.authenticate(r); u != nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAuth rejects requests without a valid token.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := s.authenticate(r)
			if u == nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u)))
		})
	}
}

func currentUser(ctx context.Context) *authUser {
	u, _ := ctx.Value(ctxUserKey{}).(*authUser)
	return u
}

// ownerID identifies who owns a session: the user when logged in, otherwise
// the anonymous cookie (set on first use).
func (s *Server) ownerID(w http.ResponseWriter, r *http.Request) string {
	if u := currentUser(r.Context()); u != nil {
		return "user:" + u.ID
	}
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return "anon:" + c.Value
	}
	id := accounts.NewID()
	s.setCookie(w, anonCookieName, id, time.Now().Add(180*24*time.Hour), 0)
	// Later handlers in this request must see the same id.
	r.AddCookie(&http.Cookie{Name: anonCookieName, Value: id})
	return "anon:" + id
}
