package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"MeloFM/config"
	"MeloFM/core/auth"
	"MeloFM/core/catalog"
	"MeloFM/logger"
	"MeloFM/repository"
)

const sessionCookieName = "melofm_session"
const flashCookieName = "flash"

// APIHandler handles all HTTP requests.
type APIHandler struct {
	userRepo     repository.UserRepository
	playlistRepo repository.PlaylistRepository
	catalog      *catalog.Catalog
	sessions     auth.SessionStore
	renderer     *Renderer
	cfg          *config.Config
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(
	userRepo repository.UserRepository,
	playlistRepo repository.PlaylistRepository,
	cat *catalog.Catalog,
	sessions auth.SessionStore,
	renderer *Renderer,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		userRepo:     userRepo,
		playlistRepo: playlistRepo,
		catalog:      cat,
		sessions:     sessions,
		renderer:     renderer,
		cfg:          cfg,
	}
}

func (h *APIHandler) sessionTTL() time.Duration {
	return time.Duration(h.cfg.SessionTTLHours) * time.Hour
}

// sessionToken pulls the session token from the Authorization header or,
// for browser requests, from the session cookie.
func sessionToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// authenticate validates the request's session token against the session
// store and returns the claims bound to it.
func (h *APIHandler) authenticate(r *http.Request) (*auth.Claims, error) {
	token := sessionToken(r)
	if token == "" {
		return nil, fmt.Errorf("no session token")
	}

	claims, err := auth.ParseToken(token, []byte(h.cfg.SessionSecret))
	if err != nil {
		return nil, err
	}

	// The token is only as alive as its server-side session record.
	if _, err := h.sessions.Get(r.Context(), claims.ID); err != nil {
		return nil, err
	}
	return claims, nil
}

// AuthMiddleware protects JSON endpoints; unauthenticated requests get 401.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.authenticate(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), "userID", claims.UserID)
		ctx = context.WithValue(ctx, "username", claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// PageAuthMiddleware protects HTML pages; unauthenticated requests are
// redirected to the login page.
func (h *APIHandler) PageAuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.authenticate(r)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), "userID", claims.UserID)
		ctx = context.WithValue(ctx, "username", claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// GetUserIDFromContext extracts the user ID from the request context.
func GetUserIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value("userID").(int64)
	if !ok {
		return 0, fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// GetUsernameFromContext extracts the username from the request context.
func GetUsernameFromContext(ctx context.Context) (string, error) {
	username, ok := ctx.Value("username").(string)
	if !ok {
		return "", fmt.Errorf("username not found in context")
	}
	return username, nil
}

// writeJSON serializes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode JSON response", logger.ErrorField(err))
	}
}

// decodeBody reads a request body that may be either a JSON object or a
// classic HTML form, returning a flat key→value view.
func decodeBody(r *http.Request) (func(string) string, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		values := map[string]string{}
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			return nil, fmt.Errorf("invalid request body: %w", err)
		}
		return func(key string) string { return values[key] }, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form body: %w", err)
	}
	return r.FormValue, nil
}

// setFlash stores a one-shot status message shown on the next rendered page.
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash reads and clears the pending flash message, if any.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}

func (h *APIHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *APIHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
