package server

import (
	"net/http"
	"strings"

	"MeloFM/core/auth"
	"MeloFM/logger"
	"MeloFM/model"
	"MeloFM/repository"
)

// HomeHandler renders the main page.
func (h *APIHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderPage(w, r, "home.html")
}

// LoginHandler renders the login page and handles credential submission.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderer.RenderPage(w, r, "login.html")
		return
	}

	isJSON := strings.Contains(r.Header.Get("Content-Type"), "application/json")

	form, err := decodeBody(r)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	username := form("username")
	password := form("password")
	if username == "" || password == "" {
		h.loginFailed(w, r, isJSON)
		return
	}

	// Username or email both work for login.
	var user *model.User
	if strings.Contains(username, "@") {
		user, err = h.userRepo.GetUserByEmail(username)
	} else {
		user, err = h.userRepo.GetUserByUsername(username)
	}
	if err != nil {
		logger.Error("Failed to look up user for login", logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if user == nil || !auth.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Login rejected", logger.String("username", username))
		h.loginFailed(w, r, isJSON)
		return
	}

	sessionID, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		logger.Error("Failed to create session", logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, sessionID, []byte(h.cfg.SessionSecret), h.sessionTTL())
	if err != nil {
		logger.Error("Failed to generate session token", logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, token)
	logger.Info("User logged in", logger.String("username", user.Username), logger.Int64("userId", user.ID))

	if isJSON {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"token": token,
			"user":  user,
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *APIHandler) loginFailed(w http.ResponseWriter, r *http.Request, isJSON bool) {
	if isJSON {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}
	setFlash(w, "Invalid username or password")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// RegisterHandler renders the registration page and creates accounts.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderer.RenderPage(w, r, "register.html")
		return
	}

	isJSON := strings.Contains(r.Header.Get("Content-Type"), "application/json")

	form, err := decodeBody(r)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	username := form("username")
	email := form("email")
	password := form("password")
	if username == "" || email == "" || password == "" {
		if isJSON {
			http.Error(w, "Username, email and password are required", http.StatusBadRequest)
			return
		}
		setFlash(w, "Username, email and password are required")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		http.Error(w, "Failed to process password", http.StatusInternalServerError)
		return
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	userID, err := h.userRepo.CreateUser(user)
	if err != nil {
		if err == repository.ErrDuplicateUser {
			logger.Warn("Registration rejected, duplicate username or email",
				logger.String("username", username),
				logger.String("email", email),
			)
			if isJSON {
				http.Error(w, "Username or email already exists", http.StatusConflict)
				return
			}
			setFlash(w, "Username already exists")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}
		logger.Error("Failed to create user", logger.ErrorField(err))
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	logger.Info("User registered", logger.String("username", username), logger.Int64("userId", userID))

	if isJSON {
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"id":       userID,
			"username": username,
			"email":    email,
		})
		return
	}
	setFlash(w, "Registration successful, please log in")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LogoutHandler revokes the current session. Logging out twice is harmless.
func (h *APIHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if claims, err := h.authenticate(r); err == nil {
		if err := h.sessions.Delete(r.Context(), claims.ID); err != nil {
			logger.Warn("Failed to delete session", logger.ErrorField(err))
		}
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SettingsHandler renders the settings page and applies profile updates.
func (h *APIHandler) SettingsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderer.RenderPage(w, r, "settings.html")
		return
	}

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	isJSON := strings.Contains(r.Header.Get("Content-Type"), "application/json")

	form, err := decodeBody(r)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	email := form("email")
	newPassword := form("new_password")

	var passwordHash string
	if newPassword != "" {
		passwordHash, err = auth.HashPassword(newPassword)
		if err != nil {
			http.Error(w, "Failed to process password", http.StatusInternalServerError)
			return
		}
	}

	if err := h.userRepo.UpdateUserSettings(userID, email, passwordHash); err != nil {
		if err == repository.ErrDuplicateUser {
			if isJSON {
				http.Error(w, "Email already in use", http.StatusConflict)
				return
			}
			setFlash(w, "Email already in use")
			http.Redirect(w, r, "/settings", http.StatusSeeOther)
			return
		}
		logger.Error("Failed to update settings", logger.Int64("userId", userID), logger.ErrorField(err))
		http.Error(w, "Failed to update settings", http.StatusInternalServerError)
		return
	}

	logger.Info("Settings updated", logger.Int64("userId", userID))

	if isJSON {
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
		return
	}
	setFlash(w, "Settings updated successfully")
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

// ContactHandler renders the contact page and acknowledges submissions.
// Nothing is persisted.
func (h *APIHandler) ContactHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		setFlash(w, "Thank you for your message! We will get back to you soon.")
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
		return
	}
	h.renderer.RenderPage(w, r, "contact.html")
}
