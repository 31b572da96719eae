package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"ellarises/internal/security"
)

const (
	oauthStateCookieName = "oauth_state"
	googleUserInfoURL    = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// StartGoogleOAuth redirects to Google's consent page with a one-time state
func (h *AuthHandler) StartGoogleOAuth(w http.ResponseWriter, r *http.Request) {
	if !h.googleEnabled() {
		http.Error(w, "Google sign-in is not configured", http.StatusNotFound)
		return
	}

	state := uuid.New().String()
	http.SetCookie(w, security.CreateSessionCookie(r, oauthStateCookieName, state, time.Now().Add(10*time.Minute)))
	http.Redirect(w, r, h.googleOAuth.AuthCodeURL(state), http.StatusSeeOther)
}

// GoogleOAuthCallback exchanges the authorization code, looks up the Google
// profile, and logs the matching account in (creating one on first sign-in)
func (h *AuthHandler) GoogleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	if !h.googleEnabled() {
		http.Error(w, "Google sign-in is not configured", http.StatusNotFound)
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		respondWithError(w, http.StatusBadRequest, "Invalid sign-in state", "OAuth state mismatch", err)
		return
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, oauthStateCookieName))

	code := r.URL.Query().Get("code")
	if code == "" {
		h.renderLogin(w, LoginViewData{
			Title:         "Login - Ella Rises",
			Error:         "Google sign-in was cancelled",
			GoogleEnabled: h.googleEnabled(),
		})
		return
	}

	token, err := h.googleOAuth.Exchange(r.Context(), code)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error exchanging OAuth code", err)
		return
	}

	info, err := h.fetchGoogleUserInfo(r, token.AccessToken)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error fetching Google profile", err)
		return
	}

	session, _, err := h.authService.OAuthLogin("google", info.ID, info.Email, info.Name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error completing Google sign-in", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, consumeReturnTo(w, r), http.StatusSeeOther)
}

func (h *AuthHandler) fetchGoogleUserInfo(r *http.Request, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("userinfo response missing email")
	}
	return &info, nil
}
