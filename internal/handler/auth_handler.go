package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinic-management-api/internal/auth"
	"clinic-management-api/internal/model"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "all fields required, password at least 8 chars")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
	}

	if err := h.store.CreateUser(r.Context(), u); err != nil {
		// unique violation = dup email, but don't reveal that
		writeError(w, http.StatusConflict, "registration failed")
		return
	}

	tok, err := auth.MakeToken(u.ID, h.secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"userId": u.ID, "token": tok})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	u, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	accessTok, err := auth.MakeToken(u.ID, h.secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	rawRefresh, tokenHash, err := auth.GenerateRefreshToken()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := h.store.CreateRefreshToken(r.Context(), u.ID, tokenHash, time.Now().Add(auth.RefreshTokenTTL)); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	setAuthCookies(w, accessTok, rawRefresh)

	// warm the dashboard: the session's auth transition kicks off the
	// appointment and stats refreshes
	h.sessions.Get(u.ID)

	writeJSON(w, http.StatusOK, map[string]string{
		"userId": u.ID,
		"name":   u.Name,
		"token":  accessTok,
	})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("refresh_token")
	if err != nil || c.Value == "" {
		writeError(w, http.StatusUnauthorized, "no refresh token")
		return
	}

	rt, err := h.store.GetRefreshTokenByHash(r.Context(), auth.HashRefreshToken(c.Value))
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(r.Context(), rt.ID, newID, rt.UserID, newHash, time.Now().Add(auth.RefreshTokenTTL)); err != nil {
		h.log.Error("rotate refresh token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	accessTok, err := auth.MakeToken(rt.UserID, h.secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	setAuthCookies(w, accessTok, newRaw)
	writeJSON(w, http.StatusOK, map[string]string{"token": accessTok})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie("refresh_token"); err == nil && c.Value != "" {
		if rt, err := h.store.GetRefreshTokenByHash(r.Context(), auth.HashRefreshToken(c.Value)); err == nil {
			if err := h.store.RevokeAllRefreshTokens(r.Context(), rt.UserID); err != nil {
				h.log.Error("revoke refresh tokens", zap.Error(err))
			}
			// sign the dashboard session out; adapters reset themselves
			h.sessions.End(rt.UserID)
		}
	}

	clearAuthCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

func setAuthCookies(w http.ResponseWriter, accessTok, rawRefresh string) {
	http.SetCookie(w, &http.Cookie{
		Name: "access_token", Value: accessTok,
		HttpOnly: true, Path: "/", SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name: "refresh_token", Value: rawRefresh,
		HttpOnly: true, Path: "/auth/", SameSite: http.SameSiteLaxMode,
	})
}

func clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "", Path: "/", MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "", Path: "/auth/", MaxAge: -1})
}
