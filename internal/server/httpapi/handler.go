package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sitenexus/sitenexus/internal/common"
	"github.com/sitenexus/sitenexus/internal/server/sites"
)

// maxUploadBytes bounds the in-memory part of a profile image upload.
const maxUploadBytes = 10 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

type registerRequest struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := s.users.Register(ctx, req.CompanyName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusBadRequest, "email already registered")
			return
		}
		if errors.Is(err, common.ErrorValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error(ctx, "registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error registering user")
		return
	}

	s.logger.Info(ctx, "user registered", "email", req.Email)
	writeMessage(w, http.StatusCreated, "user registered successfully")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			// Same response for unknown email and wrong password.
			writeError(w, http.StatusBadRequest, "incorrect email or password")
			return
		}
		s.logger.Error(ctx, "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error logging in")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "logged in successfully",
		"token":   token,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (s *HTTPServer) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.users.RequestPasswordReset(ctx, req.Email); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "email not found")
			return
		}
		s.logger.Error(ctx, "reset request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error sending recovery email")
		return
	}

	writeMessage(w, http.StatusOK, "recovery email sent")
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (s *HTTPServer) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.users.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidToken),
			errors.Is(err, common.ErrorNotFound),
			errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, "invalid or expired token")
		default:
			s.logger.Error(ctx, "password reset failed", "error", err)
			writeError(w, http.StatusInternalServerError, "error resetting password")
		}
		return
	}

	writeMessage(w, http.StatusOK, "password reset successfully")
}

func (s *HTTPServer) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "access denied")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "error reading image file")
		return
	}

	if err := s.users.UploadImage(ctx, userID, data, header.Header.Get("Content-Type")); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		s.logger.Error(ctx, "image upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error saving image")
		return
	}

	writeMessage(w, http.StatusOK, "image updated successfully")
}

func (s *HTTPServer) handleGetImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "access denied")
		return
	}

	data, contentType, err := s.users.GetImage(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "no image found for user")
			return
		}
		s.logger.Error(ctx, "image fetch failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error loading image")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *HTTPServer) handleListSites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "access denied")
		return
	}

	owned, err := s.sites.ListOwned(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "site listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error fetching sites")
		return
	}

	writeJSON(w, http.StatusOK, owned)
}

func (s *HTTPServer) handleCreateSite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "access denied")
		return
	}

	var site sites.Site
	if err := json.NewDecoder(r.Body).Decode(&site); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.sites.Create(ctx, userID, &site)
	if err != nil {
		s.logger.Error(ctx, "site creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error saving site")
		return
	}

	writeJSON(w, http.StatusOK, created)
}

func siteIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (s *HTTPServer) handleGetSite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := siteIDFromURL(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "site not found")
		return
	}

	site, err := s.sites.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "site not found")
			return
		}
		s.logger.Error(ctx, "site fetch failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error fetching site")
		return
	}

	writeJSON(w, http.StatusOK, site)
}

func (s *HTTPServer) handleReplaceInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := siteIDFromURL(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "site not found")
		return
	}

	// The body is the new inventory array itself, replacing the old one
	// wholesale.
	var inventory []sites.InventoryItem
	if err := json.NewDecoder(r.Body).Decode(&inventory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	site, err := s.sites.ReplaceInventory(ctx, id, inventory)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "site not found")
			return
		}
		s.logger.Error(ctx, "inventory update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error updating inventory")
		return
	}

	writeJSON(w, http.StatusOK, site)
}

func (s *HTTPServer) handleDeleteSite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := siteIDFromURL(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "site not found")
		return
	}

	if err := s.sites.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "site not found")
			return
		}
		s.logger.Error(ctx, "site deletion failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error removing site")
		return
	}

	writeMessage(w, http.StatusOK, "site removed successfully")
}
