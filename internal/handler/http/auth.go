package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/pass-guard/internal/app"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/service"
	"github.com/MKhiriev/pass-guard/internal/utils"
	"github.com/MKhiriev/pass-guard/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := utils.ReadJSON(r, &user); err != nil {
		writeError(w, r, invalidJSON(err), "")
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(r.Context(), user)
	if err != nil {
		writeError(w, r, err, app.MsgRegistrationFailed)
		return
	}

	logger.FromRequest(r).Info().Int64("id", registeredUser.UserID).Msg("user registered")
	h.issueToken(w, r, registeredUser)
}

func (h *Handler) params(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := utils.ReadJSON(r, &user); err != nil {
		writeError(w, r, invalidJSON(err), "")
		return
	}

	params, err := h.services.AuthService.Params(r.Context(), user.Login)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	utils.WriteJSON(w, params, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := utils.ReadJSON(r, &user); err != nil {
		writeError(w, r, invalidJSON(err), "")
		return
	}

	foundUser, err := h.services.AuthService.Login(r.Context(), user)
	if err != nil {
		writeError(w, r, err, app.MsgLoginFailed)
		return
	}

	logger.FromRequest(r).Debug().Int64("id", foundUser.UserID).Msg("user logged in")
	h.issueToken(w, r, foundUser)
}

func (h *Handler) rekey(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserIDInContext, "")
		return
	}

	var req models.RekeyRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, invalidJSON(err), "")
		return
	}

	if err := h.services.AuthService.Rekey(r.Context(), userID, req); err != nil {
		writeError(w, r, err, "")
		return
	}

	logger.FromRequest(r).Info().Int64("id", userID).Int("items", len(req.Items)).Msg("vault rekeyed")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, user models.User) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		writeError(w, r, err, app.MsgLoginFailed)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	w.WriteHeader(http.StatusOK)
}

func invalidJSON(err error) error {
	return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
}
