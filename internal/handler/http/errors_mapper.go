package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/pass-guard/internal/app"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/service"
	"github.com/MKhiriev/pass-guard/internal/store"
	"github.com/MKhiriev/pass-guard/internal/utils"
)

type errorResponse struct {
	status  int
	message string
}

// errorStatusMap is checked in order; the first sentinel matched by
// errors.Is wins.
var errorStatusMap = []struct {
	target error
	resp   errorResponse
}{
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{utils.ErrEmptyBody, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{ErrItemIDMismatch, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},

	{service.ErrWrongPassword, errorResponse{http.StatusUnauthorized, app.MsgInvalidLoginPassword}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{ErrNoUserIDInContext, errorResponse{http.StatusUnauthorized, app.MsgNoUserIDProvided}},

	{store.ErrNoUserWasFound, errorResponse{http.StatusNotFound, app.MsgUserNotFound}},
	{store.ErrVaultItemNotFound, errorResponse{http.StatusNotFound, app.MsgItemNotFound}},

	{store.ErrLoginAlreadyExists, errorResponse{http.StatusConflict, app.MsgLoginAlreadyExists}},
	{store.ErrVaultItemAlreadyExists, errorResponse{http.StatusConflict, app.MsgItemAlreadyExists}},
	{store.ErrRekeyIncomplete, errorResponse{http.StatusConflict, app.MsgRekeyIncomplete}},

	{service.ErrTokenCreationFailed, errorResponse{http.StatusInternalServerError, app.MsgLoginFailed}},
}

// responseFromError returns the status and body for err. Unknown errors
// become a 500 carrying fallback, or the generic message if fallback is
// empty.
func responseFromError(err error, fallback string) errorResponse {
	for _, m := range errorStatusMap {
		if errors.Is(err, m.target) {
			return m.resp
		}
	}

	if fallback == "" {
		fallback = app.MsgInternalServerError
	}
	return errorResponse{http.StatusInternalServerError, fallback}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	resp := responseFromError(err, fallback)

	log := logger.FromRequest(r)
	if resp.status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", resp.status).Msg(resp.message)
	} else {
		log.Info().Err(err).Int("status", resp.status).Msg(resp.message)
	}

	http.Error(w, resp.message, resp.status)
}
