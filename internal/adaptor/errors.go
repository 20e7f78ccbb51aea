package adaptor

import (
	"net/http"

	"wedding-marketplace/pkg/apperr"
	"wedding-marketplace/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps a classified service error to an HTTP response.
// Unclassified errors log the full chain and answer with a generic 500.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, action string) {
	msg := apperr.MessageOf(err)

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		utils.ResponseBadRequest(w, msg, nil)
	case apperr.KindAuthentication:
		utils.ResponseUnauthorized(w, msg)
	case apperr.KindAuthorization:
		utils.ResponseForbidden(w, msg)
	case apperr.KindNotFound:
		utils.ResponseNotFound(w, msg)
	case apperr.KindInvalidTransition:
		utils.ResponseConflict(w, msg)
	case apperr.KindExternal:
		log.Error("Upstream provider failed",
			zap.String("action", action),
			zap.Error(err),
		)
		utils.ResponseBadGateway(w, msg)
	case apperr.KindConfiguration:
		log.Error("Configuration error",
			zap.String("action", action),
			zap.Error(err),
		)
		utils.ResponseInternalError(w, msg)
	default:
		log.Error("Request failed",
			zap.String("action", action),
			zap.Error(err),
		)
		utils.ResponseInternalError(w, msg)
	}
}
