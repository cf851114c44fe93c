package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/service"
	"github.com/rs/zerolog/log"
)

// HandleError maps service errors to HTTP responses. Validation errors keep
// their field details; unknown errors are logged and masked.
func HandleError(ctx *gin.Context, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: ve.Message, Errors: ve.Fields})
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Ressource introuvable"})
	case errors.Is(err, service.ErrForbidden):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "Accès refusé"})
	case errors.Is(err, service.ErrInvalidLogin):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Email ou mot de passe incorrect"})
	case errors.Is(err, service.ErrLocked):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "Le dossier est verrouillé et ne peut plus être modifié"})
	case errors.Is(err, service.ErrAlreadySubmitted):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "Le dossier a déjà été soumis"})
	case errors.Is(err, service.ErrAlreadyValidated):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "Le résultat a déjà été validé"})
	case errors.Is(err, service.ErrClosed):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "La période de candidature est fermée"})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Une erreur interne est survenue"})
	}
}

// BadRequest reports a binding failure with the raw binding message.
func BadRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Requête invalide: " + err.Error()})
}
