package candidat

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hzerradi/avancement-api/internal/controller"
	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/middleware"
	"github.com/hzerradi/avancement-api/internal/service"
	"github.com/rs/zerolog/log"
)

type EnseignementController struct {
	enseignementService service.EnseignementService
}

func NewEnseignementController(enseignementService service.EnseignementService) *EnseignementController {
	return &EnseignementController{enseignementService: enseignementService}
}

// List godoc
// @Summary List enseignements
// @Description All declared teaching entries with totals and per-year groups. equivalent_tp is computed server side.
// @Tags Candidat - Enseignements
// @Produce json
// @Success 200 {object} dto.EnseignementListResponse
// @Router /candidat/candidature/enseignements [get]
func (c *EnseignementController) List(ctx *gin.Context) {
	resp, err := c.enseignementService.List(middleware.CurrentUserID(ctx))
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ReplaceAll godoc
// @Summary Replace all enseignements
// @Description Full-replace bulk save of the teaching table.
// @Tags Candidat - Enseignements
// @Accept json
// @Produce json
// @Param enseignements body dto.EnseignementBulkRequest true "Complete teaching table"
// @Success 200 {object} dto.EnseignementBulkResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Dossier locked"
// @Router /candidat/candidature/enseignements [put]
func (c *EnseignementController) ReplaceAll(ctx *gin.Context) {
	var req dto.EnseignementBulkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("ReplaceAll enseignements: failed to bind request")
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.enseignementService.ReplaceAll(middleware.CurrentUserID(ctx), req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Add godoc
// @Summary Add one enseignement
// @Tags Candidat - Enseignements
// @Accept json
// @Produce json
// @Param enseignement body dto.EnseignementItem true "Teaching entry"
// @Success 201 {object} dto.EnseignementDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /candidat/candidature/enseignements [post]
func (c *EnseignementController) Add(ctx *gin.Context) {
	var req dto.EnseignementItem
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.enseignementService.Add(middleware.CurrentUserID(ctx), req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Delete godoc
// @Summary Delete one enseignement
// @Tags Candidat - Enseignements
// @Produce json
// @Param id path int true "Enseignement ID"
// @Success 200 {object} dto.MessageResponse
// @Router /candidat/candidature/enseignements/{id} [delete]
func (c *EnseignementController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Identifiant invalide"})
		return
	}
	if err := c.enseignementService.Delete(middleware.CurrentUserID(ctx), uint(id)); err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Enseignement supprimé"})
}
