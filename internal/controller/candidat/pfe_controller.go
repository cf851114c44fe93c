package candidat

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hzerradi/avancement-api/internal/controller"
	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/middleware"
	"github.com/hzerradi/avancement-api/internal/service"
)

type PfeController struct {
	pfeService service.PfeService
}

func NewPfeController(pfeService service.PfeService) *PfeController {
	return &PfeController{pfeService: pfeService}
}

// List godoc
// @Summary List PFE supervisions
// @Description All supervised projects with totals, per-year and per-level groups.
// @Tags Candidat - PFE
// @Produce json
// @Success 200 {object} dto.PfeListResponse
// @Router /candidat/candidature/pfes [get]
func (c *PfeController) List(ctx *gin.Context) {
	resp, err := c.pfeService.List(middleware.CurrentUserID(ctx))
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ReplaceAll godoc
// @Summary Replace all PFE supervisions
// @Tags Candidat - PFE
// @Accept json
// @Produce json
// @Param pfes body dto.PfeBulkRequest true "Complete supervision table"
// @Success 200 {object} dto.PfeBulkResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /candidat/candidature/pfes [put]
func (c *PfeController) ReplaceAll(ctx *gin.Context) {
	var req dto.PfeBulkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.pfeService.ReplaceAll(middleware.CurrentUserID(ctx), req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Add godoc
// @Summary Add one PFE supervision
// @Tags Candidat - PFE
// @Accept json
// @Produce json
// @Param pfe body dto.PfeItem true "Supervision entry"
// @Success 201 {object} dto.PfeDTO
// @Router /candidat/candidature/pfes [post]
func (c *PfeController) Add(ctx *gin.Context) {
	var req dto.PfeItem
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.pfeService.Add(middleware.CurrentUserID(ctx), req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Update one PFE supervision
// @Tags Candidat - PFE
// @Accept json
// @Produce json
// @Param id path int true "PFE ID"
// @Param pfe body dto.PfeItem true "Supervision entry"
// @Success 200 {object} dto.PfeDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /candidat/candidature/pfes/{id} [put]
func (c *PfeController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Identifiant invalide"})
		return
	}
	var req dto.PfeItem
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.pfeService.Update(middleware.CurrentUserID(ctx), uint(id), req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete one PFE supervision
// @Tags Candidat - PFE
// @Produce json
// @Param id path int true "PFE ID"
// @Success 200 {object} dto.MessageResponse
// @Router /candidat/candidature/pfes/{id} [delete]
func (c *PfeController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Identifiant invalide"})
		return
	}
	if err := c.pfeService.Delete(middleware.CurrentUserID(ctx), uint(id)); err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Encadrement supprimé"})
}
