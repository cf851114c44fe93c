package candidat

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hzerradi/avancement-api/internal/controller"
	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/middleware"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/service"
)

type ActiviteController struct {
	activiteService service.ActiviteService
}

func NewActiviteController(activiteService service.ActiviteService) *ActiviteController {
	return &ActiviteController{activiteService: activiteService}
}

// List godoc
// @Summary List activities
// @Description Declared activities of one type (enseignement or recherche), grouped by category with the catalogue.
// @Tags Candidat - Activités
// @Produce json
// @Param type query string true "Activity type" Enums(enseignement, recherche)
// @Success 200 {object} dto.ActiviteListResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /candidat/candidature/activites [get]
func (c *ActiviteController) List(ctx *gin.Context) {
	activiteType := ctx.DefaultQuery("type", model.ActiviteEnseignement)
	resp, err := c.activiteService.List(middleware.CurrentUserID(ctx), activiteType)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Save godoc
// @Summary Declare one activity
// @Description Upsert by (type, category, subcategory); an existing declaration keeps its attached document.
// @Tags Candidat - Activités
// @Accept json
// @Produce json
// @Param activite body dto.ActiviteSaveRequest true "Activity declaration"
// @Success 200 {object} dto.ActiviteResponse
// @Failure 422 {object} dto.ErrorResponse "Unknown catalogue entry"
// @Router /candidat/candidature/activites [post]
func (c *ActiviteController) Save(ctx *gin.Context) {
	var req dto.ActiviteSaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.activiteService.Save(middleware.CurrentUserID(ctx), req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ReplaceAll godoc
// @Summary Replace all activities of a type
// @Description Full-replace save. Declarations reappearing in the payload keep their documents.
// @Tags Candidat - Activités
// @Accept json
// @Produce json
// @Param activites body dto.ActiviteBulkRequest true "Complete declaration set for one type"
// @Success 200 {object} dto.ActiviteBulkResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /candidat/candidature/activites [put]
func (c *ActiviteController) ReplaceAll(ctx *gin.Context) {
	var req dto.ActiviteBulkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.activiteService.ReplaceAll(middleware.CurrentUserID(ctx), req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete one activity
// @Tags Candidat - Activités
// @Produce json
// @Param id path int true "Activite ID"
// @Success 200 {object} dto.MessageResponse
// @Router /candidat/candidature/activites/{id} [delete]
func (c *ActiviteController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Identifiant invalide"})
		return
	}
	if err := c.activiteService.Delete(middleware.CurrentUserID(ctx), uint(id)); err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Activité supprimée"})
}

// Categories godoc
// @Summary Activity catalogue
// @Tags Candidat - Activités
// @Produce json
// @Param type query string true "Activity type" Enums(enseignement, recherche)
// @Success 200 {object} dto.CategoriesResponse
// @Router /candidat/candidature/activites/categories [get]
func (c *ActiviteController) Categories(ctx *gin.Context) {
	activiteType := ctx.DefaultQuery("type", model.ActiviteEnseignement)
	ctx.JSON(http.StatusOK, c.activiteService.Categories(activiteType))
}
