package evaluation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hzerradi/avancement-api/internal/controller"
	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/middleware"
	"github.com/hzerradi/avancement-api/internal/service"
)

// ResultController is the president surface: scores, procès-verbal and the
// one-way validation.
type ResultController struct {
	resultService service.ResultService
}

func NewResultController(resultService service.ResultService) *ResultController {
	return &ResultController{resultService: resultService}
}

// Get godoc
// @Summary Dossier result
// @Tags President
// @Produce json
// @Param id path int true "Dossier ID"
// @Success 200 {object} dto.ResultResponse
// @Router /evaluation/dossiers/{id}/result [get]
func (c *ResultController) Get(ctx *gin.Context) {
	id, ok := dossierID(ctx)
	if !ok {
		return
	}
	resp, err := c.resultService.Get(middleware.CurrentUserID(ctx), id)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Save godoc
// @Summary Save result
// @Description Update audition score, final score and procès-verbal. Refused once validated.
// @Tags President
// @Accept json
// @Produce json
// @Param id path int true "Dossier ID"
// @Param result body dto.ResultSaveRequest true "Result data"
// @Success 200 {object} dto.ResultResponse
// @Failure 409 {object} dto.ErrorResponse "Already validated"
// @Router /evaluation/dossiers/{id}/result [put]
func (c *ResultController) Save(ctx *gin.Context) {
	id, ok := dossierID(ctx)
	if !ok {
		return
	}
	var req dto.ResultSaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.resultService.Save(middleware.CurrentUserID(ctx), id, req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Validate godoc
// @Summary Validate result
// @Description Stamp the result as final. Irreversible.
// @Tags President
// @Produce json
// @Param id path int true "Dossier ID"
// @Success 200 {object} dto.ValidateResponse
// @Failure 409 {object} dto.ErrorResponse "Already validated"
// @Router /evaluation/dossiers/{id}/result/validate [post]
func (c *ResultController) Validate(ctx *gin.Context) {
	id, ok := dossierID(ctx)
	if !ok {
		return
	}
	resp, err := c.resultService.Validate(middleware.CurrentUserID(ctx), id)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
