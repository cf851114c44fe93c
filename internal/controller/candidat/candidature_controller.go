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

// CandidatureController serves the wizard shell: status, the full dossier
// view, step position and the final submission.
type CandidatureController struct {
	candidatureService service.CandidatureService
	deadlineService    service.DeadlineService
}

func NewCandidatureController(candidatureService service.CandidatureService, deadlineService service.DeadlineService) *CandidatureController {
	return &CandidatureController{candidatureService: candidatureService, deadlineService: deadlineService}
}

// GetStatus godoc
// @Summary Candidature status
// @Description Lightweight status with progress, for the dashboard and guards.
// @Tags Candidat
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /candidat/candidature/status [get]
func (c *CandidatureController) GetStatus(ctx *gin.Context) {
	resp, err := c.candidatureService.GetStatus(middleware.CurrentUserID(ctx))
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetCandidature godoc
// @Summary Full candidature
// @Description The dossier with progress, deadline and lock state.
// @Tags Candidat
// @Produce json
// @Success 200 {object} dto.CandidatureResponse
// @Router /candidat/candidature [get]
func (c *CandidatureController) GetCandidature(ctx *gin.Context) {
	resp, err := c.candidatureService.GetCandidature(middleware.CurrentUserID(ctx))
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SetCurrentStep godoc
// @Summary Record wizard position
// @Tags Candidat
// @Produce json
// @Param step path int true "Step number (1-6)"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /candidat/candidature/step/{step} [put]
func (c *CandidatureController) SetCurrentStep(ctx *gin.Context) {
	step, err := strconv.Atoi(ctx.Param("step"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Numéro d'étape invalide"})
		return
	}
	if err := c.candidatureService.SetCurrentStep(middleware.CurrentUserID(ctx), step); err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Étape enregistrée"})
}

// Submit godoc
// @Summary Submit the dossier
// @Description Final submission. Requires every step complete and both acknowledgements checked. Irreversible for the candidate.
// @Tags Candidat
// @Accept json
// @Produce json
// @Param confirmation body dto.SubmitRequest true "Submission acknowledgements"
// @Success 200 {object} dto.SubmitResponse
// @Failure 409 {object} dto.ErrorResponse "Already submitted or locked"
// @Failure 422 {object} dto.ErrorResponse "Incomplete steps"
// @Router /candidat/candidature/submit [post]
func (c *CandidatureController) Submit(ctx *gin.Context) {
	var req dto.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Submit: failed to bind request")
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Message: "Vous devez confirmer l'exactitude des informations et accepter le verrouillage du dossier",
		})
		return
	}
	resp, err := c.candidatureService.Submit(middleware.CurrentUserID(ctx), req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ActiveDeadlines godoc
// @Summary Active deadlines
// @Tags Candidat
// @Produce json
// @Success 200 {object} dto.DeadlineListResponse
// @Router /candidat/deadlines [get]
func (c *CandidatureController) ActiveDeadlines(ctx *gin.Context) {
	resp, err := c.deadlineService.ListActive()
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
