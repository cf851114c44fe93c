package candidat

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hzerradi/avancement-api/internal/controller"
	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/middleware"
	"github.com/hzerradi/avancement-api/internal/service"
	"github.com/rs/zerolog/log"
)

type ProfileController struct {
	profileService service.ProfileService
}

func NewProfileController(profileService service.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetProfile godoc
// @Summary Get profile
// @Tags Candidat - Profil
// @Produce json
// @Success 200 {object} dto.ProfileDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /candidat/candidature/profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	profile, err := c.profileService.Get(middleware.CurrentUserID(ctx))
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// SaveProfile godoc
// @Summary Save profile
// @Description Full save with every mandatory field required.
// @Tags Candidat - Profil
// @Accept json
// @Produce json
// @Param profile body dto.ProfileSaveRequest true "Profile data"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Dossier locked"
// @Router /candidat/candidature/profile [put]
func (c *ProfileController) SaveProfile(ctx *gin.Context) {
	var req dto.ProfileSaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SaveProfile: failed to bind request")
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.profileService.Save(middleware.CurrentUserID(ctx), req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AutosaveProfile godoc
// @Summary Autosave profile draft
// @Description Partial save tolerating any subset of fields.
// @Tags Candidat - Profil
// @Accept json
// @Produce json
// @Param profile body dto.ProfileAutosaveRequest true "Partial profile data"
// @Success 200 {object} dto.ProfileResponse
// @Router /candidat/candidature/profile/autosave [patch]
func (c *ProfileController) AutosaveProfile(ctx *gin.Context) {
	var req dto.ProfileAutosaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.profileService.Autosave(middleware.CurrentUserID(ctx), req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
