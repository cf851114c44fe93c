package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hzerradi/avancement-api/internal/controller"
	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	adminService    service.AdminService
	dossierService  service.DossierService
	deadlineService service.DeadlineService
}

func NewAdminController(adminService service.AdminService, dossierService service.DossierService, deadlineService service.DeadlineService) *AdminController {
	return &AdminController{
		adminService:    adminService,
		dossierService:  dossierService,
		deadlineService: deadlineService,
	}
}

// --- Users ---

// ListUsers godoc
// @Summary (Admin) List users
// @Tags Admin - Users
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Param role query string false "Filter by role"
// @Success 200 {object} dto.AdminUserListResponse
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	resp, err := c.adminService.ListUsers(intQuery(ctx, "page", 1), intQuery(ctx, "per_page", 15), ctx.Query("role"))
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateUser godoc
// @Summary (Admin) Create a user
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Param user body dto.AdminCreateUserRequest true "User data"
// @Success 201 {object} dto.AdminUserDTO
// @Failure 422 {object} dto.ErrorResponse "Email already used"
// @Router /admin/users [post]
func (c *AdminController) CreateUser(ctx *gin.Context) {
	var req dto.AdminCreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateUser: failed to bind request")
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.adminService.CreateUser(req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// CreateCandidate godoc
// @Summary (Admin) Create a candidate
// @Description Creates the account, its candidature and a pre-filled profile.
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Param candidate body dto.AdminCreateCandidateRequest true "Candidate data"
// @Success 201 {object} dto.AdminUserDTO
// @Failure 422 {object} dto.ErrorResponse
// @Router /admin/candidates [post]
func (c *AdminController) CreateCandidate(ctx *gin.Context) {
	var req dto.AdminCreateCandidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.adminService.CreateCandidate(req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// DeleteUser godoc
// @Summary (Admin) Delete a user
// @Tags Admin - Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.adminService.DeleteUser(id); err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Utilisateur supprimé"})
}

// --- Commissions ---

// ListCommissions godoc
// @Summary (Admin) List commissions
// @Tags Admin - Commissions
// @Produce json
// @Success 200 {object} dto.AdminCommissionListResponse
// @Router /admin/commissions [get]
func (c *AdminController) ListCommissions(ctx *gin.Context) {
	resp, err := c.adminService.ListCommissions()
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateCommission godoc
// @Summary (Admin) Create a commission
// @Tags Admin - Commissions
// @Accept json
// @Produce json
// @Param commission body dto.CommissionCreateRequest true "Commission data"
// @Success 201 {object} dto.AdminCommissionDTO
// @Router /admin/commissions [post]
func (c *AdminController) CreateCommission(ctx *gin.Context) {
	var req dto.CommissionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.adminService.CreateCommission(req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListCommissionMembers godoc
// @Summary (Admin) List commission members
// @Tags Admin - Commissions
// @Produce json
// @Param id path int true "Commission ID"
// @Success 200 {object} dto.CommissionMemberListResponse
// @Router /admin/commissions/{id}/members [get]
func (c *AdminController) ListCommissionMembers(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.adminService.ListCommissionMembers(id)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AddCommissionMember godoc
// @Summary (Admin) Add a commission member
// @Tags Admin - Commissions
// @Accept json
// @Produce json
// @Param id path int true "Commission ID"
// @Param member body dto.CommissionMemberRequest true "Member data"
// @Success 201 {object} dto.CommissionMemberDTO
// @Failure 422 {object} dto.ErrorResponse "User is not an evaluator account"
// @Router /admin/commissions/{id}/members [post]
func (c *AdminController) AddCommissionMember(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.CommissionMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.adminService.AddCommissionMember(id, req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// RemoveCommissionMember godoc
// @Summary (Admin) Remove a commission member
// @Tags Admin - Commissions
// @Produce json
// @Param id path int true "Commission ID"
// @Param member_id path int true "Membership ID"
// @Success 200 {object} dto.MessageResponse
// @Router /admin/commissions/{id}/members/{member_id} [delete]
func (c *AdminController) RemoveCommissionMember(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(ctx, "member_id")
	if !ok {
		return
	}
	if err := c.adminService.RemoveCommissionMember(id, memberID); err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Membre retiré"})
}

// --- Dossiers ---

// ListDossiers godoc
// @Summary (Admin) List dossiers
// @Tags Admin - Dossiers
// @Produce json
// @Param status query string false "Filter by status"
// @Param specialite query string false "Filter by specialty"
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Success 200 {object} dto.DossierListResponse
// @Router /admin/dossiers [get]
func (c *AdminController) ListDossiers(ctx *gin.Context) {
	q := service.DossierListQuery{
		Status:  ctx.Query("status"),
		Page:    intQuery(ctx, "page", 1),
		PerPage: intQuery(ctx, "per_page", 15),
	}
	resp, err := c.dossierService.ListForAdmin(q, ctx.Query("specialite"))
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetDossier godoc
// @Summary (Admin) Get one dossier
// @Tags Admin - Dossiers
// @Produce json
// @Param id path int true "Dossier ID"
// @Success 200 {object} dto.DossierResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/dossiers/{id} [get]
func (c *AdminController) GetDossier(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.dossierService.Get(id)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// TransitionDossier godoc
// @Summary (Admin) Change dossier status
// @Description block a submitted dossier, unblock it back to draft, approve or reject it.
// @Tags Admin - Dossiers
// @Accept json
// @Produce json
// @Param id path int true "Dossier ID"
// @Param action body dto.DossierStatusRequest true "Transition action"
// @Success 200 {object} dto.DossierResponse
// @Failure 409 {object} dto.ErrorResponse "Transition not allowed from the current status"
// @Router /admin/dossiers/{id}/status [put]
func (c *AdminController) TransitionDossier(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.DossierStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.dossierService.Transition(id, req.Action)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// --- Deadlines ---

// ListDeadlines godoc
// @Summary (Admin) List deadlines
// @Tags Admin - Deadlines
// @Produce json
// @Success 200 {object} dto.DeadlineListResponse
// @Router /admin/deadlines [get]
func (c *AdminController) ListDeadlines(ctx *gin.Context) {
	resp, err := c.deadlineService.ListAll()
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateDeadline godoc
// @Summary (Admin) Create a deadline
// @Tags Admin - Deadlines
// @Accept json
// @Produce json
// @Param deadline body dto.DeadlineCreateRequest true "Deadline data"
// @Success 201 {object} dto.DeadlineDTO
// @Router /admin/deadlines [post]
func (c *AdminController) CreateDeadline(ctx *gin.Context) {
	var req dto.DeadlineCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.deadlineService.Create(req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateDeadline godoc
// @Summary (Admin) Update a deadline
// @Tags Admin - Deadlines
// @Accept json
// @Produce json
// @Param id path int true "Deadline ID"
// @Param deadline body dto.DeadlineUpdateRequest true "Deadline data"
// @Success 200 {object} dto.DeadlineDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/deadlines/{id} [put]
func (c *AdminController) UpdateDeadline(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.DeadlineUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.deadlineService.Update(id, req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteDeadline godoc
// @Summary (Admin) Delete a deadline
// @Tags Admin - Deadlines
// @Produce json
// @Param id path int true "Deadline ID"
// @Success 200 {object} dto.MessageResponse
// @Router /admin/deadlines/{id} [delete]
func (c *AdminController) DeleteDeadline(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.deadlineService.Delete(id); err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Échéance supprimée"})
}

// --- Analytics & settings ---

// AnalyticsOverview godoc
// @Summary (Admin) Analytics overview
// @Tags Admin - Analytics
// @Produce json
// @Success 200 {object} dto.AnalyticsOverviewResponse
// @Router /admin/analytics/overview [get]
func (c *AdminController) AnalyticsOverview(ctx *gin.Context) {
	resp, err := c.adminService.AnalyticsOverview()
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetSettings godoc
// @Summary (Admin) Get settings
// @Tags Admin - Settings
// @Produce json
// @Success 200 {object} dto.SettingsDTO
// @Router /admin/settings [get]
func (c *AdminController) GetSettings(ctx *gin.Context) {
	resp, err := c.adminService.GetSettings()
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateSettings godoc
// @Summary (Admin) Update settings
// @Tags Admin - Settings
// @Accept json
// @Produce json
// @Param settings body dto.SettingsUpdateRequest true "Settings"
// @Success 200 {object} dto.SettingsDTO
// @Router /admin/settings [put]
func (c *AdminController) UpdateSettings(ctx *gin.Context) {
	var req dto.SettingsUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.adminService.UpdateSettings(req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Identifiant invalide"})
		return 0, false
	}
	return uint(id), true
}

func intQuery(ctx *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(ctx.Query(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
