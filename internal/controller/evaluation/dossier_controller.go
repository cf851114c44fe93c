package evaluation

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

// DossierController serves commission members and the president. Every
// access is scoped to the caller's commission specialty.
type DossierController struct {
	dossierService    service.DossierService
	evaluationService service.EvaluationService
	documentService   service.DocumentService
}

func NewDossierController(dossierService service.DossierService, evaluationService service.EvaluationService, documentService service.DocumentService) *DossierController {
	return &DossierController{
		dossierService:    dossierService,
		evaluationService: evaluationService,
		documentService:   documentService,
	}
}

// List godoc
// @Summary List dossiers
// @Description Submitted dossiers of the caller's commission specialty.
// @Tags Evaluation
// @Produce json
// @Param status query string false "Filter by status" Enums(submitted, blocked, approved, rejected, all)
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Success 200 {object} dto.DossierListResponse
// @Failure 403 {object} dto.ErrorResponse "Not a commission member"
// @Router /evaluation/dossiers [get]
func (c *DossierController) List(ctx *gin.Context) {
	q := service.DossierListQuery{
		Status:  ctx.Query("status"),
		Page:    intQuery(ctx, "page", 1),
		PerPage: intQuery(ctx, "per_page", 15),
	}
	resp, err := c.dossierService.ListForEvaluator(middleware.CurrentUserID(ctx), q)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get one dossier
// @Tags Evaluation
// @Produce json
// @Param id path int true "Dossier ID"
// @Success 200 {object} dto.DossierResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /evaluation/dossiers/{id} [get]
func (c *DossierController) Get(ctx *gin.Context) {
	id, ok := dossierID(ctx)
	if !ok {
		return
	}
	if _, err := c.dossierService.AuthorizeEvaluator(middleware.CurrentUserID(ctx), id); err != nil {
		controller.HandleError(ctx, err)
		return
	}
	resp, err := c.dossierService.Get(id)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Documents godoc
// @Summary Dossier documents
// @Tags Evaluation
// @Produce json
// @Param id path int true "Dossier ID"
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Success 200 {object} dto.DossierDocumentListResponse
// @Router /evaluation/dossiers/{id}/documents [get]
func (c *DossierController) Documents(ctx *gin.Context) {
	id, ok := dossierID(ctx)
	if !ok {
		return
	}
	if _, err := c.dossierService.AuthorizeEvaluator(middleware.CurrentUserID(ctx), id); err != nil {
		controller.HandleError(ctx, err)
		return
	}
	resp, err := c.dossierService.Documents(id, intQuery(ctx, "page", 1), intQuery(ctx, "per_page", 15))
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DownloadDocument godoc
// @Summary Download a dossier document
// @Tags Evaluation
// @Produce application/pdf
// @Param id path int true "Dossier ID"
// @Param document_id path int true "Document ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse
// @Router /evaluation/dossiers/{id}/documents/{document_id}/download [get]
func (c *DossierController) DownloadDocument(ctx *gin.Context) {
	id, ok := dossierID(ctx)
	if !ok {
		return
	}
	docID, err := strconv.ParseUint(ctx.Param("document_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Identifiant de document invalide"})
		return
	}
	if _, err := c.dossierService.AuthorizeEvaluator(middleware.CurrentUserID(ctx), id); err != nil {
		controller.HandleError(ctx, err)
		return
	}
	path, doc, err := c.documentService.FilePathForDossier(id, uint(docID))
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.FileAttachment(path, doc.OriginalName)
}

// GetNotes godoc
// @Summary Evaluation notes
// @Tags Evaluation
// @Produce json
// @Param id path int true "Dossier ID"
// @Success 200 {object} dto.NotesResponse
// @Router /evaluation/dossiers/{id}/notes [get]
func (c *DossierController) GetNotes(ctx *gin.Context) {
	id, ok := dossierID(ctx)
	if !ok {
		return
	}
	resp, err := c.evaluationService.GetNotes(middleware.CurrentUserID(ctx), id)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SaveNotes godoc
// @Summary Save evaluation notes
// @Description Full replace of the note grid. Empty rows are dropped; the first invalid row rejects the whole save.
// @Tags Evaluation
// @Accept json
// @Produce json
// @Param id path int true "Dossier ID"
// @Param notes body dto.NotesSaveRequest true "Complete note grid"
// @Success 200 {object} dto.NotesSaveResponse
// @Failure 422 {object} dto.ErrorResponse "Missing criterion or score out of range"
// @Router /evaluation/dossiers/{id}/notes [put]
func (c *DossierController) SaveNotes(ctx *gin.Context) {
	id, ok := dossierID(ctx)
	if !ok {
		return
	}
	var req dto.NotesSaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SaveNotes: failed to bind request")
		controller.BadRequest(ctx, err)
		return
	}
	resp, err := c.evaluationService.SaveNotes(middleware.CurrentUserID(ctx), id, req)
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func dossierID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Identifiant de dossier invalide"})
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
