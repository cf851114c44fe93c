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
	"github.com/rs/zerolog/log"
)

type DocumentController struct {
	documentService service.DocumentService
}

func NewDocumentController(documentService service.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// Upload godoc
// @Summary Upload a document
// @Description PDF only, 10 MB max. Either a typed dossier document or a supporting file for one activity (activite_id). A previous document in the same slot is replaced.
// @Tags Candidat - Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF file"
// @Param type formData string false "Document type" Enums(profile_pdf, enseignements_pdf, pfe_pdf, signed_document)
// @Param activite_id formData int false "Activity to attach the file to"
// @Success 201 {object} dto.DocumentResponse
// @Failure 422 {object} dto.ErrorResponse "Not a PDF or too large"
// @Router /candidat/candidature/documents [post]
func (c *DocumentController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Aucun fichier reçu"})
		return
	}

	docType := ctx.PostForm("type")
	if docType == "" {
		docType = model.DocSigned
	}

	var activiteID *uint
	if raw := ctx.PostForm("activite_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Identifiant d'activité invalide"})
			return
		}
		v := uint(id)
		activiteID = &v
	}

	resp, err := c.documentService.Upload(middleware.CurrentUserID(ctx), docType, activiteID, file)
	if err != nil {
		log.Warn().Err(err).Msg("Upload: rejected")
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List documents
// @Tags Candidat - Documents
// @Produce json
// @Param type query string false "Filter by document type"
// @Success 200 {object} dto.DocumentListResponse
// @Router /candidat/candidature/documents [get]
func (c *DocumentController) List(ctx *gin.Context) {
	resp, err := c.documentService.List(middleware.CurrentUserID(ctx), ctx.Query("type"))
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Download godoc
// @Summary Download a document
// @Tags Candidat - Documents
// @Produce application/pdf
// @Param id path int true "Document ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse
// @Router /candidat/candidature/documents/{id}/download [get]
func (c *DocumentController) Download(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Identifiant invalide"})
		return
	}
	path, doc, err := c.documentService.FilePath(middleware.CurrentUserID(ctx), uint(id))
	if err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.FileAttachment(path, doc.OriginalName)
}

// Delete godoc
// @Summary Delete a document
// @Tags Candidat - Documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /candidat/candidature/documents/{id} [delete]
func (c *DocumentController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Identifiant invalide"})
		return
	}
	if err := c.documentService.Delete(middleware.CurrentUserID(ctx), uint(id)); err != nil {
		controller.HandleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Document supprimé"})
}
