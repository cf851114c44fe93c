package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const maxDocumentSize = 10 << 20 // 10 MB

type DocumentService interface {
	Upload(userID uint, docType string, activiteID *uint, file *multipart.FileHeader) (*dto.DocumentResponse, error)
	List(userID uint, docType string) (*dto.DocumentListResponse, error)
	FilePath(userID uint, id uint) (string, *model.Document, error)
	FilePathForDossier(candidatureID, id uint) (string, *model.Document, error)
	Delete(userID uint, id uint) error
}

type documentService struct {
	candidatureService CandidatureService
	documentRepo       repository.DocumentRepository
	activiteRepo       repository.ActiviteRepository
	uploadDir          string
}

func NewDocumentService(candidatureService CandidatureService, documentRepo repository.DocumentRepository, activiteRepo repository.ActiviteRepository, uploadDir string) DocumentService {
	return &documentService{
		candidatureService: candidatureService,
		documentRepo:       documentRepo,
		activiteRepo:       activiteRepo,
		uploadDir:          uploadDir,
	}
}

// Upload stores a PDF under a random name and records it. A previous
// document for the same activite or the same typed slot is superseded.
func (s *documentService) Upload(userID uint, docType string, activiteID *uint, file *multipart.FileHeader) (*dto.DocumentResponse, error) {
	c, err := s.candidatureService.EnsureEditable(userID)
	if err != nil {
		return nil, err
	}
	if err := validateUpload(file); err != nil {
		return nil, err
	}

	if activiteID != nil {
		if _, err := s.activiteRepo.FindByID(c.ID, *activiteID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("error fetching activite: %w", err)
		}
		docType = model.DocActivite
	}

	prev := s.previousFor(c.ID, docType, activiteID)

	storedName := uuid.New().String() + ".pdf"
	if err := s.writeFile(file, storedName); err != nil {
		return nil, err
	}

	doc := model.Document{
		CandidatureID: c.ID,
		ActiviteID:    activiteID,
		Type:          docType,
		OriginalName:  file.Filename,
		StoredName:    storedName,
		MimeType:      "application/pdf",
		Size:          file.Size,
	}
	if err := s.documentRepo.Create(&doc); err != nil {
		os.Remove(filepath.Join(s.uploadDir, storedName))
		return nil, fmt.Errorf("error saving document: %w", err)
	}

	s.supersede(prev)

	var out dto.DocumentDTO
	copier.Copy(&out, &doc)
	return &dto.DocumentResponse{Message: "Document téléversé", Document: out}, nil
}

func (s *documentService) List(userID uint, docType string) (*dto.DocumentListResponse, error) {
	c, err := s.candidatureService.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	docs, err := s.documentRepo.FindAllByCandidature(c.ID, docType)
	if err != nil {
		return nil, fmt.Errorf("error fetching documents: %w", err)
	}
	out := make([]dto.DocumentDTO, 0, len(docs))
	for _, d := range docs {
		var item dto.DocumentDTO
		copier.Copy(&item, &d)
		out = append(out, item)
	}
	return &dto.DocumentListResponse{Documents: out}, nil
}

// FilePath resolves the on-disk path of one of the candidate's own
// documents.
func (s *documentService) FilePath(userID uint, id uint) (string, *model.Document, error) {
	c, err := s.candidatureService.GetOrCreate(userID)
	if err != nil {
		return "", nil, err
	}
	return s.FilePathForDossier(c.ID, id)
}

// FilePathForDossier is the same lookup scoped by candidature id, used by
// evaluation consumers already authorized for that dossier.
func (s *documentService) FilePathForDossier(candidatureID, id uint) (string, *model.Document, error) {
	doc, err := s.documentRepo.FindByIDForCandidature(candidatureID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrNotFound
		}
		return "", nil, fmt.Errorf("error fetching document: %w", err)
	}
	return filepath.Join(s.uploadDir, doc.StoredName), doc, nil
}

func (s *documentService) Delete(userID uint, id uint) error {
	c, err := s.candidatureService.EnsureEditable(userID)
	if err != nil {
		return err
	}
	doc, err := s.documentRepo.FindByIDForCandidature(c.ID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("error fetching document: %w", err)
	}
	if err := s.documentRepo.Delete(doc.ID); err != nil {
		return fmt.Errorf("error deleting document: %w", err)
	}
	s.removeFile(doc.StoredName)
	return nil
}

func validateUpload(file *multipart.FileHeader) error {
	if file == nil {
		return NewValidationError("Fichier manquant").Add("file", "Un fichier PDF est requis")
	}
	if file.Size > maxDocumentSize {
		return NewValidationError("Fichier trop volumineux").Add("file", "La taille maximale autorisée est de 10 Mo")
	}
	contentType := file.Header.Get("Content-Type")
	if contentType != "application/pdf" && !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		return NewValidationError("Format de fichier invalide").Add("file", "Seuls les fichiers PDF sont acceptés")
	}
	return nil
}

func (s *documentService) writeFile(file *multipart.FileHeader, storedName string) error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return fmt.Errorf("error preparing upload dir: %w", err)
	}
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("error reading upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.uploadDir, storedName))
	if err != nil {
		return fmt.Errorf("error storing upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("error storing upload: %w", err)
	}
	return nil
}

// previousFor finds the document currently occupying the slot the new
// upload will fill, before it is created.
func (s *documentService) previousFor(candidatureID uint, docType string, activiteID *uint) *model.Document {
	var prev *model.Document
	var err error
	if activiteID != nil {
		prev, err = s.documentRepo.FindByActivite(*activiteID)
	} else {
		prev, err = s.documentRepo.FindByType(candidatureID, docType)
	}
	if err != nil {
		return nil
	}
	return prev
}

// supersede removes the replaced document and its stored file.
func (s *documentService) supersede(prev *model.Document) {
	if prev == nil {
		return
	}
	if err := s.documentRepo.Delete(prev.ID); err != nil {
		log.Warn().Err(err).Uint("documentID", prev.ID).Msg("Failed to supersede document")
		return
	}
	s.removeFile(prev.StoredName)
}

func (s *documentService) removeFile(storedName string) {
	if err := os.Remove(filepath.Join(s.uploadDir, storedName)); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", storedName).Msg("Failed to remove stored file")
	}
}
