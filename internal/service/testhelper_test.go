package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hzerradi/avancement-api/internal/draft"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{},
		&model.Candidature{},
		&model.Profile{},
		&model.Enseignement{},
		&model.Pfe{},
		&model.Activite{},
		&model.Document{},
		&model.EvaluationNote{},
		&model.Result{},
		&model.Commission{},
		&model.CommissionUser{},
		&model.Deadline{},
		&model.Setting{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newCandidatureService(db *gorm.DB) CandidatureService {
	drafts := draft.NewFileCache(filepath.Join(os.TempDir(), "avancement-test-drafts"), time.Millisecond)
	return newCandidatureServiceWithDrafts(db, drafts)
}

func newCandidatureServiceWithDrafts(db *gorm.DB, drafts draft.Store) CandidatureService {
	return NewCandidatureService(
		repository.NewCandidatureRepository(db),
		repository.NewProfileRepository(db),
		repository.NewEnseignementRepository(db),
		repository.NewPfeRepository(db),
		repository.NewActiviteRepository(db),
		repository.NewDeadlineRepository(db),
		repository.NewSettingRepository(db),
		drafts,
	)
}

func createUser(t *testing.T, db *gorm.DB, email, role string) *model.User {
	t.Helper()
	u := &model.User{Name: "Test " + role, Email: email, PasswordHash: "x", Role: role}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}

func completeProfile(candidatureID uint, specialite string) *model.Profile {
	return &model.Profile{
		CandidatureID:     candidatureID,
		Nom:               "El Amrani",
		Prenom:            "Karim",
		DateNaissance:     "1980-04-12",
		Etablissement:     "EST Salé",
		Ville:             "Salé",
		Departement:       "Informatique",
		GradeActuel:       "Maître de Conférences",
		DateRecrutementES: "2012-09-01",
		Telephone:         "0600000000",
		Specialite:        specialite,
	}
}

// fillAllSteps persists enough data for every required wizard step to
// derive as complete.
func fillAllSteps(t *testing.T, db *gorm.DB, candidatureID uint) {
	t.Helper()
	if err := db.Create(completeProfile(candidatureID, "Informatique")).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	ens := &model.Enseignement{
		CandidatureID:      candidatureID,
		AnneeUniversitaire: "2023/2024",
		Intitule:           "Bases de données",
		TypeEnseignement:   model.TypeCM,
		TypeModule:         "Module",
		Niveau:             "Licence",
		VolumeHoraire:      40,
		EquivalentTP:       60,
	}
	if err := db.Create(ens).Error; err != nil {
		t.Fatalf("failed to create enseignement: %v", err)
	}
	pfe := &model.Pfe{
		CandidatureID:      candidatureID,
		AnneeUniversitaire: "2023/2024",
		Intitule:           "Plateforme de suivi",
		Niveau:             "Master",
		VolumeHoraire:      20,
	}
	if err := db.Create(pfe).Error; err != nil {
		t.Fatalf("failed to create pfe: %v", err)
	}
	for _, typ := range []string{model.ActiviteEnseignement, model.ActiviteRecherche} {
		category := "A/1"
		subcategory := "Responsable d'un module"
		if typ == model.ActiviteRecherche {
			category = "B/1"
			subcategory = "Publication dans une revue indexée"
		}
		a := &model.Activite{
			CandidatureID: candidatureID,
			Type:          typ,
			Category:      category,
			Subcategory:   subcategory,
			Count:         2,
		}
		if err := db.Create(a).Error; err != nil {
			t.Fatalf("failed to create activite: %v", err)
		}
		doc := &model.Document{
			CandidatureID: candidatureID,
			ActiviteID:    &a.ID,
			Type:          model.DocActivite,
			OriginalName:  "justificatif.pdf",
			StoredName:    "stored.pdf",
			MimeType:      "application/pdf",
			Size:          1024,
		}
		if err := db.Create(doc).Error; err != nil {
			t.Fatalf("failed to create document: %v", err)
		}
	}
}
