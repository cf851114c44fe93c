package service

import (
	"errors"
	"testing"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"gorm.io/gorm"
)

func newActiviteService(t *testing.T, name string) (ActiviteService, *model.User, uint, *gorm.DB) {
	t.Helper()
	db := newTestDB(t, name)
	candSvc := newCandidatureService(db)
	svc := NewActiviteService(candSvc, repository.NewActiviteRepository(db))
	u := createUser(t, db, name+"@test.ma", model.RoleCandidat)
	c, err := candSvc.GetOrCreate(u.ID)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	return svc, u, c.ID, db
}

func TestSaveRejectsUnknownCatalogueEntry(t *testing.T) {
	svc, u, _, _ := newActiviteService(t, "act_unknown")

	_, err := svc.Save(u.ID, dto.ActiviteSaveRequest{
		Type:        model.ActiviteEnseignement,
		Category:    "A/1",
		Subcategory: "Une activité inventée",
		Count:       1,
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error for an unknown subcategory, got %v", err)
	}

	_, err = svc.Save(u.ID, dto.ActiviteSaveRequest{
		Type:        model.ActiviteRecherche,
		Category:    "Z/9",
		Subcategory: "Publication dans une revue indexée",
		Count:       1,
	})
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error for an unknown category, got %v", err)
	}
}

func TestSaveUpsertsByCatalogueLine(t *testing.T) {
	svc, u, _, _ := newActiviteService(t, "act_upsert")

	first, err := svc.Save(u.ID, dto.ActiviteSaveRequest{
		Type:        model.ActiviteRecherche,
		Category:    "B/1",
		Subcategory: "Publication dans une revue indexée",
		Count:       2,
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	second, err := svc.Save(u.ID, dto.ActiviteSaveRequest{
		Type:        model.ActiviteRecherche,
		Category:    "B/1",
		Subcategory: "Publication dans une revue indexée",
		Count:       5,
	})
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if second.Activite.ID != first.Activite.ID {
		t.Fatalf("expected the same row updated, got ids %d and %d", first.Activite.ID, second.Activite.ID)
	}
	if second.Activite.Count != 5 {
		t.Fatalf("expected count 5 after update, got %d", second.Activite.Count)
	}
}

func TestReplaceAllKeepsDocumentsOfSurvivingLines(t *testing.T) {
	svc, u, candidatureID, db := newActiviteService(t, "act_replace")

	saved, err := svc.Save(u.ID, dto.ActiviteSaveRequest{
		Type:        model.ActiviteEnseignement,
		Category:    "A/1",
		Subcategory: "Responsable d'un module",
		Count:       1,
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	doc := &model.Document{
		CandidatureID: candidatureID,
		ActiviteID:    &saved.Activite.ID,
		Type:          model.DocActivite,
		OriginalName:  "attestation.pdf",
		StoredName:    "stored.pdf",
		MimeType:      "application/pdf",
		Size:          512,
	}
	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("failed to attach document: %v", err)
	}

	resp, err := svc.ReplaceAll(u.ID, dto.ActiviteBulkRequest{
		Type: model.ActiviteEnseignement,
		Activites: []dto.ActiviteItem{
			{Category: "A/1", Subcategory: "Responsable d'un module", Count: 3},
			{Category: "A/2", Subcategory: "Formation de formateurs et personnel", Count: 1},
		},
	})
	if err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}
	if len(resp.Activites) != 2 {
		t.Fatalf("expected 2 activites after replace, got %d", len(resp.Activites))
	}

	list, err := svc.List(u.ID, model.ActiviteEnseignement)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	group, ok := list.ByCategory["A/1"]
	if !ok {
		t.Fatal("expected category A/1 in listing")
	}
	if len(group.Items) != 1 || group.Items[0].ID != saved.Activite.ID {
		t.Fatalf("expected the original row to survive the replace, got %+v", group.Items)
	}
	if group.Items[0].Document == nil {
		t.Fatal("expected the attached document to survive the replace")
	}
	if !group.HasAllDocuments {
		t.Fatal("expected has_all_documents true for A/1")
	}
	if undocumented := list.ByCategory["A/2"]; undocumented.HasAllDocuments {
		t.Fatal("expected has_all_documents false for the undocumented A/2 line")
	}
}

func TestReplaceAllValidatesBeforeAnyWrite(t *testing.T) {
	svc, u, _, _ := newActiviteService(t, "act_atomic")

	if _, err := svc.Save(u.ID, dto.ActiviteSaveRequest{
		Type:        model.ActiviteRecherche,
		Category:    "B/3",
		Subcategory: "Communication orale ou poster dans un congrès",
		Count:       4,
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, err := svc.ReplaceAll(u.ID, dto.ActiviteBulkRequest{
		Type: model.ActiviteRecherche,
		Activites: []dto.ActiviteItem{
			{Category: "B/1", Subcategory: "Brevet déposé ou exploité", Count: 1},
			{Category: "B/1", Subcategory: "Inconnue", Count: 1},
		},
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}

	list, err := svc.List(u.ID, model.ActiviteRecherche)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list.Activites) != 1 || list.Activites[0].Count != 4 {
		t.Fatalf("expected the previous set untouched after a rejected replace, got %+v", list.Activites)
	}
}

func TestCataloguesMatchTheFixedGrids(t *testing.T) {
	ens := catalogueFor(model.ActiviteEnseignement)
	if len(ens) != 3 {
		t.Fatalf("expected 3 enseignement categories, got %d", len(ens))
	}
	for _, cat := range []string{"A/1", "A/2", "A/3"} {
		if len(ens[cat]) == 0 {
			t.Errorf("expected entries under %s", cat)
		}
	}
	rec := catalogueFor(model.ActiviteRecherche)
	if len(rec) != 4 {
		t.Fatalf("expected 4 recherche categories, got %d", len(rec))
	}
	for _, cat := range []string{"B/1", "B/2", "B/3", "B/4"} {
		if len(rec[cat]) == 0 {
			t.Errorf("expected entries under %s", cat)
		}
	}
	if !catalogueContains(model.ActiviteRecherche, "B/4", "Évaluation d'articles scientifiques (reviewer)") {
		t.Error("expected the reviewer entry in B/4")
	}
	if catalogueContains(model.ActiviteEnseignement, "B/1", "Publication dans une revue indexée") {
		t.Error("recherche entries must not validate under the enseignement catalogue")
	}
}
