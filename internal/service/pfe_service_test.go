package service

import (
	"testing"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
)

func TestPfeReplaceAllPersistsForTheCandidature(t *testing.T) {
	db := newTestDB(t, "pfe_replace")
	candSvc := newCandidatureService(db)
	svc := NewPfeService(candSvc, repository.NewPfeRepository(db))
	u := createUser(t, db, "pfe@test.ma", model.RoleCandidat)
	c, err := candSvc.GetOrCreate(u.ID)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}

	resp, err := svc.ReplaceAll(u.ID, dto.PfeBulkRequest{Pfes: []dto.PfeItem{
		{AnneeUniversitaire: "2022/2023", Intitule: "Application mobile", Niveau: "Licence", VolumeHoraire: 15},
		{AnneeUniversitaire: "2023/2024", Intitule: "Plateforme de suivi", Niveau: "Master", VolumeHoraire: 25},
	}})
	if err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}
	for _, p := range resp.Pfes {
		if p.CandidatureID != c.ID {
			t.Fatalf("expected echoed items stamped with candidature %d, got %d", c.ID, p.CandidatureID)
		}
		if p.ID == 0 {
			t.Fatal("expected echoed items to carry server ids")
		}
	}

	list, err := svc.List(u.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if list.Totals.Count != 2 || list.Totals.VolumeHoraire != 40 {
		t.Fatalf("expected 2 pfes totaling 40h, got %d/%v", list.Totals.Count, list.Totals.VolumeHoraire)
	}
	if list.ByNiveau["Master"].Count != 1 {
		t.Fatalf("expected one Master pfe, got %d", list.ByNiveau["Master"].Count)
	}
}

func TestPfeReplaceAllSwapsTheWholeSet(t *testing.T) {
	db := newTestDB(t, "pfe_swap")
	candSvc := newCandidatureService(db)
	svc := NewPfeService(candSvc, repository.NewPfeRepository(db))
	u := createUser(t, db, "pfe-swap@test.ma", model.RoleCandidat)
	if _, err := candSvc.GetOrCreate(u.ID); err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}

	if _, err := svc.ReplaceAll(u.ID, dto.PfeBulkRequest{Pfes: []dto.PfeItem{
		{AnneeUniversitaire: "2021/2022", Intitule: "Ancien projet", Niveau: "DUT", VolumeHoraire: 10},
	}}); err != nil {
		t.Fatalf("first ReplaceAll failed: %v", err)
	}
	if _, err := svc.ReplaceAll(u.ID, dto.PfeBulkRequest{Pfes: []dto.PfeItem{
		{AnneeUniversitaire: "2023/2024", Intitule: "Nouveau projet", Niveau: "Ingénieur", VolumeHoraire: 30},
	}}); err != nil {
		t.Fatalf("second ReplaceAll failed: %v", err)
	}

	list, err := svc.List(u.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list.Pfes) != 1 || list.Pfes[0].Intitule != "Nouveau projet" {
		t.Fatalf("expected only the new entry, got %+v", list.Pfes)
	}
}
