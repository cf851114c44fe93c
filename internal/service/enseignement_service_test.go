package service

import (
	"math"
	"testing"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
)

func TestEquivalentTPFactors(t *testing.T) {
	cases := []struct {
		typ    string
		volume float64
		want   float64
	}{
		{model.TypeCM, 40, 60},
		{model.TypeTD, 40, 50},
		{model.TypeTP, 40, 40},
		{model.TypeCM, 0, 0},
		{model.TypeTD, 10.5, 13.125},
		{"inconnu", 30, 30},
	}
	for _, tc := range cases {
		got := EquivalentTP(tc.typ, tc.volume)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("EquivalentTP(%s, %v) = %v, want %v", tc.typ, tc.volume, got, tc.want)
		}
	}
}

func TestReplaceAllRecomputesEquivalentTP(t *testing.T) {
	db := newTestDB(t, "enseignement_replace")
	candSvc := newCandidatureService(db)
	svc := NewEnseignementService(candSvc, repository.NewEnseignementRepository(db))
	user := createUser(t, db, "ens1@test.ma", model.RoleCandidat)

	req := dto.EnseignementBulkRequest{Enseignements: []dto.EnseignementItem{
		{AnneeUniversitaire: "2023/2024", Intitule: "Algorithmique", TypeEnseignement: model.TypeCM, TypeModule: "Module", Niveau: "Licence", VolumeHoraire: 20},
		{AnneeUniversitaire: "2023/2024", Intitule: "Algorithmique TD", TypeEnseignement: model.TypeTD, TypeModule: "Element de module", Niveau: "Licence", VolumeHoraire: 20},
		{AnneeUniversitaire: "2022/2023", Intitule: "Réseaux TP", TypeEnseignement: model.TypeTP, TypeModule: "Module", Niveau: "Master", VolumeHoraire: 30},
	}}
	resp, err := svc.ReplaceAll(user.ID, req)
	if err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}
	if len(resp.Enseignements) != 3 {
		t.Fatalf("expected 3 items, got %d", len(resp.Enseignements))
	}
	for _, e := range resp.Enseignements {
		want := EquivalentTP(e.TypeEnseignement, e.VolumeHoraire)
		if math.Abs(e.EquivalentTP-want) > 1e-9 {
			t.Errorf("item %q: equivalent_tp = %v, want %v", e.Intitule, e.EquivalentTP, want)
		}
	}

	list, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if list.Totals.Count != 3 {
		t.Fatalf("expected total count 3, got %d", list.Totals.Count)
	}
	if math.Abs(list.Totals.VolumeHoraire-70) > 1e-9 {
		t.Errorf("total volume = %v, want 70", list.Totals.VolumeHoraire)
	}
	// 20*1.5 + 20*1.25 + 30*1 = 85
	if math.Abs(list.Totals.EquivalentTP-85) > 1e-9 {
		t.Errorf("total equivalent_tp = %v, want 85", list.Totals.EquivalentTP)
	}
	if len(list.ByYear) != 2 {
		t.Fatalf("expected 2 year groups, got %d", len(list.ByYear))
	}
	if math.Abs(list.ByYear["2023/2024"].EquivalentTP-55) > 1e-9 {
		t.Errorf("2023/2024 equivalent_tp = %v, want 55", list.ByYear["2023/2024"].EquivalentTP)
	}
}

func TestReplaceAllSwapsTheWholeSet(t *testing.T) {
	db := newTestDB(t, "enseignement_swap")
	candSvc := newCandidatureService(db)
	svc := NewEnseignementService(candSvc, repository.NewEnseignementRepository(db))
	user := createUser(t, db, "ens2@test.ma", model.RoleCandidat)

	first := dto.EnseignementBulkRequest{Enseignements: []dto.EnseignementItem{
		{AnneeUniversitaire: "2023/2024", Intitule: "Ancien cours", TypeEnseignement: model.TypeCM, TypeModule: "Module", Niveau: "Licence", VolumeHoraire: 10},
	}}
	if _, err := svc.ReplaceAll(user.ID, first); err != nil {
		t.Fatalf("first ReplaceAll failed: %v", err)
	}

	second := dto.EnseignementBulkRequest{Enseignements: []dto.EnseignementItem{
		{AnneeUniversitaire: "2023/2024", Intitule: "Nouveau cours", TypeEnseignement: model.TypeTP, TypeModule: "Module", Niveau: "Master", VolumeHoraire: 15},
	}}
	if _, err := svc.ReplaceAll(user.ID, second); err != nil {
		t.Fatalf("second ReplaceAll failed: %v", err)
	}

	list, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list.Enseignements) != 1 || list.Enseignements[0].Intitule != "Nouveau cours" {
		t.Fatalf("expected only the new entry, got %+v", list.Enseignements)
	}
}

func TestEnseignementSaveRejectedWhenLocked(t *testing.T) {
	db := newTestDB(t, "enseignement_locked")
	candSvc := newCandidatureService(db)
	svc := NewEnseignementService(candSvc, repository.NewEnseignementRepository(db))
	user := createUser(t, db, "ens3@test.ma", model.RoleCandidat)
	c, _ := candSvc.GetOrCreate(user.ID)
	fillAllSteps(t, db, c.ID)

	if _, err := candSvc.Submit(user.ID, dto.SubmitRequest{ConfirmExactitude: true, ConfirmNonModification: true}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	req := dto.EnseignementBulkRequest{Enseignements: []dto.EnseignementItem{
		{AnneeUniversitaire: "2023/2024", Intitule: "Tardif", TypeEnseignement: model.TypeCM, TypeModule: "Module", Niveau: "Licence", VolumeHoraire: 5},
	}}
	if _, err := svc.ReplaceAll(user.ID, req); err == nil {
		t.Fatal("expected save on a submitted dossier to fail")
	}
}
