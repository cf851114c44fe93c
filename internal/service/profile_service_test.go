package service

import (
	"testing"
	"time"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
)

func TestAutosaveAcceptsPartialPayload(t *testing.T) {
	db := newTestDB(t, "profile_autosave")
	candSvc := newCandidatureService(db)
	svc := NewProfileService(candSvc, repository.NewProfileRepository(db))
	u := createUser(t, db, "autosave@test.ma", model.RoleCandidat)

	resp, err := svc.Autosave(u.ID, dto.ProfileAutosaveRequest{Nom: str("Bennani")})
	if err != nil {
		t.Fatalf("Autosave with a single field failed: %v", err)
	}
	if resp.Profile.Nom != "Bennani" {
		t.Fatalf("expected nom persisted, got %q", resp.Profile.Nom)
	}
	if resp.Profile.IsComplete {
		t.Fatal("a one-field profile should not be complete")
	}

	resp, err = svc.Autosave(u.ID, dto.ProfileAutosaveRequest{Telephone: str("0611111111")})
	if err != nil {
		t.Fatalf("second Autosave failed: %v", err)
	}
	if resp.Profile.Nom != "Bennani" {
		t.Fatal("autosave must not clear fields absent from the payload")
	}
	if resp.Profile.Telephone != "0611111111" {
		t.Fatalf("expected telephone persisted, got %q", resp.Profile.Telephone)
	}
}

func TestSaveMarksProfileComplete(t *testing.T) {
	db := newTestDB(t, "profile_save")
	candSvc := newCandidatureService(db)
	svc := NewProfileService(candSvc, repository.NewProfileRepository(db))
	u := createUser(t, db, "profil@test.ma", model.RoleCandidat)

	req := dto.ProfileSaveRequest{
		Nom:               "El Fassi",
		Prenom:            "Samira",
		DateNaissance:     "1978-11-02",
		Etablissement:     "FST Fès",
		Ville:             "Fès",
		Departement:       "Mathématiques",
		GradeActuel:       "Maître de Conférences",
		DateRecrutementES: "2010-09-01",
		Telephone:         "0622222222",
		Specialite:        "Mathématiques",
	}
	resp, err := svc.Save(u.ID, req)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !resp.Profile.IsComplete {
		t.Fatal("expected complete profile after a full save")
	}
	if resp.Profile.Anciennete == nil {
		t.Fatal("expected derived seniority from the recruitment date")
	}
}

func TestAncienneteFromRecruitmentDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		date        string
		wantYears   int
		wantMonths  int
		wantPresent bool
	}{
		{"2012-09-01", 14, 0, true},
		{"2012-10-15", 13, 10, true},
		{"2026-09-01", 0, 0, true},
		{"", 0, 0, false},
		{"pas-une-date", 0, 0, false},
	}
	for _, tt := range tests {
		got := anciennete(tt.date, now)
		if !tt.wantPresent {
			if got != nil {
				t.Errorf("anciennete(%q) = %+v, want nil", tt.date, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("anciennete(%q) = nil, want a value", tt.date)
			continue
		}
		if got.Years != tt.wantYears || got.Months != tt.wantMonths {
			t.Errorf("anciennete(%q) = %dy%dm, want %dy%dm", tt.date, got.Years, got.Months, tt.wantYears, tt.wantMonths)
		}
	}
}
