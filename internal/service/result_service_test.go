package service

import (
	"errors"
	"math"
	"testing"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"gorm.io/gorm"
)

type evaluationFixture struct {
	dossierSvc    DossierService
	evaluationSvc EvaluationService
	resultSvc     ResultService
	president     *model.User
	candidature   *model.Candidature
}

// setupEvaluation creates a submitted dossier in "Informatique" and a
// commission president attached to the matching commission.
func setupEvaluation(t *testing.T, db *gorm.DB) evaluationFixture {
	t.Helper()

	candSvc := newCandidatureService(db)
	candidatureRepo := repository.NewCandidatureRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	resultRepo := repository.NewResultRepository(db)

	dossierSvc := NewDossierService(candSvc, candidatureRepo, commissionRepo, documentRepo)
	evaluationSvc := NewEvaluationService(dossierSvc, noteRepo)
	resultSvc := NewResultService(dossierSvc, resultRepo, noteRepo)

	candidate := createUser(t, db, "dossier@test.ma", model.RoleCandidat)
	c, err := candSvc.GetOrCreate(candidate.ID)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	fillAllSteps(t, db, c.ID)
	if _, err := candSvc.Submit(candidate.ID, dto.SubmitRequest{ConfirmExactitude: true, ConfirmNonModification: true}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	commission := &model.Commission{Specialite: "Informatique"}
	if err := db.Create(commission).Error; err != nil {
		t.Fatalf("failed to create commission: %v", err)
	}
	president := createUser(t, db, "president@test.ma", model.RolePresident)
	member := &model.CommissionUser{CommissionID: commission.ID, UserID: president.ID, IsPresident: true}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to attach president: %v", err)
	}

	return evaluationFixture{
		dossierSvc:    dossierSvc,
		evaluationSvc: evaluationSvc,
		resultSvc:     resultSvc,
		president:     president,
		candidature:   c,
	}
}

func TestSaveAndGetNotes(t *testing.T) {
	db := newTestDB(t, "result_notes")
	fx := setupEvaluation(t, db)

	req := dto.NotesSaveRequest{Items: []dto.NoteItem{
		{Criterion: "Production scientifique", Score: f(75), Comment: str("Bon niveau")},
		{Criterion: "Pédagogie", Score: f(85)},
		{Criterion: "Encadrement doctoral"},
		{},
	}}
	resp, err := fx.evaluationSvc.SaveNotes(fx.president.ID, fx.candidature.ID, req)
	if err != nil {
		t.Fatalf("SaveNotes failed: %v", err)
	}
	if len(resp.Notices) != 0 {
		t.Fatalf("no duplicate notices expected, got %v", resp.Notices)
	}

	notes, err := fx.evaluationSvc.GetNotes(fx.president.ID, fx.candidature.ID)
	if err != nil {
		t.Fatalf("GetNotes failed: %v", err)
	}
	if len(notes.Data) != 3 {
		t.Fatalf("expected 3 persisted notes, got %d", len(notes.Data))
	}
	if notes.Aggregate.Scored != 2 || notes.Aggregate.Unscored != 1 {
		t.Fatalf("expected 2 scored and 1 unscored notes, got %+v", notes.Aggregate)
	}
}

func TestSaveNotesReportsDuplicates(t *testing.T) {
	db := newTestDB(t, "result_dup_notes")
	fx := setupEvaluation(t, db)

	req := dto.NotesSaveRequest{Items: []dto.NoteItem{
		{Criterion: "Publications", Score: f(60)},
		{Criterion: "PUBLICATIONS", Score: f(65)},
	}}
	resp, err := fx.evaluationSvc.SaveNotes(fx.president.ID, fx.candidature.ID, req)
	if err != nil {
		t.Fatalf("SaveNotes failed: %v", err)
	}
	if len(resp.Notices) != 1 {
		t.Fatalf("expected one duplicate notice, got %v", resp.Notices)
	}
}

func TestEvaluatorScopedBySpecialty(t *testing.T) {
	db := newTestDB(t, "result_scoping")
	fx := setupEvaluation(t, db)

	other := &model.Commission{Specialite: "Physique"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("failed to create commission: %v", err)
	}
	outsider := createUser(t, db, "autre@test.ma", model.RoleCommission)
	if err := db.Create(&model.CommissionUser{CommissionID: other.ID, UserID: outsider.ID}).Error; err != nil {
		t.Fatalf("failed to attach member: %v", err)
	}

	if _, err := fx.evaluationSvc.GetNotes(outsider.ID, fx.candidature.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden across specialties, got %v", err)
	}

	unattached := createUser(t, db, "isole@test.ma", model.RoleCommission)
	if _, err := fx.dossierSvc.ListForEvaluator(unattached.ID, DossierListQuery{Page: 1, PerPage: 10}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a user without commission, got %v", err)
	}
}

func TestResultSaveThenValidateIsIrreversible(t *testing.T) {
	db := newTestDB(t, "result_validate")
	fx := setupEvaluation(t, db)

	save := dto.ResultSaveRequest{AuditionScore: f(72), FinalScore: f(81), PvText: str("Avis favorable")}
	resp, err := fx.resultSvc.Save(fx.president.ID, fx.candidature.ID, save)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if resp.Data.ValidatedAt != nil {
		t.Fatal("result should not be validated yet")
	}

	validated, err := fx.resultSvc.Validate(fx.president.ID, fx.candidature.ID)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if validated.Data.ValidatedAt == nil {
		t.Fatal("expected validated_at to be stamped")
	}

	if _, err := fx.resultSvc.Save(fx.president.ID, fx.candidature.ID, save); !errors.Is(err, ErrAlreadyValidated) {
		t.Fatalf("expected ErrAlreadyValidated on save after validation, got %v", err)
	}
	if _, err := fx.resultSvc.Validate(fx.president.ID, fx.candidature.ID); !errors.Is(err, ErrAlreadyValidated) {
		t.Fatalf("expected ErrAlreadyValidated on second validation, got %v", err)
	}
}

func TestValidateDerivesFinalScoreFromNotes(t *testing.T) {
	db := newTestDB(t, "result_derive")
	fx := setupEvaluation(t, db)

	req := dto.NotesSaveRequest{Items: []dto.NoteItem{
		{Criterion: "A", Score: f(60)},
		{Criterion: "B", Score: f(80)},
	}}
	if _, err := fx.evaluationSvc.SaveNotes(fx.president.ID, fx.candidature.ID, req); err != nil {
		t.Fatalf("SaveNotes failed: %v", err)
	}

	if _, err := fx.resultSvc.Validate(fx.president.ID, fx.candidature.ID); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	res, err := fx.resultSvc.Get(fx.president.ID, fx.candidature.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if res.Data.FinalScore == nil || math.Abs(*res.Data.FinalScore-70) > 1e-9 {
		t.Fatalf("expected derived final score 70, got %v", res.Data.FinalScore)
	}
}

func TestResultRejectsOutOfRangeScores(t *testing.T) {
	db := newTestDB(t, "result_range")
	fx := setupEvaluation(t, db)

	_, err := fx.resultSvc.Save(fx.president.ID, fx.candidature.ID, dto.ResultSaveRequest{FinalScore: f(101)})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error for out-of-range final score, got %v", err)
	}
}
