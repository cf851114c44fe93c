package service

import (
	"errors"
	"testing"
	"time"

	"github.com/hzerradi/avancement-api/internal/draft"
	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"github.com/hzerradi/avancement-api/internal/wizard"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	db := newTestDB(t, "candidature_getorcreate")
	svc := newCandidatureService(db)
	user := createUser(t, db, "candidat1@test.ma", model.RoleCandidat)

	first, err := svc.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first.Status != model.StatusDraft || first.CurrentStep != 1 {
		t.Fatalf("expected fresh draft at step 1, got status=%s step=%d", first.Status, first.CurrentStep)
	}

	second, err := svc.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("second GetOrCreate failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same candidature, got %d then %d", first.ID, second.ID)
	}
}

func TestProgressDerivedFromPersistedData(t *testing.T) {
	db := newTestDB(t, "candidature_progress")
	svc := newCandidatureService(db)
	user := createUser(t, db, "candidat2@test.ma", model.RoleCandidat)

	c, err := svc.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}

	progress, err := svc.Progress(c.ID)
	if err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	if progress.AllRequiredComplete() {
		t.Fatal("empty dossier should not be complete")
	}

	// An incomplete profile must not mark step 1.
	p := completeProfile(c.ID, "Informatique")
	p.Telephone = ""
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	progress, err = svc.Progress(c.ID)
	if err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	if progress.IsStepComplete(wizard.StepProfil) {
		t.Fatal("profile missing telephone should leave step 1 incomplete")
	}

	p.Telephone = "0611111111"
	if err := db.Save(p).Error; err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}
	progress, err = svc.Progress(c.ID)
	if err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	if !progress.IsStepComplete(wizard.StepProfil) {
		t.Fatal("complete profile should mark step 1 complete")
	}
}

func TestActiviteWithoutDocumentLeavesStepIncomplete(t *testing.T) {
	db := newTestDB(t, "candidature_activite_doc")
	svc := newCandidatureService(db)
	user := createUser(t, db, "candidat3@test.ma", model.RoleCandidat)

	c, _ := svc.GetOrCreate(user.ID)
	a := &model.Activite{
		CandidatureID: c.ID,
		Type:          model.ActiviteEnseignement,
		Category:      "A/1",
		Subcategory:   "Responsable d'un module",
		Count:         1,
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("failed to create activite: %v", err)
	}

	progress, err := svc.Progress(c.ID)
	if err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	if progress.IsStepComplete(wizard.StepActivitesEnseignement) {
		t.Fatal("activity without supporting document should not complete step 4")
	}

	doc := &model.Document{
		CandidatureID: c.ID,
		ActiviteID:    &a.ID,
		Type:          model.DocActivite,
		OriginalName:  "preuve.pdf",
		StoredName:    "p.pdf",
		MimeType:      "application/pdf",
		Size:          100,
	}
	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("failed to create document: %v", err)
	}
	progress, err = svc.Progress(c.ID)
	if err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	if !progress.IsStepComplete(wizard.StepActivitesEnseignement) {
		t.Fatal("documented activity should complete step 4")
	}
}

func TestSubmitRejectsIncompleteDossier(t *testing.T) {
	db := newTestDB(t, "candidature_submit_incomplete")
	svc := newCandidatureService(db)
	user := createUser(t, db, "candidat4@test.ma", model.RoleCandidat)
	svc.GetOrCreate(user.ID)

	_, err := svc.Submit(user.ID, dto.SubmitRequest{ConfirmExactitude: true, ConfirmNonModification: true})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected a validation error for incomplete dossier, got %v", err)
	}
}

func TestSubmitRequiresBothConfirmations(t *testing.T) {
	db := newTestDB(t, "candidature_submit_confirm")
	svc := newCandidatureService(db)
	user := createUser(t, db, "candidat5@test.ma", model.RoleCandidat)
	c, _ := svc.GetOrCreate(user.ID)
	fillAllSteps(t, db, c.ID)

	_, err := svc.Submit(user.ID, dto.SubmitRequest{ConfirmExactitude: true})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected a validation error without both confirmations, got %v", err)
	}
}

func TestSubmitLocksTheDossier(t *testing.T) {
	db := newTestDB(t, "candidature_submit_locks")
	svc := newCandidatureService(db)
	user := createUser(t, db, "candidat6@test.ma", model.RoleCandidat)
	c, _ := svc.GetOrCreate(user.ID)
	fillAllSteps(t, db, c.ID)

	resp, err := svc.Submit(user.ID, dto.SubmitRequest{ConfirmExactitude: true, ConfirmNonModification: true})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if resp.Candidature.Status != model.StatusSubmitted {
		t.Fatalf("expected status submitted, got %s", resp.Candidature.Status)
	}
	if resp.Candidature.SubmittedAt == nil || resp.Candidature.LockedAt == nil {
		t.Fatal("expected submitted_at and locked_at to be set")
	}

	if _, err := svc.EnsureEditable(user.ID); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked after submission, got %v", err)
	}
	if _, err := svc.Submit(user.ID, dto.SubmitRequest{ConfirmExactitude: true, ConfirmNonModification: true}); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted on double submit, got %v", err)
	}
}

func TestExpiredDeadlineLocksEditing(t *testing.T) {
	db := newTestDB(t, "candidature_deadline_lock")
	svc := newCandidatureService(db)
	user := createUser(t, db, "candidat7@test.ma", model.RoleCandidat)
	svc.GetOrCreate(user.ID)

	past := &model.Deadline{Stage: "candidature", DueAt: time.Now().Add(-time.Hour)}
	if err := db.Create(past).Error; err != nil {
		t.Fatalf("failed to create deadline: %v", err)
	}

	if _, err := svc.EnsureEditable(user.ID); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked past the deadline, got %v", err)
	}
}

func TestClosedPeriodRejectsEditing(t *testing.T) {
	db := newTestDB(t, "candidature_closed")
	svc := newCandidatureService(db)
	user := createUser(t, db, "candidat8@test.ma", model.RoleCandidat)
	svc.GetOrCreate(user.ID)

	settingRepo := repository.NewSettingRepository(db)
	setting, err := settingRepo.Get()
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	setting.CandidatureOpen = false
	if err := settingRepo.Save(setting); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	if _, err := svc.EnsureEditable(user.ID); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestTransitions(t *testing.T) {
	db := newTestDB(t, "candidature_transitions")
	svc := newCandidatureService(db)
	user := createUser(t, db, "candidat9@test.ma", model.RoleCandidat)
	c, _ := svc.GetOrCreate(user.ID)
	fillAllSteps(t, db, c.ID)

	if _, err := svc.Transition(c.ID, "block"); err == nil {
		t.Fatal("blocking a draft should fail")
	}

	if _, err := svc.Submit(user.ID, dto.SubmitRequest{ConfirmExactitude: true, ConfirmNonModification: true}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	blocked, err := svc.Transition(c.ID, "block")
	if err != nil {
		t.Fatalf("block failed: %v", err)
	}
	if blocked.Status != model.StatusBlocked {
		t.Fatalf("expected blocked, got %s", blocked.Status)
	}

	// Unblock reopens the dossier as a draft with cleared timestamps.
	reopened, err := svc.Transition(c.ID, "unblock")
	if err != nil {
		t.Fatalf("unblock failed: %v", err)
	}
	if reopened.Status != model.StatusDraft {
		t.Fatalf("expected draft after unblock, got %s", reopened.Status)
	}
	if reopened.SubmittedAt != nil || reopened.LockedAt != nil {
		t.Fatal("unblock should clear submitted_at and locked_at")
	}
	if _, err := svc.EnsureEditable(user.ID); err != nil {
		t.Fatalf("unblocked dossier should be editable again: %v", err)
	}

	if _, err := svc.Submit(user.ID, dto.SubmitRequest{ConfirmExactitude: true, ConfirmNonModification: true}); err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	approved, err := svc.Transition(c.ID, "approve")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != model.StatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}
}

func TestSetCurrentStepGatesForwardNavigation(t *testing.T) {
	db := newTestDB(t, "candidature_navigation")
	svc := newCandidatureService(db)
	user := createUser(t, db, "candidat-nav@test.ma", model.RoleCandidat)
	c, err := svc.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}

	err = svc.SetCurrentStep(user.ID, 6)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected forward jump on an empty dossier to be rejected, got %v", err)
	}
	if len(verr.Fields["steps"]) != 5 {
		t.Fatalf("expected all five required steps reported missing, got %v", verr.Fields["steps"])
	}

	reloaded, err := repository.NewCandidatureRepository(db).FindByID(c.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.CurrentStep != 1 {
		t.Fatalf("expected cursor unchanged at step 1, got %d", reloaded.CurrentStep)
	}

	fillAllSteps(t, db, c.ID)
	if err := svc.SetCurrentStep(user.ID, 6); err != nil {
		t.Fatalf("expected navigation to step 6 once every step is complete, got %v", err)
	}

	// Backward moves never depend on progress.
	if err := svc.SetCurrentStep(user.ID, 2); err != nil {
		t.Fatalf("expected backward navigation allowed, got %v", err)
	}

	if err := svc.SetCurrentStep(user.ID, 7); !errors.As(err, &verr) {
		t.Fatalf("expected out-of-range step rejected, got %v", err)
	}
}

func TestSetCurrentStepPartialProgressReportsOnlyMissing(t *testing.T) {
	db := newTestDB(t, "candidature_navigation_partial")
	svc := newCandidatureService(db)
	user := createUser(t, db, "candidat-nav2@test.ma", model.RoleCandidat)
	c, err := svc.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}

	if err := db.Create(completeProfile(c.ID, "Informatique")).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	pfe := &model.Pfe{CandidatureID: c.ID, AnneeUniversitaire: "2023/2024", Intitule: "Projet", Niveau: "Master", VolumeHoraire: 20}
	if err := db.Create(pfe).Error; err != nil {
		t.Fatalf("failed to create pfe: %v", err)
	}

	err = svc.SetCurrentStep(user.ID, 4)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected step 4 denied with step 2 missing, got %v", err)
	}
	missing := verr.Fields["steps"]
	if len(missing) != 1 || missing[0] != "Enseignements" {
		t.Fatalf("expected only Enseignements reported, got %v", missing)
	}
}

func TestSubmitClearsLocalDrafts(t *testing.T) {
	db := newTestDB(t, "candidature_draft_clear")
	drafts := draft.NewFileCache(t.TempDir(), time.Millisecond)
	svc := newCandidatureServiceWithDrafts(db, drafts)
	user := createUser(t, db, "candidat-drafts@test.ma", model.RoleCandidat)
	c, err := svc.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	fillAllSteps(t, db, c.ID)

	drafts.Save("profile", map[string]any{"nom": "Brouillon"})
	drafts.Save("enseignements", []int{1, 2})

	// A failed submission must leave the drafts alone.
	if _, err := svc.Submit(user.ID, dto.SubmitRequest{ConfirmExactitude: true}); err == nil {
		t.Fatal("expected submission without both confirmations to fail")
	}
	if _, _, ok := drafts.Load("profile"); !ok {
		t.Fatal("drafts must survive a rejected submission")
	}

	if _, err := svc.Submit(user.ID, dto.SubmitRequest{ConfirmExactitude: true, ConfirmNonModification: true}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, _, ok := drafts.Load("profile"); ok {
		t.Fatal("expected drafts cleared after a successful submission")
	}
	if _, _, ok := drafts.Load("enseignements"); ok {
		t.Fatal("expected every draft key cleared after a successful submission")
	}
}
