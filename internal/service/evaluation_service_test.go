package service

import (
	"errors"
	"math"
	"testing"

	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
)

func f(v float64) *float64 { return &v }
func str(v string) *string { return &v }

func TestPrepareNotesDropsOnlyFullyEmptyRows(t *testing.T) {
	notes, err := PrepareNotes([]dto.NoteItem{
		{Criterion: "Production scientifique", Score: f(80)},
		{Criterion: "Encadrement doctoral"},
		{Criterion: "", Score: nil, Comment: str("   ")},
		{Criterion: "Pédagogie", Comment: str("Solide")},
	})
	if err != nil {
		t.Fatalf("PrepareNotes failed: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 kept rows, got %d", len(notes))
	}
}

func TestPrepareNotesKeepsCriterionOnlyRows(t *testing.T) {
	notes, err := PrepareNotes([]dto.NoteItem{
		{Criterion: "Dossier scientifique"},
	})
	if err != nil {
		t.Fatalf("PrepareNotes failed: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected criterion-only row persisted, got %d rows", len(notes))
	}
	if notes[0].Score != nil || notes[0].Comment != nil {
		t.Fatalf("expected an unscored row without comment, got %+v", notes[0])
	}
	if agg := Aggregate(notes); agg.Unscored != 1 {
		t.Fatalf("expected the kept row counted as unscored, got %+v", agg)
	}
}

func TestPrepareNotesRequiresCriterion(t *testing.T) {
	_, err := PrepareNotes([]dto.NoteItem{
		{Criterion: "  ", Score: f(50)},
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error for missing criterion, got %v", err)
	}
}

func TestPrepareNotesRejectsOutOfRangeScore(t *testing.T) {
	for _, score := range []float64{-1, 100.5, 1000} {
		_, err := PrepareNotes([]dto.NoteItem{
			{Criterion: "Critère", Score: f(score)},
		})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("score %v: expected validation error, got %v", score, err)
		}
	}
	for _, score := range []float64{0, 50, 100} {
		if _, err := PrepareNotes([]dto.NoteItem{{Criterion: "Critère", Score: f(score)}}); err != nil {
			t.Errorf("score %v: expected acceptance, got %v", score, err)
		}
	}
}

func TestPrepareNotesAbortsOnFirstInvalidRow(t *testing.T) {
	notes, err := PrepareNotes([]dto.NoteItem{
		{Criterion: "Valide", Score: f(70)},
		{Criterion: "Hors bornes", Score: f(120)},
		{Criterion: "Jamais atteint", Score: f(10)},
	})
	if err == nil {
		t.Fatal("expected the batch to be rejected")
	}
	if notes != nil {
		t.Fatal("no partial result should be returned on failure")
	}
}

func TestDuplicateCriteriaIsCaseInsensitive(t *testing.T) {
	notes := []model.EvaluationNote{
		{Criterion: "Publications", Score: f(60)},
		{Criterion: "publications", Score: f(70)},
		{Criterion: "Encadrement", Score: f(80)},
	}
	dups := DuplicateCriteria(notes)
	if len(dups) != 1 || dups[0] != "publications" {
		t.Fatalf("expected the duplicated criterion reported once, got %v", dups)
	}
}

func TestAggregateIgnoresUnscoredRows(t *testing.T) {
	notes := []model.EvaluationNote{
		{Criterion: "A", Score: f(60)},
		{Criterion: "B", Score: f(80)},
		{Criterion: "C", Comment: str("sans note")},
	}
	agg := Aggregate(notes)
	if agg.Scored != 2 || agg.Unscored != 1 {
		t.Fatalf("expected 2 scored and 1 unscored rows, got %d/%d", agg.Scored, agg.Unscored)
	}
	if math.Abs(agg.Average-70) > 1e-9 {
		t.Fatalf("expected average 70, got %v", agg.Average)
	}
	if math.Abs(agg.Total-140) > 1e-9 {
		t.Fatalf("expected total 140, got %v", agg.Total)
	}

	if agg := Aggregate(nil); agg != (dto.NoteAggregateDTO{}) {
		t.Fatalf("empty input should aggregate to zero, got %+v", agg)
	}
}
