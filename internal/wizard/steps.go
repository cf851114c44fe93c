// Package wizard holds the step table, progress tracking and navigation
// guard of the six-step candidature form. It is independent of the HTTP and
// persistence layers so the same rules can back both the API responses and
// the tests.
package wizard

import "strconv"

type StepID int

const (
	StepProfil StepID = iota + 1
	StepEnseignements
	StepPfe
	StepActivitesEnseignement
	StepActivitesRecherche
	StepValidation
)

type Step struct {
	ID       StepID
	Label    string
	Required bool
}

// Steps is the ordered wizard table. Steps 1-5 are required; step 6 is the
// terminal recap/submission step and carries no completion of its own.
var Steps = []Step{
	{ID: StepProfil, Label: "Profil", Required: true},
	{ID: StepEnseignements, Label: "Enseignements", Required: true},
	{ID: StepPfe, Label: "PFE", Required: true},
	{ID: StepActivitesEnseignement, Label: "Activités d'enseignement", Required: true},
	{ID: StepActivitesRecherche, Label: "Activités de recherche", Required: true},
	{ID: StepValidation, Label: "Validation", Required: false},
}

func (id StepID) Key() string {
	return strconv.Itoa(int(id))
}

func (id StepID) Label() string {
	for _, s := range Steps {
		if s.ID == id {
			return s.Label
		}
	}
	return ""
}
