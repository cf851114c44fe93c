package service

import "github.com/hzerradi/avancement-api/internal/model"

// The two fixed catalogues of declarable activities. Saves are validated
// against them so free-form categories never reach the database.
var enseignementCatalogue = map[string][]string{
	"A/1": {
		"Conception et montage d'une filière accréditée comme coordonnateur",
		"Coordination d'une filière accréditée ou d'un établissement",
		"Préparation de cours ou TD ou TP d'un module nouveaux",
		"Préparation de supports et polycopiés de cours ou TD ou TP",
		"Participation aux travaux des jurys au niveau national",
		"Responsable d'un module",
	},
	"A/2": {
		"Encadrement de PFE Licence, Master, Ingénieur",
		"Encadrement de stages et visites de terrain",
		"Formation de formateurs et personnel",
	},
	"A/3": {
		"Tutorat d'étudiants (PFE, stages...)",
		"Organisation de manifestations scientifiques ou pédagogiques",
		"Participation active aux travaux des commissions pédagogiques",
	},
}

var rechercheCatalogue = map[string][]string{
	"B/1": {
		"Publication dans une revue indexée",
		"Brevet déposé ou exploité",
		"Direction de thèse soutenue",
		"Co-direction de thèse soutenue",
	},
	"B/2": {
		"Publication dans les actes de congrès indexés",
		"Publication dans une revue spécialisée non indexée",
		"Direction de thèses en cours d'un doctorant inscrit",
	},
	"B/3": {
		"Participation à des projets de recherche financés (CNRST, International...)",
		"Création ou participation à la création d'une structure de recherche accréditée",
		"Communication orale ou poster dans un congrès",
	},
	"B/4": {
		"Responsabilité de structure de recherche accréditée comme directeur",
		"Responsabilité de structure de recherche accréditée comme chef d'équipe",
		"Rédaction de rapports d'expertise ou de rapports techniques",
		"Évaluation d'articles scientifiques (reviewer)",
	},
}

func catalogueFor(activiteType string) map[string][]string {
	if activiteType == model.ActiviteRecherche {
		return rechercheCatalogue
	}
	return enseignementCatalogue
}

func catalogueContains(activiteType, category, subcategory string) bool {
	subs, ok := catalogueFor(activiteType)[category]
	if !ok {
		return false
	}
	for _, s := range subs {
		if s == subcategory {
			return true
		}
	}
	return false
}
