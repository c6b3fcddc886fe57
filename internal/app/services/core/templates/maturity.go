package templates

import (
	"konsulin-assessment-engine/internal/app/models"

	"github.com/Masterminds/semver/v3"
)

var maturityWeights = map[models.TemplateMaturity]float64{
	models.MaturityEstablished:  1.0,
	models.MaturityValidated:    0.9,
	models.MaturityProvisional:  0.7,
	models.MaturityExperimental: 0.5,
}

// MaturityForVersion classifies a version string when the definition does not
// declare its maturity: released majors are validated, 0.x and prereleases are
// provisional, anything unparseable is experimental.
func MaturityForVersion(version string) models.TemplateMaturity {
	v, err := semver.NewVersion(version)
	if err != nil {
		return models.MaturityExperimental
	}
	if v.Major() == 0 || v.Prerelease() != "" {
		return models.MaturityProvisional
	}
	return models.MaturityValidated
}

func (t *Template) Maturity() models.TemplateMaturity {
	if _, ok := maturityWeights[t.def.Maturity]; ok {
		return t.def.Maturity
	}
	return MaturityForVersion(t.def.Version)
}

// MaturityWeight is the 0..1 factor used by the interpretation confidence.
func (t *Template) MaturityWeight() float64 {
	return maturityWeights[t.Maturity()]
}
