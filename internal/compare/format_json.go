package compare

import (
	"sort"

	"github.com/goccy/go-json"
)

// JSONFormatter writes a plan comparison as a JSON report.
type JSONFormatter struct {
	Pretty bool
}

type jsonReport struct {
	Plan            string             `json:"plan,omitempty"`
	Base            *ComparisonResult  `json:"base"`
	Alternatives    []ComparisonResult `json:"alternatives"`
	RankByNetWorth  []string           `json:"rankByNetWorth"`
	Recommendations []string           `json:"recommendations"`
}

// Format renders the base run, each alternative with its deltas, and a
// net worth ranking across every scenario, best first.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	report := jsonReport{
		Plan:            compSet.PlanPath,
		Base:            compSet.BaseResult,
		Alternatives:    compSet.AlternativeResults,
		Recommendations: compSet.Recommendations,
	}
	if report.Alternatives == nil {
		report.Alternatives = []ComparisonResult{}
	}
	if report.Recommendations == nil {
		report.Recommendations = []string{}
	}

	ranked := make([]ComparisonResult, 0, len(compSet.AlternativeResults)+1)
	if compSet.BaseResult != nil {
		ranked = append(ranked, *compSet.BaseResult)
	}
	ranked = append(ranked, compSet.AlternativeResults...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalNetWorth.GreaterThan(ranked[j].FinalNetWorth)
	})
	report.RankByNetWorth = make([]string, len(ranked))
	for i, r := range ranked {
		report.RankByNetWorth[i] = r.ScenarioName
	}

	var (
		data []byte
		err  error
	)
	if jf.Pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
