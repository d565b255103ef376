package report

import (
	"encoding/json"
	"io"

	"github.com/shredguard/shredguard/internal/types"
)

type sarif struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
}

// WriteSARIF writes matches as SARIF 2.1.0 to the provided writer. The
// matched text is deliberately left out of the message: SARIF logs tend to
// get uploaded, and these are the values the tool exists to contain.
func WriteSARIF(w io.Writer, version string, ms []types.Match) error {
	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: "shredguard", Version: version}},
		Results: []sarifResult{},
	}
	for _, m := range ms {
		msg := m.Description
		if msg == "" {
			msg = m.Code + " matched"
		}
		run.Results = append(run.Results, sarifResult{
			RuleID:  m.Code,
			Level:   "warning",
			Message: sarifMessage{Text: msg},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: m.Path},
					Region:           sarifRegion{StartLine: m.Line, StartColumn: m.Column},
				},
			}},
		})
	}
	doc := sarif{Version: "2.1.0", Runs: []sarifRun{run}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
