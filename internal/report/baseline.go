package report

import (
	"encoding/json"
	"fmt"
	"os"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/shredguard/shredguard/internal/types"
)

// Baseline is a set of accepted matches recorded by `baseline create`.
// Entries are hashes of (path|code|text), never the matched values
// themselves, so the baseline file can be committed without leaking PHI.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

const DefaultBaselinePath = "shredguard.baseline.json"

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	_ = json.Unmarshal(f, &b)
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

func SaveBaseline(path string, ms []types.Match) error {
	b := Baseline{Items: map[string]bool{}}
	for _, m := range ms {
		b.Items[key(m)] = true
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// FilterNew returns matches not present in the baseline.
func FilterNew(ms []types.Match, base Baseline) []types.Match {
	var out []types.Match
	for _, m := range ms {
		if !base.Items[key(m)] {
			out = append(out, m)
		}
	}
	return out
}

func key(m types.Match) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(m.Path+"|"+m.Code+"|"+m.Text))
}
