package core

import (
	"github.com/shredguard/shredguard/internal/engine"
	"github.com/shredguard/shredguard/internal/redact"
	"github.com/shredguard/shredguard/internal/rules"
	"github.com/shredguard/shredguard/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Match = types.Match
type Definition = rules.Definition
type RuleSet = rules.Set
type FixResult = redact.Result

// CompileRules builds a pattern set from definitions, assigning SG codes in
// order. Definitions typically come from a decoded shredguard.toml.
func CompileRules(defs []Definition) (*RuleSet, error) {
	return rules.Compile(defs)
}

// CommonDefinitions returns the built-in starter catalog of PHI patterns.
func CommonDefinitions() []Definition { return rules.CommonDefinitions() }

// Check is the stable scan entrypoint for other programs. Matches come back
// ordered by (path, line, column) with files in discovery order.
func Check(cfg Config, set *RuleSet) ([]Match, error) {
	res, err := engine.Run(cfg, set)
	if err != nil {
		return nil, err
	}
	return res.Matches, nil
}

// Fix scans like Check and then rewrites every match in place with
// {prefix}-{n} pseudonyms. The returned mapping lists values in first-seen
// order.
func Fix(cfg Config, set *RuleSet, prefix string) (FixResult, []redact.Entry, error) {
	res, err := engine.Run(cfg, set)
	if err != nil {
		return FixResult{}, nil, err
	}
	assigner := redact.NewAssigner(prefix)
	fixed := redact.Rewrite(cfg.Root, res.Matches, assigner, false)
	return fixed, assigner.Mapping(), nil
}
