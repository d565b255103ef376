package engine

// Noise directories skipped during discovery unless --all-files is set.
// VCS metadata directories are skipped unconditionally (see isVCSDir).
var defaultExcludeDirs = map[string]bool{
	"node_modules": true,
	"target":       true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	".tox":         true,
	".mypy_cache":  true,
	"coverage":     true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name]
}
