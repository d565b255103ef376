package shredguard

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/shredguard/shredguard/internal/config"
	"github.com/shredguard/shredguard/internal/engine"
	"github.com/shredguard/shredguard/internal/report"
	"github.com/shredguard/shredguard/internal/rules"
)

func selfUpdate() error {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	// Update from GitHub Releases: shredguard/shredguard
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), "shredguard/shredguard")
	if err != nil {
		return err
	}
	_ = latest
	return nil
}

func pickString(cli string, cfg *string) string {
	if cli != "" {
		return cli
	}
	if cfg != nil && *cfg != "" {
		return *cfg
	}
	return ""
}

func pickInt(cli int, cfg *int) int {
	if cli != 0 {
		return cli
	}
	if cfg != nil && *cfg != 0 {
		return *cfg
	}
	return 0
}

func pickBool(cli bool, cfg *bool) bool {
	if cli {
		return true
	}
	if cfg != nil {
		return *cfg
	}
	return false
}

// setup is the shared state every scanning command starts from.
type setup struct {
	root string
	cfg  config.File
	set  *rules.Set
	fmtr report.Formatter
}

// loadSetup resolves the working root, configuration, and compiled pattern
// set for a scanning command.
func loadSetup() (setup, error) {
	root, err := os.Getwd()
	if err != nil {
		return setup{}, fmt.Errorf("resolve working directory: %w", err)
	}
	cfg, err := config.Load(flagConfig, root)
	if err != nil {
		return setup{}, err
	}
	set, err := cfg.Rules()
	if err != nil {
		return setup{}, err
	}
	fmtr := report.NewFormatter(pickBool(flagNoColor, cfg.NoColor))
	return setup{root: root, cfg: cfg, set: set, fmtr: fmtr}, nil
}

// engineConfig builds the scan configuration from the shared setup and the
// per-command path arguments.
func (s setup) engineConfig(paths []string, allFiles, noGitignore bool) engine.Config {
	abs := make([]string, 0, len(paths))
	for _, p := range paths {
		if filepath.IsAbs(p) {
			abs = append(abs, p)
			continue
		}
		abs = append(abs, filepath.Join(s.root, p))
	}
	cfg := engine.Config{
		Root:             s.root,
		Paths:            abs,
		AllFiles:         allFiles,
		RespectGitignore: !noGitignore,
		Threads:          pickInt(flagThreads, s.cfg.Threads),
		Verbose:          flagVerbose,
	}
	if flagVerbose {
		cfg.Warn = func(format string, args ...any) {
			fmt.Fprintln(os.Stderr, s.fmtr.Warning(fmt.Sprintf(format, args...)))
		}
	}
	return cfg
}

func maybeNotifyUpdate() {
	if flagNoUpdateCheck {
		return
	}
	if latest, newer, _ := updateCheck(version); newer && latest != "" {
		fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'shredguard update' to upgrade\n", latest)
	}
}
