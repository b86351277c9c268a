package engine

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/guard/pkg/errors"
)

// RuleFileLocator supplies the absolute path of the active Guardfile
type RuleFileLocator interface {
	GuardfilePath() (string, error)
}

// MatchesRuleFile reports whether any of paths, resolved against the
// current working directory, is the active Guardfile.
func MatchesRuleFile(locator RuleFileLocator, paths []string) (bool, error) {
	ruleFile, err := locator.GuardfilePath()
	if err != nil {
		return false, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
	}

	return MatchesRuleFileFrom(cwd, ruleFile, paths), nil
}

// MatchesRuleFileFrom is MatchesRuleFile with an explicit working directory
// and Guardfile path. Absolute entries of paths are only cleaned.
func MatchesRuleFileFrom(cwd, ruleFile string, paths []string) bool {
	if ruleFile == "" {
		return false
	}
	target := filepath.Clean(ruleFile)
	for _, p := range paths {
		if resolve(cwd, p) == target {
			return true
		}
	}
	return false
}

func resolve(cwd, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(cwd, path)
}
