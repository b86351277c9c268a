package guardfile

import (
	"bufio"
	"bytes"
	"os/exec"
	"strings"

	"github.com/arthur-debert/guard/pkg/errors"
	"github.com/arthur-debert/guard/pkg/logging"
	"github.com/arthur-debert/guard/pkg/watcher"
)

// Command builds the action for a `command = [...]` entry: the command runs
// and every non-blank line of its stdout is a derived path. Arguments may
// use the same placeholders as templates.
func Command(argv []string) watcher.Action {
	args := append([]string(nil), argv...)
	label := "$ " + strings.Join(args, " ")

	templated := false
	for _, arg := range args {
		if hasPlaceholders(arg) {
			templated = true
			break
		}
	}

	if !templated {
		return watcher.NoArg(func() (interface{}, error) {
			return runCommand(args)
		}).Labeled(label)
	}

	return watcher.WithMatch(func(m watcher.Match) (interface{}, error) {
		expanded := make([]string, len(args))
		for i, arg := range args {
			out, err := expand(arg, m)
			if err != nil {
				return nil, err
			}
			expanded[i] = out
		}
		return runCommand(expanded)
	}).Labeled(label)
}

func runCommand(argv []string) ([]string, error) {
	logging.LogCommand(argv[0], argv[1:])

	cmd := exec.Command(argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrActionCommand, "command %q failed", strings.Join(argv, " ")).
			WithDetail("stderr", strings.TrimSpace(stderr.String()))
	}

	var paths []string
	scanner := bufio.NewScanner(bytes.NewReader(stdout))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths, scanner.Err()
}
