package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/wfgraph/internal/fsutil"
)

const workflowFileName = "workflow.xml"

// locateWorkflow resolves an input path to a workflow definition. A file is
// used as is. For an application directory the conventional locations are
// tried first, then the tree is searched for exactly one workflow.xml.
func locateWorkflow(input string) (string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return "", fmt.Errorf("failed to stat input %s: %w", input, err)
	}
	if !info.IsDir() {
		return filepath.Clean(input), nil
	}

	for _, candidate := range []string{
		filepath.Join(input, "hdfs", workflowFileName),
		filepath.Join(input, workflowFileName),
	} {
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, nil
		}
	}

	found, err := fsutil.FindFilesByName(input, workflowFileName)
	if err != nil {
		return "", err
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no %s found under %s", workflowFileName, input)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("found %d %s files under %s, pass one of them explicitly: %s",
			len(found), workflowFileName, input, strings.Join(found, ", "))
	}
}
