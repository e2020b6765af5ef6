package extract

import (
	"fmt"
	"os"
	"os/exec"
)

// extractDOC shells out for the legacy binary Word format: antiword first,
// catdoc as the fallback converter.
func extractDOC(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "resume-*.doc")
	if err != nil {
		return "", fmt.Errorf("%w: doc: %v", ErrParse, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: doc: %v", ErrParse, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: doc: %v", ErrParse, err)
	}

	out, antiwordErr := exec.Command("antiword", tmp.Name()).Output()
	if antiwordErr == nil {
		return string(out), nil
	}

	out, catdocErr := exec.Command("catdoc", tmp.Name()).Output()
	if catdocErr == nil {
		return string(out), nil
	}

	return "", fmt.Errorf("%w: doc: antiword: %v; catdoc: %v", ErrParse, antiwordErr, catdocErr)
}
