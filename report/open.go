package report

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
)

var openInBrowser = launcher.Open

// Open shows a report page in the system's default browser. target may be an http(s) URL
// or a local file path.
func Open(target string) error {
	u, err := browserURL(target)
	if err != nil {
		return err
	}
	openInBrowser(u)
	return nil
}

func browserURL(target string) (string, error) {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target, nil
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
