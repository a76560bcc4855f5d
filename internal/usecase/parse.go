package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/naka-gawa/repo-analyzer/internal/domain"
)

// DateSource selects the layout ParseDate expects.
type DateSource int

const (
	// SourceInput is a day given on the command line, e.g. 2023-01-15.
	SourceInput DateSource = iota
	// SourceAPI is a timestamp as returned by the API, e.g. 2023-01-15T10:00:00Z.
	SourceAPI
)

const (
	// InputDateLayout is the layout of dates given on the command line.
	InputDateLayout = "2006-01-02"
	// APITimeLayout is the layout of API timestamps, always UTC.
	APITimeLayout = "2006-01-02T15:04:05Z"
)

var repoURLPattern = regexp.MustCompile(`(?i)github\.com/([^/]+)/([^/?#]+)`)

// ParseRepositoryURL extracts owner and project from a github.com URL.
// A trailing ".git" is dropped from the project.
func ParseRepositoryURL(repoURL string) (domain.RepositoryIdentity, error) {
	m := repoURLPattern.FindStringSubmatch(repoURL)
	if m == nil {
		return domain.RepositoryIdentity{}, fmt.Errorf("%w: incorrect repository URL %q", domain.ErrInput, repoURL)
	}
	project := strings.TrimSuffix(m[2], ".git")
	if project == "" {
		return domain.RepositoryIdentity{}, fmt.Errorf("%w: incorrect repository URL %q", domain.ErrInput, repoURL)
	}
	return domain.RepositoryIdentity{Owner: m[1], Project: project}, nil
}

// ParseDate parses text according to source. Empty text yields a nil time.
// The result is always UTC.
func ParseDate(text string, source DateSource) (*time.Time, error) {
	if text == "" {
		return nil, nil
	}

	layout := InputDateLayout
	if source == SourceAPI {
		layout = APITimeLayout
	}
	t, err := time.Parse(layout, text)
	if err != nil {
		return nil, fmt.Errorf("%w: incorrect date format %q", domain.ErrInput, text)
	}
	t = t.UTC()
	return &t, nil
}
