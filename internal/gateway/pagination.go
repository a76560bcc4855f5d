package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/repo-analyzer/internal/domain"
)

// maxErrorBody limits how much of a failed response is kept in a QueryError.
const maxErrorBody = 64 << 10

// listPage fetches a single page of an endpoint.
type listPage[T any] func(ctx context.Context, opts github.ListOptions) ([]T, *github.Response, error)

// collectPages requests pages 1, 2, ... until a page comes back shorter than the
// page size or, when maxResults is nonzero, until maxResults records have been
// collected. The result is truncated to maxResults. Any failed page aborts the
// whole fetch.
func collectPages[T any](ctx context.Context, g *GitHubGateway, endpoint string, maxResults int, list listPage[T]) ([]T, error) {
	pageSize := g.pageSize
	if maxResults > 0 && maxResults < pageSize {
		pageSize = maxResults
	}

	var data []T
	for page := 1; ; page++ {
		if page > g.maxPages {
			return nil, &domain.QueryError{
				Endpoint: endpoint,
				Page:     page,
				Body:     fmt.Sprintf("page limit of %d exceeded", g.maxPages),
			}
		}

		items, resp, err := list(ctx, github.ListOptions{Page: page, PerPage: pageSize})
		if qerr := queryError(endpoint, page, resp, err); qerr != nil {
			return nil, qerr
		}
		data = append(data, items...)

		g.logger.Debug().
			Str("endpoint", endpoint).
			Int("page", page).
			Int("per_page", pageSize).
			Int("received", len(items)).
			Int("accumulated", len(data)).
			Msg("fetched page")

		if len(items) < pageSize || (maxResults > 0 && len(data) >= maxResults) {
			break
		}
	}

	if maxResults > 0 && len(data) > maxResults {
		data = data[:maxResults]
	}
	return data, nil
}

// queryError returns nil only for a 200 response without error.
func queryError(endpoint string, page int, resp *github.Response, err error) error {
	if err == nil && resp != nil && resp.StatusCode == http.StatusOK {
		return nil
	}

	qerr := &domain.QueryError{Endpoint: endpoint, Page: page, Err: err}
	if resp != nil && resp.Response != nil {
		qerr.StatusCode = resp.StatusCode
		qerr.Body = readBody(resp.Response)
	}
	if qerr.Err == nil {
		qerr.Err = fmt.Errorf("unexpected status %d", qerr.StatusCode)
	}
	return qerr
}

// readBody returns the response text. go-github restores the body of failed
// responses after decoding the error, so it can still be read here.
func readBody(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
