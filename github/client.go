// Package github reads an organization's teams and team members from the GitHub
// GraphQL API and normalizes them into directory records.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// ErrPageStatus is returned by Fetch for a non-200 page when Config.FailOnHTTPError is set.
var ErrPageStatus = errors.New("unexpected GraphQL response status")

// Client fetches organization data page by page.
type Client struct {
	config     Config
	httpClient *http.Client
	pacer      Pacer
	logger     logrus.FieldLogger
}

type Option func(*Client)

// WithHTTPClient sets the client used as the base transport under token authentication.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithPacer(p Pacer) Option {
	return func(c *Client) {
		c.pacer = p
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client that authenticates with "Authorization: token <token>".
// Pages are paced by FixedPacer{DefaultPageDelay} unless WithPacer is given.
func NewClient(token string, config Config, options ...Option) *Client {
	var c = &Client{
		config:     config.withDefaults(),
		httpClient: http.DefaultClient,
		pacer:      FixedPacer{Delay: DefaultPageDelay},
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range options {
		opt(c)
	}

	var base = c.httpClient
	var ctx = context.WithValue(context.Background(), oauth2.HTTPClient, base)
	var src = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "token"})
	c.httpClient = oauth2.NewClient(ctx, src)
	c.httpClient.Timeout = base.Timeout
	return c
}

// Fetch walks the team pages of org and returns them merged into one response:
// the first page is the base and the team nodes of every later page are appended
// to it in request order.
//
// A page without pagination info ends the walk. That includes a non-200 page, which
// reads as an empty response unless Config.FailOnHTTPError is set. Transport errors
// are returned as is; nothing is retried.
func (c *Client) Fetch(ctx context.Context, org string) (result *Response, err error) {
	var logger = c.logger.WithField("org", org)
	var cursor *string
	var hasNextPage = true
	var pages []*Response

	for hasNextPage {
		if len(pages) > 0 {
			if err = c.pacer.Wait(ctx); err != nil {
				return
			}
		}
		var page *Response
		if page, err = c.fetchPage(ctx, org, cursor); err != nil {
			return
		}
		for _, e := range page.Errors {
			logger.WithField("page", len(pages)+1).Warnf("GraphQL error: %s", e.Message)
		}
		hasNextPage = false
		if info := page.pageInfo(); info != nil {
			hasNextPage = info.HasNextPage
			cursor = info.EndCursor
		}
		pages = append(pages, page)
		logger.WithFields(logrus.Fields{
			"page":  len(pages),
			"teams": len(page.TeamNodes()),
			"next":  hasNextPage,
		}).Debug("fetched team page")
	}

	result = mergePages(pages)
	return
}

func mergePages(pages []*Response) (result *Response) {
	result = pages[0]
	var teams = result.teams()
	if teams == nil {
		return
	}
	for _, page := range pages[1:] {
		teams.Nodes = append(teams.Nodes, page.TeamNodes()...)
		result.Errors = append(result.Errors, page.Errors...)
	}
	return
}

func (c *Client) fetchPage(ctx context.Context, org string, cursor *string) (response *Response, err error) {
	var body []byte
	if body, err = json.Marshal(graphqlRequest{
		Query: organizationQuery,
		Variables: queryVariables{
			First: c.config.PageSize,
			After: cursor,
			Org:   org,
		},
	}); err != nil {
		return
	}
	return c.post(ctx, graphqlPath, body)
}

func (c *Client) post(ctx context.Context, path string, body []byte) (response *Response, err error) {
	var url = strings.TrimSuffix(c.config.BaseURL, "/") + path
	c.logger.Debugf("requesting POST %s", path)

	var rq *http.Request
	if rq, err = http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body)); err != nil {
		return
	}
	rq.Header.Set("User-Agent", c.config.UserAgent)
	rq.Header.Set("Content-Type", "application/json")

	var rs *http.Response
	if rs, err = c.httpClient.Do(rq); err != nil {
		err = errors.Wrapf(err, "POST %s", path)
		return
	}
	defer rs.Body.Close()

	var data []byte
	if data, err = io.ReadAll(rs.Body); err != nil {
		err = errors.Wrapf(err, "POST %s: read body", path)
		return
	}

	if rs.StatusCode != http.StatusOK {
		if c.config.FailOnHTTPError {
			err = errors.Wrapf(ErrPageStatus, "POST %s: status code %d", path, rs.StatusCode)
			return
		}
		c.logger.WithField("status", rs.StatusCode).Warnf("POST %s failed, treating page as empty", path)
		response = new(Response)
		return
	}

	response = new(Response)
	if err = json.Unmarshal(data, response); err != nil {
		err = errors.Wrapf(err, "POST %s: decode response", path)
		response = nil
	}
	return
}
