package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/trustlens/verification-api/internal/entity"
)

const (
	probeTimeout      = 10 * time.Second
	probeUserAgent    = "Mozilla/5.0 (compatible; CompanyVerificationBot/2.0)"
	maxProbeBodyBytes = 512 * 1024
)

// HTTPClient abstracts HTTP requests for probing purposes.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebsiteProber checks whether a company website responds and what
// metadata it exposes.
type WebsiteProber struct {
	httpClient HTTPClient
}

// WebsiteProberOption configures optional dependencies.
type WebsiteProberOption func(*WebsiteProber)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPClient) WebsiteProberOption {
	return func(p *WebsiteProber) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// NewWebsiteProber builds a prober with sensible defaults. The default
// client follows redirects and gives up after ten seconds.
func NewWebsiteProber(opts ...WebsiteProberOption) *WebsiteProber {
	p := &WebsiteProber{
		httpClient: &http.Client{
			Timeout: probeTimeout,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NormalizeWebsiteURL prepends https:// when the address carries no scheme.
func NormalizeWebsiteURL(raw string) string {
	website := strings.TrimSpace(raw)
	if website == "" {
		return ""
	}
	if !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
		website = "https://" + website
	}
	return website
}

// Probe issues a single GET against the website and reports what it found.
// Failures never propagate; transport errors are recorded on the result and
// non-200 responses only carry their status code.
func (p *WebsiteProber) Probe(ctx context.Context, website string) entity.WebsiteProbeResult {
	target := NormalizeWebsiteURL(website)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return entity.WebsiteProbeResult{Error: err.Error()}
	}
	req.Header.Set("User-Agent", probeUserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return entity.WebsiteProbeResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	statusCode := resp.StatusCode
	if statusCode != http.StatusOK {
		return entity.WebsiteProbeResult{StatusCode: &statusCode}
	}

	title, description := extractPageMeta(io.LimitReader(resp.Body, maxProbeBodyBytes))
	return entity.WebsiteProbeResult{
		Exists:      true,
		StatusCode:  &statusCode,
		Title:       title,
		Description: description,
		SSLValid:    strings.HasPrefix(target, "https://"),
	}
}

// extractPageMeta pulls the first non-empty <title> text and the content of
// a <meta name="description"> tag out of an HTML document.
func extractPageMeta(r io.Reader) (title, description *string) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if title == nil {
					if text := strings.TrimSpace(nodeText(n)); text != "" {
						title = &text
					}
				}
			case "meta":
				if description == nil {
					if content := metaDescription(n); content != "" {
						description = &content
					}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return title, description
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
	}
	return sb.String()
}

func metaDescription(n *html.Node) string {
	var isDescription bool
	var content string
	for _, attr := range n.Attr {
		switch attr.Key {
		case "name":
			isDescription = strings.EqualFold(strings.TrimSpace(attr.Val), "description")
		case "content":
			content = attr.Val
		}
	}
	if !isDescription {
		return ""
	}
	return strings.TrimSpace(content)
}
