// Package source summarizes the HTML of an analysed page: forms that collect
// credentials, where they post to, and what the page pulls in from other
// origins. These are display facts; they never change the trust score.
package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"safesurf/pkg/domain"
	"safesurf/pkg/serrors"
	"strings"
	"text/tabwriter"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves the source of a page.
type Fetcher interface {
	Source(ctx context.Context, URL string) domain.SourceResult
}

// Form is one <form> of the page.
type Form struct {
	Action         string
	Method         string
	PasswordInputs int
	// OffOrigin is set when the form submits to another host.
	OffOrigin bool
}

// Report is the summary of a page source.
type Report struct {
	URL             string
	Title           string
	Forms           []Form
	PasswordInputs  int
	OffOriginForms  int
	ExternalScripts []string
	InlineScripts   int
	Iframes         int
	Links           int
	ExternalLinks   int
	Size            int
}

// Inspect fetches the source of URL and summarizes it. A service failure is
// returned as serrors.ErrService, anything else as serrors.ErrTransport.
func Inspect(ctx context.Context, f Fetcher, URL string) (Report, error) {
	res := f.Source(ctx, URL)
	switch res.Status {
	case domain.ResultSuccess:
		return Summarize(URL, res.HTML)
	case domain.ResultServiceFailure:
		return Report{}, serrors.With(serrors.ErrService, "%s", res.Message)
	default:
		return Report{}, serrors.With(serrors.ErrTransport, "%s", res.Message)
	}
}

// Summarize parses html served at pageURL.
func Summarize(pageURL, html string) (Report, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return Report{}, serrors.Wrap(serrors.ErrBadRequest, err, "could not parse page URL")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Report{}, fmt.Errorf("could not parse html: %w", err)
	}

	r := Report{
		URL:   pageURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		Size:  len(html),
	}

	doc.Find("form").Each(func(_ int, sel *goquery.Selection) {
		method := strings.ToUpper(getAttr(sel, "method"))
		if method == "" {
			method = "GET"
		}
		form := Form{
			Action: getAttr(sel, "action"),
			Method: method,
		}
		sel.Find("input").Each(func(_ int, input *goquery.Selection) {
			if strings.EqualFold(getAttr(input, "type"), "password") {
				form.PasswordInputs++
			}
		})
		form.OffOrigin = offOrigin(base, form.Action)

		r.PasswordInputs += form.PasswordInputs
		if form.OffOrigin {
			r.OffOriginForms++
		}
		r.Forms = append(r.Forms, form)
	})

	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		src := getAttr(sel, "src")
		switch {
		case src == "":
			r.InlineScripts++
		case offOrigin(base, src):
			r.ExternalScripts = append(r.ExternalScripts, src)
		}
	})

	r.Iframes = doc.Find("iframe").Length()

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		r.Links++
		if offOrigin(base, getAttr(sel, "href")) {
			r.ExternalLinks++
		}
	})

	return r, nil
}

// offOrigin reports whether ref resolves to a host other than base's.
// Relative, fragment and javascript: references stay on origin.
func offOrigin(base *url.URL, ref string) bool {
	if ref == "" {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	u = base.ResolveReference(u)
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	return !strings.EqualFold(u.Hostname(), base.Hostname())
}

// getAttr safely retrieves an attribute value from a goquery selection.
func getAttr(sel *goquery.Selection, attrName string) string {
	val, exists := sel.Attr(attrName)
	if exists {
		return strings.TrimSpace(val)
	}

	return ""
}

// Write prints the report as an aligned table.
func (r Report) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Title:\t%s\n", r.Title)
	fmt.Fprintf(tw, "Size:\t%d bytes\n", r.Size)
	fmt.Fprintf(tw, "Forms:\t%d (%d posting off-origin)\n", len(r.Forms), r.OffOriginForms)
	fmt.Fprintf(tw, "Password inputs:\t%d\n", r.PasswordInputs)
	fmt.Fprintf(tw, "Scripts:\t%d inline, %d external\n", r.InlineScripts, len(r.ExternalScripts))
	fmt.Fprintf(tw, "Iframes:\t%d\n", r.Iframes)
	fmt.Fprintf(tw, "Links:\t%d (%d external)\n", r.Links, r.ExternalLinks)
	for _, f := range r.Forms {
		if f.OffOrigin {
			fmt.Fprintf(tw, "Off-origin form:\t%s %s\n", f.Method, f.Action)
		}
	}
	for _, s := range r.ExternalScripts {
		fmt.Fprintf(tw, "External script:\t%s\n", s)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("could not write source report: %w", err)
	}

	return nil
}
