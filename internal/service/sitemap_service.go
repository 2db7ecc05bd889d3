package service

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	"provafoco/internal/domain"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

var staticRoutes = []sitemapURL{
	{Loc: "/", ChangeFreq: "daily", Priority: "1.0"},
	{Loc: "/questions", ChangeFreq: "daily", Priority: "0.9"},
	{Loc: "/stats", ChangeFreq: "weekly", Priority: "0.7"},
}

// SitemapService renders the public sitemap.
type SitemapService interface {
	Render(ctx context.Context) ([]byte, error)
}

type sitemapService struct {
	questions domain.QuestionRepository
	baseURL   string
}

func NewSitemapService(questions domain.QuestionRepository, baseURL string) SitemapService {
	return &sitemapService{questions: questions, baseURL: strings.TrimRight(baseURL, "/")}
}

// Render lists the static routes followed by the most recently updated active questions.
// Store failures are returned to the caller.
func (s *sitemapService) Render(ctx context.Context) ([]byte, error) {
	refs, err := s.questions.ListRecent(ctx, domain.SitemapQuestionLimit)
	if err != nil {
		return nil, err
	}

	set := urlSet{Xmlns: sitemapNamespace, URLs: make([]sitemapURL, 0, len(staticRoutes)+len(refs))}
	for _, r := range staticRoutes {
		r.Loc = s.baseURL + r.Loc
		set.URLs = append(set.URLs, r)
	}
	for _, ref := range refs {
		u := sitemapURL{Loc: s.baseURL + "/question/" + ref.ID, ChangeFreq: "monthly", Priority: "0.8"}
		if !ref.UpdatedAt.IsZero() {
			u.LastMod = ref.UpdatedAt.UTC().Format(time.DateOnly)
		}
		set.URLs = append(set.URLs, u)
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
