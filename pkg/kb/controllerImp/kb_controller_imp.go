package controllerImp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"potato/pkg/kb/service"
	"potato/pkg/kb/serviceImp"
)

type Options struct {
	AllowedDomains []string
	MaxBytes       int
	FetchTimeout   time.Duration
	HTTPClient     *http.Client // nil: a client with FetchTimeout
}

type KBCtrl struct {
	s        service.KBService
	allow    map[string]bool
	maxBytes int
	httpc    *http.Client
	log      *zap.Logger
}

func New(s service.KBService, opt Options, log *zap.Logger) *KBCtrl {
	allow := map[string]bool{}
	for _, h := range opt.AllowedDomains {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allow[h] = true
		}
	}
	if opt.MaxBytes <= 0 {
		opt.MaxBytes = 1500000
	}
	httpc := opt.HTTPClient
	if httpc == nil {
		if opt.FetchTimeout <= 0 {
			opt.FetchTimeout = 20 * time.Second
		}
		httpc = &http.Client{Timeout: opt.FetchTimeout}
	}
	return &KBCtrl{s: s, allow: allow, maxBytes: opt.MaxBytes, httpc: httpc, log: log.Named("kb")}
}

type ingestReq struct {
	Title     string  `json:"title"`
	Tags      string  `json:"tags"`
	Text      string  `json:"text"`
	SourceURL *string `json:"source_url"`
}

func (h *KBCtrl) IngestText(c echo.Context) error {
	var req ingestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text is required"})
	}
	src := ""
	if req.SourceURL != nil {
		src = strings.TrimSpace(*req.SourceURL)
	}

	doc, n, err := h.s.UpsertDocument(c.Request().Context(), strings.TrimSpace(req.Title), strings.TrimSpace(req.Tags), req.Text, src)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	h.log.Info("document ingested", zap.Uint("doc_id", doc.DocID), zap.Int("chunks", n))
	return c.JSON(http.StatusCreated, echo.Map{"doc": doc, "chunks": n})
}

func (h *KBCtrl) IngestURL(c echo.Context) error {
	var body struct {
		URL   string `json:"url"`
		Tags  string `json:"tags"`
		Title string `json:"title"`
	}
	if err := c.Bind(&body); err != nil || strings.TrimSpace(body.URL) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "url required"})
	}
	u, err := url.Parse(strings.TrimSpace(body.URL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad url"})
	}
	if !h.allow[strings.ToLower(u.Hostname())] {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "domain not allowed"})
	}

	txt, title, err := h.fetchMainText(c.Request().Context(), u.String())
	if err != nil {
		h.log.Warn("fetch failed", zap.String("url", u.String()), zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	if body.Title != "" {
		title = body.Title
	}

	doc, n, err := h.s.UpsertDocument(c.Request().Context(), title, body.Tags, txt, u.String())
	if errors.Is(err, serviceImp.ErrEmptyText) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "page has no readable text"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	h.log.Info("url ingested", zap.String("url", u.String()), zap.Uint("doc_id", doc.DocID), zap.Int("chunks", n))
	return c.JSON(http.StatusCreated, echo.Map{"doc": doc, "chunks": n})
}

type hit struct {
	ChunkID   uint   `json:"chunk_id"`
	DocID     uint   `json:"doc_id"`
	Ord       int    `json:"ord"`
	Text      string `json:"text"`
	DocTitle  string `json:"doc_title,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
}

func (h *KBCtrl) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q required"})
	}
	ctx := c.Request().Context()
	chunks, err := h.s.Search(ctx, q, 6)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	meta, err := h.s.DocsMeta(ctx, serviceImp.DocIDs(chunks))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	hits := make([]hit, len(chunks))
	for i, ch := range chunks {
		d := meta[ch.DocID]
		hits[i] = hit{ChunkID: ch.ChunkID, DocID: ch.DocID, Ord: ch.Ord, Text: ch.Text, DocTitle: d.Title, SourceURL: d.SourceURL}
	}
	return c.JSON(http.StatusOK, hits)
}

func (h *KBCtrl) Docs(c echo.Context) error {
	docs, err := h.s.ListDocs(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *KBCtrl) fetchMainText(ctx context.Context, u string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", "", err
	}
	resp, err := h.httpc.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	if resp.ContentLength > int64(h.maxBytes) {
		return "", "", fmt.Errorf("page too large")
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(h.maxBytes)))
	if err != nil {
		return "", "", err
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	switch {
	case strings.Contains(ct, "text/plain"):
		return string(b), guessTitleFromText(string(b)), nil
	case strings.Contains(ct, "text/html"):
	default:
		return "", "", fmt.Errorf("unsupported content-type: %s", ct)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return "", "", err
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())

	// main/article when present, else the whole page
	var parts []string
	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	sel.Find("h1,h2,h3,p,li").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return cleanWhitespace(strings.Join(parts, "\n")), title, nil
}

var wsRX = regexp.MustCompile(`[ \t]+\n`)

func cleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return wsRX.ReplaceAllString(s, "\n")
}

func guessTitleFromText(s string) string {
	line := strings.SplitN(strings.TrimSpace(s), "\n", 2)[0]
	if r := []rune(line); len(r) > 120 {
		line = string(r[:120])
	}
	return line
}
