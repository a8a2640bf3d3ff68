package serviceImp

import (
	"context"
	"errors"
	"sort"
	"strings"

	"potato/entities"
	"potato/pkg/kb/repository"
)

const chunkRunes = 1000

var ErrEmptyText = errors.New("text is empty")

type Svc struct{ r repository.KBRepository }

func New(r repository.KBRepository) *Svc { return &Svc{r: r} }

// chunkText cuts text into pieces of at least maxRunes, breaking at line ends
// so paragraphs stay whole. A piece with no line break is cut hard at
// 2*maxRunes.
func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = chunkRunes
	}
	var parts []string
	cur := strings.Builder{}
	count := 0
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if (count >= maxRunes && r == '\n') || count >= 2*maxRunes {
			parts = append(parts, cur.String())
			cur.Reset()
			count = 0
		}
	}
	if strings.TrimSpace(cur.String()) != "" {
		parts = append(parts, cur.String())
	}
	return parts
}

func (s *Svc) UpsertDocument(ctx context.Context, title, tags, text, sourceURL string) (*entities.KBDocument, int, error) {
	if strings.TrimSpace(text) == "" {
		return nil, 0, ErrEmptyText
	}
	d := &entities.KBDocument{Title: title, Tags: tags, SourceURL: sourceURL}
	if err := s.r.CreateDoc(ctx, d); err != nil {
		return nil, 0, err
	}

	chs := chunkText(text, chunkRunes)
	rows := make([]entities.KBChunk, len(chs))
	for i := range chs {
		rows[i] = entities.KBChunk{DocID: d.DocID, Ord: i, Text: chs[i]}
	}
	if err := s.r.BulkInsertChunks(ctx, rows); err != nil {
		return nil, 0, err
	}
	return d, len(rows), nil
}

// terms splits a query into distinct lower-case words of two or more runes.
func terms(q string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, w := range strings.Fields(strings.ToLower(q)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if len([]rune(w)) < 2 {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Search ranks chunks by how many query terms they contain. Chunks matching
// nothing are dropped; ties keep storage order.
func (s *Svc) Search(ctx context.Context, query string, k int) ([]entities.KBChunk, error) {
	ts := terms(query)
	if len(ts) == 0 || k <= 0 {
		return nil, nil
	}
	chunks, err := s.r.AllChunks(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		ch entities.KBChunk
		sc int
	}
	list := make([]scored, 0, len(chunks))
	for _, ch := range chunks {
		low := strings.ToLower(ch.Text)
		n := 0
		for _, t := range ts {
			if strings.Contains(low, t) {
				n++
			}
		}
		if n > 0 {
			list = append(list, scored{ch: ch, sc: n})
		}
	}
	if len(list) == 0 {
		return nil, nil
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].sc > list[j].sc })

	if k > len(list) {
		k = len(list)
	}
	out := make([]entities.KBChunk, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, list[i].ch)
	}
	return out, nil
}

// DocIDs returns the distinct document ids of chunks in first-seen order.
func DocIDs(chunks []entities.KBChunk) []uint {
	seen := make(map[uint]bool, len(chunks))
	var ids []uint
	for _, ch := range chunks {
		if !seen[ch.DocID] {
			seen[ch.DocID] = true
			ids = append(ids, ch.DocID)
		}
	}
	return ids
}

func (s *Svc) DocsMeta(ctx context.Context, ids []uint) (map[uint]entities.KBDocument, error) {
	return s.r.DocsByIDs(ctx, ids)
}

func (s *Svc) ListDocs(ctx context.Context) ([]entities.KBDocument, error) {
	return s.r.ListDocs(ctx)
}
