package service

import (
	"context"

	"potato/entities"
)

type KBService interface {
	UpsertDocument(ctx context.Context, title, tags, text, sourceURL string) (*entities.KBDocument, int, error)
	Search(ctx context.Context, query string, k int) ([]entities.KBChunk, error)
	DocsMeta(ctx context.Context, ids []uint) (map[uint]entities.KBDocument, error)
	ListDocs(ctx context.Context) ([]entities.KBDocument, error)
}
