package service

import (
	"context"

	"github.com/devconnector/connector-api/internal/core/domain"
)

// nopCache is used when no author cache is configured.
type nopCache struct{}

func (nopCache) Get(context.Context, string) (*domain.AuthorSnapshot, bool, error) {
	return nil, false, nil
}

func (nopCache) Set(context.Context, string, domain.AuthorSnapshot) error { return nil }

func (nopCache) Invalidate(context.Context, string) error { return nil }
