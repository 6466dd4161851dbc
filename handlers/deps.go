package handlers

import (
	"CasaFacil/models"
	"CasaFacil/repository"
	"CasaFacil/store"
	"context"
	"io"
)

type PropertyStore interface {
	Create(ctx context.Context, property models.Property) error
	Get(ctx context.Context, id string) (*models.Property, error)
	ListAvailable(ctx context.Context, limit int64) ([]models.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error)
	Update(ctx context.Context, id string, patch models.PropertyPatch) (*models.Property, error)
}

type ListingCache interface {
	GetAvailable(ctx context.Context, limit int64) ([]models.Property, bool, error)
	SetAvailable(ctx context.Context, limit int64, props []models.Property) error
	Invalidate(ctx context.Context) error
}

type SessionStores interface {
	Get(ctx context.Context, sessionID, userID string) (*store.Store, error)
}

type SearchCounter interface {
	Incr(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

type ImageStore interface {
	Upload(ctx context.Context, ownerID, ext, contentType string, src io.Reader) (string, error)
	Open(ctx context.Context, key string) (*repository.Image, error)
}
