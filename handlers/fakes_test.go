package handlers

import (
	"CasaFacil/models"
	"CasaFacil/repository"
	"CasaFacil/store"
	"CasaFacil/utils"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	reply    string
	err      error
	messages []string
	history  []string
	facts    []models.PropertyFacts
	prefs    []models.UserPreferences
}

func (g *fakeGateway) GenerateDescription(_ context.Context, facts models.PropertyFacts) (string, error) {
	g.facts = append(g.facts, facts)
	return g.reply, g.err
}

func (g *fakeGateway) GetRecommendations(_ context.Context, prefs models.UserPreferences, _ []models.Property) (string, error) {
	g.prefs = append(g.prefs, prefs)
	return g.reply, g.err
}

func (g *fakeGateway) Chat(_ context.Context, message, history string) (string, error) {
	g.messages = append(g.messages, message)
	g.history = append(g.history, history)
	return g.reply, g.err
}

type fakeProperties struct {
	byID    map[string]models.Property
	listErr error
	lists   int
}

func newFakeProperties(props ...models.Property) *fakeProperties {
	f := &fakeProperties{byID: map[string]models.Property{}}
	for _, p := range props {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProperties) Create(_ context.Context, p models.Property) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProperties) Get(_ context.Context, id string) (*models.Property, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProperties) sorted(keep func(models.Property) bool) []models.Property {
	var out []models.Property
	for _, p := range f.byID {
		if keep(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b models.Property) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}

func (f *fakeProperties) ListAvailable(_ context.Context, limit int64) ([]models.Property, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := f.sorted(func(p models.Property) bool { return p.Available })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProperties) ListByOwner(_ context.Context, ownerID string) ([]models.Property, error) {
	return f.sorted(func(p models.Property) bool { return p.OwnerID == ownerID }), nil
}

func (f *fakeProperties) Update(_ context.Context, id string, patch models.PropertyPatch) (*models.Property, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = patch.Apply(p)
	f.byID[id] = p
	return &p, nil
}

func (f *fakeProperties) Count(context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

func (f *fakeProperties) CountAvailable(context.Context) (int64, error) {
	return int64(len(f.sorted(func(p models.Property) bool { return p.Available }))), nil
}

type fakeCache struct {
	entries     map[int64][]models.Property
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[int64][]models.Property{}}
}

func (c *fakeCache) GetAvailable(_ context.Context, limit int64) ([]models.Property, bool, error) {
	props, ok := c.entries[limit]
	return props, ok, nil
}

func (c *fakeCache) SetAvailable(_ context.Context, limit int64, props []models.Property) error {
	c.entries[limit] = props
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.invalidated++
	c.entries = map[int64][]models.Property{}
	return nil
}

type fakeSessions map[string]*store.Store

func (f fakeSessions) Get(_ context.Context, sessionID, _ string) (*store.Store, error) {
	s, ok := f[sessionID]
	if !ok {
		return nil, errors.New("no session")
	}
	return s, nil
}

type fakeCounter struct{ n int64 }

func (c *fakeCounter) Incr(context.Context) error {
	c.n++
	return nil
}

func (c *fakeCounter) Count(context.Context) (int64, error) { return c.n, nil }

type published struct {
	key string
	v   any
}

type fakePublisher struct{ sent []published }

func (p *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.sent = append(p.sent, published{key: key, v: v})
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeImages struct {
	blobs map[string][]byte
	types map[string]string
}

func newFakeImages() *fakeImages {
	return &fakeImages{blobs: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeImages) Upload(_ context.Context, _ string, ext, contentType string, src io.Reader) (string, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	key := "0b6c1f0e-3d59-4c8b-9a51-6f2a1c2d7e10" + ext
	f.blobs[key] = b
	f.types[key] = contentType
	return key, nil
}

func (f *fakeImages) Open(_ context.Context, key string) (*repository.Image, error) {
	b, ok := f.blobs[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &repository.Image{Key: key, ContentType: f.types[key], Size: int64(len(b)), Body: io.NopCloser(bytes.NewReader(b))}, nil
}

type caller struct {
	userID    string
	role      models.Role
	sessionID string
}

func newRequest(method, target string, body any) *http.Request {
	var r io.Reader
	if s, ok := body.(string); ok {
		r = strings.NewReader(s)
	} else if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if r != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req
}

// call runs h with the caller's identity set the way the JWT middleware
// would, and decodes the JSON envelope.
func call(t *testing.T, h echo.HandlerFunc, req *http.Request, who *caller, params ...string) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		var names, values []string
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if who != nil {
		c.Set("user_id", who.userID)
		c.Set("user_role", who.role)
		c.Set("session_id", who.sessionID)
		c.Set("claims", &utils.JWTClaims{UserID: who.userID, Role: who.role})
	}
	require.NoError(t, h(c))

	var body map[string]any
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func sampleListing(id, owner, city string, price int64, typ models.PropertyType, beds int, age time.Duration) models.Property {
	return models.Property{
		ID:           id,
		OwnerID:      owner,
		Title:        "Listing " + id,
		Price:        price,
		Location:     models.Location{City: city},
		PropertyType: typ,
		Bedrooms:     beds,
		Available:    true,
		CreatedAt:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Add(-age),
	}
}
