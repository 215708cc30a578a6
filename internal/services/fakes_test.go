package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	profilerepo "github.com/yungbote/profile-backend/internal/data/repos/profile"
	"github.com/yungbote/profile-backend/internal/data/repos/testutil"
	types "github.com/yungbote/profile-backend/internal/domain/profile"
	"github.com/yungbote/profile-backend/internal/pkg/dbctx"
)

// memRepo is an in-memory ProfileRepo. Transaction restores the previous
// rows when fn fails.
type memRepo struct {
	mu      sync.Mutex
	rows    map[string]types.Record
	findErr error
	saves   int
	creates int
}

var _ profilerepo.ProfileRepo = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{rows: map[string]types.Record{}}
}

func (r *memRepo) put(username, data string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[username] = types.Record{ID: uuid.New(), Username: username, Data: data}
}

func (r *memRepo) data(username string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[username]
	return rec.Data, ok
}

func (r *memRepo) Find(_ dbctx.Context, username string) (*types.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	rec, ok := r.rows[username]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *memRepo) FindOrCreate(_ dbctx.Context, username, data string) (*types.Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.rows[username]; ok {
		return &rec, false, nil
	}
	rec := types.Record{ID: uuid.New(), Username: username, Data: data}
	r.rows[username] = rec
	r.creates++
	return &rec, true, nil
}

func (r *memRepo) Save(_ dbctx.Context, rec *types.Record, _ ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[rec.Username] = *rec
	r.saves++
	return nil
}

func (r *memRepo) Transaction(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	snapshot := make(map[string]types.Record, len(r.rows))
	for k, v := range r.rows {
		snapshot[k] = v
	}
	r.mu.Unlock()
	if err := fn(dbctx.Context{Ctx: ctx}); err != nil {
		r.mu.Lock()
		r.rows = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

type fakeEnrichment struct {
	mu            sync.Mutex
	hydrateCalls  int
	generateCalls int
	hydrateFn     func(json.RawMessage) (json.RawMessage, error)
	generateFn    func(string) (json.RawMessage, bool, error)
	// generateCtx takes precedence over generateFn when set.
	generateCtx func(context.Context, string) (json.RawMessage, bool, error)
}

func (f *fakeEnrichment) Hydrate(_ context.Context, doc json.RawMessage) (json.RawMessage, error) {
	f.mu.Lock()
	f.hydrateCalls++
	f.mu.Unlock()
	if f.hydrateFn == nil {
		return nil, errors.New("hydrate not expected")
	}
	return f.hydrateFn(doc)
}

func (f *fakeEnrichment) Generate(ctx context.Context, username string) (json.RawMessage, bool, error) {
	f.mu.Lock()
	f.generateCalls++
	f.mu.Unlock()
	if f.generateCtx != nil {
		return f.generateCtx(ctx, username)
	}
	if f.generateFn == nil {
		return nil, false, errors.New("generate not expected")
	}
	return f.generateFn(username)
}

func (f *fakeEnrichment) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hydrateCalls, f.generateCalls
}

type memCache struct {
	mu   sync.Mutex
	docs map[string]json.RawMessage
	err  error
}

func newMemCache() *memCache { return &memCache{docs: map[string]json.RawMessage{}} }

func (c *memCache) Get(_ context.Context, username string) (json.RawMessage, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	doc, ok := c.docs[username]
	return doc, ok, nil
}

func (c *memCache) Set(_ context.Context, username string, doc json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.docs[username] = doc
	return nil
}

func (c *memCache) Close() error { return nil }

type fakeBlobs struct {
	mu    sync.Mutex
	puts  map[string][]byte
	types map[string]string
	err   error
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{puts: map[string][]byte{}, types: map[string]string{}}
}

func (b *fakeBlobs) PutPublic(_ context.Context, key string, body []byte, contentType string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.puts[key] = body
	b.types[key] = contentType
	return nil
}

func (b *fakeBlobs) PublicURL(key string) string {
	return "https://img.example.com/" + key
}

func (b *fakeBlobs) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.puts)
}

func jsonEqual(t *testing.T, a, b []byte) bool {
	t.Helper()
	var x, y any
	if err := json.Unmarshal(a, &x); err != nil {
		t.Fatalf("unmarshal %s: %v", a, err)
	}
	if err := json.Unmarshal(b, &y); err != nil {
		t.Fatalf("unmarshal %s: %v", b, err)
	}
	xa, _ := json.Marshal(x)
	ya, _ := json.Marshal(y)
	return string(xa) == string(ya)
}

var testLog = testutil.Logger
