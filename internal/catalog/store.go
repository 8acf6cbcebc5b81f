// Package catalog merges the compiled-in project list with user uploads,
// overlays (edits to built-in projects) and tombstones (hidden built-in
// projects), all persisted in a kv.Store.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/17okk-xie/portfolio/internal/kv"
)

// Persisted collection keys.
const (
	KeyUploaded   = "uploadedProjects"
	KeyOverlays   = "modifiedStaticProjects"
	KeyTombstones = "deletedStaticProjects"
)

// MediaReleaser frees the stored media behind an uploaded item's reference
// once the item is deleted.
type MediaReleaser interface {
	Release(ctx context.Context, ref string) error
}

// Store applies catalog operations against the persisted collections.
type Store struct {
	kv       kv.Store
	builtins []CatalogItem
	byID     map[int64]int
	media    MediaReleaser
	logger   *slog.Logger
	now      func() time.Time

	// mu serialises read-modify-write cycles within the process.
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithBuiltins replaces the compiled-in project list.
func WithBuiltins(items []CatalogItem) Option {
	return func(s *Store) {
		s.builtins = make([]CatalogItem, len(items))
		for i, it := range items {
			it = it.clone()
			it.Kind = KindBuiltin
			s.builtins[i] = it
		}
	}
}

// WithMediaReleaser sets the releaser called when an uploaded item is deleted.
func WithMediaReleaser(m MediaReleaser) Option {
	return func(s *Store) { s.media = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock sets the time source used for ids and upload timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a Store over kvs.
func New(kvs kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:       kvs,
		builtins: Builtins(),
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.byID = make(map[int64]int, len(s.builtins))
	for i, b := range s.builtins {
		s.byID[b.ID] = i
	}
	return s
}

// state is one snapshot of the three persisted collections.
type state struct {
	uploaded   []UploadedItem
	overlays   map[int64]Patch
	tombstones []int64
}

func (st *state) hidden(id int64) bool {
	return slices.Contains(st.tombstones, id)
}

// load reads all three collections. Absent or malformed values decode as
// empty; only a failing backend is an error.
func (s *Store) load(ctx context.Context) (*state, error) {
	st := &state{overlays: make(map[int64]Patch)}

	uploaded, err := readCollection[[]UploadedItem](ctx, s, KeyUploaded)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]bool, len(uploaded))
	for _, u := range uploaded {
		if u.ID == 0 || seen[u.ID] {
			s.logger.Warn("dropping uploaded project with missing or duplicate id", "id", u.ID)
			continue
		}
		if _, ok := s.byID[u.ID]; ok {
			s.logger.Warn("dropping uploaded project that reuses a built-in id", "id", u.ID)
			continue
		}
		seen[u.ID] = true
		u.Kind = KindUploaded
		st.uploaded = append(st.uploaded, u)
	}

	overlays, err := readCollection[map[string]Patch](ctx, s, KeyOverlays)
	if err != nil {
		return nil, err
	}
	for key, p := range overlays {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		st.overlays[id] = p
	}

	tombstones, err := readCollection[[]int64](ctx, s, KeyTombstones)
	if err != nil {
		return nil, err
	}
	for _, id := range tombstones {
		if !slices.Contains(st.tombstones, id) {
			st.tombstones = append(st.tombstones, id)
		}
	}

	return st, nil
}

// readCollection decodes the value under key. A value that does not decode
// in full yields the zero T, never a partial one.
func readCollection[T any](ctx context.Context, s *Store, key string) (T, error) {
	var zero T
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return zero, &StorageError{Op: "reading " + key, Err: err}
	}
	if !ok || len(raw) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Warn("ignoring malformed collection", "key", key, "error", err)
		return zero, nil
	}
	return v, nil
}

func (s *Store) write(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return &StorageError{Op: "encoding " + key, Err: err}
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return &StorageError{Op: "writing " + key, Err: err}
	}
	return nil
}

func (s *Store) writeUploaded(ctx context.Context, items []UploadedItem) error {
	if items == nil {
		items = []UploadedItem{}
	}
	return s.write(ctx, KeyUploaded, items)
}

func (s *Store) writeOverlays(ctx context.Context, overlays map[int64]Patch) error {
	out := make(map[string]Patch, len(overlays))
	for id, p := range overlays {
		out[strconv.FormatInt(id, 10)] = p
	}
	return s.write(ctx, KeyOverlays, out)
}

func (s *Store) writeTombstones(ctx context.Context, ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}
	return s.write(ctx, KeyTombstones, ids)
}

// merge builds the display list: uploads first (most recent first), then the
// visible built-ins in declaration order with overlays applied. Overlays and
// tombstones for ids that are not built in are ignored.
func (s *Store) merge(st *state) []CatalogItem {
	out := make([]CatalogItem, 0, len(st.uploaded)+len(s.builtins))
	for _, u := range st.uploaded {
		out = append(out, u.CatalogItem.clone())
	}
	for _, b := range s.builtins {
		if st.hidden(b.ID) {
			continue
		}
		out = append(out, s.builtinView(st, b))
	}
	return out
}

func (s *Store) builtinView(st *state, b CatalogItem) CatalogItem {
	item := b.clone()
	if p, ok := st.overlays[b.ID]; ok {
		item = p.apply(item)
	}
	item.ID = b.ID
	item.Kind = KindBuiltin
	return item
}

// locate finds id in the merged view. For uploads it also returns the index
// into st.uploaded.
func (s *Store) locate(st *state, id int64) (Kind, int) {
	for i, u := range st.uploaded {
		if u.ID == id {
			return KindUploaded, i
		}
	}
	if _, ok := s.byID[id]; ok && !st.hidden(id) {
		return KindBuiltin, -1
	}
	return 0, -1
}

// LoadAll returns the merged, display-ordered project list.
func (s *Store) LoadAll(ctx context.Context) ([]CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.merge(st), nil
}

// Hidden returns the built-in items currently tombstoned, with their
// overlays applied, in declaration order.
func (s *Store) Hidden(ctx context.Context) ([]CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var out []CatalogItem
	for _, b := range s.builtins {
		if st.hidden(b.ID) {
			out = append(out, s.builtinView(st, b))
		}
	}
	return out, nil
}

// Get returns the merged-view entry for id.
func (s *Store) Get(ctx context.Context, id int64) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return Entry{}, err
	}
	switch kind, i := s.locate(st, id); kind {
	case KindUploaded:
		u := st.uploaded[i]
		u.CatalogItem = u.CatalogItem.clone()
		return Entry{Kind: KindUploaded, Item: u.CatalogItem, Upload: &u}, nil
	case KindBuiltin:
		return Entry{Kind: KindBuiltin, Item: s.builtinView(st, s.builtins[s.byID[id]])}, nil
	default:
		return Entry{}, &NotFoundError{ID: id}
	}
}

// CreateInput carries the upload form fields. Tech and Tags are
// comma-separated.
type CreateInput struct {
	Title       string
	Description string
	Tech        string
	Tags        string
	Status      string
	Category    string
	Links       Links
	MediaRef    string
	CoverRef    string
	FileName    string
	FileSize    int64
	MIMEType    string
}

// Create validates in, assigns a fresh id and prepends the new item to the
// uploaded collection. Size and type checks run on FileName, FileSize and
// MIMEType; callers storing an upload must set all three. A MediaRef given
// without them is trusted as-is.
func (s *Store) Create(ctx context.Context, in CreateInput) (*UploadedItem, error) {
	if strings.TrimSpace(in.MediaRef) == "" {
		return nil, &ValidationError{Field: "media", Message: "please select a video file"}
	}
	if in.FileName != "" || in.FileSize != 0 || in.MIMEType != "" {
		if err := ValidateMedia(in.FileName, in.FileSize, in.MIMEType); err != nil {
			return nil, err
		}
	}

	status := StatusOngoing
	if strings.TrimSpace(in.Status) != "" {
		var err error
		if status, err = ParseStatus(in.Status); err != nil {
			return nil, err
		}
	}
	category := CategoryMedia
	if strings.TrimSpace(in.Category) != "" {
		var err error
		if category, err = ParseCategory(in.Category); err != nil {
			return nil, err
		}
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(in.FileName), filepath.Ext(in.FileName))
	}
	if title == "" || title == "." {
		title = "Untitled"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	id := s.nextID(st, now)
	if kind, _ := s.locate(st, id); kind != 0 || s.isBuiltin(id) {
		// nextID only returns ids above every existing one.
		return nil, fmt.Errorf("catalog: id %d already in use", id)
	}

	item := UploadedItem{
		CatalogItem: CatalogItem{
			ID:          id,
			Kind:        KindUploaded,
			Title:       title,
			Description: strings.TrimSpace(in.Description),
			Tech:        ParseList(in.Tech, DefaultTech),
			Tags:        ParseList(in.Tags, DefaultTags),
			Status:      status,
			Category:    category,
			MediaRef:    in.MediaRef,
			CoverRef:    in.CoverRef,
			Links:       in.Links,
		},
		FileName:   in.FileName,
		FileSize:   in.FileSize,
		MIMEType:   in.MIMEType,
		UploadedAt: now,
	}

	uploaded := append([]UploadedItem{item}, st.uploaded...)
	if err := s.writeUploaded(ctx, uploaded); err != nil {
		return nil, err
	}

	s.logger.Info("project created", "id", id, "title", title, "file", in.FileName, "bytes", in.FileSize)
	return &item, nil
}

// nextID derives an id from the clock, bumped past every existing id.
func (s *Store) nextID(st *state, now time.Time) int64 {
	id := now.UnixMilli()
	for _, u := range st.uploaded {
		if u.ID >= id {
			id = u.ID + 1
		}
	}
	for _, b := range s.builtins {
		if b.ID >= id {
			id = b.ID + 1
		}
	}
	return id
}

func (s *Store) isBuiltin(id int64) bool {
	_, ok := s.byID[id]
	return ok
}

// Update applies p to the item with the given id. Uploaded items are edited
// in place; built-in items get p merged into their overlay.
func (s *Store) Update(ctx context.Context, id int64, p Patch) (*CatalogItem, error) {
	p, err := p.normalize()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	switch kind, i := s.locate(st, id); kind {
	case KindUploaded:
		uploaded := slices.Clone(st.uploaded)
		uploaded[i].CatalogItem = p.apply(uploaded[i].CatalogItem)
		if err := s.writeUploaded(ctx, uploaded); err != nil {
			return nil, err
		}
		s.logger.Info("uploaded project updated", "id", id)
		item := uploaded[i].CatalogItem
		return &item, nil

	case KindBuiltin:
		overlays := make(map[int64]Patch, len(st.overlays)+1)
		for k, v := range st.overlays {
			overlays[k] = v
		}
		overlays[id] = overlays[id].merge(p)
		if err := s.writeOverlays(ctx, overlays); err != nil {
			return nil, err
		}
		st.overlays = overlays
		s.logger.Info("built-in project overlay updated", "id", id)
		item := s.builtinView(st, s.builtins[s.byID[id]])
		return &item, nil

	default:
		return nil, &NotFoundError{ID: id}
	}
}

// Delete removes an uploaded item permanently and releases its media, or
// hides a built-in item by tombstoning it.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return err
	}

	switch kind, i := s.locate(st, id); kind {
	case KindUploaded:
		removed := st.uploaded[i]
		uploaded := slices.Delete(slices.Clone(st.uploaded), i, i+1)
		if err := s.writeUploaded(ctx, uploaded); err != nil {
			return err
		}
		s.release(ctx, id, removed.MediaRef)
		s.release(ctx, id, removed.CoverRef)
		s.logger.Info("uploaded project deleted", "id", id, "title", removed.Title)
		return nil

	case KindBuiltin:
		tombstones := append(slices.Clone(st.tombstones), id)
		if err := s.writeTombstones(ctx, tombstones); err != nil {
			return err
		}
		s.logger.Info("built-in project hidden", "id", id)
		return nil

	default:
		return &NotFoundError{ID: id}
	}
}

// release frees ref. The item is already gone, so failures are only logged.
func (s *Store) release(ctx context.Context, id int64, ref string) {
	if s.media == nil || ref == "" {
		return
	}
	if err := s.media.Release(ctx, ref); err != nil {
		s.logger.Error("failed to release media", "id", id, "ref", ref, "error", err)
	}
}

// Restore un-hides a built-in item. It does nothing if id is not tombstoned,
// including for ids of deleted uploads.
func (s *Store) Restore(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := slices.Index(st.tombstones, id)
	if i < 0 {
		return nil
	}
	tombstones := slices.Delete(slices.Clone(st.tombstones), i, i+1)
	if err := s.writeTombstones(ctx, tombstones); err != nil {
		return err
	}
	s.logger.Info("built-in project restored", "id", id)
	return nil
}

// BulkResult reports the outcome of BulkDelete per id.
type BulkResult struct {
	Deleted []int64
	Failed  map[int64]error
}

// BulkDelete deletes every id, continuing past failures. Ids are processed
// in ascending order.
func (s *Store) BulkDelete(ctx context.Context, ids []int64) *BulkResult {
	res := &BulkResult{Failed: make(map[int64]error)}
	ids = slices.Clone(ids)
	slices.Sort(ids)
	for _, id := range slices.Compact(ids) {
		if err := s.Delete(ctx, id); err != nil {
			res.Failed[id] = err
			continue
		}
		res.Deleted = append(res.Deleted, id)
	}
	if len(res.Failed) > 0 {
		s.logger.Warn("bulk delete finished with failures", "deleted", len(res.Deleted), "failed", len(res.Failed))
	}
	return res
}
