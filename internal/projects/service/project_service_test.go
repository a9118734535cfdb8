package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/projects-catalog/internal/attachments"
	authdomain "github.com/GoSim-25-26J-441/projects-catalog/internal/auth/domain"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/projects/domain"
)

// memRepo is an in-memory Repository.
type memRepo struct {
	mu        sync.Mutex
	rows      map[string]domain.Project
	order     []string
	setImgErr error
	updateErr error
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[string]domain.Project{}}
}

func (r *memRepo) Create(ctx context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.NewString()
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.rows[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memRepo) List(ctx context.Context, skip, limit int) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Project{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if p, ok := r.rows[r.order[i]]; ok {
			out = append(out, p)
		}
	}
	if skip >= len(out) {
		return []domain.Project{}, nil
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRepo) Update(ctx context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.rows[p.ID]; !ok {
		return domain.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.rows[p.ID] = *p
	return nil
}

func (r *memRepo) SetImage(ctx context.Context, id, key, url string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setImgErr != nil {
		return nil, r.setImgErr
	}
	p, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.SetImage(key, url)
	p.UpdatedAt = time.Now()
	r.rows[id] = p
	return &p, nil
}

func (r *memRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

// recordingStore remembers the URL of every successful upload.
type recordingStore struct {
	attachments.Store
	urls *[]string
}

func (s recordingStore) Upload(ctx context.Context, u attachments.Upload) (*attachments.StoredObject, error) {
	obj, err := s.Store.Upload(ctx, u)
	if err == nil {
		*s.urls = append(*s.urls, obj.URL)
	}
	return obj, err
}

// allowList authorizes active admins only.
type allowList map[string]bool

func (a allowList) Authorize(ctx context.Context, callerID string) error {
	if strings.TrimSpace(callerID) == "" {
		return authdomain.ErrUnauthenticated
	}
	if !a[callerID] {
		return authdomain.ErrForbidden
	}
	return nil
}

// memS3 is an in-memory attachments.ObjectAPI.
type memS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (m *memS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (m *memS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

const (
	admin     = "admin-1"
	baseURL   = "http://localhost:8080/uploads"
	s3BaseURL = "https://catalog.s3.us-east-1.amazonaws.com"
	maxBytes  = 256 * 1024
	maxSide   = 32
)

func testPipeline() attachments.Pipeline {
	return attachments.NewPipeline(attachments.NewValidator(maxBytes, nil), attachments.NewCodec(85), maxSide, maxSide)
}

// backend wraps a Store with a probe telling whether a URL is still stored.
type backend struct {
	name   string
	store  attachments.Store
	exists func(url string) bool
}

func localBackend(t *testing.T) backend {
	root := t.TempDir()
	return backend{
		name:  "local",
		store: attachments.NewLocalStore(root, baseURL, testPipeline()),
		exists: func(url string) bool {
			rel := strings.TrimPrefix(url, baseURL+"/")
			_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
			return err == nil
		},
	}
}

func s3Backend(t *testing.T) backend {
	api := &memS3{objects: map[string][]byte{}}
	store := attachments.NewS3StoreWithClient(api, attachments.S3Config{
		AccessKeyID:     "id",
		SecretAccessKey: "secret",
		Region:          "us-east-1",
		Bucket:          "catalog",
	}, testPipeline())
	return backend{
		name:  "s3",
		store: store,
		exists: func(url string) bool {
			api.mu.Lock()
			defer api.mu.Unlock()
			_, ok := api.objects[strings.TrimPrefix(url, s3BaseURL+"/")]
			return ok
		},
	}
}

func backends(t *testing.T) []backend {
	return []backend{localBackend(t), s3Backend(t)}
}

func newTestService(b backend) (*ProjectService, *memRepo) {
	repo := newMemRepo()
	return NewProjectService(repo, b.store, allowList{admin: true, "retired": false}), repo
}

func pngUpload(t *testing.T, w, h int) *attachments.Upload {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &attachments.Upload{Data: buf.Bytes(), ContentType: "image/png", Size: int64(buf.Len()), Filename: "cover.png"}
}

func TestProjectService_CreateThenGet(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			svc, _ := newTestService(b)
			ctx := context.Background()

			created, err := svc.Create(ctx, admin, []byte(`{
				"title": "Catalog",
				"description": "A catalog",
				"category": "tools",
				"status": "Active",
				"tags": ["go", "api"],
				"tech_stack": ["gin"],
				"metrics": {"users": 10}
			}`), nil)
			require.NoError(t, err)

			got, err := svc.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, "Catalog", got.Title)
			assert.Equal(t, "A catalog", *got.Description)
			assert.Equal(t, "tools", *got.Category)
			assert.Equal(t, domain.StatusActive, got.Status)
			assert.Equal(t, []string{"go", "api"}, got.Tags)
			assert.Equal(t, []string{"gin"}, got.TechStack)
			assert.Equal(t, json.Number("10"), got.Metrics["users"])
			assert.Equal(t, admin, *got.CreatedBy)
			assert.False(t, got.CreatedAt.IsZero())
			assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
			assert.False(t, got.HasImage())
		})
	}
}

func TestProjectService_CreateWithImage(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			svc, _ := newTestService(b)

			p, err := svc.Create(context.Background(), admin, []byte(`{"title":"With image"}`), pngUpload(t, 100, 50))
			require.NoError(t, err)
			require.True(t, p.HasImage())
			assert.True(t, b.exists(*p.ImageURL))
			assert.Contains(t, *p.ImagePath, "projects/"+p.ID+"/")
			assert.True(t, strings.HasSuffix(*p.ImageURL, ".jpg"))
			assert.False(t, p.UpdatedAt.Before(p.CreatedAt))
		})
	}
}

func TestProjectService_CreateImageRoundTripWithinBounds(t *testing.T) {
	b := localBackend(t)
	svc, _ := newTestService(b)

	p, err := svc.Create(context.Background(), admin, []byte(`{"title":"Bounds"}`), pngUpload(t, 120, 40))
	require.NoError(t, err)
	require.True(t, p.HasImage())

	root := b.store.(*attachments.LocalStore).Root()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(*p.ImagePath)))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", http.DetectContentType(data))

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.LessOrEqual(t, cfg.Width, maxSide)
	assert.LessOrEqual(t, cfg.Height, maxSide)
}

func TestProjectService_CreateRejectedUploadStillCreates(t *testing.T) {
	tests := []struct {
		name   string
		upload func(t *testing.T) *attachments.Upload
	}{
		{"oversized", func(t *testing.T) *attachments.Upload {
			u := pngUpload(t, 8, 8)
			u.Size = maxBytes + 1
			return u
		}},
		{"text/plain", func(t *testing.T) *attachments.Upload {
			return &attachments.Upload{Data: []byte("hello"), ContentType: "text/plain", Size: 5}
		}},
		{"not an image", func(t *testing.T) *attachments.Upload {
			return &attachments.Upload{Data: []byte("garbage"), ContentType: "image/png", Size: 7}
		}},
	}

	for _, b := range backends(t) {
		for _, tt := range tests {
			t.Run(b.name+"/"+tt.name, func(t *testing.T) {
				svc, repo := newTestService(b)

				p, err := svc.Create(context.Background(), admin, []byte(`{"title":"Still here"}`), tt.upload(t))
				require.NoError(t, err)
				assert.False(t, p.HasImage())

				stored, err := repo.GetByID(context.Background(), p.ID)
				require.NoError(t, err)
				assert.False(t, stored.HasImage())
			})
		}
	}
}

func TestProjectService_CreateWithDisabledS3(t *testing.T) {
	store := attachments.NewS3StoreWithClient(nil, attachments.S3Config{Bucket: "catalog", Region: "us-east-1"}, testPipeline())
	repo := newMemRepo()
	svc := NewProjectService(repo, store, allowList{admin: true})

	p, err := svc.Create(context.Background(), admin, []byte(`{"title":"No creds"}`), pngUpload(t, 8, 8))
	require.NoError(t, err)
	assert.False(t, p.HasImage())
}

func TestProjectService_CreateMalformedPersistsNothing(t *testing.T) {
	svc, repo := newTestService(localBackend(t))

	for _, payload := range []string{``, `not json`, `{}`, `{"title":""}`, `{"title":"x","status":"Gone"}`} {
		_, err := svc.Create(context.Background(), admin, []byte(payload), nil)
		assert.ErrorIs(t, err, domain.ErrMalformedInput, payload)
	}
	assert.Empty(t, repo.rows)
}

func TestProjectService_CreateDiscardsUploadWhenRecordFails(t *testing.T) {
	b := localBackend(t)
	svc, repo := newTestService(b)
	repo.setImgErr = errors.New("db down")

	p, err := svc.Create(context.Background(), admin, []byte(`{"title":"Half"}`), pngUpload(t, 8, 8))
	require.NoError(t, err)
	assert.False(t, p.HasImage())

	root := b.store.(*attachments.LocalStore).Root()
	entries, err := os.ReadDir(filepath.Join(root, "projects", p.ID))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProjectService_Authorization(t *testing.T) {
	svc, repo := newTestService(localBackend(t))
	ctx := context.Background()

	existing, err := svc.Create(ctx, admin, []byte(`{"title":"Guarded"}`), nil)
	require.NoError(t, err)

	callers := []struct {
		id   string
		want error
	}{
		{"", authdomain.ErrUnauthenticated},
		{"   ", authdomain.ErrUnauthenticated},
		{"stranger", authdomain.ErrForbidden},
		{"retired", authdomain.ErrForbidden},
	}

	for _, c := range callers {
		_, err := svc.Create(ctx, c.id, []byte(`{"title":"x"}`), nil)
		assert.ErrorIs(t, err, c.want)

		_, err = svc.Update(ctx, c.id, existing.ID, []byte(`{"title":"x"}`), nil)
		assert.ErrorIs(t, err, c.want)

		_, err = svc.ReplaceImage(ctx, c.id, existing.ID, pngUpload(t, 4, 4))
		assert.ErrorIs(t, err, c.want)

		_, err = svc.RemoveImage(ctx, c.id, existing.ID)
		assert.ErrorIs(t, err, c.want)

		assert.ErrorIs(t, svc.Delete(ctx, c.id, existing.ID), c.want)
	}

	assert.Len(t, repo.rows, 1)
	got, err := svc.Get(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Guarded", got.Title)
}

func TestProjectService_PartialUpdate(t *testing.T) {
	svc, _ := newTestService(localBackend(t))
	ctx := context.Background()

	p, err := svc.Create(ctx, admin, []byte(`{
		"title": "Before",
		"description": "kept",
		"detailed_description": "long form",
		"category": "web",
		"status": "Active",
		"tags": ["a", "b"],
		"tech_stack": ["go"],
		"metrics": {"k": "v"}
	}`), nil)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, admin, p.ID, []byte(`{"title":"After"}`), nil)
	require.NoError(t, err)

	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, *p.Description, *updated.Description)
	assert.Equal(t, *p.DetailedDescription, *updated.DetailedDescription)
	assert.Equal(t, *p.Category, *updated.Category)
	assert.Equal(t, p.Status, updated.Status)
	assert.Equal(t, p.Tags, updated.Tags)
	assert.Equal(t, p.TechStack, updated.TechStack)
	assert.Equal(t, p.Metrics, updated.Metrics)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))
}

func TestProjectService_UpdateNotFound(t *testing.T) {
	svc, _ := newTestService(localBackend(t))

	_, err := svc.Update(context.Background(), admin, uuid.NewString(), []byte(`{"title":"x"}`), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_UpdateReplacesImage(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			svc, _ := newTestService(b)
			ctx := context.Background()

			p, err := svc.Create(ctx, admin, []byte(`{"title":"Img"}`), pngUpload(t, 8, 8))
			require.NoError(t, err)
			require.True(t, p.HasImage())
			oldURL := *p.ImageURL

			updated, err := svc.Update(ctx, admin, p.ID, []byte(`{"status":"Archived"}`), pngUpload(t, 16, 16))
			require.NoError(t, err)
			require.True(t, updated.HasImage())
			assert.NotEqual(t, oldURL, *updated.ImageURL)
			assert.False(t, b.exists(oldURL))
			assert.True(t, b.exists(*updated.ImageURL))
			assert.Equal(t, domain.StatusArchived, updated.Status)
		})
	}
}

func TestProjectService_UpdateImageOnly(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			svc, _ := newTestService(b)
			ctx := context.Background()

			p, err := svc.Create(ctx, admin, []byte(`{"title":"Keep","tags":["x"]}`), nil)
			require.NoError(t, err)

			for _, payload := range [][]byte{nil, []byte("  ")} {
				updated, err := svc.Update(ctx, admin, p.ID, payload, pngUpload(t, 8, 8))
				require.NoError(t, err)
				assert.Equal(t, "Keep", updated.Title)
				assert.Equal(t, []string{"x"}, updated.Tags)
				require.True(t, updated.HasImage())
				assert.True(t, b.exists(*updated.ImageURL))
			}
		})
	}
}

func TestProjectService_UpdateDiscardsUploadWhenRecordFails(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			svc, repo := newTestService(b)
			ctx := context.Background()

			p, err := svc.Create(ctx, admin, []byte(`{"title":"Img"}`), nil)
			require.NoError(t, err)

			var stored []string
			svc.store = recordingStore{Store: b.store, urls: &stored}
			repo.updateErr = errors.New("connection reset")

			_, err = svc.Update(ctx, admin, p.ID, []byte(`{"title":"Renamed"}`), pngUpload(t, 8, 8))
			assert.ErrorContains(t, err, "connection reset")
			require.Len(t, stored, 1)
			assert.False(t, b.exists(stored[0]))
		})
	}
}

func TestProjectService_CreateKeepsLargeIntegerMetrics(t *testing.T) {
	svc, _ := newTestService(localBackend(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, []byte(`{"title":"Big","metrics":{"big":9007199254740993}}`), nil)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, json.Number("9007199254740993"), got.Metrics["big"])
}

func TestProjectService_UpdateFailedUploadClearsImage(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			svc, repo := newTestService(b)
			ctx := context.Background()

			p, err := svc.Create(ctx, admin, []byte(`{"title":"Img"}`), pngUpload(t, 8, 8))
			require.NoError(t, err)
			oldURL := *p.ImageURL

			bad := &attachments.Upload{Data: []byte("nope"), ContentType: "text/plain", Size: 4}
			updated, err := svc.Update(ctx, admin, p.ID, []byte(`{"title":"Renamed"}`), bad)
			require.NoError(t, err)
			assert.Equal(t, "Renamed", updated.Title)
			assert.False(t, updated.HasImage())
			assert.False(t, b.exists(oldURL))

			stored, err := repo.GetByID(ctx, p.ID)
			require.NoError(t, err)
			assert.False(t, stored.HasImage())
		})
	}
}

func TestProjectService_ReplaceImage(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			svc, _ := newTestService(b)
			ctx := context.Background()

			p, err := svc.Create(ctx, admin, []byte(`{"title":"Direct"}`), pngUpload(t, 8, 8))
			require.NoError(t, err)
			oldURL := *p.ImageURL

			_, err = svc.ReplaceImage(ctx, admin, p.ID, &attachments.Upload{Data: []byte("x"), ContentType: "text/plain", Size: 1})
			assert.ErrorIs(t, err, attachments.ErrUnsupportedType)
			assert.True(t, b.exists(oldURL), "failed replacement keeps the previous image")

			_, err = svc.ReplaceImage(ctx, admin, p.ID, &attachments.Upload{Data: []byte("garbage"), ContentType: "image/png", Size: 7})
			assert.ErrorIs(t, err, attachments.ErrDecode)

			_, err = svc.ReplaceImage(ctx, admin, p.ID, nil)
			assert.ErrorIs(t, err, domain.ErrMalformedInput)

			updated, err := svc.ReplaceImage(ctx, admin, p.ID, pngUpload(t, 10, 10))
			require.NoError(t, err)
			assert.NotEqual(t, oldURL, *updated.ImageURL)
			assert.False(t, b.exists(oldURL))
			assert.True(t, b.exists(*updated.ImageURL))

			_, err = svc.ReplaceImage(ctx, admin, uuid.NewString(), pngUpload(t, 4, 4))
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestProjectService_ReplaceImageDisabledS3(t *testing.T) {
	store := attachments.NewS3StoreWithClient(nil, attachments.S3Config{Bucket: "catalog"}, testPipeline())
	svc := NewProjectService(newMemRepo(), store, allowList{admin: true})

	p, err := svc.Create(context.Background(), admin, []byte(`{"title":"x"}`), nil)
	require.NoError(t, err)

	_, err = svc.ReplaceImage(context.Background(), admin, p.ID, pngUpload(t, 4, 4))
	assert.ErrorIs(t, err, attachments.ErrNotConfigured)
	assert.ErrorIs(t, err, attachments.ErrBackend)
}

func TestProjectService_RemoveImage(t *testing.T) {
	b := localBackend(t)
	svc, _ := newTestService(b)
	ctx := context.Background()

	p, err := svc.Create(ctx, admin, []byte(`{"title":"Img"}`), pngUpload(t, 8, 8))
	require.NoError(t, err)
	url := *p.ImageURL

	updated, err := svc.RemoveImage(ctx, admin, p.ID)
	require.NoError(t, err)
	assert.False(t, updated.HasImage())
	assert.False(t, b.exists(url))

	again, err := svc.RemoveImage(ctx, admin, p.ID)
	require.NoError(t, err)
	assert.False(t, again.HasImage())
}

func TestProjectService_DeleteRemovesRecordAndImage(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			svc, _ := newTestService(b)
			ctx := context.Background()

			p, err := svc.Create(ctx, admin, []byte(`{"title":"Doomed"}`), pngUpload(t, 8, 8))
			require.NoError(t, err)
			url := *p.ImageURL
			require.True(t, b.exists(url))

			require.NoError(t, svc.Delete(ctx, admin, p.ID))
			assert.False(t, b.exists(url))

			_, err = svc.Get(ctx, p.ID)
			assert.ErrorIs(t, err, domain.ErrNotFound)

			assert.ErrorIs(t, svc.Delete(ctx, admin, p.ID), domain.ErrNotFound)
		})
	}
}

func TestProjectService_DeleteProceedsWhenImageAlreadyGone(t *testing.T) {
	b := localBackend(t)
	svc, _ := newTestService(b)
	ctx := context.Background()

	p, err := svc.Create(ctx, admin, []byte(`{"title":"Gone"}`), pngUpload(t, 8, 8))
	require.NoError(t, err)
	require.True(t, b.store.Delete(ctx, *p.ImageURL))

	require.NoError(t, svc.Delete(ctx, admin, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_ListPagination(t *testing.T) {
	svc, _ := newTestService(localBackend(t))
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.Create(ctx, admin, []byte(`{"title":"`+title+`"}`), nil)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "three", all[0].Title)

	page, err := svc.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "two", page[0].Title)

	neg, err := svc.List(ctx, -5, 5000)
	require.NoError(t, err)
	assert.Len(t, neg, 3)
}

type recordingRepo struct {
	*memRepo
	skip, limit int
}

func (r *recordingRepo) List(ctx context.Context, skip, limit int) ([]domain.Project, error) {
	r.skip, r.limit = skip, limit
	return r.memRepo.List(ctx, skip, limit)
}

func TestProjectService_ListClamps(t *testing.T) {
	repo := &recordingRepo{memRepo: newMemRepo()}
	svc := NewProjectService(repo, localBackend(t).store, allowList{})

	tests := []struct {
		skip, limit         int
		wantSkip, wantLimit int
	}{
		{0, 0, 0, DefaultListLimit},
		{-1, -1, 0, DefaultListLimit},
		{10, 50, 10, 50},
		{0, 5000, 0, MaxListLimit},
	}
	for _, tt := range tests {
		_, err := svc.List(context.Background(), tt.skip, tt.limit)
		require.NoError(t, err)
		assert.Equal(t, tt.wantSkip, repo.skip)
		assert.Equal(t, tt.wantLimit, repo.limit)
	}
}
