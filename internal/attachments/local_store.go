package attachments

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/GoSim-25-26J-441/projects-catalog/internal/logging"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/metrics"
)

// LocalStore keeps images on the local filesystem and serves them through a
// static route. It needs no credentials.
type LocalStore struct {
	root     string
	baseURL  string
	pipeline Pipeline
}

func NewLocalStore(root, baseURL string, p Pipeline) *LocalStore {
	return &LocalStore{
		root:     filepath.Clean(root),
		baseURL:  strings.TrimRight(baseURL, "/"),
		pipeline: p,
	}
}

func (s *LocalStore) Name() string { return "local" }

// Root is the directory that should be served under the base URL path.
func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) Upload(ctx context.Context, u Upload) (obj *StoredObject, err error) {
	defer func() { observeUpload(s.Name(), err) }()

	p, err := s.pipeline.prepare(u)
	if err != nil {
		return nil, err
	}

	full := filepath.Join(s.root, filepath.FromSlash(p.key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create directory: %w", ErrBackend, err)
	}
	if err := os.WriteFile(full, p.body, 0o644); err != nil {
		return nil, fmt.Errorf("%w: write file: %w", ErrBackend, err)
	}

	logging.FromContext(ctx).Info().
		Str("backend", s.Name()).
		Str("key", p.key).
		Int("bytes", len(p.body)).
		Msg("image stored")

	return &StoredObject{Key: p.key, URL: s.baseURL + "/" + p.key}, nil
}

func (s *LocalStore) Delete(ctx context.Context, url string) (removed bool) {
	defer func() { metrics.RecordImageDelete(s.Name(), removed) }()

	key, ok := s.keyFromURL(url)
	if !ok {
		return false
	}

	full := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.Remove(full); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("local image delete failed")
		}
		return false
	}
	return true
}

func (s *LocalStore) keyFromURL(url string) (string, bool) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(url, prefix)
	if rel == "" || strings.Contains(rel, `\`) {
		return "", false
	}
	key := path.Clean(rel)
	if key == "." || key != rel || strings.HasPrefix(key, "../") || key == ".." || path.IsAbs(key) {
		return "", false
	}
	return key, true
}
