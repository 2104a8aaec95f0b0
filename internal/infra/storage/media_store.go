// Package storage persists uploaded and derived media files. Writes go
// through the portable blob API with a filesystem bucket per directory, while
// the directories stay real paths so the HTTP layer can serve them statically
// and ffmpeg can read them directly.
package storage

import (
	"context"
	"io"
	"path/filepath"

	"riptide/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
)

// MediaStore exposes the three media areas: raw uploads, annotated detection
// results, and video thumbnails.
type MediaStore struct {
	public    *bucket
	detection *bucket
	thumbnail *bucket
}

type bucket struct {
	dir string
	b   *blob.Bucket
}

// Params holds dependencies for MediaStore, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
}

// NewMediaStore opens a filesystem bucket per configured media directory,
// creating the directories when absent.
func NewMediaStore(params Params) (*MediaStore, error) {
	store, err := OpenMediaStore(params.Config.Media)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}

// OpenMediaStore opens the three media areas from their configured
// directories.
func OpenMediaStore(cfg config.MediaConfig) (*MediaStore, error) {
	public, err := openBucket(cfg.PublicDir)
	if err != nil {
		return nil, err
	}

	detection, err := openBucket(cfg.DetectionDir)
	if err != nil {
		return nil, err
	}

	thumbnail, err := openBucket(cfg.ThumbnailDir)
	if err != nil {
		return nil, err
	}

	return &MediaStore{
		public:    public,
		detection: detection,
		thumbnail: thumbnail,
	}, nil
}

func openBucket(dir string) (*bucket, error) {
	// The dirs are mounted as public static routes, so no .attrs sidecar
	// files may appear next to the blobs.
	b, err := fileblob.OpenBucket(dir, &fileblob.Options{
		CreateDir: true,
		Metadata:  fileblob.MetadataDontWrite,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open media bucket %s", dir)
	}

	return &bucket{dir: dir, b: b}, nil
}

// SaveUpload streams an uploaded file into the public area and returns its
// filesystem path.
func (s *MediaStore) SaveUpload(ctx context.Context, name string, r io.Reader) (string, error) {
	return s.public.save(ctx, name, r)
}

// SaveDetection writes an annotated detection result and returns its
// filesystem path.
func (s *MediaStore) SaveDetection(ctx context.Context, name string, r io.Reader) (string, error) {
	return s.detection.save(ctx, name, r)
}

// SaveThumbnail writes an extracted video thumbnail and returns its
// filesystem path.
func (s *MediaStore) SaveThumbnail(ctx context.Context, name string, r io.Reader) (string, error) {
	return s.thumbnail.save(ctx, name, r)
}

// OpenUpload opens a previously stored upload for reading.
func (s *MediaStore) OpenUpload(ctx context.Context, name string) (io.ReadCloser, error) {
	rd, err := s.public.b.NewReader(ctx, name, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open upload %s", name)
	}

	return rd, nil
}

// UploadExists reports whether a named upload is present.
func (s *MediaStore) UploadExists(ctx context.Context, name string) (bool, error) {
	ok, err := s.public.b.Exists(ctx, name)
	if err != nil {
		return false, errors.Wrapf(err, "stat upload %s", name)
	}

	return ok, nil
}

// PublicDir is the directory backing raw uploads.
func (s *MediaStore) PublicDir() string { return s.public.dir }

// DetectionDir is the directory backing annotated results.
func (s *MediaStore) DetectionDir() string { return s.detection.dir }

// ThumbnailDir is the directory backing video thumbnails.
func (s *MediaStore) ThumbnailDir() string { return s.thumbnail.dir }

// UploadPath returns the filesystem path of a named upload without checking
// existence.
func (s *MediaStore) UploadPath(name string) string {
	return filepath.Join(s.public.dir, name)
}

// ThumbnailPath returns the filesystem path a named thumbnail would occupy.
func (s *MediaStore) ThumbnailPath(name string) string {
	return filepath.Join(s.thumbnail.dir, name)
}

// Close releases all bucket handles.
func (s *MediaStore) Close() error {
	var firstErr error
	for _, bk := range []*bucket{s.public, s.detection, s.thumbnail} {
		if err := bk.b.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return errors.WithStack(firstErr)
}

func (bk *bucket) save(ctx context.Context, name string, r io.Reader) (string, error) {
	w, err := bk.b.NewWriter(ctx, name, nil)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", name)
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()

		return "", errors.Wrapf(err, "write %s", name)
	}

	if err := w.Close(); err != nil {
		return "", errors.Wrapf(err, "flush %s", name)
	}

	return filepath.Join(bk.dir, name), nil
}
