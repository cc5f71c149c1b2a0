package services

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dimal11/comments-api/pkg/comments_api/helpers/images"
	problem "github.com/dimal11/comments-api/pkg/comments_api/helpers/problem"
	"github.com/dimal11/comments-api/pkg/comments_api/helpers/sniff"
	"github.com/dimal11/comments-api/pkg/comments_api/helpers/storage"
	"github.com/dimal11/comments-api/pkg/comments_api/models"
	"github.com/dimal11/comments-api/pkg/comments_api/repositories"
	"github.com/dimal11/comments-api/pkg/comments_api/serializers"
	"github.com/teris-io/shortid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const acceptedShapesMsg = "Only images (JPG, PNG, GIF) or a plain-text file up to 100 KiB are accepted"

// AttachmentService runs the ingestion pipeline: sniff, normalize, persist.
// normalize is a seam for tests; production wiring always uses
// images.Normalize.
type AttachmentService struct {
	repo      repositories.CommentRepository
	files     *storage.FileStore
	normalize func(data []byte, format string) (*images.Normalized, error)
}

func NewAttachmentService(repo repositories.CommentRepository, files *storage.FileStore) *AttachmentService {
	return &AttachmentService{repo: repo, files: files, normalize: images.Normalize}
}

// Ingest classifies the upload and persists exactly one disposition: a
// normalized image, a plain-text file, or nothing at all. Bytes hit disk
// before the row is written; the file is removed again if the insert fails.
func (s *AttachmentService) Ingest(ctx context.Context, commentID string, r io.ReadSeeker, filename string) (*models.AttachmentResponse, error) {
	comment, err := s.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, problem.NewInternalServerError(err.Error())
	}
	if comment == nil {
		return nil, problem.NewNotFound(commentID, "Comment not found")
	}

	res, err := sniff.Classify(r, filename)
	if err != nil {
		return nil, problem.NewInternalServerError(err.Error())
	}

	att := &models.Attachment{
		Id:        shortid.MustGenerate(),
		CommentID: commentID,
	}

	var data []byte
	switch res.Kind {
	case sniff.Image:
		original, err := io.ReadAll(r)
		if err != nil {
			return nil, problem.NewInternalServerError(err.Error())
		}
		norm, err := s.normalize(original, res.Format)
		if errors.Is(err, images.ErrUnsupportedFormat) {
			return nil, problem.NewBadRequest("file", acceptedShapesMsg,
				problem.InvalidParam{Name: "file", Reason: acceptedShapesMsg})
		}
		if err != nil {
			// Unexpected decoder failure after a successful sniff: keep the
			// upload as an opaque binary instead of failing the request.
			log.Printf("[WARN] normalize %q failed, storing as binary: %v", filename, err)
			att.FileName = filepath.Base(filename)
			att.ContentType = models.ContentTypeOctetStream
			att.Size = int64(len(original))
			data = original
			break
		}
		att.FileName = replaceExt(filepath.Base(filename), norm.Ext)
		att.ContentType = norm.ContentType
		att.Size = norm.Size
		att.Width = &norm.Width
		att.Height = &norm.Height
		att.IsImage = true
		data = norm.Data

	case sniff.Text:
		data, err = io.ReadAll(r)
		if err != nil {
			return nil, problem.NewInternalServerError(err.Error())
		}
		att.FileName = filepath.Base(filename)
		att.ContentType = models.ContentTypeText
		att.Size = res.Size

	default:
		return nil, problem.NewBadRequest("file", acceptedShapesMsg,
			problem.InvalidParam{Name: "file", Reason: acceptedShapesMsg})
	}

	rel, err := s.files.Save(filepath.Ext(att.FileName), data)
	if err != nil {
		return nil, problem.NewInternalServerError(err.Error())
	}
	att.FilePath = rel

	if err := s.repo.SaveAttachment(ctx, att); err != nil {
		_ = s.files.Remove(rel)
		return nil, problem.NewInternalServerError(err.Error())
	}

	resp := serializers.SerializeAttachment(att, s.files)
	return &resp, nil
}

func replaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

// SweepOrphans removes stored files no attachment row references, left over
// from ingests that failed between the disk write and the insert. Files
// younger than minAge are skipped so in-flight uploads survive.
func (s *AttachmentService) SweepOrphans(ctx context.Context, minAge time.Duration) (int, error) {
	paths, err := s.repo.AttachmentPaths(ctx)
	if err != nil {
		return 0, err
	}
	known := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		known[s.files.Abs(p)] = struct{}{}
	}

	var orphans []string
	cutoff := time.Now().Add(-minAge)
	err = filepath.WalkDir(s.files.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if _, ok := known[path]; ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			orphans = append(orphans, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	sem := semaphore.NewWeighted(4)
	g, ctx := errgroup.WithContext(ctx)
	for _, path := range orphans {
		path := path
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)
			if err := os.Remove(path); err != nil {
				// One stuck file should not abort the sweep.
				log.Printf("[WARN] sweep: remove %s: %v", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(orphans), nil
}
