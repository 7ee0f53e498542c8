package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"lendmarket/internal/item"
	"lendmarket/internal/pkg/storage"
)

type Service interface {
	// Upload attaches an image to an item. Only the item's owner may
	// upload; anyone else gets item.ErrNotItemOwner.
	Upload(ctx context.Context, header *multipart.FileHeader, itemID, actorID string) (*Photo, error)

	ListByItem(ctx context.Context, itemID string) ([]*Photo, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	Delete(ctx context.Context, id, actorID string) error
}

type service struct {
	repo        Repository
	itemService item.Service
	store       storage.Store
	thumbnailer *storage.Thumbnailer
}

func NewService(repo Repository, itemService item.Service, store storage.Store) Service {
	return &service{
		repo:        repo,
		itemService: itemService,
		store:       store,
		thumbnailer: storage.NewThumbnailer(),
	}
}

func (s *service) Upload(ctx context.Context, header *multipart.FileHeader, itemID, actorID string) (*Photo, error) {
	info, err := s.itemService.GetInfo(ctx, itemID, actorID)
	if err != nil {
		return nil, err
	}
	if info.OwnerID != actorID {
		return nil, item.ErrNotItemOwner
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	// Photos are small enough to buffer; the content is read twice,
	// once for the original and once for the thumbnail.
	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}

	photoID := uuid.New().String()
	shard := photoID[:2]
	ext := strings.ToLower(filepath.Ext(header.Filename))
	storagePath := fmt.Sprintf("photos/%s/%s%s", shard, photoID, ext)

	if err := s.store.Save(ctx, storagePath, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("save photo: %w", err)
	}

	// Thumbnail generation is best effort; a broken image still
	// uploads, it just has no thumbnail.
	var thumbnailPath *string
	if thumb, err := s.thumbnailer.Fit(bytes.NewReader(content), 200, 200); err == nil {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
		if err := s.store.Save(ctx, tPath, thumb); err == nil {
			thumbnailPath = &tPath
		}
	}

	p := &Photo{
		ID:            photoID,
		ItemID:        itemID,
		OwnerID:       actorID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		_ = s.store.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.store.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return p, nil
}

func (s *service) ListByItem(ctx context.Context, itemID string) ([]*Photo, error) {
	return s.repo.ListByItem(ctx, itemID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.store.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve photo content: %w", err)
	}
	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if p.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.store.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve thumbnail content: %w", err)
	}
	return stream, p, nil
}

func (s *service) Delete(ctx context.Context, id, actorID string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.OwnerID != actorID {
		return item.ErrNotItemOwner
	}

	_ = s.store.Delete(ctx, p.StoragePath)
	if p.ThumbnailPath != nil {
		_ = s.store.Delete(ctx, *p.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}
