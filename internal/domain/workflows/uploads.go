package workflows

import (
	"context"
	"fmt"
	"path/filepath"

	"mypetlife-backend/internal/domain/staging"
)

// uploadBatch sube cada archivo bajo <petID>/<unix-ms>-<i><ext> y devuelve
// las URLs públicas en el mismo orden que los archivos de entrada. Una sola
// subida fallida aborta el resto.
func (s *Service) uploadBatch(ctx context.Context, petID string, files []staging.File) ([]string, error) {
	stamp := s.now().UnixMilli()

	urls := make([]string, 0, len(files))
	for i, f := range files {
		key := fmt.Sprintf("%s/%d-%d%s", petID, stamp, i, filepath.Ext(f.Filename()))

		r, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Filename(), err)
		}
		err = s.store.Upload(ctx, key, r, f.Size(), f.ContentType())
		_ = r.Close()
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", key, err)
		}

		urls = append(urls, s.store.PublicURL(key))
	}
	return urls, nil
}
