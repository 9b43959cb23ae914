package staging

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// multipartFile adapta *multipart.FileHeader al File del staging.
type multipartFile struct {
	fh *multipart.FileHeader
}

func (f multipartFile) Filename() string { return filepath.Base(f.fh.Filename) }
func (f multipartFile) Size() int64      { return f.fh.Size }

func (f multipartFile) ContentType() string {
	ct := strings.TrimSpace(f.fh.Header.Get("Content-Type"))
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

func (f multipartFile) Open() (io.ReadCloser, error) { return f.fh.Open() }

// FromMultipart envuelve los file headers del form en el orden recibido.
func FromMultipart(fhs []*multipart.FileHeader) []File {
	out := make([]File, 0, len(fhs))
	for _, fh := range fhs {
		out = append(out, multipartFile{fh: fh})
	}
	return out
}
