package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"artshare/internal/apperr"
)

// MaxImageBytes caps a single upload at 10 MiB.
const MaxImageBytes = 10 << 20

// BasePath is where the router serves stored files from.
const BasePath = "/uploads"

// Local stores uploaded images on disk under one directory and hands back
// references of the form /uploads/<generated-name>.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Local{dir: dir}, nil
}

func (s *Local) Dir() string { return s.dir }

// Save validates and persists one uploaded file. The content type is sniffed
// from the bytes, not taken from the part header. Either the reference is
// returned or nothing is kept on disk.
func (s *Local) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxImageBytes {
		return "", apperr.BadRequest("image exceeds the 10 MiB limit")
	}
	src, err := fh.Open()
	if err != nil {
		return "", apperr.Internal("store upload failed", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", apperr.Internal("store upload failed", err)
	}
	if ct := http.DetectContentType(head[:n]); !strings.HasPrefix(ct, "image/") {
		return "", apperr.BadRequest("only image uploads are accepted")
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", apperr.Internal("store upload failed", err)
	}
	if _, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head[:n]), src)); err != nil {
		dst.Close()
		os.Remove(path)
		return "", apperr.Internal("store upload failed", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", apperr.Internal("store upload failed", err)
	}
	return BasePath + "/" + name, nil
}
