package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/nfnt/resize"
)

const thumbMaxPx = 400

type DiskConfig struct {
	// Root directory for stored uploads, created on first use
	Root string
}

// Disk stores photo originals and generated thumbnails on the local
// filesystem under Root/originals and Root/thumbs.
type Disk struct {
	Config DiskConfig
}

func NewDisk(c DiskConfig) (*Disk, error) {
	for _, dir := range []string{
		filepath.Join(c.Root, "originals"),
		filepath.Join(c.Root, "thumbs"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &Disk{Config: c}, nil
}

// SavePhoto writes the raw upload and a JPEG thumbnail, returning both
// paths relative to Root. A decode failure only skips the thumbnail;
// the original is still stored.
func (d *Disk) SavePhoto(key string, data []byte) (original, thumb string, err error) {
	original = filepath.Join("originals", key)
	if err := os.WriteFile(filepath.Join(d.Config.Root, original), data, 0o644); err != nil {
		return "", "", fmt.Errorf("write original: %w", err)
	}

	img, _, decErr := image.Decode(bytes.NewReader(data))
	if decErr != nil {
		return original, "", nil
	}

	small := resize.Thumbnail(thumbMaxPx, thumbMaxPx, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, small, &jpeg.Options{Quality: 80}); err != nil {
		return original, "", nil
	}

	thumb = filepath.Join("thumbs", key+".jpg")
	if err := os.WriteFile(filepath.Join(d.Config.Root, thumb), buf.Bytes(), 0o644); err != nil {
		return original, "", nil
	}
	return original, thumb, nil
}

// DeletePhoto removes stored files for a photo. Missing files are fine.
func (d *Disk) DeletePhoto(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(filepath.Join(d.Config.Root, p)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Resolve returns the absolute path for a stored file, guarding
// against path escapes.
func (d *Disk) Resolve(rel string) (string, error) {
	root, err := filepath.Abs(d.Config.Root)
	if err != nil {
		return "", err
	}
	full, err := filepath.Abs(filepath.Join(root, filepath.Clean(rel)))
	if err != nil {
		return "", err
	}
	if full != root && !strings.HasPrefix(full, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes upload root")
	}
	return full, nil
}
