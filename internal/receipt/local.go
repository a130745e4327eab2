package receipt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

const localScheme = "file://"

// Local keeps receipts under a directory on disk. It backs development setups
// that have no bucket configured.
type Local struct {
	root string
}

func NewLocal(root string) (*Local, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve receipt dir: %w", err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create receipt dir: %w", err)
	}

	return &Local{root: abs}, nil
}

func (l *Local) Put(_ context.Context, key, _ string, r io.Reader) (string, error) {
	path, err := l.path(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create receipt dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create receipt file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)

		return "", fmt.Errorf("write receipt file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close receipt file: %w", err)
	}

	return localScheme + key, nil
}

func (l *Local) Open(_ context.Context, uri string) (*Object, error) {
	key, err := localKey(uri)
	if err != nil {
		return nil, err
	}

	path, err := l.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrObjectNotFound
		}

		return nil, fmt.Errorf("open receipt file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat receipt file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Object{
		Name:        displayName(key),
		ContentType: contentType,
		Size:        info.Size(),
		Body:        f,
	}, nil
}

func (l *Local) List(_ context.Context, prefix string) ([]string, error) {
	dir, err := l.path(strings.TrimSuffix(prefix, "/"))
	if err != nil {
		return nil, err
	}

	var uris []string

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}

		uris = append(uris, localScheme+filepath.ToSlash(rel))

		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("list receipts under %s: %w", prefix, err)
	}

	return uris, nil
}

func (l *Local) Delete(_ context.Context, uri string) error {
	key, err := localKey(uri)
	if err != nil {
		return err
	}

	path, err := l.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete receipt file: %w", err)
	}

	return nil
}

// path resolves key inside the root, refusing keys that escape it.
func (l *Local) path(key string) (string, error) {
	path := filepath.Join(l.root, filepath.FromSlash(key))
	if path != l.root && !strings.HasPrefix(path, l.root+string(filepath.Separator)) {
		return "", fmt.Errorf("receipt key %q escapes storage dir", key)
	}

	return path, nil
}

func localKey(uri string) (string, error) {
	key, ok := strings.CutPrefix(uri, localScheme)
	if !ok || key == "" {
		return "", fmt.Errorf("invalid local receipt URI: %s", uri)
	}

	return key, nil
}
