package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/sports-dashboard/internal/domain/snapshot"
)

// SnapshotRepository stores the dashboard document as one pretty-printed
// JSON file, replaced atomically through a sibling temp file.
type SnapshotRepository struct {
	path string
	perm fs.FileMode
}

func NewSnapshotRepository(path string) *SnapshotRepository {
	return &SnapshotRepository{path: path, perm: 0o644}
}

func (r *SnapshotRepository) Path() string {
	return r.path
}

func (r *SnapshotRepository) Load(ctx context.Context) (snapshot.Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return snapshot.Document{}, false, err
	}

	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return snapshot.Document{}, false, nil
	}
	if err != nil {
		return snapshot.Document{}, false, fmt.Errorf("read snapshot %s: %w", r.path, err)
	}

	var doc snapshot.Document
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return snapshot.Document{}, false, fmt.Errorf("decode snapshot %s: %w", r.path, err)
	}
	return doc, true, nil
}

func (r *SnapshotRepository) Save(ctx context.Context, doc snapshot.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	payload = append(payload, '\n')

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Chmod(tmpName, r.perm); err != nil {
		return fmt.Errorf("chmod temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace snapshot %s: %w", r.path, err)
	}
	committed = true
	return nil
}
