// Пакет upload хранит загруженные изображения на локальном диске.
// Ключ файла: случайное имя с исходным расширением; ключ и есть ImagePath записи.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// ErrInvalidKey: ключ не является простым именем файла.
var ErrInvalidKey = errors.New("invalid upload key")

// maxExtLen ограничивает расширение, которое попадает в ключ.
const maxExtLen = 10

// DiskStore сохраняет и удаляет файлы в одном каталоге.
type DiskStore struct {
	dir    string
	logger *log.Entry
}

// NewDiskStore создаёт каталог, если его нет.
func NewDiskStore(dir string, logger *log.Entry) (*DiskStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if logger == nil {
		logger = log.WithField("component", "upload")
	}
	return &DiskStore{dir: dir, logger: logger}, nil
}

// Dir возвращает каталог хранилища.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save записывает содержимое r под новым ключом.
// Частично записанный файл удаляется.
func (s *DiskStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := uuid.NewString() + extension(originalName)
	path := filepath.Join(s.dir, key)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload %s: %w", key, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write upload %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close upload %s: %w", key, err)
	}

	s.logger.WithFields(log.Fields{"key": key, "original_name": originalName}).Debug("upload saved")
	return key, nil
}

// Remove удаляет файл. Отсутствующий файл не считается ошибкой.
func (s *DiskStore) Remove(_ context.Context, key string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload %s: %w", key, err)
	}
	return nil
}

// Path возвращает путь к файлу по ключу, отклоняя ключи с разделителями пути.
func (s *DiskStore) Path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || filepath.Base(key) != key || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key), nil
}

func extension(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) > maxExtLen {
		return ""
	}
	for _, r := range strings.TrimPrefix(ext, ".") {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

var _ domain.UploadRemover = (*DiskStore)(nil)
