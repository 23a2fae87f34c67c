package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"hangul-quiz/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// FileBankRepository implements domain.BankRepository on a single JSON file.
// It owns an in-memory copy of the bank that is dropped on every Save, so the
// next Load re-reads the file.
type FileBankRepository struct {
	path   string
	logger *zap.Logger

	mu     sync.RWMutex
	cached *domain.Bank
	// gen changes on every Save so a read that raced a write is not cached.
	gen   uint64
	group singleflight.Group
}

// NewFileBankRepository creates a repository for the bank stored at path.
func NewFileBankRepository(path string, logger *zap.Logger) *FileBankRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileBankRepository{path: path, logger: logger}
}

func (r *FileBankRepository) Path() string {
	return r.path
}

func (r *FileBankRepository) Exists() bool {
	info, err := os.Stat(r.path)
	return err == nil && !info.IsDir()
}

// Load returns the cached bank unless force is set or nothing is cached.
// Concurrent reads of the file are collapsed into one.
func (r *FileBankRepository) Load(ctx context.Context, force bool) (domain.Bank, error) {
	if err := ctx.Err(); err != nil {
		return domain.Bank{}, err
	}

	if !force {
		r.mu.RLock()
		cached := r.cached
		r.mu.RUnlock()
		if cached != nil {
			return cached.Clone(), nil
		}
	}

	v, err, shared := r.group.Do("load", func() (interface{}, error) {
		r.mu.RLock()
		gen := r.gen
		r.mu.RUnlock()

		bank, err := r.read()
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		if r.gen == gen {
			r.cached = &bank
		}
		r.mu.Unlock()
		return bank, nil
	})
	if err != nil {
		r.logger.Warn("failed to load question bank", zap.String("path", r.path), zap.Error(err))
		return domain.Bank{}, err
	}

	bank := v.(domain.Bank)
	r.logger.Debug("question bank loaded",
		zap.String("path", r.path),
		zap.Int("total", bank.Total()),
		zap.Bool("shared", shared))
	return bank.Clone(), nil
}

func (r *FileBankRepository) read() (domain.Bank, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return domain.Bank{}, &domain.StorageError{Op: "read", Path: r.path, Err: err}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return domain.Bank{}, &domain.StorageError{Op: "parse", Path: r.path, Err: err}
	}
	schema, err := compiledBankSchema()
	if err != nil {
		return domain.Bank{}, &domain.StorageError{Op: "parse", Path: r.path, Err: err}
	}
	if err := schema.Validate(doc); err != nil {
		return domain.Bank{}, &domain.StorageError{Op: "validate", Path: r.path, Err: err}
	}

	var bank domain.Bank
	if err := json.Unmarshal(data, &bank); err != nil {
		return domain.Bank{}, &domain.StorageError{Op: "parse", Path: r.path, Err: err}
	}
	return bank.Clone(), nil
}

// Save writes the bank as indented JSON through a temp file and rename, then
// drops the cached copy.
func (r *FileBankRepository) Save(ctx context.Context, bank domain.Bank) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(bank.Clone(), "", "  ")
	if err != nil {
		return &domain.StorageError{Op: "encode", Path: r.path, Err: err}
	}
	data = append(data, '\n')

	if err := writeFileAtomic(r.path, data); err != nil {
		return &domain.StorageError{Op: "write", Path: r.path, Err: err}
	}

	r.mu.Lock()
	r.cached = nil
	r.gen++
	r.mu.Unlock()

	r.logger.Info("question bank saved",
		zap.String("path", r.path),
		zap.Int("beginner", len(bank.Beginner)),
		zap.Int("intermediate", len(bank.Intermediate)),
		zap.Int("advanced", len(bank.Advanced)))
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	return nil
}
