package tables

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Appender define the idempotent append-only table writer. One table per
// key, one file per table, committed by atomic rename so a reader never
// observes a partially written file.
type Appender struct {
	dir    string
	suffix string

	mutex sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAppender create appender writing tables under dir
func NewAppender(dir, suffix string) *Appender {
	return &Appender{
		dir:    dir,
		suffix: suffix,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Result define the outcome of one append call
type Result struct {
	// Added count of rows with a genuinely new date
	Added int
	// Skipped count of invalid rows dropped from the batch
	Skipped int
}

// FilePath return the destination file path for a table key
func (s *Appender) FilePath(key string) string {
	replacer := strings.NewReplacer(".", "_", "/", "_", "\\", "_", ":", "_")
	return filepath.Join(s.dir, replacer.Replace(key)+s.suffix)
}

// Append merge candidate rows into the table identified by key.
// Rows whose date is already present are dropped, the table stays sorted
// by date, and the destination file is only ever replaced whole. Returns
// how many rows were genuinely new and how many were invalid.
func (s *Appender) Append(key string, header []string, rows []Row) (Result, error) {
	result := Result{}
	if key == "" {
		return result, errors.New("table key is empty")
	}

	if len(rows) == 0 {
		return result, nil
	}

	lock := s.lock(key)
	lock.Lock()
	defer lock.Unlock()

	err := os.MkdirAll(s.dir, 0755)
	if err != nil {
		zap.L().Error("ensure table dir failed", zap.Error(err), zap.String("dir", s.dir))
		return result, err
	}

	// read the whole existing table. an unreadable table aborts the append,
	// overwriting it with only the new rows would silently discard history.
	filePath := s.FilePath(key)
	existing, err := ReadTable(filePath)
	if err != nil && !os.IsNotExist(err) {
		return result, err
	}

	schema := header
	if existing != nil {
		schema = existing.Header
	}
	if len(schema) < 2 || schema[0] != "date" {
		return result, fmt.Errorf("invalid table header: %v", schema)
	}

	valid := make([]Row, 0, len(rows))
	for _, row := range rows {
		err = row.Validate(schema)
		if err != nil {
			zap.L().Warn("skip invalid row",
				zap.Error(err),
				zap.String("key", key),
				zap.String("date", row.Date))
			result.Skipped++
			continue
		}

		valid = append(valid, row)
	}

	var dates map[string]bool
	if existing == nil {
		dates = make(map[string]bool)
	} else {
		dates = existing.Dates()
	}

	fresh := make([]Row, 0, len(valid))
	for _, row := range valid {
		if dates[row.Date] {
			continue
		}

		fresh = append(fresh, row)
	}

	// replaying already recorded observations is a no-op, no file write
	if len(fresh) == 0 {
		return result, nil
	}

	table := &Table{Header: schema, Rows: fresh}
	if existing != nil {
		table.Rows = append(existing.Rows, fresh...)
	}
	table.Merge()

	err = s.commit(filePath, table)
	if err != nil {
		return result, err
	}

	result.Added = len(fresh)
	return result, nil
}

// commit serialize table to a temp file in the destination directory and
// rename it onto the destination path. The rename is the single commit
// point, on any earlier failure the destination keeps its pre-call state.
func (s *Appender) commit(filePath string, table *Table) error {
	temp, err := os.CreateTemp(s.dir, ".tmp_")
	if err != nil {
		zap.L().Error("create temp table file failed", zap.Error(err), zap.String("dir", s.dir))
		return err
	}
	tempPath := temp.Name()

	err = table.Encode(temp)
	if err == nil {
		err = temp.Close()
	} else {
		temp.Close()
	}
	if err != nil {
		zap.L().Error("write temp table file failed",
			zap.Error(err),
			zap.String("path", tempPath))
		os.Remove(tempPath)
		return fmt.Errorf("write temp table file: %w", err)
	}

	err = os.Rename(tempPath, filePath)
	if err != nil {
		zap.L().Error("commit table file failed",
			zap.Error(err),
			zap.String("temp", tempPath),
			zap.String("path", filePath))
		os.Remove(tempPath)
		return err
	}

	return nil
}

// lock return the per-key mutex guarding the read-merge-write-rename sequence
func (s *Appender) lock(key string) *sync.Mutex {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	lock, found := s.locks[key]
	if !found {
		lock = new(sync.Mutex)
		s.locks[key] = lock
	}

	return lock
}
