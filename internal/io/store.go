package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/williampepple1/similar-pages/pkg/models"
	"github.com/williampepple1/similar-pages/pkg/utils"
)

// LogStore reads and writes the search history file.
//
// Every Save rewrites the whole file. There is no locking, so two processes
// sharing a file can lose each other's writes.
type LogStore struct {
	Path   string
	logger *zap.Logger
}

// NewLogStore creates a store for the log file at path
func NewLogStore(path string, logger *zap.Logger) *LogStore {
	return &LogStore{
		Path:   path,
		logger: utils.OrNop(logger),
	}
}

// Load returns the persisted log. A missing or unparsable file yields an empty log.
func (s *LogStore) Load() models.Log {
	log, err := s.Read()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("treating unreadable log as empty", zap.String("path", s.Path), zap.Error(err))
		}
		return models.Log{}
	}
	return log
}

// Read returns the persisted log, failing if the file is missing or malformed
func (s *LogStore) Read() (models.Log, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read log %s: %w", s.Path, err)
	}

	log := models.Log{}
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("parse log %s: %w", s.Path, err)
	}
	if log == nil {
		// a file containing "null"
		log = models.Log{}
	}
	return log, nil
}

// Save overwrites the file with the full log, indented by four spaces
func (s *LogStore) Save(log models.Log) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(log); err != nil {
		return fmt.Errorf("encode log: %w", err)
	}

	if err := os.WriteFile(s.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write log %s: %w", s.Path, err)
	}
	s.logger.Debug("log saved", zap.String("path", s.Path), zap.Int("seeds", len(log)))
	return nil
}

// Raw serializes log compactly without HTML escaping, so URLs appear verbatim
func Raw(log models.Log) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(log); err != nil {
		return "", err
	}
	return buf.String(), nil
}
