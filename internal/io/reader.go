package io

import (
	"bufio"
	"os"
	"strings"

	"github.com/williampepple1/similar-pages/internal/config"
)

// SeedReader reads seed URLs from various sources
type SeedReader struct {
	Config *config.IOConfig
}

// NewSeedReader creates a new seed reader
func NewSeedReader(config *config.IOConfig) *SeedReader {
	return &SeedReader{
		Config: config,
	}
}

// ReadFromFile reads URLs from a file, one URL per line
func (r *SeedReader) ReadFromFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		url := strings.TrimSpace(scanner.Text())
		if url != "" && !strings.HasPrefix(url, "#") {
			urls = append(urls, url)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return urls, nil
}

// GetSeeds returns seeds from the seed file, the configured list, or the defaults, in that order
func (r *SeedReader) GetSeeds() ([]string, error) {
	if r.Config.SeedFile != "" {
		return r.ReadFromFile(r.Config.SeedFile)
	}
	if len(r.Config.Seeds) > 0 {
		return r.Config.Seeds, nil
	}

	return config.DefaultSeeds, nil
}
