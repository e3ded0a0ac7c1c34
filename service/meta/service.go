// Package meta loads YAML or JSON documents from any afs supported location
// (file://, mem://, s3:// ...) after expanding ${env.KEY} references.
package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"gopkg.in/yaml.v3"
)

// Service loads documents relative to an optional base URL.
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
}

// New creates a meta service. A nil fs uses afs.New(); options are passed to
// every storage call, for example an *embed.FS for embed:// URLs.
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, baseURL: baseURL, options: options}
}

// URL resolves location against the base URL.
func (s *Service) URL(location string) string {
	if s.baseURL == "" || strings.Contains(location, "://") || strings.HasPrefix(location, "/") {
		return location
	}
	return strings.TrimRight(s.baseURL, "/") + "/" + location
}

// Load decodes the document at location into target. Files ending in .json
// are decoded as JSON, anything else as YAML.
func (s *Service) Load(ctx context.Context, location string, target interface{}) error {
	URL := s.URL(location)
	data, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
	if err != nil {
		return fmt.Errorf("failed to download %v: %w", URL, err)
	}
	text := expandEnv(string(data))
	if strings.EqualFold(path.Ext(URL), ".json") {
		err = json.Unmarshal([]byte(text), target)
	} else {
		err = yaml.Unmarshal([]byte(text), target)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %v: %w", URL, err)
	}
	return nil
}
