package markdown

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/goliatone/go-mdstrings/internal/fault"
	"github.com/goliatone/go-mdstrings/internal/identity"
	"github.com/goliatone/go-mdstrings/pkg/interfaces"
)

// LoaderConfig configures how markdown files are read.
type LoaderConfig struct {
	// BasePath is the directory the filesystem is rooted at.
	BasePath string
	// MaxBytes caps the size of a single input.
	MaxBytes int64
	// StripFrontMatter removes YAML/TOML front matter before rendering.
	StripFrontMatter bool
}

// Loader reads markdown documents from a filesystem.
type Loader struct {
	fs               fs.FS
	basePath         string
	maxBytes         int64
	stripFrontMatter bool
}

func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	return &Loader{
		fs:               filesystem,
		basePath:         filepath.Clean(cfg.BasePath),
		maxBytes:         cfg.MaxBytes,
		stripFrontMatter: cfg.StripFrontMatter,
	}
}

// LoadFile reads a single document. Inputs larger than the configured cap
// fail with an input-too-large error instead of being truncated.
func (l *Loader) LoadFile(ctx context.Context, path string) (*interfaces.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := l.read(rel)
	if err != nil {
		return nil, err
	}

	doc := &interfaces.Document{
		ID:       identity.DocumentUUID(rel),
		FilePath: rel,
		Body:     data,
	}
	sum := blake3.Sum256(data)
	doc.Checksum = sum[:]

	if l.stripFrontMatter {
		meta, body, err := ParseFrontMatter(data)
		if err != nil {
			return nil, fault.MalformedInput("%s: %v", rel, err)
		}
		doc.FrontMatter = meta
		doc.Body = body
	}
	return doc, nil
}

func (l *Loader) read(rel string) ([]byte, error) {
	file, err := l.fs.Open(rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}
	defer file.Close()

	if l.maxBytes <= 0 {
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
		}
		return data, nil
	}

	if info, err := file.Stat(); err == nil && info.Mode().IsRegular() && info.Size() > l.maxBytes {
		return nil, fault.InputTooLarge(rel, l.maxBytes)
	}
	data, err := io.ReadAll(io.LimitReader(file, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fault.InputTooLarge(rel, l.maxBytes)
	}
	return data, nil
}

func (l *Loader) makeRelative(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fault.MissingArgument("input", nil)
	}
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" || l.basePath == "." {
		return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("markdown loader: make relative %s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("markdown loader: %s is outside %s", path, l.basePath)
	}
	return rel, nil
}
