package cmake

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"go.trai.ch/toil/internal/core/domain"
	"go.trai.ch/zerr"
)

// QueryClient names the File API client directory the engine owns. Seeding
// queries under a client directory keeps them from clobbering other tools'
// queries in the same build tree.
const QueryClient = "client-toil"

const fileAPIDir = ".cmake/api/v1"

// SeedQuery writes the codemodel and cache query files under buildDir so
// the next configure produces a File API reply.
func (l *Loader) SeedQuery(buildDir string) error {
	queryDir := filepath.Join(buildDir, filepath.FromSlash(fileAPIDir), "query", QueryClient)
	if err := os.MkdirAll(queryDir, 0o755); err != nil {
		return zerr.With(zerr.With(domain.ErrQuerySeedFailed, "dir", queryDir), "cause", err.Error())
	}

	for _, query := range []string{"codemodel-v2", "cache-v2"} {
		if err := os.WriteFile(filepath.Join(queryDir, query), nil, 0o644); err != nil {
			return zerr.With(zerr.With(domain.ErrQuerySeedFailed, "query", query), "cause", err.Error())
		}
	}
	return nil
}

// Targets reads the File API reply under buildDir and flattens all
// configured targets. A nil slice means the project has not been configured
// yet. Replies that are missing, partially written, or malformed fail soft:
// the File API may be mid-write while cmake runs.
func (l *Loader) Targets(root, buildDir string) ([]domain.Target, error) {
	replyDir := filepath.Join(buildDir, filepath.FromSlash(fileAPIDir), "reply")

	entries, err := os.ReadDir(replyDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		l.logger.Warn(fmt.Sprintf("cannot read file api reply dir %s: %v", replyDir, err))
		return nil, nil
	}

	indexName := latestIndex(entries)
	if indexName == "" {
		return nil, nil
	}

	index, ok := l.readReply(replyDir, indexName)
	if !ok {
		return nil, nil
	}

	// Prefer the reply written for our own query client; otherwise take any
	// codemodel object in the shared reply.
	codemodelFile := index.Get("reply.client-toil.codemodel-v2.jsonFile")
	if !codemodelFile.Exists() {
		codemodelFile = index.Get(`objects.#(kind=="codemodel").jsonFile`)
	}
	if !codemodelFile.Exists() {
		return nil, nil
	}

	codemodel, ok := l.readReply(replyDir, codemodelFile.String())
	if !ok {
		return nil, nil
	}

	var targets []domain.Target
	seen := map[string]bool{}

	for _, cfg := range codemodel.Get("configurations").Array() {
		for _, ref := range cfg.Get("targets").Array() {
			targetFile := ref.Get("jsonFile").String()
			if targetFile == "" {
				continue
			}
			target, ok := l.readReply(replyDir, targetFile)
			if !ok {
				continue
			}

			name := target.Get("name").String()
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true

			targets = append(targets, domain.Target{
				Name:     name,
				Type:     domain.TargetType(target.Get("type").String()),
				Artifact: target.Get("artifacts.0.path").String(),
			})
		}
	}

	return targets, nil
}

// latestIndex picks the newest index file. Index names embed a sortable
// timestamp, so the lexicographically greatest name is the latest reply.
func latestIndex(entries []os.DirEntry) string {
	var latest string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "index-") || !strings.HasSuffix(name, ".json") {
			continue
		}
		if name > latest {
			latest = name
		}
	}
	return latest
}

func (l *Loader) readReply(replyDir, name string) (gjson.Result, bool) {
	data, err := os.ReadFile(filepath.Join(replyDir, name))
	if err != nil {
		l.logger.Warn(fmt.Sprintf("cannot read file api reply %s: %v", name, err))
		return gjson.Result{}, false
	}
	if !gjson.ValidBytes(data) {
		l.logger.Warn(fmt.Sprintf("ignoring malformed file api reply %s", name))
		return gjson.Result{}, false
	}
	return gjson.ParseBytes(data), true
}
