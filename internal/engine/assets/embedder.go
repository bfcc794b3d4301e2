// Package assets implements the asset embedding generator. The container
// build mechanism has no bind-mount access to the host filesystem, so static
// assets travel as a textual command stream that reconstructs the tree byte
// for byte inside the container.
package assets

import (
	"encoding/base64"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"mvdan.cc/sh/v3/syntax"
)

// Embedder implements ports.AssetEmbedder.
type Embedder struct {
	destRoot string
}

// New creates an Embedder that reconstructs asset trees under destRoot
// inside the container.
func New(destRoot string) *Embedder {
	return &Embedder{destRoot: destRoot}
}

type assetFile struct {
	rel        string
	executable bool
	content    []byte
}

// Embed walks the tree rooted at root and returns the ordered command list:
// per file a directory creation, a base64 reconstruction, and for
// executables a permission command. File contents are read concurrently but
// emission order is the sorted relative path, so identical trees always
// yield byte-identical sequences.
func (e *Embedder) Embed(root string) ([]string, error) {
	files, err := collect(root)
	if err != nil {
		return nil, err
	}

	// Reads run concurrently; each goroutine owns a distinct slice element.
	var g errgroup.Group
	for i := range files {
		g.Go(func() error {
			content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(files[i].rel)))
			if err != nil {
				return zerr.Wrap(domain.ErrAssetReadFailed, files[i].rel+": "+err.Error())
			}
			files[i].content = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return e.render(files), nil
}

// collect gathers the regular files under root with their relative slash
// paths, sorted. Directories are implied by their files; empty directories
// carry no content and are not reconstructed.
func collect(root string) ([]assetFile, error) {
	var files []assetFile

	err := fs.WalkDir(os.DirFS(root), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, assetFile{
			rel:        p,
			executable: info.Mode()&0o111 != 0,
		})
		return nil
	})
	if err != nil {
		return nil, zerr.Wrap(domain.ErrAssetWalkFailed, root+": "+err.Error())
	}

	sort.Slice(files, func(i, j int) bool { return files[i].rel < files[j].rel })
	return files, nil
}

// render emits the command stream. Base64 is used as the reversible text
// encoding: it survives the build-instruction stream unmodified and decodes
// to the original bytes with a single standard tool.
func (e *Embedder) render(files []assetFile) []string {
	commands := make([]string, 0, len(files)*2)
	lastDir := ""

	for _, f := range files {
		dest := path.Join(e.destRoot, f.rel)
		dir := path.Dir(dest)
		if dir != lastDir {
			commands = append(commands, "mkdir -p "+quote(dir))
			lastDir = dir
		}
		encoded := base64.StdEncoding.EncodeToString(f.content)
		commands = append(commands,
			"printf '%s' "+quote(encoded)+" | base64 -d > "+quote(dest))
		if f.executable {
			commands = append(commands, "chmod 755 "+quote(dest))
		}
	}
	return commands
}

func quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return "'" + s + "'"
	}
	return q
}
