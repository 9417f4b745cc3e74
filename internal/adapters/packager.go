package adapters

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog/log"

	"lms-packages/internal/core"
	"lms-packages/internal/policies"
	"lms-packages/internal/ports"
	"lms-packages/internal/types"
)

const (
	ManifestFile = "conanmanifest.txt"
	InfoFile     = "conaninfo.txt"
)

type PackagerAdapter struct{}

func NewPackagerAdapter() PackagerAdapter {
	return PackagerAdapter{}
}

// CopyTree recreates destDir and fills it with the files from srcDir that
// the copy rules select. Directories in skip are given relative to srcDir.
func (a PackagerAdapter) CopyTree(srcDir string, destDir string, rules []types.CopyRule, skip ...string) ([]types.PackagedFile, error) {
	if strings.TrimSpace(srcDir) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source directory is empty")
	}
	if strings.TrimSpace(destDir) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("destination directory is empty")
	}
	info, err := os.Stat(srcDir)
	if err != nil || !info.IsDir() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("source directory does not exist: " + srcDir).
			WithCause(err)
	}
	if containsDir(destDir, srcDir) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("destination directory " + destDir + " would remove source directory " + srcDir)
	}
	if err := os.RemoveAll(destDir); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to clean destination directory").
			WithCause(err)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create destination directory").
			WithCause(err)
	}
	skip = append(skip, NestedDir(srcDir, destDir))
	return CopyFS(osfs.New(srcDir), osfs.New(destDir), rules, skip...)
}

// CopyFS copies the files selected by rules from src to dest. Paths listed
// in skip (slash-separated, relative to src) are not descended into.
func CopyFS(src billy.Filesystem, dest billy.Filesystem, rules []types.CopyRule, skip ...string) ([]types.PackagedFile, error) {
	policy, err := policies.NewCopyPolicy(rules)
	if err != nil {
		return nil, err
	}
	for _, rule := range policy.DisabledRules() {
		log.Debug().
			Str("pattern", rule.Pattern).
			Str("src", rule.Src).
			Str("dst", rule.Dst).
			Msg("copy rule disabled")
	}
	files, err := listFiles(src, skip)
	if err != nil {
		return nil, err
	}
	var copied []types.PackagedFile
	for _, target := range policy.Select(files) {
		packaged, err := copyBillyFile(src, dest, target.Source, target.Destination)
		if err != nil {
			return nil, err
		}
		copied = append(copied, packaged)
	}
	sort.Slice(copied, func(i, j int) bool {
		return copied[i].Path < copied[j].Path
	})
	log.Debug().Int("files", len(copied)).Msg("copy rules applied")
	return copied, nil
}

// WriteMetadata writes the manifest and package info next to the package
// tree, never inside it.
func (a PackagerAdapter) WriteMetadata(metadataDir string, manifest types.PackageManifest, info string) error {
	if strings.TrimSpace(metadataDir) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("metadata directory is empty")
	}
	if err := os.MkdirAll(metadataDir, 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create metadata directory").
			WithCause(err)
	}
	content := "package_id=" + manifest.PackageID + "\n" + core.RenderManifest(manifest)
	if err := os.WriteFile(filepath.Join(metadataDir, ManifestFile), []byte(content), 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write package manifest").
			WithCause(err)
	}
	if err := os.WriteFile(filepath.Join(metadataDir, InfoFile), []byte(info), 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write package info").
			WithCause(err)
	}
	return nil
}

func listFiles(fs billy.Filesystem, skip []string) ([]string, error) {
	skipped := map[string]struct{}{}
	for _, dir := range skip {
		if dir != "" {
			skipped[dir] = struct{}{}
		}
	}
	var files []string
	err := util.Walk(fs, ".", func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel := filepath.ToSlash(name)
		if info.IsDir() {
			if _, ok := skipped[rel]; ok {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			target, statErr := fs.Stat(name)
			if statErr != nil || target.IsDir() {
				return nil
			}
		} else if !info.Mode().IsRegular() {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan source tree").
			WithCause(err)
	}
	sort.Strings(files)
	return files, nil
}

func copyBillyFile(src billy.Filesystem, dest billy.Filesystem, source string, destination string) (types.PackagedFile, error) {
	in, err := src.Open(source)
	if err != nil {
		return types.PackagedFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open " + source).
			WithCause(err)
	}
	defer in.Close()

	if dir := path.Dir(destination); dir != "." {
		if err := dest.MkdirAll(dir, 0o755); err != nil {
			return types.PackagedFile{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create " + dir).
				WithCause(err)
		}
	}
	out, err := dest.OpenFile(destination, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return types.PackagedFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create " + destination).
			WithCause(err)
	}
	hash := sha256.New()
	size, err := io.Copy(io.MultiWriter(out, hash), in)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return types.PackagedFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to copy " + source).
			WithCause(err)
	}
	return types.PackagedFile{
		Path:   destination,
		Size:   size,
		Digest: hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

// NestedDir returns dir as a slash-separated path relative to root, or ""
// when dir is not strictly inside root. A package directory placed in the
// build tree is skipped this way so it is not copied into itself.
func NestedDir(root string, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

// containsDir reports whether dir is root itself or lies inside it.
func containsDir(root string, dir string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	return absRoot == absDir || NestedDir(absRoot, absDir) != ""
}

var _ ports.PackagerPort = PackagerAdapter{}
