package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms-packages/internal/types"
)

func imagingRules() []types.CopyRule {
	return []types.CopyRule{
		{Pattern: "*.h", Src: "include", Dst: "include"},
		{Pattern: "*.lib", Src: "lib", Dst: "lib"},
		{Pattern: "*.a", Src: "lib", Dst: "lib"},
	}
}

func cameraImporterRules() []types.CopyRule {
	keep := false
	return []types.CopyRule{
		{Pattern: "*.h", Src: "include", Dst: "include", Disabled: true},
		{Pattern: "*.so", Dst: "lib", KeepPath: &keep},
	}
}

func writeMemFiles(t *testing.T, fs billy.Filesystem, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}
}

func listMemFiles(t *testing.T, fs billy.Filesystem) []string {
	t.Helper()
	var names []string
	require.NoError(t, util.Walk(fs, ".", func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			names = append(names, filepath.ToSlash(name))
		}
		return nil
	}))
	return names
}

func TestCopyFSImagingCollectsHeadersAndStaticLibs(t *testing.T) {
	src := memfs.New()
	writeMemFiles(t, src, map[string]string{
		"include/foo.h":  "int foo(void);",
		"lib/libfoo.a":   "archive",
		"lib/libfoo.so":  "shared",
		"CMakeCache.txt": "cache",
		"src/private.h":  "private",
	})
	dest := memfs.New()

	copied, err := CopyFS(src, dest, imagingRules())
	require.NoError(t, err)

	paths := make([]string, 0, len(copied))
	for _, file := range copied {
		paths = append(paths, file.Path)
	}
	if diff := cmp.Diff([]string{"include/foo.h", "lib/libfoo.a"}, paths); diff != "" {
		t.Fatalf("unexpected packaged files (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"include/foo.h", "lib/libfoo.a"}, listMemFiles(t, dest)); diff != "" {
		t.Fatalf("unexpected package tree (-want +got):\n%s", diff)
	}
	content, err := util.ReadFile(dest, "lib/libfoo.a")
	require.NoError(t, err)
	assert.Equal(t, "archive", string(content))
	assert.Equal(t, int64(len("archive")), copied[1].Size)
	assert.Len(t, copied[1].Digest, 64)
}

func TestCopyFSCameraImporterNeverCollectsHeaders(t *testing.T) {
	src := memfs.New()
	writeMemFiles(t, src, map[string]string{
		"include/bar.h": "int bar(void);",
		"bar.h":         "int bar(void);",
		"lib/libbar.so": "shared",
		"lib/libbar.a":  "archive",
	})
	dest := memfs.New()

	copied, err := CopyFS(src, dest, cameraImporterRules())
	require.NoError(t, err)
	require.Len(t, copied, 1)
	assert.Equal(t, "lib/libbar.so", copied[0].Path)
	if diff := cmp.Diff([]string{"lib/libbar.so"}, listMemFiles(t, dest)); diff != "" {
		t.Fatalf("unexpected package tree (-want +got):\n%s", diff)
	}
}

func TestCopyFSMissingSourceCategoryIsEmpty(t *testing.T) {
	src := memfs.New()
	writeMemFiles(t, src, map[string]string{"README.md": "docs"})
	copied, err := CopyFS(src, memfs.New(), imagingRules())
	require.NoError(t, err)
	assert.Empty(t, copied)
}

func TestCopyTreeIsIdempotent(t *testing.T) {
	buildDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(buildDir, "include"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(buildDir, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "include", "foo.h"), []byte("h"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "lib", "libfoo.a"), []byte("a"), 0o755))

	packageDir := filepath.Join(t.TempDir(), "package")
	adapter := NewPackagerAdapter()
	first, err := adapter.CopyTree(buildDir, packageDir, imagingRules())
	require.NoError(t, err)

	// A stale file from an earlier run must not survive.
	require.NoError(t, os.WriteFile(filepath.Join(packageDir, "stale.txt"), []byte("x"), 0o644))

	second, err := adapter.CopyTree(buildDir, packageDir, imagingRules())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	_, err = os.Stat(filepath.Join(packageDir, "stale.txt"))
	assert.True(t, os.IsNotExist(err))

	info, err := os.Stat(filepath.Join(packageDir, "lib", "libfoo.a"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestCopyTreeSkipsNestedDestination(t *testing.T) {
	buildDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(buildDir, "include"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "include", "foo.h"), []byte("h"), 0o644))
	packageDir := filepath.Join(buildDir, "package")

	adapter := NewPackagerAdapter()
	_, err := adapter.CopyTree(buildDir, packageDir, []types.CopyRule{{Pattern: "*.h"}})
	require.NoError(t, err)
	copied, err := adapter.CopyTree(buildDir, packageDir, []types.CopyRule{{Pattern: "*.h"}})
	require.NoError(t, err)
	require.Len(t, copied, 1)
	assert.Equal(t, "include/foo.h", copied[0].Path)
}

func TestCopyTreeRequiresSourceDirectory(t *testing.T) {
	adapter := NewPackagerAdapter()
	_, err := adapter.CopyTree(filepath.Join(t.TempDir(), "missing"), t.TempDir(), imagingRules())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestCopyTreeRejectsDestinationContainingSource(t *testing.T) {
	out := t.TempDir()
	buildDir := filepath.Join(out, "package")
	require.NoError(t, os.MkdirAll(filepath.Join(buildDir, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "lib", "libfoo.a"), []byte("a"), 0o644))

	adapter := NewPackagerAdapter()
	for _, dest := range []string{out, buildDir} {
		_, err := adapter.CopyTree(buildDir, dest, imagingRules())
		require.Error(t, err)
		assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	}
	assert.FileExists(t, filepath.Join(buildDir, "lib", "libfoo.a"))
}

func TestWriteMetadata(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "metadata")
	manifest := types.PackageManifest{
		PackageID: "abc",
		Files:     []types.PackagedFile{{Path: "lib/libfoo.a", Size: 1, Digest: "ff"}},
	}
	require.NoError(t, NewPackagerAdapter().WriteMetadata(dir, manifest, "[settings]\n"))

	content, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	require.NoError(t, err)
	assert.Equal(t, "package_id=abc\nlib/libfoo.a 1 ff\n", string(content))
	info, err := os.ReadFile(filepath.Join(dir, InfoFile))
	require.NoError(t, err)
	assert.Equal(t, "[settings]\n", string(info))
}
