package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms-packages/tests/testutil"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := testutil.RepoRoot(t)
	cacheDir := t.TempDir()
	cmdArgs := append([]string{"run", "./cmd/lms-packages", "--cache-dir", cacheDir}, args...)
	cmd := exec.Command("go", cmdArgs...)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestValidateCommandE2E(t *testing.T) {
	out, err := runCLI(t, "validate",
		"--descriptor", "fixtures/lms_camera_importer.yaml",
		"--os", "Linux", "--compiler", "gcc", "--build-type", "Release", "--arch", "x86_64",
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "validated: lms_camera_importer/1.0")
	assert.Contains(t, out, "imaging/1.0@lms/stable")
}

func TestValidateCommandRejectsIncompleteSettingsE2E(t *testing.T) {
	out, err := runCLI(t, "validate",
		"--descriptor", "fixtures/imaging.yaml",
		"--os", "Linux", "--compiler", "gcc",
	)
	require.Error(t, err)
	assert.Contains(t, out, "build_type")
}

func TestPackageCommandE2E(t *testing.T) {
	buildDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(buildDir, "include"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(buildDir, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "include", "bar.h"), []byte("int bar(void);\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "lib", "libbar.so"), []byte("shared"), 0o644))
	outDir := t.TempDir()

	out, err := runCLI(t, "package",
		"--descriptor", "fixtures/lms_camera_importer.yaml",
		"--build-dir", buildDir,
		"--output", outDir,
		"--os", "Linux", "--compiler", "gcc", "--build-type", "Release", "--arch", "x86_64",
	)
	require.NoError(t, err, out)
	assert.Equal(t, []string{"lib/libbar.so"}, testutil.ListTree(t, filepath.Join(outDir, "package")))
	require.FileExists(t, filepath.Join(outDir, "metadata", "conanmanifest.txt"))
	require.FileExists(t, filepath.Join(outDir, "metadata", "conaninfo.txt"))
}
