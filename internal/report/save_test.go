package report

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLocal_WritesReport(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveLocal("stripe.com", "# Interview Prep: Stripe\n", dir)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Interview Prep: Stripe\n", string(content))
}

func TestSaveLocal_FilenameFormat(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveLocal("stripe.com", "report", dir)
	require.NoError(t, err)

	name := filepath.Base(path)
	// Dots in the domain become underscores; timestamp is date_time.
	assert.Regexp(t, regexp.MustCompile(`^stripe_com_prep_\d{8}_\d{6}\.md$`), name)
}

func TestSaveLocal_CreatesNestedOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	path, err := SaveLocal("stripe.com", "report", dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
}
