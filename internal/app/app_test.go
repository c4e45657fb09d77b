package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourclean/internal/config"
	apperrors "tourclean/internal/errors"
	"tourclean/internal/infrastructure"
)

const dirtyCSV = `Rank,Peak,All Time Peak,Actual gross,Adjusted gross (in 2022 dollars),Artist,Tour title,Year(s),Shows,Average gross,Ref.
1,1,7[2],"$780,000,000","$780,000,000",Taylor Swift,The Eras Tour,2023-2024,56,"$13,928,571",[1]
2,,1,"$939,100,000","$1,140,000,000",Elton John,Farewell Yellow Brick Road,2018-2023,330,"$2,845,757",[2]
3,2,,"$776,200,000","$887,000,000",Ed Sheeran,Divide Tour,2017-2019,255,N/A,[3]
2,,1,"$939,100,000","$1,140,000,000",Elton John,Farewell Yellow Brick Road,2018-2023,330,"$2,845,757",[2]
4,3[a],3,"$1,234,567",,,Unknown Tour,,,$0,[5]
`

func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	t.Cleanup(infrastructure.ResetLoggerForTesting)
	infrastructure.ResetLoggerForTesting()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Input.Path = filepath.Join(dir, "data_kotor.csv")
	cfg.Output.Path = filepath.Join(dir, "out", "student_scores_cleaned.csv")
	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = filepath.Join(dir, "logs", "tourclean.log")
	cfg.Metrics.Enabled = true
	cfg.Metrics.TextfilePath = filepath.Join(dir, "metrics", "tourclean.prom")
	cfg.Tracing.Enabled = true
	cfg.Tracing.Exporter = "file"
	cfg.Tracing.FilePath = filepath.Join(dir, "logs", "trace.json")
	require.NoError(t, cfg.Validate())
	return cfg, dir
}

func runApp(t *testing.T, cfg *config.Config) (string, error) {
	t.Helper()
	ctx := context.Background()
	var out bytes.Buffer

	application, err := NewApplication(ctx, cfg, &out)
	require.NoError(t, err)

	runErr := application.Run(ctx)
	require.NoError(t, application.Stop(ctx))
	return out.String(), runErr
}

func TestRun(t *testing.T) {
	cfg, _ := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Input.Path, []byte(dirtyCSV), 0644))

	stdout, err := runApp(t, cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 5, "header plus four rows")
	assert.Equal(t, "Rank,Peak,All Time Peak,Actual gross,Adjusted gross (in 2022 dollars),Artist,Tour title,Year(s),Shows,Average gross", lines[0])
	assert.Equal(t, "1,1,7,780000000,780000000,Taylor Swift,The Eras Tour,2023-2024,56,13928571", lines[1])
	assert.Equal(t, "4,3,3,1234567,1013500000,Elton John,Unknown Tour,2018-2023,292.5,0", lines[4])
	assert.NotContains(t, string(content), ",,", "no empty fields remain")

	for _, want := range []string{
		"--- INITIAL DATA (BEFORE CLEANING) ---",
		"Total duplicate rows: 1",
		"1. Column 'Ref.' has been dropped.",
		"3. Missing values have been imputed.",
		"(Removed: 1 rows)",
		"Duplicates remaining: 0",
		"Cleaned data saved to: " + cfg.Output.Path,
		"--- Final Info (Types & Missing) ---",
		"Entries: 4, 0 to 3",
	} {
		assert.Contains(t, stdout, want)
	}

	metrics, err := os.ReadFile(cfg.Metrics.TextfilePath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "tourclean_rows_written")

	trace, err := os.ReadFile(cfg.Tracing.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(trace), `"Name":"run"`)

	logs, err := os.ReadFile(cfg.Logging.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "trace_id")
}

func TestRunReadFailure(t *testing.T) {
	cfg, _ := testConfig(t)

	stdout, err := runApp(t, cfg)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeRead))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	assert.Contains(t, stdout, "Error reading file:")
	assert.NotContains(t, stdout, "STARTING CLEANING")
	_, statErr := os.Stat(cfg.Output.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunWriteFailureIsReported(t *testing.T) {
	cfg, dir := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Input.Path, []byte(dirtyCSV), 0644))

	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	cfg.Output.Path = filepath.Join(blocker, "cleaned.csv")

	stdout, err := runApp(t, cfg)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Duplicates remaining: 0")
	assert.Contains(t, stdout, "Error saving file:")
	assert.NotContains(t, stdout, "SAVED SUCCESSFULLY")

	metrics, err := os.ReadFile(cfg.Metrics.TextfilePath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `kind="write"`)
}

func TestRunWorkbookOutput(t *testing.T) {
	cfg, dir := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Input.Path, []byte(dirtyCSV), 0644))
	cfg.Output.Path = filepath.Join(dir, "cleaned.xlsx")
	cfg.Metrics.Enabled = false
	cfg.Tracing.Enabled = false

	_, err := runApp(t, cfg)
	require.NoError(t, err)

	info, err := os.Stat(cfg.Output.Path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestDelimiterRune(t *testing.T) {
	assert.Equal(t, ',', delimiterRune(","))
	assert.Equal(t, '\t', delimiterRune("\t"))
	assert.Equal(t, rune(0), delimiterRune(""))
}

func TestRunRefusesToOverwriteInput(t *testing.T) {
	cfg, _ := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Input.Path, []byte(dirtyCSV), 0644))
	cfg.Output.Path = cfg.Input.Path

	stdout, err := runApp(t, cfg)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	assert.Empty(t, stdout)

	content, err := os.ReadFile(cfg.Input.Path)
	require.NoError(t, err)
	assert.Equal(t, dirtyCSV, string(content))
}
