package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
)

const testConfig = `target:
  month: 6
  day: 15
  name: Alice
sound:
  enabled: false
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))
	return path
}

// execute runs the command tree at a fixed instant and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := &cli{
		interactive: func() bool { return false },
		now: func() time.Time {
			return time.Date(2024, time.December, 15, 10, 0, 0, 0, time.UTC)
		},
	}
	defer c.close()

	out := new(bytes.Buffer)
	root := c.rootCommand()
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStatus_FromConfigFile(t *testing.T) {
	cfg := writeFile(t, "config.yaml", testConfig)

	out, err := execute(t, config.CmdUseStatus, "--config", cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "June 15, 2025")
	assert.Contains(t, out, "181 Days 14 Hours 00 Minutes 00 Seconds")
	assert.Contains(t, out, "50%")
	assert.NotContains(t, out, "Happy Birthday")
}

func TestStatus_FlagsOverrideConfig(t *testing.T) {
	cfg := writeFile(t, "config.yaml", testConfig)

	out, err := execute(t, config.CmdUseStatus, "--config", cfg, "--name", "Bob", "--lang", "fr")
	require.NoError(t, err)

	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "15 juin 2025")
	assert.Contains(t, out, "Temps restant")
}

func TestStatus_Today(t *testing.T) {
	cfg := writeFile(t, "config.yaml", testConfig)

	out, err := execute(t, config.CmdUseStatus, "--config", cfg, "--month", "12", "--day", "15")
	require.NoError(t, err)

	assert.Contains(t, out, "Happy Birthday Alice!")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "December 15, 2025")
}

func TestStatus_FromVCard(t *testing.T) {
	cfg := writeFile(t, "config.yaml", testConfig)
	card := writeFile(t, "people.vcf", "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Carol\r\nBDAY:1990-03-02\r\nEND:VCARD\r\n")

	out, err := execute(t, config.CmdUseStatus, "--config", cfg, "--vcard", card)
	require.NoError(t, err)

	assert.Contains(t, out, "Carol")
	assert.Contains(t, out, "March 2, 2025")
}

func TestStatus_InvalidDate(t *testing.T) {
	cfg := writeFile(t, "config.yaml", testConfig)

	_, err := execute(t, config.CmdUseStatus, "--config", cfg, "--month", "4", "--day", "31")
	assert.EqualError(t, err, config.ErrDayRange)
}

func TestStatus_MissingConfigFile(t *testing.T) {
	_, err := execute(t, config.CmdUseStatus, "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrConfigRead)
}

func TestExport_WritesCalendar(t *testing.T) {
	cfg := writeFile(t, "config.yaml", testConfig)
	dest := filepath.Join(t.TempDir(), "alice.ics")

	out, err := execute(t, config.CmdUseExport, "--config", cfg, "-o", dest, "--reminder", "-P1D")
	require.NoError(t, err)
	assert.Contains(t, out, dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Alice's birthday")
	assert.Contains(t, string(data), "20250615")
	assert.Contains(t, string(data), "-P1D")
}

func TestTUI_RequiresTerminal(t *testing.T) {
	_, err := execute(t, config.CmdUseTUI)
	assert.EqualError(t, err, config.ErrNotTerminal)
}

func TestVersion(t *testing.T) {
	for _, args := range [][]string{{config.CmdUseVersion}, {"--" + config.FlagVersion}} {
		out, err := execute(t, args...)
		require.NoError(t, err)
		assert.Contains(t, out, config.AppName+" version "+config.Version)
	}
}
