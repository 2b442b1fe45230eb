package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
)

const contactsVCF = `BEGIN:VCARD
VERSION:3.0
FN:No Birthday
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Broken Date
BDAY:not-a-date
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Jane Doe
BDAY:1990-06-15
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Leap Baby
BDAY:--0229
END:VCARD
`

func TestDecodeTarget_FirstUsableBirthday(t *testing.T) {
	target, err := DecodeTarget(strings.NewReader(contactsVCF), "")
	require.NoError(t, err)
	assert.Equal(t, Target{Month: time.June, Day: 15, Name: "Jane Doe"}, target)
}

func TestDecodeTarget_ByContactName(t *testing.T) {
	target, err := DecodeTarget(strings.NewReader(contactsVCF), "  leap baby ")
	require.NoError(t, err)
	assert.Equal(t, Target{Month: time.February, Day: 29, Name: "Leap Baby"}, target)
}

func TestDecodeTarget_NoMatch(t *testing.T) {
	_, err := DecodeTarget(strings.NewReader(contactsVCF), "Nobody")
	require.Error(t, err)
	assert.Equal(t, config.ErrVCardNoBDAY, err.Error())
}

func TestDecodeTarget_StructuredNameFallback(t *testing.T) {
	vcf := "BEGIN:VCARD\nVERSION:3.0\nN:Doe;John;;;\nBDAY:19800102\nEND:VCARD\n"

	target, err := DecodeTarget(strings.NewReader(vcf), "")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", target.Name)
	assert.Equal(t, time.January, target.Month)
	assert.Equal(t, 2, target.Day)
}

func TestLoadTarget_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(contactsVCF), 0o600))

	target, err := LoadTarget(path, "")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", target.Name)

	_, err = LoadTarget(filepath.Join(t.TempDir(), "missing.vcf"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrVCardOpen)
}

func TestParseDate_TableDriven(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantMonth time.Month
		wantDay   int
		wantErr   bool
	}{
		{"ISO8601 Standard", "1990-10-25", time.October, 25, false},
		{"Basic Format", "19901025", time.October, 25, false},
		{"RFC3339", "1990-10-25T00:00:00Z", time.October, 25, false},
		{"Truncated (Month-Day)", "--10-25", time.October, 25, false},
		{"Truncated Basic", "--1025", time.October, 25, false},
		{"Truncated Leap Day", "--02-29", time.February, 29, false},
		{"Garbage Data", "not-a-date", 0, 0, true},
		{"Empty Date", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMonth, got.Month())
			assert.Equal(t, tt.wantDay, got.Day())
		})
	}
}
