package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))

	got, err := GetSimpleText(reader, "Enter value:", &out)

	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Contains(t, out.String(), "Enter value:")
}

func TestGetSimpleText_EOFReturnsPartialLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("partial"))

	got, err := GetSimpleText(reader, "Enter value:", &out)

	require.NoError(t, err)
	assert.Equal(t, "partial", got)
}

func TestGetOptionalText_EmptyKeepsCurrent(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("\n"))

	got, err := GetOptionalText(reader, "Name", "widget", &out)

	require.NoError(t, err)
	assert.Equal(t, "widget", got)
	assert.Contains(t, out.String(), "widget")
}

func TestGetOptionalText_AnswerOverridesCurrent(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("gadget\n"))

	got, err := GetOptionalText(reader, "Name", "widget", &out)

	require.NoError(t, err)
	assert.Equal(t, "gadget", got)
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	got, err := GetPassword(&out)

	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), got)
	assert.Contains(t, out.String(), "password")
}
