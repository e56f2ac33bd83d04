package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole_Markers(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Notify(SeveritySuccess, "Product added successfully")
	c.Notify(SeverityError, "Failed to fetch products")
	c.Notify(SeverityInfo, "Logged out successfully")

	out := buf.String()
	assert.Contains(t, out, "[ok] Product added successfully")
	assert.Contains(t, out, "[!!] Failed to fetch products")
	assert.Contains(t, out, "[i] Logged out successfully")
}

func TestFunc_Adapter(t *testing.T) {
	var gotSeverity Severity
	var gotMessage string

	n := Func(func(s Severity, m string) {
		gotSeverity = s
		gotMessage = m
	})
	n.Notify(SeverityInfo, "hello")

	assert.Equal(t, SeverityInfo, gotSeverity)
	assert.Equal(t, "hello", gotMessage)
}
