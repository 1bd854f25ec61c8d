package extract_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crisphq/crisp-backend/internal/extract"
)

const sampleResume = `Resume

Priya Sharma
Senior Backend Engineer

Contact
Email: priya.sharma@example.com
Phone: +91 98765 43210

Experience
Acme Corp, Jan 2021 - Present
Built Go microservices handling 10k rps.

Education
B.Tech Computer Science, 2016
`

func TestEmail(t *testing.T) {
	require.Equal(t, "priya.sharma@example.com", extract.Email(sampleResume))
	require.Empty(t, extract.Email("no contact details here"))
}

func TestPhone(t *testing.T) {
	tests := map[string]string{
		"+91 98765 43210":              "9876543210",
		"phone: 9876543210 available":  "9876543210",
		"call 987-654-3210 after 5pm":  "9876543210",
		"reach me at 98 76 54 32 10":   "9876543210",
		"just text, no digits at all":  "",
		"short number 12345 only":      "",
	}
	for text, want := range tests {
		require.Equal(t, want, extract.Phone(text), "input %q", text)
	}
}

func TestName(t *testing.T) {
	require.Equal(t, "Priya Sharma", extract.Name(sampleResume))
}

func TestName_SkipsHeadersAndDates(t *testing.T) {
	text := "Curriculum Vitae\nSkills Summary\nMar 2020\nJohn Ashford Doe\nEngineer"
	require.Equal(t, "John Ashford Doe", extract.Name(text))
}

func TestName_FallsBackToFirstLine(t *testing.T) {
	require.Equal(t, "x1", extract.Name("x1\nx2"))
	require.Empty(t, extract.Name("   \n  \n"))
}

func TestText_UnsupportedType(t *testing.T) {
	_, err := extract.Text([]byte("plain text"), "text/plain", "notes.txt")
	require.ErrorIs(t, err, extract.ErrUnsupportedType)
}
