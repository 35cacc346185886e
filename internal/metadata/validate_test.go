// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

func TestBoundedString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "empty", in: ""},
		{name: "short", in: "Nonlinear Dynamics of Coupled Oscillators"},
		{name: "exactly 1000", in: strings.Repeat("a", 1000)},
		{name: "1000 multibyte characters", in: strings.Repeat("あ", 1000)},
		{name: "1001 characters", in: strings.Repeat("a", 1001), wantErr: true},
		{name: "newline", in: "line one\nline two", wantErr: true},
		{name: "short with trailing newline", in: "x\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BoundedString(tt.in)
			if tt.wantErr {
				var verr *ValidationError
				require.Error(t, err)
				assert.True(t, errors.As(err, &verr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, got)
		})
	}
}

func TestBoundedText(t *testing.T) {
	got, err := BoundedText("first paragraph\nsecond\n")
	require.NoError(t, err)
	assert.Equal(t, "first paragraph<br>second<br>", got)

	got, err = BoundedText(strings.Repeat("b", 10000))
	require.NoError(t, err)
	assert.Len(t, got, 10000)

	_, err = BoundedText(strings.Repeat("b", 10001))
	assert.Error(t, err)
}

func TestIdentifier(t *testing.T) {
	valid := []string{"A2L", "A2L21", "L-B1", "1.2/3", "x", strings.Repeat("Z", 100)}
	for _, s := range valid {
		got, err := Identifier(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, got)
	}

	invalid := []string{"", "A2L 1", "A_2", "S3#", "Ａ1", strings.Repeat("Z", 101)}
	for _, s := range invalid {
		_, err := Identifier(s)
		var verr *ValidationError
		require.Error(t, err, s)
		assert.True(t, errors.As(err, &verr), s)
		assert.Equal(t, "identifier", verr.Kind)
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "http://example.org"},
		{in: "https://nolta.example.org/2024/"},
		{in: "ftp://x.com", wantErr: true},
		{in: "example.org", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := URL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-03-05", FormatDate(types.NewDate(2024, time.March, 5)))
}

func TestComment(t *testing.T) {
	for _, c := range []string{"", "#"} {
		_, err := Comment(c)
		assert.NoError(t, err)
	}
	_, err := Comment("//")
	assert.Error(t, err)
}

func TestValidationErrorMessageTruncatesValue(t *testing.T) {
	_, err := BoundedString(strings.Repeat("q", 2000))
	require.Error(t, err)
	assert.Less(t, len(err.Error()), 200)
	assert.Contains(t, err.Error(), "too long")
}
