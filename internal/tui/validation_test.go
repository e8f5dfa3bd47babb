package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequired(t *testing.T) {
	assert.NoError(t, ValidateRequired("value"))
	assert.ErrorIs(t, ValidateRequired(""), ErrRequired)
	assert.ErrorIs(t, ValidateRequired("   "), ErrRequired)
}

func TestValidateDuration(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{input: "", wantErr: false},
		{input: "500ms", wantErr: false},
		{input: "2s", wantErr: false},
		{input: "5ms", wantErr: true},
		{input: "soon", wantErr: true},
		{input: "10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateIntRange(t *testing.T) {
	validate := ValidateIntRange(1, 32)

	assert.NoError(t, validate(""))
	assert.NoError(t, validate("1"))
	assert.NoError(t, validate("32"))
	assert.ErrorIs(t, validate("0"), ErrInvalidRange)
	assert.ErrorIs(t, validate("33"), ErrInvalidRange)
	assert.ErrorIs(t, validate("abc"), ErrInvalidNumber)
}

func TestValidateSuffixes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty", input: "", wantErr: false},
		{name: "single", input: ".md", wantErr: false},
		{name: "several with blanks", input: ".md\n\n.PDF\n", wantErr: false},
		{name: "missing dot", input: "md", wantErr: true},
		{name: "bare dot", input: ".", wantErr: true},
		{name: "multi part", input: ".tar.gz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSuffixes(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSuffix)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat("json"))
	assert.NoError(t, ValidateOutputFormat("YAML"))
	assert.Error(t, ValidateOutputFormat("xml"))
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
		assert.NoError(t, ValidateLogLevel(level), level)
	}
	assert.Error(t, ValidateLogLevel("verbose"))
}

func TestValidateLogFormat(t *testing.T) {
	assert.NoError(t, ValidateLogFormat("json"))
	assert.NoError(t, ValidateLogFormat("pretty"))
	assert.Error(t, ValidateLogFormat("xml"))
}
