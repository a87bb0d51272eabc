package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rockbuild/internal/adapters/detector"
)

func TestDetectLogFormat(t *testing.T) {
	tests := []struct {
		name    string
		ciValue string
	}{
		{name: "CI=true forces json", ciValue: "true"},
		{name: "CI=1 forces json", ciValue: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ciValue)
			assert.Equal(t, detector.FormatJSON, detector.DetectLogFormat())
		})
	}
}

func TestResolveLogFormat(t *testing.T) {
	tests := []struct {
		name     string
		auto     detector.LogFormat
		flag     string
		expected detector.LogFormat
	}{
		{name: "pretty overrides json", auto: detector.FormatJSON, flag: "pretty", expected: detector.FormatPretty},
		{name: "text is an alias of pretty", auto: detector.FormatJSON, flag: "text", expected: detector.FormatPretty},
		{name: "json overrides pretty", auto: detector.FormatPretty, flag: "json", expected: detector.FormatJSON},
		{name: "auto keeps detection", auto: detector.FormatPretty, flag: "auto", expected: detector.FormatPretty},
		{name: "empty keeps detection", auto: detector.FormatJSON, flag: "", expected: detector.FormatJSON},
		{name: "unknown keeps detection", auto: detector.FormatPretty, flag: "xml", expected: detector.FormatPretty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.ResolveLogFormat(tt.auto, tt.flag))
		})
	}
}
