package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var out bytes.Buffer
	Setup(Config{LogLevel: "warn"}, &out)
	t.Cleanup(func() { Setup(NewConfig(), nil) })

	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	assert.NotContains(t, out.String(), "hidden 1")
	assert.Contains(t, out.String(), "shown 2")
}

func TestTagFiltering(t *testing.T) {
	var out bytes.Buffer
	Setup(Config{LogLevel: "debug", DisabledTags: []string{"Noisy"}}, &out)
	t.Cleanup(func() { Setup(NewConfig(), nil) })

	DebugTagf("noisy", "dropped")
	DebugTagf("search", "kept")

	assert.NotContains(t, out.String(), "dropped")
	assert.Contains(t, out.String(), "kept")
	assert.Contains(t, out.String(), "tag=search")
}

func TestEnabledTagsDropUntagged(t *testing.T) {
	var out bytes.Buffer
	Setup(Config{LogLevel: "debug", EnabledTags: []string{"fold"}}, &out)
	t.Cleanup(func() { Setup(NewConfig(), nil) })

	Debugf("untagged")
	DebugTagf("fold", "tagged")

	assert.NotContains(t, out.String(), "untagged")
	assert.Contains(t, out.String(), "tagged")
}

func TestPackageFiltering(t *testing.T) {
	var out bytes.Buffer
	Setup(Config{LogLevel: "debug", DisabledPackages: []string{"logger"}}, &out)
	t.Cleanup(func() { Setup(NewConfig(), nil) })

	Debugf("from the logger package")
	assert.Empty(t, out.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", ParseLevel("debug").String())
	assert.Equal(t, "WARN", ParseLevel("Warning").String())
	assert.Equal(t, "ERROR", ParseLevel("err").String())
	assert.Equal(t, "INFO", ParseLevel("bogus").String())
}
