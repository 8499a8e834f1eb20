package main

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubBuildInfo(t *testing.T, preset, moduleVersion string, settings ...debug.BuildSetting) {
	t.Helper()

	prevVersion := version
	prevReader := readBuildInfo
	t.Cleanup(func() {
		version = prevVersion
		readBuildInfo = prevReader
	})

	version = preset
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{
				Path:    "github.com/satococoa/nbsetup",
				Version: moduleVersion,
			},
			Settings: settings,
		}, true
	}
}

func TestInitVersionUsesBuildInfoWhenDev(t *testing.T) {
	stubBuildInfo(t, defaultVersion, "v0.3.1")

	initVersion()

	assert.Equal(t, "v0.3.1", version)
}

func TestInitVersionIgnoresDevelVersion(t *testing.T) {
	stubBuildInfo(t, defaultVersion, "(devel)")

	initVersion()

	assert.Equal(t, defaultVersion, version)
}

func TestInitVersionRespectsPresetVersion(t *testing.T) {
	stubBuildInfo(t, "custom", "v0.3.1")

	initVersion()

	assert.Equal(t, "custom", version)
}

func TestInitVersionWithoutBuildInfo(t *testing.T) {
	stubBuildInfo(t, defaultVersion, "")
	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

	initVersion()

	assert.Equal(t, defaultVersion, version)
}

func TestInitVersionUsesRevisionForCheckoutBuilds(t *testing.T) {
	stubBuildInfo(t, defaultVersion, "(devel)",
		debug.BuildSetting{Key: "vcs.revision", Value: "4f1c2a9d0b7e5c3a"},
		debug.BuildSetting{Key: "vcs.modified", Value: "false"})

	initVersion()

	assert.Equal(t, "dev+4f1c2a9", version)
}

func TestInitVersionMarksModifiedCheckout(t *testing.T) {
	stubBuildInfo(t, defaultVersion, "",
		debug.BuildSetting{Key: "vcs.revision", Value: "4f1c2a9d0b7e5c3a"},
		debug.BuildSetting{Key: "vcs.modified", Value: "true"})

	initVersion()

	assert.Equal(t, "dev+4f1c2a9.dirty", version)
}

func TestInitVersionPrefersModuleVersionOverRevision(t *testing.T) {
	stubBuildInfo(t, defaultVersion, "v0.3.1",
		debug.BuildSetting{Key: "vcs.revision", Value: "4f1c2a9d0b7e5c3a"})

	initVersion()

	assert.Equal(t, "v0.3.1", version)
}
