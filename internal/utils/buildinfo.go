package utils

import (
	"runtime/debug"
)

// developmentVersion is reported for binaries built outside a released module.
const developmentVersion = "dev"

// GetApplicationVersion reports the module version recorded in the build
// info. The version appears in the document metadata and in --version, so a
// development build reports a stable placeholder instead of failing.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return developmentVersion
	}
	mainVersion := buildInfo.Main.Version
	if mainVersion == "" || mainVersion == "(devel)" {
		return developmentVersion
	}
	return mainVersion
}
