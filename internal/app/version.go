package app

import "github.com/tmokveld/theseus-lib/internal/version"

func versionString() string { return version.Version }
