package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Valores padrão (sobrescritos por ldflags ou por build info)
var Version = "0.0.0-dev"
var Commit = ""
var BuildTime = ""

const devVersion = "0.0.0-dev"

// buildInfo é o que interessa das configurações vcs.* embutidas pelo Go.
type buildInfo struct {
	version   string
	commit    string
	buildTime string
}

// fromSettings lê vcs.revision, vcs.time, vcs.modified e vcs.tag.
func fromSettings(settings []debug.BuildSetting) buildInfo {
	get := func(key string) string {
		for _, s := range settings {
			if s.Key == key {
				return s.Value
			}
		}
		return ""
	}

	var bi buildInfo
	if rev := get("vcs.revision"); len(rev) >= 7 {
		bi.commit = rev[:7]
	}
	if ts, err := time.Parse(time.RFC3339, get("vcs.time")); err == nil {
		bi.buildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
	}
	if tag := strings.TrimPrefix(get("vcs.tag"), "v"); tag != "" {
		bi.version = tag
		if strings.EqualFold(get("vcs.modified"), "true") {
			bi.version += "-dirty"
		}
	}
	return bi
}

// apply preenche apenas os campos que o ldflags deixou vazios.
func (bi buildInfo) apply() {
	if Version != "" && Version != devVersion {
		return
	}
	if Commit == "" {
		Commit = bi.commit
	}
	if BuildTime == "" {
		BuildTime = bi.buildTime
	}
	if bi.version != "" {
		Version = bi.version
	}
}

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		fromSettings(bi.Settings).apply()
	}
}

// FormatVersion retorna a versão formatada com commit e build time.
// Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = devVersion
	}
	switch {
	case Commit == "" && BuildTime == "":
		return fmt.Sprintf("%s (development)", ver)
	case Commit == "":
		return fmt.Sprintf("%s (built at: %s)", ver, BuildTime)
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	}
	return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
}
