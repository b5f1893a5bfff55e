package version

// These variables are overridden at build time using -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// BuildInfo is the build metadata served by the API and printed by the CLIs.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Dirty   bool   `json:"dirty"`
}

func Info() BuildInfo {
	return BuildInfo{Version: Version, Commit: Commit, Date: Date, Dirty: Dirty == "true"}
}

// String renders "version (commit)" with a dirty marker when relevant.
func (b BuildInfo) String() string {
	s := b.Version + " (" + b.Commit + ")"
	if b.Dirty {
		s += " dirty"
	}
	return s
}
