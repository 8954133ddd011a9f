package version

import (
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "", ""
	fromBuildInfo(map[string]string{
		"vcs.revision": "0123456789abcdef",
		"vcs.modified": "true",
		"vcs.time":     "2025-03-04T10:00:00Z",
	})

	if Commit != "0123456-dirty" {
		t.Errorf("Commit = %q, want 0123456-dirty", Commit)
	}
	if Version != "dev-20250304" {
		t.Errorf("Version = %q, want dev-20250304", Version)
	}
}

func TestFromBuildInfo_KeepsLdflags(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "v1.0.0", "abc1234"
	fromBuildInfo(map[string]string{"vcs.revision": "ffffffffff"})

	if Version != "v1.0.0" || Commit != "abc1234" {
		t.Errorf("ldflags values overwritten: %s %s", Version, Commit)
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, "geoadmin/"+Version) {
		t.Errorf("UserAgent() = %q", ua)
	}
	if !strings.Contains(Full(), "commit: "+Commit) {
		t.Errorf("Full() = %q", Full())
	}
}
