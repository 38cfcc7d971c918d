package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	saved := Version
	defer func() { Version = saved }()

	Version = "v1.2.3"
	if got := Short(); got != "v1.2.3" {
		t.Errorf("Short() = %q, want %q", got, "v1.2.3")
	}
}

func TestInfo(t *testing.T) {
	savedVersion, savedCommit, savedTime := Version, CommitSHA, BuildTime
	defer func() { Version, CommitSHA, BuildTime = savedVersion, savedCommit, savedTime }()

	Version, CommitSHA, BuildTime = "v1.2.3", "abc1234", "2025-03-01T10:00:00Z"
	info := Info()

	for _, want := range []string{"runway v1.2.3", "commit: abc1234", "built:  2025-03-01T10:00:00Z", runtime.Version()} {
		if !strings.Contains(info, want) {
			t.Errorf("Info() = %q, missing %q", info, want)
		}
	}
}
