package platform

import "testing"

const debianRelease = `PRETTY_NAME="Debian GNU/Linux 12 (bookworm)"
NAME="Debian GNU/Linux"
VERSION_ID="12"
VERSION="12 (bookworm)"
VERSION_CODENAME=bookworm
ID=debian
HOME_URL="https://www.debian.org/"
`

const ubuntuRelease = `PRETTY_NAME="Ubuntu 24.04.1 LTS"
NAME="Ubuntu"
VERSION_ID="24.04"
VERSION="24.04.1 LTS (Noble Numbat)"
VERSION_CODENAME=noble
ID=ubuntu
ID_LIKE=debian
`

const fedoraRelease = `NAME="Fedora Linux"
VERSION="40 (Server Edition)"
ID=fedora
VERSION_ID=40
PRETTY_NAME="Fedora Linux 40 (Server Edition)"
`

func TestParseOSRelease(t *testing.T) {
	rel := ParseOSRelease(debianRelease)

	if rel.ID != "debian" {
		t.Errorf("Expected ID debian, got %q", rel.ID)
	}
	if rel.Codename != "bookworm" {
		t.Errorf("Expected codename bookworm, got %q", rel.Codename)
	}
	if rel.Version != "12" {
		t.Errorf("Expected version 12, got %q", rel.Version)
	}
	if rel.String() != "Debian GNU/Linux 12 (bookworm)" {
		t.Errorf("Unexpected String(): %q", rel.String())
	}
}

func TestIsDebianFamily(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"debian", debianRelease, true},
		{"ubuntu", ubuntuRelease, true},
		{"fedora", fedoraRelease, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rel := ParseOSRelease(tc.content)
			if got := rel.IsDebianFamily(); got != tc.want {
				t.Errorf("IsDebianFamily() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseOSReleaseIgnoresJunk(t *testing.T) {
	rel := ParseOSRelease("garbage line\n\nID=debian\n")
	if rel.ID != "debian" {
		t.Errorf("Expected ID debian, got %q", rel.ID)
	}
}
