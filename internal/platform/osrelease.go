package platform

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// OSRelease describes the host distribution from /etc/os-release.
type OSRelease struct {
	ID       string // e.g. "debian", "ubuntu"
	IDLike   string // e.g. "debian" for derivatives
	Name     string // PRETTY_NAME
	Version  string // VERSION_ID
	Codename string // VERSION_CODENAME, used for apt sources
}

// String returns a human readable representation of the release.
func (o OSRelease) String() string {
	if o.Name != "" {
		return o.Name
	}
	return o.ID + " " + o.Version
}

// IsDebianFamily reports whether the host uses apt/dpkg style packaging.
func (o OSRelease) IsDebianFamily() bool {
	if o.ID == "debian" || o.ID == "ubuntu" {
		return true
	}
	for _, like := range strings.Fields(o.IDLike) {
		if like == "debian" || like == "ubuntu" {
			return true
		}
	}
	return false
}

// ReadOSRelease parses /etc/os-release, falling back to /usr/lib/os-release.
func ReadOSRelease() (OSRelease, error) {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		data, err = os.ReadFile("/usr/lib/os-release")
		if err != nil {
			return OSRelease{}, err
		}
	}
	return ParseOSRelease(string(data)), nil
}

// ParseOSRelease parses os-release file contents.
func ParseOSRelease(content string) OSRelease {
	var rel OSRelease
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), "=")
		if !ok {
			continue
		}
		value = unquote(value)
		switch key {
		case "ID":
			rel.ID = value
		case "ID_LIKE":
			rel.IDLike = value
		case "PRETTY_NAME":
			rel.Name = value
		case "VERSION_ID":
			rel.Version = value
		case "VERSION_CODENAME":
			rel.Codename = value
		}
	}
	return rel
}

func unquote(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s
}
