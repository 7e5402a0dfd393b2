// Package doctor provides health checks for the host and vpsup's own setup.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/stuffbucket/vpsup/internal/config"
	"github.com/stuffbucket/vpsup/internal/execx"
	"github.com/stuffbucket/vpsup/internal/locale"
	"github.com/stuffbucket/vpsup/internal/platform"
	"github.com/stuffbucket/vpsup/internal/sysuser"
)

// CheckStatus represents the result of a health check.
type CheckStatus int

const (
	StatusPass CheckStatus = iota
	StatusWarn
	StatusFail
	StatusSkip
)

func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "✓"
	case StatusWarn:
		return "!"
	case StatusFail:
		return "✗"
	case StatusSkip:
		return "-"
	default:
		return "?"
	}
}

// CheckResult holds the outcome of a single health check.
type CheckResult struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string // Suggested fix command or action
}

// Report holds all check results.
type Report struct {
	Results []CheckResult
	Release platform.OSRelease
}

// Run executes all health checks and returns a report. Nothing here needs
// root; checks that would are reported instead of attempted.
func Run(ctx context.Context, cfg *config.Config) *Report {
	release, _ := platform.ReadOSRelease()
	report := &Report{Release: release}

	report.Results = append(report.Results, checkPlatform())
	report.Results = append(report.Results, checkOSFamily(release))
	report.Results = append(report.Results, checkBinary("apt-get", "apt-get", "this tool only supports Debian-family hosts"))
	report.Results = append(report.Results, checkLocaleFacility())
	report.Results = append(report.Results, checkMissingLocales(ctx, cfg))
	report.Results = append(report.Results, checkSSHD())
	report.Results = append(report.Results, checkBinary("git", "git", "apt-get install -y git"))
	report.Results = append(report.Results, checkDocker(ctx))
	report.Results = append(report.Results, checkPrivilege(ctx))
	report.Results = append(report.Results, checkDirectories(cfg))

	return report
}

func checkPlatform() CheckResult {
	p := platform.Detect()
	if p == platform.Unknown {
		return CheckResult{Name: "platform", Status: StatusFail, Message: "not a Linux host"}
	}
	return CheckResult{Name: "platform", Status: StatusPass, Message: p.String()}
}

func checkOSFamily(release platform.OSRelease) CheckResult {
	if release.ID == "" {
		return CheckResult{Name: "os-release", Status: StatusWarn, Message: "could not read /etc/os-release"}
	}
	if !release.IsDebianFamily() {
		return CheckResult{
			Name:    "os-release",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s is not Debian-family", release),
		}
	}
	return CheckResult{Name: "os-release", Status: StatusPass, Message: release.String()}
}

func checkBinary(name, binary, fix string) CheckResult {
	path, err := exec.LookPath(binary)
	if err != nil {
		return CheckResult{Name: name, Status: StatusFail, Message: "not found on PATH", Fix: fix}
	}
	return CheckResult{Name: name, Status: StatusPass, Message: path}
}

func checkLocaleFacility() CheckResult {
	return checkBinary("locale", "locale", "apt-get install -y locales")
}

func checkMissingLocales(ctx context.Context, cfg *config.Config) CheckResult {
	home, _ := os.UserHomeDir()
	r := locale.NewReconciler(locale.HostSystem{}, locale.DefaultProfilePaths(home))

	result, err := r.Reconcile(ctx, cfg.Settings.ExtraLocales)
	if err != nil {
		return CheckResult{Name: "locales", Status: StatusSkip, Message: err.Error()}
	}
	if result.Empty() {
		return CheckResult{Name: "locales", Status: StatusPass, Message: "all configured locales available"}
	}
	return CheckResult{
		Name:    "locales",
		Status:  StatusWarn,
		Message: fmt.Sprintf("%d configured locale(s) missing", len(result.Missing)),
		Fix:     "vpsup locale",
	}
}

func checkSSHD() CheckResult {
	data, err := os.ReadFile("/etc/ssh/sshd_config")
	if err != nil {
		return CheckResult{Name: "sshd", Status: StatusWarn, Message: "cannot read /etc/ssh/sshd_config"}
	}
	content := string(data)

	rootLogin := sysuser.DirectiveValue(content, "PermitRootLogin")
	passwordAuth := sysuser.DirectiveValue(content, "PasswordAuthentication")
	if rootLogin != "no" || passwordAuth == "yes" || passwordAuth == "" {
		return CheckResult{
			Name:    "sshd",
			Status:  StatusWarn,
			Message: fmt.Sprintf("not hardened (PermitRootLogin=%s PasswordAuthentication=%s)", orUnset(rootLogin), orUnset(passwordAuth)),
			Fix:     "vpsup user",
		}
	}
	return CheckResult{Name: "sshd", Status: StatusPass, Message: "root login and password auth disabled"}
}

func orUnset(v string) string {
	if v == "" {
		return "unset"
	}
	return v
}

func checkDocker(ctx context.Context) CheckResult {
	if _, err := exec.LookPath("docker"); err != nil {
		return CheckResult{Name: "docker", Status: StatusWarn, Message: "not installed", Fix: "vpsup docker"}
	}
	if err := exec.CommandContext(ctx, "systemctl", "is-active", "--quiet", "docker").Run(); err != nil {
		return CheckResult{Name: "docker", Status: StatusWarn, Message: "installed but not active", Fix: "systemctl start docker"}
	}
	return CheckResult{Name: "docker", Status: StatusPass, Message: "installed and active"}
}

func checkPrivilege(ctx context.Context) CheckResult {
	if execx.IsRoot() {
		return CheckResult{Name: "privilege", Status: StatusPass, Message: "running as root"}
	}
	if execx.CanElevate(ctx) {
		return CheckResult{Name: "privilege", Status: StatusPass, Message: "passwordless sudo available"}
	}
	return CheckResult{
		Name:    "privilege",
		Status:  StatusWarn,
		Message: "not root and no passwordless sudo; mutating commands will fail",
	}
}

func checkDirectories(cfg *config.Config) CheckResult {
	if _, err := os.Stat(cfg.Dirs.Config); err != nil {
		return CheckResult{
			Name:    "directories",
			Status:  StatusWarn,
			Message: "config directory missing",
			Fix:     "vpsup config --init",
		}
	}
	return CheckResult{Name: "directories", Status: StatusPass, Message: cfg.Dirs.Config}
}

// Summary returns pass/warn/fail counts.
func (r *Report) Summary() (pass, warn, fail int) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusPass:
			pass++
		case StatusWarn:
			warn++
		case StatusFail:
			fail++
		}
	}
	return
}

// HasFailures reports whether any check failed outright.
func (r *Report) HasFailures() bool {
	for _, res := range r.Results {
		if res.Status == StatusFail {
			return true
		}
	}
	return false
}
