package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		raw  string
		want Identifier
	}{
		{"de_AT.UTF-8", "de_at.utf8"},
		{"DE_AT.utf8", "de_at.utf8"},
		{"de_at.utf8", "de_at.utf8"},
		{`"en_US.UTF-8"`, "en_us.utf8"},
		{`en_GB.UTF-8"`, "en_gb.utf8"},
		{"C", "c"},
		{"POSIX", "posix"},
		{"C.UTF-8", "c.utf8"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Canonicalize(tc.raw), "Canonicalize(%q)", tc.raw)
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []string{"de_AT.UTF-8", `"fr_FR.UTF-8"`, "C", "en_us.utf8", "sr_RS.UTF-8@latin"}
	for _, raw := range inputs {
		once := Canonicalize(raw)
		assert.Equal(t, once, Canonicalize(string(once)), "Canonicalize not idempotent for %q", raw)
	}
}

func TestIsSpecial(t *testing.T) {
	assert.True(t, IsSpecial(Canonicalize("C")))
	assert.True(t, IsSpecial(Canonicalize("POSIX")))
	assert.True(t, IsSpecial(Canonicalize("posix")))
	assert.False(t, IsSpecial(Canonicalize("de_AT.UTF-8")))
	assert.False(t, IsSpecial(Canonicalize("C.UTF-8")))
}

func TestSetDedupAndOrder(t *testing.T) {
	s := NewSet()
	s.Add("en_US.UTF-8")
	s.Add("de_AT.UTF-8")
	s.Add("EN_US.utf8") // duplicate after canonicalization
	s.Add("")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []Identifier{"de_at.utf8", "en_us.utf8"}, s.Identifiers())
	assert.True(t, s.Contains("en_us.utf8"))
	assert.False(t, s.Contains("en_US.UTF-8"))
}

func TestDiff(t *testing.T) {
	configured := NewSet()
	configured.Add("de_AT.UTF-8")
	configured.Add("C")
	configured.Add("en_US.UTF-8")

	available := NewSet()
	available.Add("en_us.utf8")

	missing := Diff(configured, available)
	assert.Equal(t, []Identifier{"de_at.utf8"}, missing)
}

func TestDiffIsSubsetOfConfigured(t *testing.T) {
	configured := NewSet()
	for _, id := range []string{"aa_AA.UTF-8", "bb_BB.UTF-8", "POSIX", "cc_CC"} {
		configured.Add(id)
	}
	available := NewSet()
	available.Add("bb_bb.utf8")

	missing := Diff(configured, available)
	for _, id := range missing {
		assert.True(t, configured.Contains(id), "%q not in configured set", id)
		assert.False(t, IsSpecial(id), "special locale %q in missing set", id)
		assert.False(t, available.Contains(id), "%q is available but reported missing", id)
	}
	assert.Equal(t, []Identifier{"aa_aa.utf8", "cc_cc"}, missing)
}

func TestDiffNothingMissing(t *testing.T) {
	configured := NewSet()
	configured.Add("en_US.UTF-8")
	configured.Add("C")

	available := NewSet()
	available.Add("en_US.utf8")

	assert.Empty(t, Diff(configured, available))
}
