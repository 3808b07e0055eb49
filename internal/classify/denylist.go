package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Signature is one denylist entry: a substring that marks a process name as
// suspicious, plus a human-readable label for the report. Matching is a
// deliberately conservative case-insensitive substring test; false positives
// are acceptable, missed malware is not.
type Signature struct {
	Term  string `yaml:"term"`
	Label string `yaml:"label,omitempty"`
}

// defaultSignatures is the built-in process-name denylist.
var defaultSignatures = []Signature{
	{Term: "miner", Label: "cryptominer"},
	{Term: "crypto", Label: "cryptominer"},
	{Term: "hack", Label: "hacktool"},
	{Term: "keylog", Label: "keylogger"},
	{Term: "trojan", Label: "trojan"},
	{Term: "rat", Label: "remote access tool"},
	{Term: "backdoor", Label: "backdoor"},
}

// Denylist matches process names against suspicious-name signatures.
type Denylist struct {
	signatures []Signature
}

// DefaultDenylist returns the built-in signature set.
func DefaultDenylist() Denylist {
	signatures := make([]Signature, len(defaultSignatures))
	copy(signatures, defaultSignatures)
	return Denylist{signatures: signatures}
}

// Extend appends plain substring terms (from config or flags) to the list.
// Empty or whitespace-only terms are ignored.
func (d *Denylist) Extend(terms []string) {
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		d.signatures = append(d.signatures, Signature{Term: term})
	}
}

// signatureFile is the YAML layout for user-supplied signature sets.
type signatureFile struct {
	Signatures []Signature `yaml:"signatures"`
}

// LoadSignatureFile appends signatures from a YAML file.
func (d *Denylist) LoadSignatureFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read signature file: %w", err)
	}

	var file signatureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse signature file %s: %w", path, err)
	}

	for _, sig := range file.Signatures {
		if strings.TrimSpace(sig.Term) == "" {
			return fmt.Errorf("signature file %s: entry with empty term", path)
		}
		d.signatures = append(d.signatures, sig)
	}

	return nil
}

// Match reports whether the process name contains any denylisted term,
// case-insensitively, returning the first matching signature.
func (d Denylist) Match(processName string) (Signature, bool) {
	lower := strings.ToLower(processName)
	if lower == "" {
		return Signature{}, false
	}
	for _, sig := range d.signatures {
		if strings.Contains(lower, strings.ToLower(sig.Term)) {
			return sig, true
		}
	}
	return Signature{}, false
}

// Len returns the number of signatures in the list.
func (d Denylist) Len() int {
	return len(d.signatures)
}
