package schema

import "fmt"

// Severity classifies a finding. Blocking findings are shapes known to make
// the downstream client reject or disable the server; advisory findings are
// undesirable but survivable.
type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityAdvisory Severity = "advisory"
)

// Finding is one schema defect: which entry, optionally which property of it,
// and why. Findings are never mutated after creation.
type Finding struct {
	Severity Severity `json:"severity"`
	Subject  string   `json:"subject"`            // entry name or resource uri
	Property string   `json:"property,omitempty"` // property path within the entry, if any
	Message  string   `json:"message"`
}

// String renders the finding the way the report prints it.
func (f Finding) String() string {
	if f.Property != "" {
		return fmt.Sprintf("%s.%s: %s", f.Subject, f.Property, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Subject, f.Message)
}

// Capabilities holds the three advertised lists from one session. Entries are
// kept as generic maps: the linter's whole purpose is to catch shapes a typed
// struct could not even represent.
type Capabilities struct {
	Tools     []map[string]interface{}
	Prompts   []map[string]interface{}
	Resources []map[string]interface{}
}

// HasBlocking reports whether any finding is blocking; this decides the
// overall run outcome. Advisory-only runs succeed.
func HasBlocking(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityBlocking {
			return true
		}
	}
	return false
}

// Count returns the number of blocking and advisory findings.
func Count(findings []Finding) (blocking, advisory int) {
	for _, f := range findings {
		if f.Severity == SeverityBlocking {
			blocking++
		} else {
			advisory++
		}
	}
	return blocking, advisory
}
