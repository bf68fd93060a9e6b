package schema

import "fmt"

// The rule set is data-driven: each table row pairs a shape predicate with a
// severity and message so individual rules stay independently testable. Rules
// run per entry, in table order, with no evaluation-order dependencies.

type fieldKind int

const (
	kindString fieldKind = iota
	kindList
)

func (k fieldKind) String() string {
	if k == kindList {
		return "an array"
	}
	return "a string"
}

// fieldRule checks one field of a capability entry: optionally that it is
// present at all, and that when present it has the expected JSON kind.
type fieldRule struct {
	field    string
	kind     fieldKind
	required bool
	severity Severity
}

var toolFieldRules = []fieldRule{
	{field: "description", kind: kindString, severity: SeverityBlocking},
}

var toolPropertyFieldRules = []fieldRule{
	{field: "description", kind: kindString, severity: SeverityBlocking},
}

var promptFieldRules = []fieldRule{
	{field: "description", kind: kindString, severity: SeverityBlocking},
	{field: "arguments", kind: kindList, severity: SeverityBlocking},
}

var resourceFieldRules = []fieldRule{
	{field: "uri", kind: kindString, required: true, severity: SeverityBlocking},
	{field: "name", kind: kindString, required: true, severity: SeverityBlocking},
	{field: "mimeType", kind: kindString, required: true, severity: SeverityBlocking},
}

// defaultRule flags pathological `default` values on input-schema properties.
type defaultRule struct {
	severity Severity
	applies  func(def interface{}) bool
	message  func(def interface{}) string
}

var defaultRules = []defaultRule{
	{
		severity: SeverityAdvisory,
		applies: func(def interface{}) bool {
			list, ok := def.([]interface{})
			return ok && len(list) == 0
		},
		message: func(interface{}) string {
			return "'default' is an empty array - should be null or omitted"
		},
	},
	{
		// A list whose first element is the literal "c" is the fingerprint of
		// an unevaluated R c() call leaking through serialization.
		severity: SeverityBlocking,
		applies: func(def interface{}) bool {
			list, ok := def.([]interface{})
			return ok && len(list) > 0 && list[0] == "c"
		},
		message: func(def interface{}) string {
			return fmt.Sprintf("'default' contains a malformed array (R c() serialization artifact): %v", def)
		},
	},
}

// checkFields applies a field-rule table to one entry.
func checkFields(subject, property string, entry map[string]interface{}, rules []fieldRule) []Finding {
	var findings []Finding
	for _, r := range rules {
		value, present := entry[r.field]
		if !present {
			if r.required {
				findings = append(findings, Finding{
					Severity: r.severity,
					Subject:  subject,
					Property: propertyPath(property, r.field),
					Message:  fmt.Sprintf("missing required field '%s'", r.field),
				})
			}
			continue
		}
		if !kindMatches(value, r.kind) {
			findings = append(findings, Finding{
				Severity: r.severity,
				Subject:  subject,
				Property: propertyPath(property, r.field),
				Message:  fmt.Sprintf("'%s' must be %s, got %s", r.field, r.kind, jsonKind(value)),
			})
		}
	}
	return findings
}

// checkDefault applies the default-value rule table to one property schema.
func checkDefault(subject, property string, def interface{}) []Finding {
	var findings []Finding
	for _, r := range defaultRules {
		if r.applies(def) {
			findings = append(findings, Finding{
				Severity: r.severity,
				Subject:  subject,
				Property: property,
				Message:  r.message(def),
			})
		}
	}
	return findings
}

func kindMatches(value interface{}, kind fieldKind) bool {
	switch kind {
	case kindList:
		_, ok := value.([]interface{})
		return ok
	default:
		_, ok := value.(string)
		return ok
	}
}

// jsonKind names the JSON type of a decoded value for diagnostics.
func jsonKind(value interface{}) string {
	switch value.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// propertyPath names the location of a finding: the property being inspected
// when there is one (the message already names the offending field), or the
// field itself for entry-level checks.
func propertyPath(property, field string) string {
	if property != "" {
		return property
	}
	return field
}
