package schema

import "sort"

// Validate runs every rule against every entry of the three capability lists
// and returns the findings flat, in deterministic order: tools, prompts,
// resources, each in advertised order. Validation never mutates the snapshot,
// so running it twice yields identical findings.
func Validate(caps Capabilities) []Finding {
	var findings []Finding
	for _, tool := range caps.Tools {
		findings = append(findings, validateTool(tool)...)
	}
	for _, prompt := range caps.Prompts {
		findings = append(findings, checkFields(entryName(prompt, "name"), "", prompt, promptFieldRules)...)
	}
	for _, resource := range caps.Resources {
		findings = append(findings, checkFields(entryName(resource, "uri"), "", resource, resourceFieldRules)...)
	}
	return findings
}

func validateTool(tool map[string]interface{}) []Finding {
	subject := entryName(tool, "name")
	findings := checkFields(subject, "", tool, toolFieldRules)

	// Walk the declared input-schema properties, if the schema has any.
	inputSchema, ok := tool["inputSchema"].(map[string]interface{})
	if !ok {
		return findings
	}
	properties, ok := inputSchema["properties"].(map[string]interface{})
	if !ok {
		return findings
	}

	for _, propName := range sortedKeys(properties) {
		propDef, ok := properties[propName].(map[string]interface{})
		if !ok {
			continue
		}
		if def, present := propDef["default"]; present {
			findings = append(findings, checkDefault(subject, propName, def)...)
		}
		findings = append(findings, checkFields(subject, propName, propDef, toolPropertyFieldRules)...)
	}
	return findings
}

// sortedKeys fixes the property walk order; Go map iteration would otherwise
// make repeated validation of the same snapshot reorder its findings.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// entryName extracts the identifying field of an entry, tolerating entries
// malformed enough to lack one.
func entryName(entry map[string]interface{}, field string) string {
	if name, ok := entry[field].(string); ok && name != "" {
		return name
	}
	return "unknown"
}
