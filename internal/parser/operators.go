package parser

import "strings"

// FormatOperator converts a Salesforce Flow comparison operator into the
// short human form used in condition and filter summaries. IsNull inspects
// the right-hand value because the metadata encodes "is not null" as
// IsNull=false. Unknown operators pass through verbatim.
func FormatOperator(op, right string) string {
	switch strings.TrimSpace(op) {
	case "EqualTo":
		return "="
	case "NotEqualTo":
		return "≠"
	case "GreaterThan":
		return ">"
	case "GreaterThanOrEqualTo":
		return "≥"
	case "LessThan":
		return "<"
	case "LessThanOrEqualTo":
		return "≤"
	case "Contains":
		return "contains"
	case "StartsWith":
		return "starts with"
	case "IsNull":
		switch strings.ToLower(right) {
		case "true", "1":
			return "is null"
		case "false", "0":
			return "is not null"
		}
		return "is null?"
	case "":
		return "?"
	}
	return strings.TrimSpace(op)
}

// FormatAssignmentOperator converts an assignment item operator into its
// symbolic form (Assign → "=", Add → "+=", ...). Unknown operators pass
// through verbatim.
func FormatAssignmentOperator(op string) string {
	switch op {
	case "Assign", "":
		return "="
	case "Add":
		return "+="
	case "Subtract":
		return "-="
	case "Multiply":
		return "*="
	case "Divide":
		return "/="
	}
	return op
}

// FormatCondition builds a one-line condition summary such as
// "Record.Status = Closed" or "Record.OwnerId is null".
func FormatCondition(left, op, right string) string {
	opStr := FormatOperator(op, right)
	if strings.TrimSpace(op) == "IsNull" {
		return strings.TrimSpace(left + " " + opStr)
	}
	return strings.TrimSpace(left + " " + opStr + " " + right)
}
