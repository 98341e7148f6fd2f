package usecase

import "strings"

type commandKind int

const (
	commandNone commandKind = iota
	commandSchedule
	commandAlert
	commandDistrictHelp
	commandSetDistrict
	commandFeedback
)

func (k commandKind) String() string {
	switch k {
	case commandSchedule:
		return "schedule"
	case commandAlert:
		return "alert"
	case commandDistrictHelp:
		return "district_help"
	case commandSetDistrict:
		return "set_district"
	case commandFeedback:
		return "feedback"
	default:
		return "none"
	}
}

type command struct {
	kind commandKind
	// arg is the text following a prefix keyword, with original casing.
	arg string
}

// commandRule matches the whitespace-collapsed message (raw) and its
// lower-cased form (folded).
type commandRule struct {
	kind  commandKind
	match func(raw, folded string) (arg string, ok bool)
}

// commandRules is evaluated in order; the first match wins. Matching is by
// substring or prefix, so a question that merely mentions "vaccine" is
// captured by the schedule flow.
var commandRules = []commandRule{
	{kind: commandSchedule, match: containsAny("schedule", "vaccine")},
	{kind: commandAlert, match: equals("alert")},
	{kind: commandDistrictHelp, match: containsAny("update district", "change district")},
	{kind: commandSetDistrict, match: hasPrefix("set district")},
	{kind: commandFeedback, match: hasPrefix("feedback")},
}

func classify(text string) command {
	raw := strings.Join(strings.Fields(text), " ")
	if raw == "" {
		return command{kind: commandNone}
	}
	folded := strings.ToLower(raw)
	for _, rule := range commandRules {
		if arg, ok := rule.match(raw, folded); ok {
			return command{kind: rule.kind, arg: arg}
		}
	}
	return command{kind: commandNone}
}

func containsAny(keywords ...string) func(raw, folded string) (string, bool) {
	return func(_, folded string) (string, bool) {
		for _, k := range keywords {
			if strings.Contains(folded, k) {
				return "", true
			}
		}
		return "", false
	}
}

func equals(keyword string) func(raw, folded string) (string, bool) {
	return func(_, folded string) (string, bool) {
		return "", folded == keyword
	}
}

func hasPrefix(keyword string) func(raw, folded string) (string, bool) {
	return func(raw, _ string) (string, bool) {
		if len(raw) < len(keyword) || !strings.EqualFold(raw[:len(keyword)], keyword) {
			return "", false
		}
		return strings.TrimSpace(raw[len(keyword):]), true
	}
}
