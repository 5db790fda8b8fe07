package calllog

import "strings"

// Severity — уровень, на котором вызов передаётся во внешний логгер.
type Severity uint8

const (
	SeverityError Severity = iota + 1
	SeverityDebug
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// ParseSeverity — обратное к String; регистр и пробелы не важны, "err", "dbg", "inf" тоже принимаются.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "err":
		return SeverityError, true
	case "debug", "dbg":
		return SeverityDebug, true
	case "info", "inf":
		return SeverityInfo, true
	default:
		return 0, false
	}
}
