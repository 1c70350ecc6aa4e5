package output

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Formatter renders a Report into a document. Format has no side effects.
type Formatter interface {
	Format(report *Report) ([]byte, error)
	// Name is the canonical format name, also used as the file extension
	Name() string
}

// FormatterFunc lets a plain function act as a Formatter
type FormatterFunc struct {
	ID string
	F  func(*Report) ([]byte, error)
}

func (ff FormatterFunc) Format(r *Report) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                     { return ff.ID }

var registry = func() map[string]Formatter {
	m := map[string]Formatter{}
	for _, f := range []Formatter{ConsoleFormatter{}, CSVFormatter{}, HTMLFormatter{}, JSONFormatter{}} {
		m[f.Name()] = f
	}
	return m
}()

// synonyms accepted on the command line and in config
var synonyms = map[string]string{
	"text":        "console",
	"txt":         "console",
	"document":    "html",
	"html-report": "html",
	"json-pretty": "json",
}

// NormalizeFormatName lower-cases name and maps synonyms to canonical names
func NormalizeFormatName(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := synonyms[key]; ok {
		return canonical
	}
	return key
}

// GetFormatterByName returns the formatter for name or a synonym, nil if unknown
func GetFormatterByName(name string) Formatter {
	return registry[NormalizeFormatName(name)]
}

// ResolveFormatter is GetFormatterByName with an error listing the choices
func ResolveFormatter(name string) (Formatter, error) {
	if f := GetFormatterByName(name); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, name,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// ReportFilename returns a timestamped file name for a formatter's output
func ReportFilename(f Formatter, at time.Time) string {
	return fmt.Sprintf("payout_report_%s.%s", at.Format("20060102_150405"), Extension(f.Name()))
}

// Extension returns the file extension for a format name
func Extension(name string) string {
	switch canonical := NormalizeFormatName(name); canonical {
	case "console":
		return "txt"
	case "":
		return "out"
	default:
		return canonical
	}
}

// ContentType returns the MIME type for a format name
func ContentType(name string) string {
	switch NormalizeFormatName(name) {
	case "json":
		return "application/json"
	case "csv":
		return "text/csv"
	case "html":
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// AvailableFormatterNames lists canonical names in sorted order
func AvailableFormatterNames() []string {
	return sortedKeys(registry)
}

// AvailableFormatAliases lists accepted synonyms in sorted order
func AvailableFormatAliases() []string {
	return sortedKeys(synonyms)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
