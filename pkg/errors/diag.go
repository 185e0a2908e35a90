package errors

import "fmt"

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// DiagKind identifies the non-fatal conditions recorded during resolution.
type DiagKind string

const (
	// DiagConflictingDeclaration records a lower-priority source declaring a
	// value for a field already resolved by a higher-priority source.
	DiagConflictingDeclaration DiagKind = "conflicting-declaration"

	// DiagDanglingInclude records a missing file in a requirements include
	// chain. The include expands to nothing and resolution continues.
	DiagDanglingInclude DiagKind = "dangling-include"

	// DiagCyclicInclude records an include chain that reached a file already
	// expanded. The chain is truncated at the repeat.
	DiagCyclicInclude DiagKind = "cyclic-include"

	// DiagMalformedLine records a requirement line matching no recognized
	// dialect form. The line is dropped, never an error.
	DiagMalformedLine DiagKind = "malformed-line"
)

// Diagnostic is one non-fatal observation from a resolution run.
type Diagnostic struct {
	Kind     Severity `json:"severity" yaml:"severity"`
	Code     DiagKind `json:"code" yaml:"code"`
	Message  string   `json:"message" yaml:"message"`
	Subject  string   `json:"subject,omitempty" yaml:"subject,omitempty"`   // field name or file path
	Location string   `json:"location,omitempty" yaml:"location,omitempty"` // origin file, if known
}

// String renders the diagnostic as a single log-friendly line.
func (d Diagnostic) String() string {
	if d.Subject != "" {
		return fmt.Sprintf("%s [%s] %s: %s", d.Kind, d.Code, d.Subject, d.Message)
	}
	return fmt.Sprintf("%s [%s] %s", d.Kind, d.Code, d.Message)
}

// Diagnostics accumulates non-fatal observations. The zero value is ready to
// use. It is not safe for concurrent use; each resolution run owns its own.
type Diagnostics struct {
	items []Diagnostic
}

// Add appends a diagnostic.
func (ds *Diagnostics) Add(d Diagnostic) {
	ds.items = append(ds.items, d)
}

// Warnf records a warning-level diagnostic with a formatted message.
func (ds *Diagnostics) Warnf(code DiagKind, subject, format string, args ...any) {
	ds.Add(Diagnostic{Kind: SeverityWarning, Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// Infof records an info-level diagnostic with a formatted message.
func (ds *Diagnostics) Infof(code DiagKind, subject, format string, args ...any) {
	ds.Add(Diagnostic{Kind: SeverityInfo, Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// Merge appends every diagnostic from other.
func (ds *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	ds.items = append(ds.items, other.items...)
}

// All returns the recorded diagnostics in order.
func (ds *Diagnostics) All() []Diagnostic {
	return ds.items
}

// Count returns how many diagnostics of the given kind were recorded.
func (ds *Diagnostics) Count(code DiagKind) int {
	n := 0
	for _, d := range ds.items {
		if d.Code == code {
			n++
		}
	}
	return n
}

// Len returns the total number of diagnostics.
func (ds *Diagnostics) Len() int {
	return len(ds.items)
}
