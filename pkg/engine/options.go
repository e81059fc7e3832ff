package engine

import (
	"fmt"
	"strings"
)

// Mode selects how strictly document-level requirements are enforced.
type Mode string

const (
	// ModeStandard applies the rule set as documented on Validate.
	ModeStandard Mode = "standard"
	// ModeStrict additionally expects FormWidth and Layout.
	ModeStrict Mode = "strict"
	// ModePermissive downgrades a missing MenuID or Label to a warning.
	ModePermissive Mode = "permissive"
)

// ParseMode maps a user-supplied string onto a Mode. Empty input yields
// ModeStandard.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeStandard:
		return ModeStandard, nil
	case ModeStrict:
		return ModeStrict, nil
	case ModePermissive:
		return ModePermissive, nil
	default:
		return "", fmt.Errorf("engine: unknown mode %q (supported: standard, strict, permissive)", raw)
	}
}

const (
	defaultMaxTopLevelFields = 50
	defaultMaxLookupFields   = 5
)

// Options configures a validation run. The zero value validates in standard
// mode without producing a fixed document.
type Options struct {
	// AutoFix requests a corrected copy of the document in Report.FixedDocument.
	AutoFix bool
	Mode    Mode
	// MaxTopLevelFields is the field count above which pagination is
	// suggested. Zero selects 50.
	MaxTopLevelFields int
	// MaxLookupFields is the lookup count above which lazy loading is
	// suggested. Zero selects 5.
	MaxLookupFields int
	// IDs generates replacement identifiers. Nil selects the time-ordered
	// UUID generator.
	IDs IDGenerator
}

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModeStandard
	}
	if o.MaxTopLevelFields <= 0 {
		o.MaxTopLevelFields = defaultMaxTopLevelFields
	}
	if o.MaxLookupFields <= 0 {
		o.MaxLookupFields = defaultMaxLookupFields
	}
	if o.IDs == nil {
		o.IDs = UUIDGenerator{}
	}
	return o
}
