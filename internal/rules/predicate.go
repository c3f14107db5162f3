// Package rules holds the structural predicates applied to class descriptors.
//
// A predicate never fails with an error: it inspects the descriptor and
// returns either a Pass or a Violation carrying a complete diagnostic.
package rules

import (
	"github.com/ludo-technologies/larascan/domain"
)

// CheckFunc inspects one class. It must not retain or mutate the descriptor.
type CheckFunc func(class *domain.ClassDescriptor) domain.Outcome

// Predicate is one named convention
type Predicate struct {
	// ID is the stable rule identifier reported in diagnostics, e.g. "naming-prefix"
	ID string

	// Description is a one-line summary shown by `larascan list`
	Description string

	Check CheckFunc
}

// Evaluate applies the predicate to class. Exempt classes always pass.
func (p Predicate) Evaluate(class *domain.ClassDescriptor) domain.Outcome {
	if class == nil || class.IsExempt() {
		return domain.Pass()
	}
	return p.Check(class)
}

// Rule identifiers
const (
	RuleNamingPrefix      = "naming-prefix"
	RuleNamingSuffix      = "naming-suffix"
	RuleNamingPattern     = "naming-pattern"
	RuleRequiredProperty  = "required-property"
	RuleRequiredMethod    = "required-method"
	RuleRequiredInterface = "required-interface"
	RuleForbiddenProperty = "forbidden-property"
	RuleAllowedMethods    = "allowed-methods"
	RuleNoNonPublic       = "no-non-public-methods"
	RuleForbiddenImport   = "forbidden-dependency"
	RuleParameterContract = "parameter-contract"
	RuleNoDatabaseQueries = "no-database-queries"
	RuleForbiddenContent  = "forbidden-content"
)
