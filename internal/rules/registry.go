package rules

import "github.com/pthm/ideadensity/internal/engine"

// DefaultRegistry returns a registry with all default rulesets
func DefaultRegistry() *engine.Registry {
	r := engine.NewRegistry()

	// Register atomic rulesets
	r.Register(&AuxRuleset{})
	r.Register(&CopRuleset{})
	r.Register(&CcRuleset{})
	r.Register(&MarkRuleset{})
	r.Register(&CaseRuleset{})
	r.Register(&PrtRuleset{})
	r.Register(&PossessiveRuleset{})
	r.Register(&ExplRuleset{})
	r.Register(&PreconjRuleset{})
	r.Register(&PunctRuleset{})
	r.Register(&NumberRuleset{})
	r.Register(&FixedRuleset{})
	r.Register(&NegRuleset{})
	r.Register(&DiscourseRuleset{})

	// Register determiner and quantifier rulesets
	r.Register(&DeterminerRuleset{})
	r.Register(&QuantmodRuleset{})
	r.Register(&NumeralRuleset{})

	// Register phrase rulesets
	r.Register(&AdjectivalRuleset{})
	r.Register(&AdverbialRuleset{})
	r.Register(&NounPhraseRuleset{})
	r.Register(&CompoundNameRuleset{})
	r.Register(&NmodRuleset{})
	r.Register(&WhatRuleset{})
	r.Register(&PrepRuleset{})

	// Register clause rulesets
	r.Register(&RootRuleset{})
	r.Register(&ComplementClauseRuleset{})
	r.Register(&AdverbialClauseRuleset{})
	r.Register(&RelativeClauseRuleset{})
	r.Register(&ConjRuleset{})

	return r
}
