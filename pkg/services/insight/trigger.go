package insight

import (
	"fmt"
	"strings"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
)

type conditionKind int

const (
	// condExact matches the rating name exactly.
	condExact conditionKind = iota
	// condAtMost is a "X-" suffix range: X or worse, toward critical, inclusive.
	condAtMost
	// condAtLeast is a "X+" suffix range: X or better, toward excellent, inclusive.
	condAtLeast
	// condAny fires whenever a rating exists for the KPI.
	condAny
)

type condition struct {
	kind  conditionKind
	pivot domain.Rating
}

func parseCondition(s string) (condition, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return condition{}, fmt.Errorf("empty trigger condition")
	}
	if s == "any" {
		return condition{kind: condAny}, nil
	}

	kind := condExact
	name := s
	switch {
	case strings.HasSuffix(s, "-"):
		kind = condAtMost
		name = s[:len(s)-1]
	case strings.HasSuffix(s, "+"):
		kind = condAtLeast
		name = s[:len(s)-1]
	}

	pivot, ok := domain.ParseRating(name)
	if !ok {
		return condition{}, fmt.Errorf("unknown rating %q in trigger condition %q", name, s)
	}
	return condition{kind: kind, pivot: pivot}, nil
}

func (c condition) matches(r domain.Rating) bool {
	switch c.kind {
	case condAny:
		return true
	case condAtMost:
		return r <= c.pivot
	case condAtLeast:
		return r >= c.pivot
	default:
		return r == c.pivot
	}
}

// Matches evaluates a single textual condition against a rating. Unparseable
// conditions never match.
func Matches(r domain.Rating, cond string) bool {
	c, err := parseCondition(cond)
	if err != nil {
		return false
	}
	return c.matches(r)
}

type clause struct {
	kpiID string // lowercased
	cond  condition
}

// Trigger is a parsed rule trigger: one clause for single-KPI rules, a
// conjunction for composite rules. There is no disjunction and no negation.
type Trigger struct {
	clauses []clause
}

// clauses of a composite trigger are joined by this exact literal.
const conjunction = " AND "

// ParseTrigger compiles the rule's trigger text once so it can be evaluated
// against any number of rating maps.
func ParseTrigger(rule domain.InsightRule) (Trigger, error) {
	if rule.Kind == domain.InsightComposite {
		return parseComposite(rule.Trigger)
	}
	if len(rule.KPIIDs) == 0 {
		return Trigger{}, fmt.Errorf("single insight rule without a kpi id")
	}
	cond, err := parseCondition(rule.Trigger)
	if err != nil {
		return Trigger{}, err
	}
	return Trigger{clauses: []clause{{kpiID: strings.ToLower(rule.KPIIDs[0]), cond: cond}}}, nil
}

func parseComposite(trigger string) (Trigger, error) {
	parts := strings.Split(trigger, conjunction)
	clauses := make([]clause, 0, len(parts))
	for _, part := range parts {
		kpiID, condText, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return Trigger{}, fmt.Errorf("composite clause %q is not <kpiId>:<condition>", part)
		}
		cond, err := parseCondition(condText)
		if err != nil {
			return Trigger{}, err
		}
		clauses = append(clauses, clause{kpiID: strings.ToLower(strings.TrimSpace(kpiID)), cond: cond})
	}
	if len(clauses) == 0 {
		return Trigger{}, fmt.Errorf("composite trigger %q has no clauses", trigger)
	}
	return Trigger{clauses: clauses}, nil
}

// Fires reports whether every clause holds. ratings must be keyed by
// lowercased KPI id. A clause whose KPI has no rating fails closed: the rule
// does not fire and no error is raised.
func (t Trigger) Fires(ratings map[string]domain.Rating) bool {
	if len(t.clauses) == 0 {
		return false
	}
	for _, cl := range t.clauses {
		rating, ok := ratings[cl.kpiID]
		if !ok || !cl.cond.matches(rating) {
			return false
		}
	}
	return true
}
