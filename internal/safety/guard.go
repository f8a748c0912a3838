// Package safety classifies raw queries before any retrieval or generation
// runs. Classification is a pure function of the query text: case-insensitive
// substring matching against keyword tiers evaluated in strict priority order.
package safety

import "strings"

// Category is the safety classification of a query.
type Category string

const (
	// CategorySafe allows retrieval and generation to proceed normally.
	CategorySafe Category = "SAFE"
	// CategorySensitive allows retrieval and generation but tightens the
	// generation instruction with an extra caution clause.
	CategorySensitive Category = "SENSITIVE"
	// CategoryUnsafe short-circuits the pipeline with an advisory message.
	CategoryUnsafe Category = "UNSAFE"
	// CategoryBlocked short-circuits the pipeline with the emergency message.
	CategoryBlocked Category = "BLOCKED"
)

// Classification is the outcome of classifying a query. Message is set for
// every non-SAFE category; for BLOCKED and UNSAFE it becomes the final answer.
type Classification struct {
	Category Category
	Message  string
}

// IsUnsafe reports whether the classification short-circuits the pipeline.
// SENSITIVE is advisory only: it proceeds to retrieval and generation.
func (c Classification) IsUnsafe() bool {
	return c.Category == CategoryUnsafe || c.Category == CategoryBlocked
}

const blockedMessage = "I cannot assist with this query. If you are in distress, please contact emergency services."

const sensitiveMessage = "This topic benefits from extra care; the answer below sticks strictly to the knowledge base."

// Guard matches queries against keyword tiers. It holds no mutable state and
// is safe for concurrent use.
type Guard struct {
	keywords Keywords
}

// New creates a Guard with the built-in keyword lists.
func New() *Guard {
	return &Guard{keywords: defaultKeywords()}
}

// NewWithKeywords creates a Guard with custom keyword lists. Empty tiers fall
// back to the built-in lists so a partial override file stays safe.
func NewWithKeywords(kw Keywords) *Guard {
	defaults := defaultKeywords()
	if len(kw.Critical) == 0 {
		kw.Critical = defaults.Critical
	}
	if len(kw.Pregnancy) == 0 {
		kw.Pregnancy = defaults.Pregnancy
	}
	if len(kw.Medical) == 0 {
		kw.Medical = defaults.Medical
	}
	if len(kw.Sensitive) == 0 {
		kw.Sensitive = defaults.Sensitive
	}
	return &Guard{keywords: kw}
}

// Classify analyzes the query. Tiers are checked in priority order because the
// keyword sets can overlap in spirit: first match wins.
func (g *Guard) Classify(query string) Classification {
	lower := strings.ToLower(query)

	if containsAny(lower, g.keywords.Critical) {
		return Classification{
			Category: CategoryBlocked,
			Message:  blockedMessage,
		}
	}

	if containsAny(lower, g.keywords.Pregnancy) {
		return Classification{
			Category: CategoryUnsafe,
			Message:  advisoryMessage(advisoryPregnancy),
		}
	}

	if containsAny(lower, g.keywords.Medical) {
		return Classification{
			Category: CategoryUnsafe,
			Message:  advisoryMessage(advisoryMedical),
		}
	}

	if containsAny(lower, g.keywords.Sensitive) {
		return Classification{
			Category: CategorySensitive,
			Message:  sensitiveMessage,
		}
	}

	return Classification{Category: CategorySafe}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

type advisoryKind int

const (
	advisoryPregnancy advisoryKind = iota
	advisoryMedical
)

// advisoryMessage builds the mandatory three-sentence advisory: risk
// acknowledgment, a context-specific alternative practice, and the
// consult-a-professional sentence, always in this order.
func advisoryMessage(kind advisoryKind) string {
	var b strings.Builder
	b.WriteString("Your question touches on an area that can be risky without personalized guidance.\n\n")

	switch kind {
	case advisoryPregnancy:
		b.WriteString("Instead of deep twists or inversions, consider gentle prenatal poses and breathing work.\n")
	case advisoryMedical:
		b.WriteString("Instead of advanced poses, consider gentle restorative poses and breathing work.\n")
	}

	b.WriteString("Please consult a doctor or certified yoga therapist before attempting these poses.")
	return b.String()
}
