package explain

import (
	"github.com/aviaryworks/fieldguide/pkg/errors"
)

// Role selects both the prompt template and the generation parameters for an
// audience. It is a closed enumeration: an unsupported role is a compile-time
// defect in the switches below, not a missing map key at runtime.
type Role int

// The supported audience roles.
const (
	// RoleGeneral targets a curious adult reader.
	RoleGeneral Role = iota
	// RoleYouth targets young readers: short sentences, vivid language.
	RoleYouth
	// RoleTechnical targets a scientifically literate reader.
	RoleTechnical
	// RoleGuide produces a spoken-style narration for a tour guide.
	RoleGuide
)

// Roles lists every supported role, for CLI help and iteration in tests.
func Roles() []Role {
	return []Role{RoleGeneral, RoleYouth, RoleTechnical, RoleGuide}
}

// String returns the stable identifier used on the wire and the CLI.
func (r Role) String() string {
	switch r {
	case RoleGeneral:
		return "general"
	case RoleYouth:
		return "youth"
	case RoleTechnical:
		return "technical"
	case RoleGuide:
		return "guide"
	default:
		return "general"
	}
}

// ParseRole maps a caller-supplied identifier onto a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "", "general":
		return RoleGeneral, nil
	case "youth", "kids":
		return RoleYouth, nil
	case "technical", "scientific":
		return RoleTechnical, nil
	case "guide", "narrative":
		return RoleGuide, nil
	default:
		return RoleGeneral, errors.NewValidationError("role", s,
			"must be one of: general, youth, technical, guide")
	}
}

// GenParams is the generation-parameter tuple attached to a role.
type GenParams struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Params returns the generation parameters for the role. The technical role
// runs at the lowest temperature with the largest output budget: factual
// consistency matters more than flair there, and the inverse holds for the
// narrative roles.
func (r Role) Params() GenParams {
	switch r {
	case RoleYouth:
		return GenParams{Temperature: 0.9, MaxOutputTokens: 768}
	case RoleTechnical:
		return GenParams{Temperature: 0.2, MaxOutputTokens: 2048}
	case RoleGuide:
		return GenParams{Temperature: 1.0, MaxOutputTokens: 1024}
	default: // RoleGeneral
		return GenParams{Temperature: 0.7, MaxOutputTokens: 1024}
	}
}

// Template returns the prompt template for the role. Templates substitute
// {{name}} and {{record}}; rendering is a plain string replacement and can
// never fail, even on an all-unknown record.
func (r Role) Template() string {
	switch r {
	case RoleYouth:
		return youthTemplate
	case RoleTechnical:
		return technicalTemplate
	case RoleGuide:
		return guideTemplate
	default:
		return generalTemplate
	}
}

const generalTemplate = `You are a knowledgeable nature and culture writer.
Using only the structured data below, write a clear, engaging explanation of
"{{name}}" for a curious adult reader. Where a field reads "unknown", simply
omit it rather than speculating.

Data:
{{record}}

Write two to three paragraphs of flowing prose.`

const youthTemplate = `You are a friendly storyteller talking to children aged
eight to twelve. Using only the data below, explain "{{name}}" with short
sentences, vivid comparisons, and a sense of wonder. Skip any field that reads
"unknown". No made-up facts.

Data:
{{record}}

Keep it under 150 words and end with one fun question for the reader.`

const technicalTemplate = `You are writing for a scientifically literate
audience. Produce a precise, well-structured summary of "{{name}}" from the
data below: nomenclature and classification first, then distribution, status,
habitat, and behavior. State explicitly when a field is unknown rather than
omitting it. Do not embellish beyond the data.

Data:
{{record}}

Use neutral, technical register throughout.`

const guideTemplate = `You are an enthusiastic tour guide speaking to visitors
standing right in front of this subject. Using only the data below, narrate
"{{name}}" as a spoken mini-tour: welcome the group, weave the facts into a
story, and close warmly. Skip any field that reads "unknown".

Data:
{{record}}

Write it as a single spoken monologue.`
