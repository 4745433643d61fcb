package engine

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ToleranceNote is attached to an evaluation that matched only after
// normalization, so the UI can tell the user a lenient match was applied.
const ToleranceNote = "Accepted as a variant (accents, case, spacing and punctuation are ignored)."

// Evaluation is the result of comparing a submitted answer against the
// canonical one.
type Evaluation struct {
	IsCorrect bool `json:"is_correct"`

	// ToleranceNote is non-empty only when the answer was accepted but
	// the raw strings differed, i.e. the match went through the
	// normalization pipeline.
	ToleranceNote string `json:"tolerance_note,omitempty"`
}

// decorativeReplacer strips punctuation that should not count as an
// error: separators become spaces, apostrophes and quote marks vanish.
// The set is tuned for Latin/CJK romanizations and deliberately fixed
// rather than locale-specific.
var decorativeReplacer = strings.NewReplacer(
	"　", " ", // full-width space
	"·", " ",
	"-", " ",
	"_", " ",
	"’", "", // right single quotation mark
	"'", "",
	"“", "", // left double quotation mark
	"”", "", // right double quotation mark
	`"`, "",
)

// stripMarks removes all combining marks after NFD decomposition,
// making the comparison accent- and tone-mark-insensitive.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Evaluate compares a submitted answer against the correct one using the
// tolerant normalization pipeline. It is pure and is the single source of
// truth for correctness: scoring and any UI feedback must both go
// through it so they never diverge.
func Evaluate(chosenRaw, correctRaw string) Evaluation {
	chosenTrim := strings.TrimSpace(chosenRaw)
	correctTrim := strings.TrimSpace(correctRaw)

	chosenNorm := NormalizeForMatch(chosenTrim)
	correctNorm := NormalizeForMatch(correctTrim)

	if chosenNorm == "" || chosenNorm != correctNorm {
		return Evaluation{IsCorrect: false}
	}

	ev := Evaluation{IsCorrect: true}
	if chosenTrim != correctTrim {
		ev.ToleranceNote = ToleranceNote
	}
	return ev
}

// NormalizeForMatch runs the tolerant-match normalization pipeline:
// NFKC compatibility composition (unifies full/half-width variants),
// decorative punctuation removal, NFD + combining-mark stripping,
// whitespace collapsing, and locale-invariant lowercasing.
func NormalizeForMatch(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	s := norm.NFKC.String(raw)
	s = decorativeReplacer.Replace(s)

	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}

	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}
