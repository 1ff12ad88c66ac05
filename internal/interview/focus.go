package interview

import "math/rand/v2"

// FocusAreas is the declared set of resume topics question generation
// rotates through.
var FocusAreas = []string{
	"education background",
	"technical skills",
	"work experience",
	"certifications",
	"projects",
}

// FocusSelector picks the focus area for the next question. It receives the
// questions already asked so alternative strategies can bias away from
// covered topics; the default strategy ignores them.
type FocusSelector interface {
	Pick(priorQuestions []string) string
}

// randomFocusSelector picks uniformly at random on every call. Selection is
// memoryless with respect to which areas were already used; there is no
// guarantee of covering all areas before repeating.
type randomFocusSelector struct{}

// NewRandomFocusSelector returns the default memoryless selector.
func NewRandomFocusSelector() FocusSelector {
	return randomFocusSelector{}
}

func (randomFocusSelector) Pick(_ []string) string {
	return FocusAreas[rand.IntN(len(FocusAreas))]
}

// FocusSelectorFunc adapts a function to the FocusSelector interface.
type FocusSelectorFunc func(priorQuestions []string) string

// Pick calls f.
func (f FocusSelectorFunc) Pick(priorQuestions []string) string {
	return f(priorQuestions)
}
