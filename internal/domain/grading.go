package domain

import (
	"sort"
	"strings"
)

// IsCorrect grades a user's answer against a snapshot question. The
// correct answer is always array-normalized before comparison; if it is
// empty or absent the question is never counted correct, regardless of
// the answer.
func IsCorrect(question SnapshotQuestion, payload AnswerPayload) bool {
	correct := question.CorrectAnswer
	if len(correct) == 0 {
		return false
	}

	switch question.Type {
	case QuestionSingleChoice:
		// Compare the correct array's sole element to the payload's first
		// element (the payload itself when scalar), as strings.
		return payload.First() == correct[0]
	case QuestionMultiChoice:
		return equalAsSets(payload.Values(), correct)
	default:
		// Text answers: case-insensitive, whitespace-trimmed equality.
		// Empty strings never count as correct even if both sides match.
		userText := strings.ToLower(strings.TrimSpace(payload.First()))
		correctText := strings.ToLower(strings.TrimSpace(correct[0]))
		return userText != "" && correctText != "" && userText == correctText
	}
}

// equalAsSets compares both sides as sets of strings: drop empties, sort,
// require the same cardinality and elements.
func equalAsSets(user, correct []string) bool {
	us := compactSorted(user)
	cs := compactSorted(correct)
	if len(us) != len(cs) {
		return false
	}
	for i := range us {
		if us[i] != cs[i] {
			return false
		}
	}
	return true
}

func compactSorted(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
