package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCorrectSingleChoice(t *testing.T) {
	question := SnapshotQuestion{
		ID:            "q-1",
		Type:          QuestionSingleChoice,
		CorrectAnswer: []string{"2"},
	}

	assert.True(t, IsCorrect(question, NewScalarAnswer("2")))
	assert.False(t, IsCorrect(question, NewScalarAnswer("1")))
	assert.False(t, IsCorrect(question, NewScalarAnswer("")))

	// An array payload is graded by its first element.
	assert.True(t, IsCorrect(question, NewArrayAnswer([]string{"2"})))
	assert.False(t, IsCorrect(question, NewArrayAnswer(nil)))
}

func TestIsCorrectMultiChoice(t *testing.T) {
	question := SnapshotQuestion{
		ID:            "q-1",
		Type:          QuestionMultiChoice,
		CorrectAnswer: []string{"1", "3"},
	}

	assert.True(t, IsCorrect(question, NewArrayAnswer([]string{"1", "3"})))
	assert.True(t, IsCorrect(question, NewArrayAnswer([]string{"3", "1"})), "order must not matter")
	assert.False(t, IsCorrect(question, NewArrayAnswer([]string{"1"})))
	assert.False(t, IsCorrect(question, NewArrayAnswer([]string{"1", "3", "2"})))
	assert.False(t, IsCorrect(question, NewArrayAnswer(nil)))
}

func TestIsCorrectText(t *testing.T) {
	question := SnapshotQuestion{
		ID:            "q-1",
		Type:          QuestionText,
		CorrectAnswer: []string{"Fire Exit"},
	}

	assert.True(t, IsCorrect(question, NewScalarAnswer("Fire Exit")))
	assert.True(t, IsCorrect(question, NewScalarAnswer("  fire exit  ")), "case and whitespace are ignored")
	assert.False(t, IsCorrect(question, NewScalarAnswer("fire escape")))
	assert.False(t, IsCorrect(question, NewScalarAnswer("")))
}

func TestIsCorrectWithoutCorrectAnswer(t *testing.T) {
	for _, qt := range []QuestionType{QuestionSingleChoice, QuestionMultiChoice, QuestionText} {
		question := SnapshotQuestion{ID: "q-1", Type: qt}
		assert.False(t, IsCorrect(question, NewScalarAnswer("anything")), string(qt))
	}
}

func TestIsCorrectEmptyTextNeverMatches(t *testing.T) {
	question := SnapshotQuestion{
		ID:            "q-1",
		Type:          QuestionText,
		CorrectAnswer: []string{"   "},
	}
	// Both sides trim to empty; that is not a match.
	assert.False(t, IsCorrect(question, NewScalarAnswer("   ")))
}
