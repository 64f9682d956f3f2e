package repository

import (
	"context"
	"reflect"
	"testing"

	"github.com/Mummayiz/SmartLearning/internal/model"
)

func TestQuizTopicsAndLookup(t *testing.T) {
	repo := NewQuizRepository(newTestDB(t))
	ctx := context.Background()

	for _, quiz := range []model.Quiz{
		{Topic: "Limits", Question: "lim sin(x)/x, x->0?", AnswerText: "1"},
		{Topic: "Limits", Question: "lim (1+1/n)^n?", AnswerText: "e"},
		{Topic: "Generators", Question: "Keyword for a generator?", AnswerText: "def"},
	} {
		q := quiz
		if err := repo.Create(ctx, &q); err != nil {
			t.Fatalf("create quiz: %v", err)
		}
	}

	topics, err := repo.Topics(ctx)
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	if !reflect.DeepEqual(topics, []string{"Generators", "Limits"}) {
		t.Errorf("topics = %v, want [Generators Limits]", topics)
	}

	limits, err := repo.ListByTopic(ctx, "Limits")
	if err != nil {
		t.Fatalf("ListByTopic: %v", err)
	}
	if len(limits) != 2 {
		t.Errorf("Limits questions = %d, want 2", len(limits))
	}

	quiz, err := repo.FindByID(ctx, limits[0].ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if quiz.AnswerText != "1" {
		t.Errorf("answer = %q, want 1", quiz.AnswerText)
	}
}
