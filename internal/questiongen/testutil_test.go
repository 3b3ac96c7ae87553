package questiongen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/az104/internal/quiz"
)

func validQuestion() *quiz.Question {
	return &quiz.Question{
		Text:         "Which storage redundancy option replicates data across three availability zones in one region?",
		Options:      []string{"LRS", "ZRS", "GRS", "RA-GRS"},
		CorrectIndex: 1,
		Explanation:  "Zone-redundant storage copies data synchronously across three zones in the primary region.",
	}
}

// batchJSON renders n distinct valid questions as a batch response.
func batchJSON(n int) json.RawMessage {
	items := make([]string, n)
	for i := range n {
		items[i] = fmt.Sprintf(`{"question":"AZ-104 question %d?","options":["A","B","C","D"],"correctAnswerIndex":%d,"explanation":"Because %d."}`, i+1, i%4, i+1)
	}
	return json.RawMessage(`{"questions":[` + strings.Join(items, ",") + `]}`)
}
