package assistant

import "strings"

// Verdict is the outcome of classifying a shopper question against the
// content policy.
type Verdict struct {
	Allowed bool
	Reason  string // matched blocklist term when blocked
}

// personalDataTerms blocks questions that ask about personal order data.
// The list is intentionally the minimal Korean/English heuristic the app
// shipped with; extending it is a product decision, not a code one.
var personalDataTerms = []string{
	"주문번호",
	"order number",
	"주소",
	"전화",
	"phone",
	"email",
	"이메일",
}

// RefusalAnswer is returned for blocked questions without calling the model.
const RefusalAnswer = "개인 주문/주소/연락처 확인은 도와드릴 수 없어요. 상품·세일·재고 관련으로 질문해 주세요!"

// ClassifyQuestion returns a structured verdict for a shopper question.
// Matching is a case-insensitive substring check over the blocklist.
func ClassifyQuestion(question string) Verdict {
	t := strings.ToLower(question)
	for _, term := range personalDataTerms {
		if strings.Contains(t, term) {
			return Verdict{Allowed: false, Reason: term}
		}
	}
	return Verdict{Allowed: true}
}
