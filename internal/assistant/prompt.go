package assistant

import "strings"

// System instructions for the two assistant surfaces. Tone, scope and answer
// format (one-line conclusion, then bullets, KRW integer prices) live here.
const (
	consumerSystemPrompt = "너는 이 상점의 소비자 상담 챗봇이야. 전체 톤은 친절하고 간결하게. " +
		"개인정보나 주문번호 확인/조회는 절대 하지 말고, 그런 요청이 오면 고객센터 경로를 안내만 해. " +
		"답변은 먼저 한 줄 결론 → 필요하면 2~4개 bullet 근거. 가격 표기는 KRW 정수로. "

	adminSystemPrompt = "너는 Shopify 상점의 재고·수요를 도와주는 운영 어시스턴트야. " +
		"먼저 한두 줄로 결론을 내고, 필요하면 2개의 bullet 근거를 덧붙여."
)

// buildStoreContext joins the two reports into the store-context block that
// grounds consumer answers.
func buildStoreContext(onSale, lowStock string) string {
	return strings.Join([]string{
		"[세일 정보]",
		onSale,
		"",
		"[저재고 참고(빠른 품절 가능)]",
		lowStock,
	}, "\n")
}

// buildConsumerPrompt assembles the user prompt for the storefront assistant.
func buildConsumerPrompt(storeContext, question string) string {
	return strings.Join([]string{
		"아래 상점 컨텍스트를 참고해 질문에 답해줘.",
		storeContext,
		"",
		"[질문]",
		question,
	}, "\n\n")
}

// buildAdminPrompt assembles the user prompt for the merchant assistant.
// The inventory section is omitted when no summary is available.
func buildAdminPrompt(inventorySummary, question string) string {
	parts := make([]string, 0, 2)
	if inventorySummary != "" {
		parts = append(parts, "[재고 요약]\n"+inventorySummary)
	}
	parts = append(parts, "[질문]\n"+question)
	return strings.Join(parts, "\n\n")
}
