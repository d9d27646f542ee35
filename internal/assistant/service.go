// Package assistant produces single-turn answers for merchant and shopper
// questions, grounded in the store's low-stock and on-sale reports.
package assistant

import (
	"context"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/sync/errgroup"

	"github.com/aubri61/inventoria-ai/internal/shopify"
	"github.com/aubri61/inventoria-ai/internal/summary"
	logx "github.com/aubri61/inventoria-ai/pkg/logger"
)

// MaxQuestionLen is the cap applied to inbound questions before any use.
const MaxQuestionLen = 2000

// Fixed answers for the cases where the model is never called or failed.
const (
	ConsumerEmptyQuestionAnswer = "궁금한 상품/세일을 물어보세요. 😊"
	ConsumerFallbackAnswer      = "지금은 답변을 만들지 못했어요. 잠시 후 다시 시도해 주세요."
	AdminEmptyQuestionAnswer    = "질문이 비어있어요. 예) ‘Greenboard 보드 다음 주 발주량?’"
	AdminFallbackAnswer         = "AI 호출 중 오류가 발생했어요. 잠시 후 다시 시도해주세요."
	NoAnswerGenerated           = "답변을 생성하지 못했어요."
	DemoAnswer                  = "데모 응답: 최근 4주 판매 추세 기준 ‘Green Snowboard’ 모델이 소진 예상이에요. 3일 내 25개 추가 발주를 추천합니다."
)

// Generator is the single-call surface of the chat model. Satisfied by
// *gemini.ChatModel.
type Generator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error)
}

// ContextProvider reads the variant data the reports are built from.
// Satisfied by *shopify.Client.
type ContextProvider interface {
	LowStockVariants(ctx context.Context, creds shopify.Credentials) ([]shopify.VariantRecord, error)
	OnSaleCandidates(ctx context.Context, creds shopify.Credentials) ([]shopify.VariantRecord, error)
}

// Service answers questions. A nil generator means no API key was configured:
// shopper questions get the fallback answer, merchant questions the canned
// demo answer.
type Service struct {
	store       ContextProvider
	gen         Generator
	onSaleLimit int
}

// NewService wires the assistant with its store context source and generator.
func NewService(store ContextProvider, gen Generator, onSaleLimit int) *Service {
	if onSaleLimit <= 0 {
		onSaleLimit = summary.DefaultOnSaleLimit
	}
	return &Service{store: store, gen: gen, onSaleLimit: onSaleLimit}
}

func normalizeQuestion(q string) string {
	q = strings.TrimSpace(q)
	if r := []rune(q); len(r) > MaxQuestionLen {
		q = string(r[:MaxQuestionLen])
	}
	return q
}

// lowStockReport fetches and renders the low-stock report. Fetch failures
// become the fixed unavailable sentence, never an error.
func (s *Service) lowStockReport(ctx context.Context, creds shopify.Credentials) string {
	variants, err := s.store.LowStockVariants(ctx, creds)
	if err != nil {
		logx.Warn().Err(err).Str("shop", creds.Shop).Msg("low-stock fetch failed")
		return summary.LowStockUnavailable
	}
	return summary.LowStock(variants)
}

// onSaleReport fetches and renders the on-sale report with the same
// absorb-errors contract.
func (s *Service) onSaleReport(ctx context.Context, creds shopify.Credentials) string {
	variants, err := s.store.OnSaleCandidates(ctx, creds)
	if err != nil {
		logx.Warn().Err(err).Str("shop", creds.Shop).Msg("on-sale fetch failed")
		return summary.OnSaleUnavailable
	}
	return summary.OnSale(variants, s.onSaleLimit)
}

// storeContext builds the grounding block from both reports, fetched
// concurrently. Each fetch degrades to its own failure sentence, so the join
// always succeeds.
func (s *Service) storeContext(ctx context.Context, creds shopify.Credentials) string {
	var lowStock, onSale string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lowStock = s.lowStockReport(gctx, creds)
		return nil
	})
	g.Go(func() error {
		onSale = s.onSaleReport(gctx, creds)
		return nil
	})
	_ = g.Wait()
	return buildStoreContext(onSale, lowStock)
}

// generate runs the model and extracts the answer text. Every failure mode
// collapses to the given fallback.
func (s *Service) generate(ctx context.Context, system, user, fallback string) string {
	if s.gen == nil {
		return fallback
	}
	out, err := s.gen.Generate(ctx, []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	})
	if err != nil {
		logx.Warn().Err(err).Msg("answer generation failed")
		return fallback
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return NoAnswerGenerated
	}
	return out.Content
}

// ConsumerAnswer answers a storefront shopper question. It always returns a
// conversational string, never an error.
func (s *Service) ConsumerAnswer(ctx context.Context, creds shopify.Credentials, question string) string {
	question = normalizeQuestion(question)
	if question == "" {
		return ConsumerEmptyQuestionAnswer
	}
	if v := ClassifyQuestion(question); !v.Allowed {
		logx.Info().Str("term", v.Reason).Msg("question blocked by content policy")
		return RefusalAnswer
	}

	storeContext := s.storeContext(ctx, creds)
	prompt := buildConsumerPrompt(storeContext, question)
	return s.generate(ctx, consumerSystemPrompt, prompt, ConsumerFallbackAnswer)
}

// AdminAnswer answers a merchant question. When the caller supplies no
// inventory summary the low-stock report is fetched and used. With no
// generator configured the canned demo answer is returned.
func (s *Service) AdminAnswer(ctx context.Context, creds shopify.Credentials, question, inventorySummary string) string {
	question = normalizeQuestion(question)
	if question == "" {
		return AdminEmptyQuestionAnswer
	}
	if s.gen == nil {
		return DemoAnswer
	}

	if inventorySummary == "" {
		inventorySummary = s.lowStockReport(ctx, creds)
	}
	prompt := buildAdminPrompt(inventorySummary, question)
	return s.generate(ctx, adminSystemPrompt, prompt, AdminFallbackAnswer)
}
