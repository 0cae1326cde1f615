package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	providerRepo "obrafacil/database/repository/provider"
	"obrafacil/models"
	"obrafacil/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const genericAIFailure = "não foi possível processar sua solicitação agora, tente novamente"

// ReviewSummary is the structured output of review-sentiment summarization.
type ReviewSummary struct {
	Sentiment string `json:"sentiment"` // "positivo", "neutro" or "negativo"
	Summary   string `json:"summary"`
}

// Recommendation pairs a recommended provider with the model's reason.
type Recommendation struct {
	Provider models.Provider `json:"provider"`
	Reason   string          `json:"reason"`
}

// AIService defines the AI-assisted operations.
type AIService interface {
	// SummarizeReviews summarizes a provider's review sentiment.
	SummarizeReviews(ctx context.Context, providerID string) (*ReviewSummary, error)
	// RecommendProviders suggests providers for a described need.
	RecommendProviders(ctx context.Context, need string) ([]Recommendation, error)
}

// DefaultAIService is the production implementation. Summaries are cached in
// Redis so repeated profile views don't re-run the model.
type DefaultAIService struct {
	Gemini    *GeminiClient
	Providers providerRepo.ProviderRepository
	Cache     *redis.Client
	CacheTTL  time.Duration
}

// SummarizeReviews runs the summarization prompt over the provider's reviews.
func (s *DefaultAIService) SummarizeReviews(ctx context.Context, providerID string) (*ReviewSummary, error) {
	cacheKey := "ai:review-summary:" + providerID
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var out ReviewSummary
			if json.Unmarshal([]byte(cached), &out) == nil {
				return &out, nil
			}
		}
	}

	prov, err := s.Providers.GetByID(providerID)
	if err != nil {
		return nil, err
	}
	if len(prov.Reviews) == 0 {
		return &ReviewSummary{Sentiment: "neutro", Summary: "Este prestador ainda não possui avaliações."}, nil
	}

	var sb strings.Builder
	for _, r := range prov.Reviews {
		fmt.Fprintf(&sb, "- nota %.0f: %s\n", r.Rating, r.Comment)
	}
	prompt := fmt.Sprintf(
		`Você é um assistente de um marketplace de serviços de construção.
Resuma o sentimento das avaliações abaixo do prestador %q.
Responda APENAS com JSON no formato {"sentiment":"positivo|neutro|negativo","summary":"..."}.

Avaliações:
%s`, prov.Name, sb.String())

	raw, err := s.Gemini.GenerateContent(ctx, prompt)
	if err != nil {
		utils.GetLogger().Error("SummarizeReviews: gemini call failed", zap.Error(err))
		return nil, fmt.Errorf(genericAIFailure)
	}

	var out ReviewSummary
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &out); err != nil {
		utils.GetLogger().Error("SummarizeReviews: unparsable model output", zap.Error(err))
		return nil, fmt.Errorf(genericAIFailure)
	}

	if s.Cache != nil {
		if buf, err := json.Marshal(out); err == nil {
			_ = s.Cache.Set(ctx, cacheKey, buf, s.CacheTTL).Err()
		}
	}
	return &out, nil
}

// RecommendProviders asks the model to rank candidate providers for the need,
// then resolves the chosen profiles in parallel and merges them by id.
func (s *DefaultAIService) RecommendProviders(ctx context.Context, need string) ([]Recommendation, error) {
	if strings.TrimSpace(need) == "" {
		return nil, fmt.Errorf("descreva o que você precisa")
	}

	candidates, err := s.Providers.Search(providerRepo.ProviderSearchCriteria{Limit: 20})
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	for _, p := range candidates {
		fmt.Fprintf(&sb, "- id=%s nome=%q categoria=%q local=%q nota=%.2f avaliações=%d\n",
			p.ID, p.Name, p.Category, p.Location, p.Rating, p.ReviewCount)
	}
	prompt := fmt.Sprintf(
		`Você é um assistente de um marketplace de serviços de construção.
O cliente precisa de: %q.
Escolha até 3 prestadores da lista abaixo e explique cada escolha em uma frase.
Responda APENAS com JSON no formato [{"providerId":"...","reason":"..."}].

Prestadores:
%s`, need, sb.String())

	raw, err := s.Gemini.GenerateContent(ctx, prompt)
	if err != nil {
		utils.GetLogger().Error("RecommendProviders: gemini call failed", zap.Error(err))
		return nil, fmt.Errorf(genericAIFailure)
	}

	var picks []struct {
		ProviderID string `json:"providerId"`
		Reason     string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &picks); err != nil {
		utils.GetLogger().Error("RecommendProviders: unparsable model output", zap.Error(err))
		return nil, fmt.Errorf(genericAIFailure)
	}

	// Resolve the chosen profiles concurrently; order among lookups does not
	// matter because results are merged by id afterwards.
	resolved := make(map[string]*models.Provider, len(picks))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, pick := range picks {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			p, err := s.Providers.GetByID(id)
			if err != nil {
				return
			}
			mu.Lock()
			resolved[id] = p
			mu.Unlock()
		}(pick.ProviderID)
	}
	wg.Wait()

	var recs []Recommendation
	for _, pick := range picks {
		p, ok := resolved[pick.ProviderID]
		if !ok {
			continue
		}
		recs = append(recs, Recommendation{Provider: p.PublicView(), Reason: pick.Reason})
	}
	return recs, nil
}

// stripCodeFence removes a surrounding markdown code fence, which the model
// adds even when told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
