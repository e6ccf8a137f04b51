package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/ai"
	"github.com/spigell/candidate-ranker/internal/logger"
	"github.com/spigell/candidate-ranker/internal/utils"
)

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Explainer asks Gemini to explain a ranking.
type Explainer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewExplainer(generator contentGenerator, log *zap.Logger, maxLogLength int) *Explainer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Explainer{
		generator: generator,
		logger:    logger.WithCommonFields(log, Provider, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (e *Explainer) Explain(ctx context.Context, in ai.RankingInput) (*ai.Explanation, error) {
	if len(in.Candidates) == 0 {
		return nil, ai.ErrNoCandidates
	}

	payload, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal ranking payload: %w", err)
	}
	message := string(payload)

	e.logger.Debug("gemini explain request",
		zap.Int("candidates", len(in.Candidates)),
		zap.Int("message_length", utf8.RuneCountInString(message)),
		zap.String("message_preview", utils.TruncateForLog(message, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, promptTemplate, message)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini explain response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	explanation, err := parseExplanation(raw)
	if err != nil {
		return nil, err
	}
	explanation.WeightsUsed = in.Weights
	explanation.Provider = Provider

	return explanation, nil
}

func parseExplanation(raw string) (*ai.Explanation, error) {
	cleaned := extractJSON(raw)
	if !gjson.Valid(cleaned) {
		return nil, errors.New("parse gemini response: invalid JSON")
	}

	doc := gjson.Parse(cleaned)
	if !doc.IsObject() {
		return nil, errors.New("parse gemini response: expected a JSON object")
	}

	explanation := &ai.Explanation{
		RankingExplanation:     strings.TrimSpace(doc.Get("ranking_explanation").String()),
		DifferentiationFactors: stringList(doc.Get("differentiation_factors")),
		TieBreakers:            stringList(doc.Get("tie_breakers")),
	}

	for i, item := range doc.Get("candidate_insights").Array() {
		if !item.IsObject() {
			continue
		}
		number := int(item.Get("candidate_number").Int())
		if number <= 0 {
			number = i + 1
		}
		explanation.CandidateInsights = append(explanation.CandidateInsights, ai.CandidateInsight{
			CandidateNumber: number,
			KeyStrengths:    stringList(item.Get("key_strengths")),
			RankingReason:   strings.TrimSpace(item.Get("ranking_reason").String()),
		})
	}

	if explanation.RankingExplanation == "" && len(explanation.CandidateInsights) == 0 {
		return nil, errors.New("parse gemini response: explanation is empty")
	}

	return explanation, nil
}

func stringList(r gjson.Result) []string {
	var out []string
	for _, item := range r.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
