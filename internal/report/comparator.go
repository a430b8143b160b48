package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/medvoice/medvoice-ai-platform/internal/llm"
	"github.com/medvoice/medvoice-ai-platform/internal/observability/metrics"
	"github.com/medvoice/medvoice-ai-platform/pkg/logging"
)

const (
	minDoctorTextLen = 10
	maxMatches       = 8

	// lexicalFallbackSummary flags a result computed without the embedding
	// provider so the caller can tell the two modes apart.
	lexicalFallbackSummary = "Embedding provider unavailable. Using simple local similarity."
)

var compareTracer = otel.Tracer("medvoice.internal.report.compare")

// Comparator scores an AI-generated report against a doctor-authored report.
// The embedding path is best-effort: any provider failure degrades to the
// lexical engine instead of surfacing an error.
type Comparator struct {
	embedder     llm.Embedder
	chat         llm.ChatClient
	summaryModel string
	cache        *CompareCache
	metrics      *metrics.ReportMetrics
	logger       *logging.Logger
}

// NewComparator builds a comparator. chat may be nil (summaries are skipped);
// cache and metrics may be nil.
func NewComparator(embedder llm.Embedder, chat llm.ChatClient, summaryModel string, cache *CompareCache, m *metrics.ReportMetrics, logger *logging.Logger) *Comparator {
	if embedder == nil {
		panic("report: embedder cannot be nil")
	}
	if summaryModel == "" {
		summaryModel = "gpt-4o-mini"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Comparator{
		embedder:     embedder,
		chat:         chat,
		summaryModel: summaryModel,
		cache:        cache,
		metrics:      m,
		logger:       logger,
	}
}

// Compare builds the AI-side text from the report, scores it against
// doctorText, and returns the similarity, the top sentence matches, and an
// optional natural-language summary. Once the length precondition passes the
// operation cannot fail: embedding-provider errors switch it to the lexical
// fallback path.
func (c *Comparator) Compare(ctx context.Context, aiReport StructuredReport, doctorText string) (*ComparisonResult, error) {
	if len(strings.TrimSpace(doctorText)) < minDoctorTextLen {
		return nil, ErrDoctorTextTooShort
	}

	ctx, span := compareTracer.Start(ctx, "report.compare")
	defer span.End()
	span.SetAttributes(attribute.String("medvoice.session_id", aiReport.SessionID))

	start := time.Now()
	aiText := FlattenReport(aiReport)

	if cached, ok := c.cache.Get(ctx, aiText, doctorText); ok {
		span.SetAttributes(attribute.String("medvoice.compare_mode", "cached"))
		c.metrics.ObserveComparison("cached", time.Since(start).Seconds())
		return cached, nil
	}

	result, err := c.semanticCompare(ctx, aiText, doctorText)
	mode := "semantic"
	if err != nil {
		span.RecordError(err)
		c.logger.Warn("semantic comparison failed, using lexical fallback", "error", err)
		result = c.lexicalCompare(aiText, doctorText)
		mode = "lexical_fallback"
	}
	span.SetAttributes(attribute.String("medvoice.compare_mode", mode))
	c.metrics.ObserveComparison(mode, time.Since(start).Seconds())

	c.cache.Set(ctx, aiText, doctorText, result)
	return result, nil
}

// semanticCompare runs the embedding path: one batch call for the two whole
// texts, one batch call for the doctor sentences, cosine throughout.
func (c *Comparator) semanticCompare(ctx context.Context, aiText, doctorText string) (*ComparisonResult, error) {
	if strings.TrimSpace(aiText) == "" {
		// An empty AI side embeds to a degenerate vector; cosine against it
		// is undefined, so force the lexical path.
		return nil, errors.New("report: empty ai text")
	}

	embedStart := time.Now()
	vectors, err := c.embedder.Embed(ctx, []string{aiText, doctorText})
	c.metrics.ObserveProviderCall("openrouter", "embed", time.Since(embedStart).Seconds())
	if err != nil {
		return nil, err
	}
	if len(vectors) != 2 {
		return nil, fmt.Errorf("report: expected 2 vectors, got %d", len(vectors))
	}

	aiVec, docVec := vectors[0], vectors[1]
	similarity, err := cosineSimilarity(aiVec, docVec)
	if err != nil {
		return nil, err
	}

	sentences := SplitSentences(doctorText)
	matches, err := c.rankSentences(ctx, aiVec, sentences)
	if err != nil {
		return nil, err
	}

	return &ComparisonResult{
		Similarity: round2(similarity * 100),
		Matches:    matches,
		Summary:    c.summarize(ctx, aiText, doctorText),
		AIText:     aiText,
	}, nil
}

// rankSentences embeds all doctor sentences in a single batched call, scores
// each against the AI vector, and keeps the top matches.
func (c *Comparator) rankSentences(ctx context.Context, aiVec []float32, sentences []string) ([]SentenceMatch, error) {
	if len(sentences) == 0 {
		return []SentenceMatch{}, nil
	}

	embedStart := time.Now()
	vectors, err := c.embedder.Embed(ctx, sentences)
	c.metrics.ObserveProviderCall("openrouter", "embed", time.Since(embedStart).Seconds())
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(sentences) {
		return nil, fmt.Errorf("report: expected %d sentence vectors, got %d", len(sentences), len(vectors))
	}

	matches := make([]SentenceMatch, len(sentences))
	for i, sentence := range sentences {
		score, err := cosineSimilarity(aiVec, vectors[i])
		if err != nil {
			return nil, err
		}
		matches[i] = SentenceMatch{Sentence: sentence, Similarity: round4(score)}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}
	return matches, nil
}

// lexicalCompare recomputes everything with the token-overlap engine. The
// sentence matches keep document order here; without embeddings there is no
// meaningful ranking signal beyond the raw overlap score.
func (c *Comparator) lexicalCompare(aiText, doctorText string) *ComparisonResult {
	sentences := SplitSentences(doctorText)
	if len(sentences) > maxMatches {
		sentences = sentences[:maxMatches]
	}

	matches := make([]SentenceMatch, len(sentences))
	for i, sentence := range sentences {
		matches[i] = SentenceMatch{
			Sentence:   sentence,
			Similarity: round4(LexicalSimilarity(aiText, sentence) / 100),
		}
	}

	return &ComparisonResult{
		Similarity: round2(LexicalSimilarity(aiText, doctorText)),
		Matches:    matches,
		Summary:    lexicalFallbackSummary,
		AIText:     aiText,
	}
}

// summarize asks the chat provider to contrast the two reports. Failures
// degrade to an empty summary rather than failing the comparison.
func (c *Comparator) summarize(ctx context.Context, aiText, doctorText string) string {
	if c.chat == nil {
		return ""
	}

	prompt := fmt.Sprintf("Compare these reports. List 3 similarities and 3 differences:\n\nAI Report:\n%s\n\nDoctor Report:\n%s", aiText, doctorText)
	chatStart := time.Now()
	resp, err := c.chat.Complete(ctx, llm.ChatRequest{
		Model:    c.summaryModel,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: prompt}},
	})
	c.metrics.ObserveProviderCall("openrouter", "chat", time.Since(chatStart).Seconds())
	if err != nil {
		c.logger.Warn("comparison summary failed", "error", err)
		return ""
	}
	return resp.Text
}

// cosineSimilarity errors on degenerate input instead of guessing: a zero
// magnitude means the caller should fall back to lexical scoring.
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("report: vector length mismatch: %d vs %d", len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, errors.New("report: zero-magnitude embedding vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
