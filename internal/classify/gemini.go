package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fjacquet/payday-budget/internal/logging"
	"fjacquet/payday-budget/internal/models"
)

// GeminiClassifier implements Classifier against the Google Gemini API.
type GeminiClassifier struct {
	apiKey    string
	modelName string
	timeout   time.Duration
	log       logging.Logger

	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClassifier creates a Gemini-backed classifier. The client is
// created lazily on the first Suggest call.
func NewGeminiClassifier(apiKey, modelName string, timeout time.Duration, logger logging.Logger) *GeminiClassifier {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiClassifier{
		apiKey:    apiKey,
		modelName: modelName,
		timeout:   timeout,
		log:       logger,
	}
}

func (g *GeminiClassifier) ensureClient(ctx context.Context) error {
	if g.client != nil {
		return nil
	}
	if g.apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client
	g.model = client.GenerativeModel(g.modelName)
	return nil
}

// Suggest asks Gemini to classify the batch against the category and bucket
// universe. The response is expected as a JSON object mapping transaction id
// to a suggestion; anything unparseable is an error the caller treats as
// "no suggestions".
func (g *GeminiClassifier) Suggest(ctx context.Context, batch []models.Transaction, universe Universe) (map[string]Suggestion, error) {
	if err := g.ensureClient(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := buildPrompt(batch, universe)
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	suggestions, err := parseSuggestions(responseText)
	if err != nil {
		return nil, err
	}

	g.log.WithField(logging.FieldCount, len(suggestions)).Debug("Gemini returned suggestions")
	return suggestions, nil
}

func buildPrompt(batch []models.Transaction, universe Universe) string {
	var sb strings.Builder
	sb.WriteString("Classify the following bank transactions for a household budget.\n\n")

	sb.WriteString("Main categories (id: name):\n")
	for _, c := range universe.MainCategories {
		fmt.Fprintf(&sb, "  %s: %s\n", c.ID, c.Name)
	}
	sb.WriteString("Sub categories (id: name, main):\n")
	for _, c := range universe.SubCategories {
		fmt.Fprintf(&sb, "  %s: %s, %s\n", c.ID, c.Name, c.MainCategoryID)
	}
	sb.WriteString("Buckets (id: name):\n")
	for _, b := range universe.Buckets {
		fmt.Fprintf(&sb, "  %s: %s\n", b.ID, b.Name)
	}

	sb.WriteString("\nTransactions (id, description, amount):\n")
	for _, tx := range batch {
		fmt.Fprintf(&sb, "  %s | %s | %s\n", tx.ID, tx.Description, tx.Amount.String())
	}

	sb.WriteString(`
Respond with only a JSON object mapping transaction id to a suggestion:
{"<id>": {"type": "EXPENSE"|"TRANSFER"|"INCOME", "bucketId": "...", "categoryMainId": "...", "categorySubId": "..."}}
Use bucketId only for TRANSFER, category ids only for EXPENSE and INCOME.
Omit transactions you cannot classify.`)
	return sb.String()
}

// parseSuggestions extracts the JSON object from a model response, tolerating
// surrounding prose and markdown fences.
func parseSuggestions(text string) (map[string]Suggestion, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in classifier response")
	}

	var out map[string]Suggestion
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("malformed classifier response: %w", err)
	}
	return out, nil
}
