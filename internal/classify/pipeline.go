package classify

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fjacquet/payday-budget/internal/logging"
	"fjacquet/payday-budget/internal/models"
)

// RawRecord is one normalized row from a parsed bank export.
type RawRecord struct {
	Date        string // YYYY-MM-DD
	Amount      decimal.Decimal
	Description string
}

// Pipeline classifies freshly imported records into staged transactions.
// Passes run strictly in order and a later pass never overwrites the match
// of an earlier one.
type Pipeline struct {
	rules      []models.ImportRule
	history    HistoryLookup
	classifier Classifier // nil disables the AI pass
	universe   Universe
	log        logging.Logger
}

// New creates a classification pipeline. history may be nil to disable
// historical matching and classifier may be nil to disable the AI pass.
func New(rules []models.ImportRule, history HistoryLookup, classifier Classifier, universe Universe, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Pipeline{
		rules:      rules,
		history:    history,
		classifier: classifier,
		universe:   universe,
		log:        logger,
	}
}

// Run stages and classifies a batch of raw records for one account.
// Records whose content hash already exists among the given transactions are
// discarded as duplicates; running the same batch twice against a set that
// includes the first run's output therefore stages nothing new.
func (p *Pipeline) Run(ctx context.Context, raw []RawRecord, accountID string, existing []models.Transaction) []models.Transaction {
	staged := p.dedupe(raw, accountID, existing)

	p.matchRules(staged)
	p.matchHistory(ctx, staged)
	p.applyHeuristics(staged)
	p.applyAISuggestions(ctx, staged)

	return staged
}

// dedupe turns raw records into staged transactions, dropping any record
// whose date+amount+description hash already exists. Keys of records staged
// earlier in the same batch count as seen, so a file with an exact repeat
// stages it once.
func (p *Pipeline) dedupe(raw []RawRecord, accountID string, existing []models.Transaction) []models.Transaction {
	seen := models.NewDedupIndex(existing)
	staged := make([]models.Transaction, 0, len(raw))

	for _, rec := range raw {
		tx := models.Transaction{
			ID:          uuid.NewString(),
			AccountID:   accountID,
			Date:        rec.Date,
			Amount:      rec.Amount,
			Description: rec.Description,
			Source:      models.TxSourceImport,
		}
		key := tx.DedupKey()
		if _, dup := seen[key]; dup {
			p.log.WithFields(
				logging.Field{Key: logging.FieldAccount, Value: accountID},
				logging.Field{Key: logging.FieldReason, Value: "duplicate"},
			).Debug("Skipping already imported record")
			continue
		}
		seen[key] = struct{}{}
		staged = append(staged, tx)
	}

	p.log.WithFields(
		logging.Field{Key: logging.FieldAccount, Value: accountID},
		logging.Field{Key: logging.FieldCount, Value: len(staged)},
	).Info("Staged imported transactions")
	return staged
}

// matchRules applies the first matching import rule, in list order, to every
// unmatched transaction.
func (p *Pipeline) matchRules(staged []models.Transaction) {
	for i := range staged {
		tx := &staged[i]
		if tx.MatchType != models.MatchNone {
			continue
		}
		for _, rule := range p.rules {
			if !ruleMatches(rule, *tx) {
				continue
			}
			tx.Type = rule.TargetType
			tx.BucketID = rule.TargetBucketID
			tx.CategoryMainID = rule.TargetCategoryMainID
			tx.CategorySubID = rule.TargetCategorySubID
			tx.MatchType = models.MatchRule
			p.log.WithFields(
				logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
				logging.Field{Key: logging.FieldRule, Value: rule.ID},
			).Debug("Rule matched transaction")
			break
		}
	}
}

func ruleMatches(rule models.ImportRule, tx models.Transaction) bool {
	if !rule.AppliesToAccount(tx.AccountID) {
		return false
	}
	switch rule.Sign {
	case models.SignPositive:
		if !tx.Amount.IsPositive() {
			return false
		}
	case models.SignNegative:
		if !tx.Amount.IsNegative() {
			return false
		}
	}

	desc := strings.ToLower(tx.Description)
	keyword := strings.ToLower(rule.Keyword)
	switch rule.MatchType {
	case models.RuleExact:
		return desc == keyword
	case models.RuleStartsWith:
		return strings.HasPrefix(desc, keyword)
	default: // contains
		return strings.Contains(desc, keyword)
	}
}

// matchHistory copies the classification of the most recent persisted
// transaction sharing account and exact description. Lookups for different
// transactions run concurrently; a failing lookup leaves only its own
// transaction unmatched.
func (p *Pipeline) matchHistory(ctx context.Context, staged []models.Transaction) {
	if p.history == nil {
		return
	}

	var wg sync.WaitGroup
	for i := range staged {
		if staged[i].MatchType != models.MatchNone {
			continue
		}
		wg.Add(1)
		go func(tx *models.Transaction) {
			defer wg.Done()
			prior, found, err := p.history.MostRecentClassified(ctx, tx.AccountID, tx.Description)
			if err != nil {
				p.log.WithError(err).WithField(logging.FieldTransactionID, tx.ID).
					Debug("History lookup failed, leaving transaction unmatched")
				return
			}
			if !found || !prior.IsClassified() {
				return
			}
			tx.Type = prior.Type
			tx.BucketID = prior.BucketID
			tx.CategoryMainID = prior.CategoryMainID
			tx.CategorySubID = prior.CategorySubID
			tx.MatchType = models.MatchHistory
		}(&staged[i])
	}
	wg.Wait()
}

// transferKeywords are description substrings that indicate money movement
// rather than spending. The vocabulary follows the bank exports this tool
// ingests.
var transferKeywords = []string{"överföring", "overforing", "sparande", "insättning"}

// applyHeuristics gives every still-unmatched transaction a default
// classification: transfer-looking descriptions become transfers with a
// best-effort bucket, positive amounts become generic income, and negative
// amounts become uncategorized expenses. Heuristic defaults carry no match
// type, so the AI pass may still refine them.
func (p *Pipeline) applyHeuristics(staged []models.Transaction) {
	for i := range staged {
		tx := &staged[i]
		if tx.MatchType != models.MatchNone {
			continue
		}

		desc := strings.ToLower(tx.Description)
		if containsAny(desc, transferKeywords) {
			tx.Type = models.TypeTransfer
			tx.BucketID = p.bucketByName(desc)
			continue
		}

		if tx.Amount.IsPositive() {
			tx.Type = models.TypeIncome
			tx.CategoryMainID = models.FallbackIncomeCategoryID
		} else {
			tx.Type = models.TypeExpense
		}
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// bucketByName resolves a transfer target by substring-matching bucket names
// against the description. Best effort: returns "" when nothing matches.
func (p *Pipeline) bucketByName(lowerDesc string) string {
	for _, b := range p.universe.Buckets {
		name := strings.ToLower(b.Name)
		if name != "" && strings.Contains(lowerDesc, name) {
			return b.ID
		}
	}
	return ""
}

// applyAISuggestions sends transactions that still lack both a bucket and a
// category to the external classifier and applies the returned suggestions.
// A suggestion is applied only if its transaction is still unmatched when
// the call resolves; any classifier failure is swallowed.
func (p *Pipeline) applyAISuggestions(ctx context.Context, staged []models.Transaction) {
	if p.classifier == nil {
		return
	}

	var batch []models.Transaction
	for _, tx := range staged {
		if tx.MatchType == models.MatchNone && !tx.HasSuggestion() {
			batch = append(batch, tx)
		}
	}
	if len(batch) == 0 {
		return
	}

	suggestions, err := p.classifier.Suggest(ctx, batch, p.universe)
	if err != nil {
		p.log.WithError(err).Warn("AI classification unavailable, transactions left unclassified")
		return
	}

	applied := 0
	for i := range staged {
		tx := &staged[i]
		sug, ok := suggestions[tx.ID]
		if !ok {
			continue
		}
		// The user may have classified or edited this transaction while
		// the call was in flight; never overwrite.
		if tx.MatchType != models.MatchNone || tx.IsManuallyApproved || tx.HasSuggestion() {
			continue
		}
		if sug.Type != "" {
			tx.Type = sug.Type
		}
		tx.BucketID = sug.BucketID
		tx.CategoryMainID = sug.CategoryMainID
		tx.CategorySubID = sug.CategorySubID
		tx.MatchType = models.MatchAI
		applied++
	}
	p.log.WithField(logging.FieldCount, applied).Debug("Applied AI suggestions")
}
