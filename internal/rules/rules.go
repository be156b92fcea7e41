// Package rules loads and saves import rules from a YAML file so rule sets
// can be maintained by hand and seeded into the database.
package rules

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"fjacquet/payday-budget/internal/importerror"
	"fjacquet/payday-budget/internal/models"
)

type ruleFile struct {
	Rules []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	ID         string   `yaml:"id"`
	Keyword    string   `yaml:"keyword"`
	MatchType  string   `yaml:"matchType"`
	Sign       string   `yaml:"sign"`
	AccountIDs []string `yaml:"accounts"`

	Type         string `yaml:"type"`
	Bucket       string `yaml:"bucket"`
	MainCategory string `yaml:"mainCategory"`
	SubCategory  string `yaml:"subCategory"`
}

// Load reads a YAML rule file and returns the rules in file order. Entries
// without an id get a generated one so they can be stored directly.
func Load(path string) ([]models.ImportRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &importerror.FormatError{File: path, Msg: fmt.Sprintf("invalid YAML: %v", err)}
	}

	parsed := make([]models.ImportRule, 0, len(file.Rules))
	for i, entry := range file.Rules {
		rule, err := entry.toRule()
		if err != nil {
			return nil, &importerror.ParseError{
				File:  path,
				Field: fmt.Sprintf("rules[%d]", i),
				Value: entry.Keyword,
				Err:   err,
			}
		}
		rule.Position = i
		parsed = append(parsed, rule)
	}
	return parsed, nil
}

func (e ruleEntry) toRule() (models.ImportRule, error) {
	if e.Keyword == "" {
		return models.ImportRule{}, fmt.Errorf("keyword is required")
	}

	rule := models.ImportRule{
		ID:         e.ID,
		Keyword:    e.Keyword,
		AccountIDs: e.AccountIDs,
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}

	switch models.RuleMatchType(e.MatchType) {
	case models.RuleContains, models.RuleExact, models.RuleStartsWith:
		rule.MatchType = models.RuleMatchType(e.MatchType)
	case "":
		rule.MatchType = models.RuleContains
	default:
		return models.ImportRule{}, fmt.Errorf("unknown match type %q", e.MatchType)
	}

	switch models.AmountSign(e.Sign) {
	case models.SignAny, models.SignPositive, models.SignNegative:
		rule.Sign = models.AmountSign(e.Sign)
	default:
		return models.ImportRule{}, fmt.Errorf("unknown sign %q", e.Sign)
	}

	switch models.TransactionType(e.Type) {
	case models.TypeExpense:
		if e.MainCategory == "" || e.SubCategory == "" {
			return models.ImportRule{}, fmt.Errorf("expense rule needs mainCategory and subCategory")
		}
	case models.TypeTransfer:
		if e.Bucket == "" {
			return models.ImportRule{}, fmt.Errorf("transfer rule needs bucket")
		}
	case models.TypeIncome:
		if e.MainCategory == "" {
			return models.ImportRule{}, fmt.Errorf("income rule needs mainCategory")
		}
	default:
		return models.ImportRule{}, fmt.Errorf("unknown transaction type %q", e.Type)
	}
	rule.TargetType = models.TransactionType(e.Type)
	rule.TargetBucketID = e.Bucket
	rule.TargetCategoryMainID = e.MainCategory
	rule.TargetCategorySubID = e.SubCategory

	return rule, nil
}

// Save writes rules back out as YAML, preserving list order.
func Save(path string, rulesList []models.ImportRule) error {
	file := ruleFile{Rules: make([]ruleEntry, 0, len(rulesList))}
	for _, r := range rulesList {
		file.Rules = append(file.Rules, ruleEntry{
			ID:           r.ID,
			Keyword:      r.Keyword,
			MatchType:    string(r.MatchType),
			Sign:         string(r.Sign),
			AccountIDs:   r.AccountIDs,
			Type:         string(r.TargetType),
			Bucket:       r.TargetBucketID,
			MainCategory: r.TargetCategoryMainID,
			SubCategory:  r.TargetCategorySubID,
		})
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rule file: %w", err)
	}
	return nil
}
