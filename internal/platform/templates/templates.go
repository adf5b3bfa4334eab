package templates

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
)

// rawTemplate is the on-disk shape of one journal template. Percentages are
// strings so the file round-trips through YAML without float precision loss.
type rawTemplate struct {
	Description    string     `mapstructure:"description"`
	DebitAccountID string     `mapstructure:"debitAccountID"`
	Credits        []rawSplit `mapstructure:"credits"`
}

type rawSplit struct {
	AccountID string `mapstructure:"accountID"`
	Percent   string `mapstructure:"percent"`
}

// FileTemplateProvider serves journal templates loaded once at startup from a
// versioned config file. The engine never writes templates.
type FileTemplateProvider struct {
	templates map[string]domain.JournalTemplate
}

// NewFileTemplateProvider loads and validates the template file at path.
func NewFileTemplateProvider(path string) (*FileTemplateProvider, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read journal templates from %s: %w", path, err)
	}

	raw := map[string]rawTemplate{}
	if err := v.UnmarshalKey("templates", &raw); err != nil {
		return nil, fmt.Errorf("failed to parse journal templates: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no journal templates defined in %s", path)
	}

	parsed := make(map[string]domain.JournalTemplate, len(raw))
	for eventName, rt := range raw {
		if rt.DebitAccountID == "" {
			return nil, fmt.Errorf("template %s: debitAccountID is required", eventName)
		}
		if len(rt.Credits) == 0 {
			return nil, fmt.Errorf("template %s: at least one credit split is required", eventName)
		}
		template := domain.JournalTemplate{
			EventName:      eventName,
			Description:    rt.Description,
			DebitAccountID: rt.DebitAccountID,
			Credits:        make([]domain.CreditSplit, 0, len(rt.Credits)),
		}
		splitSum := decimal.Zero
		for _, rs := range rt.Credits {
			pct, err := decimal.NewFromString(rs.Percent)
			if err != nil {
				return nil, fmt.Errorf("template %s: invalid percent %q for account %s: %w", eventName, rs.Percent, rs.AccountID, err)
			}
			splitSum = splitSum.Add(pct)
			template.Credits = append(template.Credits, domain.CreditSplit{AccountID: rs.AccountID, Percent: pct})
		}
		if !splitSum.Equal(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("template %s: credit splits sum to %s, want 100", eventName, splitSum.String())
		}
		parsed[eventName] = template
	}

	return &FileTemplateProvider{templates: parsed}, nil
}

var _ portssvc.TemplateProvider = (*FileTemplateProvider)(nil)

// GetJournalTemplate returns the template for an event.
func (p *FileTemplateProvider) GetJournalTemplate(_ context.Context, eventName string) (*domain.JournalTemplate, error) {
	template, found := p.templates[eventName]
	if !found {
		return nil, fmt.Errorf("%w: no journal template for event %s", apperrors.ErrTemplateNotFound, eventName)
	}
	return &template, nil
}
