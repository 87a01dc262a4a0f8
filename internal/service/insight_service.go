package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finlens/internal/detect"
	"finlens/internal/dto"
	"finlens/internal/models"
	"finlens/internal/repository"
	"finlens/internal/sanitize"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InsightService answers free-form questions about a user's
// statement. Every narration is sanitized before it is placed in the
// prompt; raw narrations never cross the process boundary.
type InsightService struct {
	txRepo    *repository.TransactionRepository
	sanitizer *sanitize.Sanitizer
	llm       *LLMService
	logger    *zap.Logger
}

func NewInsightService(
	txRepo *repository.TransactionRepository,
	sanitizer *sanitize.Sanitizer,
	llm *LLMService,
	logger *zap.Logger,
) *InsightService {
	return &InsightService{
		txRepo:    txRepo,
		sanitizer: sanitizer,
		llm:       llm,
		logger:    logger,
	}
}

func (s *InsightService) Ask(ctx context.Context, userID uuid.UUID, req *dto.AskInsightRequest) (*dto.AskInsightResponse, error) {
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	transactions, err := s.txRepo.ListByUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	prompt, privacy := s.buildPrompt(req.Question, transactions)

	answer, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Info("insight answered",
		zap.Int("transactions", len(transactions)),
		zap.Int("items_protected", privacy.TotalItemsProtected),
		zap.String("user_id", userID.String()))

	return &dto.AskInsightResponse{
		Answer:  answer,
		Privacy: privacy,
	}, nil
}

// buildPrompt renders one sanitized context line per transaction and
// aggregates the per-line audit records into the privacy status
// returned to the caller.
func (s *InsightService) buildPrompt(question string, transactions []*models.Transaction) (string, dto.PrivacyStatus) {
	counts := make(map[detect.Kind]int)
	descriptions := make(map[detect.Kind]string)

	var b strings.Builder
	b.WriteString("Transactions (date | amount | category | narration):\n")
	for _, tx := range transactions {
		masked, record := s.sanitizer.Sanitize(tx.Narration, tx.Amount)
		for _, m := range record.Measures {
			counts[m.Kind] += m.Count
			descriptions[m.Kind] = m.Description
		}
		fmt.Fprintf(&b, "%s | %.2f | %s | %s\n",
			tx.Date.Format("2006-01-02"), tx.Amount, tx.CategoryID, masked)
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(question)

	privacy := dto.PrivacyStatus{PrivacyEnabled: true}
	for _, kind := range []detect.Kind{
		detect.KindUPIHandle,
		detect.KindAccountNumber,
		detect.KindPhone,
		detect.KindPersonalName,
	} {
		if counts[kind] == 0 {
			continue
		}
		privacy.ProtectionMeasures = append(privacy.ProtectionMeasures, dto.ProtectionMeasure{
			Kind:        string(kind),
			Description: descriptions[kind],
			Count:       counts[kind],
		})
		privacy.TotalItemsProtected += counts[kind]
	}
	return b.String(), privacy
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	var f, t time.Time
	var err error
	if from != "" {
		if f, err = parseDate(from); err != nil {
			return f, t, err
		}
	}
	if to != "" {
		if t, err = parseDate(to); err != nil {
			return f, t, err
		}
	}
	return f, t, nil
}
