package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"finlens/internal/catalog"
	"finlens/internal/classify"
	"finlens/internal/detect"
	"finlens/internal/dto"
	"finlens/internal/hierarchy"
	"finlens/internal/models"
	"finlens/internal/narration"
	"finlens/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyBatch = errors.New("empty transaction batch")

// StatementService owns the ingest pipeline: segment, detect,
// classify, persist. Classification of independent rows runs on a
// bounded worker pool; persistence happens once, after the pool
// drains, so a batch is stored all-or-nothing.
type StatementService struct {
	txRepo      *repository.TransactionRepository
	detector    *detect.Detector
	classifier  *classify.Classifier
	catalogs    *catalog.Store
	catalogPath string
	workers     int
	logger      *zap.Logger
}

func NewStatementService(
	txRepo *repository.TransactionRepository,
	detector *detect.Detector,
	classifier *classify.Classifier,
	catalogs *catalog.Store,
	catalogPath string,
	workers int,
	logger *zap.Logger,
) *StatementService {
	if workers < 1 {
		workers = 1
	}
	return &StatementService{
		txRepo:      txRepo,
		detector:    detector,
		classifier:  classifier,
		catalogs:    catalogs,
		catalogPath: catalogPath,
		workers:     workers,
		logger:      logger,
	}
}

// Ingest classifies and stores a batch of statement rows for a user.
func (s *StatementService) Ingest(ctx context.Context, userID uuid.UUID, inputs []dto.TransactionInput) ([]*models.Transaction, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}

	now := time.Now()
	transactions := make([]*models.Transaction, len(inputs))
	for i, in := range inputs {
		date, err := parseDate(in.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		transactions[i] = &models.Transaction{
			ID:         uuid.New(),
			UserID:     userID,
			Date:       date,
			Narration:  in.Narration,
			Amount:     in.Amount,
			AccountRef: in.AccountRef,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}

	s.classifyAll(transactions)

	if err := s.txRepo.CreateBatch(ctx, transactions); err != nil {
		return nil, fmt.Errorf("failed to store transactions: %w", err)
	}

	s.logger.Info("ingested statement batch",
		zap.Int("count", len(transactions)),
		zap.String("user_id", userID.String()))
	return transactions, nil
}

// classifyAll fans the batch out over the worker pool and waits for
// every row. Each worker writes only its own row, so no locking is
// needed.
func (s *StatementService) classifyAll(transactions []*models.Transaction) {
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				s.classifyOne(transactions[i])
			}
		}()
	}

	for i := range transactions {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func (s *StatementService) classifyOne(tx *models.Transaction) {
	seg := narration.Segment(tx.Narration)
	findings := s.detector.Detect(seg)
	result := s.classifier.Classify(tx.ID, tx.Amount, seg, findings)

	tx.CategoryID = result.CategoryID
	tx.SubcategoryID = result.SubcategoryID
	tx.MerchantName = result.MerchantName
	tx.MatchKind = result.MatchKind
}

// List returns the user's stored transactions within the date range.
func (s *StatementService) List(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.Transaction, error) {
	return s.txRepo.ListByUser(ctx, userID, from, to)
}

// Hierarchy folds the user's transactions into the drill-down tree.
func (s *StatementService) Hierarchy(ctx context.Context, userID uuid.UUID, f hierarchy.Filter) (*hierarchy.Tree, error) {
	stored, err := s.txRepo.ListByUser(ctx, userID, f.From, f.To)
	if err != nil {
		return nil, err
	}
	batch := make([]models.Transaction, len(stored))
	for i, tx := range stored {
		batch[i] = *tx
	}
	return hierarchy.Build(batch, f), nil
}

// Reclassify reruns classification over every stored transaction of
// the user against the active catalog and persists the rows whose
// assignment changed. Returns total examined and changed counts.
func (s *StatementService) Reclassify(ctx context.Context, userID uuid.UUID) (int, int, error) {
	stored, err := s.txRepo.ListByUser(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		return 0, 0, err
	}

	changed := 0
	for _, tx := range stored {
		before := [4]string{tx.CategoryID, tx.SubcategoryID, tx.MerchantName, string(tx.MatchKind)}
		s.classifyOne(tx)
		after := [4]string{tx.CategoryID, tx.SubcategoryID, tx.MerchantName, string(tx.MatchKind)}
		if before == after {
			continue
		}
		tx.UpdatedAt = time.Now()
		if err := s.txRepo.UpdateClassification(ctx, tx); err != nil {
			return len(stored), changed, err
		}
		changed++
	}

	s.logger.Info("reclassified stored transactions",
		zap.Int("total", len(stored)),
		zap.Int("changed", changed),
		zap.String("user_id", userID.String()))
	return len(stored), changed, nil
}

// ReloadCatalog builds a fresh catalog from the configured dataset
// and swaps it in atomically. Readers mid-flight keep the snapshot
// they started with.
func (s *StatementService) ReloadCatalog() (int, error) {
	fresh, err := catalog.Load(s.catalogPath)
	if err != nil {
		return 0, fmt.Errorf("catalog reload failed: %w", err)
	}
	s.catalogs.Replace(fresh)
	s.logger.Info("merchant catalog reloaded", zap.Int("merchants", fresh.Size()))
	return fresh.Size(), nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}
