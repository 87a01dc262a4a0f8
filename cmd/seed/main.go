package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"finlens/internal/catalog"
	"finlens/internal/classify"
	"finlens/internal/detect"
	"finlens/internal/models"
	"finlens/internal/narration"
	"finlens/internal/repository"
	"finlens/pkg/auth"
	"finlens/pkg/config"
	"finlens/pkg/logger"
	"finlens/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Demo user credentials created by the seeder.
const (
	demoUsername = "demo"
	demoEmail    = "demo@finlens.local"
	demoPassword = "demo-password"
)

// Narrations shaped like real bank statement rows. Negative amounts
// are debits.
var seedRows = []struct {
	narration string
	amount    float64
}{
	{"UPI-SWIGGY-SWIGGY@YBL-YESB0YBLUPI-437276589036-Order", -849},
	{"UPI-ZOMATO LTD-ZOMATO@PTAXIS-UTIB0000100-518294736120-Food order", -412},
	{"UPI-AMAZON PAY-AMAZONPAY@APL-UTIB0000100-529183746255-Shopping", -2399},
	{"POS 416021XXXXXX9041 BIGBASKET BANGALORE", -1875.5},
	{"NEFT CR-CITI0000003-EMPLOYER NAME-SALARY-CITIN24401114659", 85000},
	{"ACH C- INDIAN CLEARING CORP-INTEREST PAYOUT", 1250.75},
	{"UPI-JOHN DOE-9876543210@YBL-SBIN0017785-Payment", -500},
	{"IMPS-502913485761-RAMESH KUMAR-HDFC-XXXX4523-Rent transfer", -18000},
	{"UPI-NETFLIX-NETFLIX@AXISBANK-UTIB0000100-Subscription", -649},
	{"UPI-ZERODHA BROKING-ZERODHA@YESBANK-YESB0000022-Funds added", -25000},
	{"NACH-LIC OF INDIA-PREMIUM-000000289471", -4518},
	{"UPI-UBER INDIA-UBER@AXISBANK-UTIB0000100-Trip", -312},
	{"ATM WDL-437276XXXXXX-MUMBAI", -5000},
	{"UPI-APOLLO PHARMACY-APOLLO@YBL-YESB0YBLUPI-Medicines", -867},
	{"BIL/ONL/000456789123/BESCOM/Electricity bill", -2140},
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		appLogger.Fatal("Failed to load merchant catalog", zap.Error(err))
	}
	catalogs := catalog.NewStore(cat)

	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	detector := detect.NewDetector(catalogs)
	classifier := classify.New(catalogs, appLogger)

	appLogger.Info("Starting database seeding...")

	user, err := ensureDemoUser(ctx, userRepo)
	if err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}

	transactions := buildTransactions(user.ID, detector, classifier)
	if err := txRepo.CreateBatch(ctx, transactions); err != nil {
		appLogger.Fatal("Failed to store seed transactions", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.Int("transactions", len(transactions)),
		zap.String("email", demoEmail))
}

func ensureDemoUser(ctx context.Context, userRepo *repository.UserRepository) (*models.User, error) {
	if existing, err := userRepo.GetByEmail(ctx, demoEmail); err == nil {
		return existing, nil
	}

	hashed, err := auth.HashPassword(demoPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Username:  demoUsername,
		Email:     demoEmail,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func buildTransactions(userID uuid.UUID, detector *detect.Detector, classifier *classify.Classifier) []*models.Transaction {
	rng := rand.New(rand.NewSource(42))
	now := time.Now()
	transactions := make([]*models.Transaction, len(seedRows))

	for i, row := range seedRows {
		date := now.AddDate(0, 0, -rng.Intn(60))
		tx := &models.Transaction{
			ID:         uuid.New(),
			UserID:     userID,
			Date:       date,
			Narration:  row.narration,
			Amount:     row.amount,
			AccountRef: "XXXX4523",
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		seg := narration.Segment(tx.Narration)
		findings := detector.Detect(seg)
		result := classifier.Classify(tx.ID, tx.Amount, seg, findings)
		tx.CategoryID = result.CategoryID
		tx.SubcategoryID = result.SubcategoryID
		tx.MerchantName = result.MerchantName
		tx.MatchKind = result.MatchKind

		transactions[i] = tx
	}
	return transactions
}
