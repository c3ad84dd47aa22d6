package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sanjaykhatri/induction-backend/internal/config"
	"github.com/sanjaykhatri/induction-backend/internal/database"
	"github.com/sanjaykhatri/induction-backend/internal/domain"
	"github.com/sanjaykhatri/induction-backend/internal/logger"
	"github.com/sanjaykhatri/induction-backend/internal/repository"
	"github.com/sanjaykhatri/induction-backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type seedAccount struct {
	name     string
	email    string
	password string
	role     domain.Role
}

var seedAccounts = []seedAccount{
	{name: "Admin User", email: "admin@example.com", password: "admin123", role: domain.RoleAdmin},
	{name: "Super Admin", email: "superadmin@example.com", password: "superadmin123", role: domain.RoleSuperAdmin},
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewSQLXUserRepository(db)
	inductionRepo := repository.NewSQLXInductionRepository(db)

	for _, account := range seedAccounts {
		if err := seedUser(ctx, userRepo, account); err != nil {
			log.Fatal("Failed to seed account", zap.String("email", account.email), zap.Error(err))
		}
		log.Info("Account ready", zap.String("email", account.email), zap.String("role", string(account.role)))
	}

	if err := seedDemoInduction(ctx, inductionRepo); err != nil {
		log.Fatal("Failed to seed demo induction", zap.Error(err))
	}

	log.Warn("Seed accounts use default passwords. Change them outside development.")
}

// seedDemoInduction creates a small sample course on an empty database so
// a fresh install has something to click through. No-op once any
// induction exists.
func seedDemoInduction(ctx context.Context, inductionRepo domain.InductionRepository) error {
	existing, err := inductionRepo.ListInductions(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	induction := &domain.Induction{
		ID:           util.NewULID(),
		Title:        "Welcome to the Company",
		Description:  "A short introduction to how we work.",
		IsActive:     true,
		DisplayOrder: 1,
	}
	if err := inductionRepo.CreateInduction(ctx, induction); err != nil {
		return err
	}

	chapter := &domain.Chapter{
		ID:             util.NewULID(),
		InductionID:    induction.ID,
		Title:          "Workplace Safety Basics",
		Description:    "Evacuation routes, first aid and who to call.",
		VideoURL:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		DisplayOrder:   1,
		PassPercentage: domain.DefaultPassPercentage,
	}
	if err := inductionRepo.CreateChapter(ctx, chapter); err != nil {
		return err
	}

	questions := []*domain.Question{
		{
			ID:           util.NewULID(),
			ChapterID:    chapter.ID,
			QuestionText: "Where do you assemble after an evacuation?",
			Type:         domain.QuestionSingleChoice,
			Options: []domain.Option{
				{ID: "1", Label: "The main parking lot"},
				{ID: "2", Label: "The lobby"},
				{ID: "3", Label: "Your desk"},
			},
			CorrectAnswer: []string{"1"},
			DisplayOrder:  1,
		},
		{
			ID:            util.NewULID(),
			ChapterID:     chapter.ID,
			QuestionText:  "What is the internal emergency number?",
			Type:          domain.QuestionText,
			CorrectAnswer: []string{"112"},
			DisplayOrder:  2,
		},
	}
	for _, question := range questions {
		if err := inductionRepo.CreateQuestion(ctx, question); err != nil {
			return err
		}
	}
	return nil
}

// seedUser creates the account if absent, or promotes an existing one to
// the seeded role.
func seedUser(ctx context.Context, userRepo domain.UserRepository, account seedAccount) error {
	existing, err := userRepo.GetUserByEmail(ctx, account.email)
	if err != nil {
		return err
	}

	if existing != nil {
		if existing.Role != account.role {
			existing.Role = account.role
			return userRepo.UpdateUser(ctx, existing)
		}
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(account.password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return userRepo.CreateUser(ctx, &domain.User{
		ID:           util.NewULID(),
		Name:         account.name,
		Email:        account.email,
		PasswordHash: string(hashed),
		Role:         account.role,
	})
}
