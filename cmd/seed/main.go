package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"provafoco/cmd/seed/internal/seedmodels"
	"provafoco/internal/config"
	"provafoco/internal/database"
	"provafoco/internal/domain"
	"provafoco/internal/logger"
	"provafoco/internal/repository"
	"provafoco/internal/service"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const defaultSeedFilePath = "config/seed/questoes.json"

func main() {
	seedFile := flag.String("file", defaultSeedFilePath, "path to the seed JSON document")
	force := flag.Bool("force", false, "insert questions even when the bank is not empty")
	flag.Parse()

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

	log.Info("Starting seeding process", zap.String("driver", cfg.DB.Driver))
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	raw, err := os.ReadFile(*seedFile)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFile), zap.Error(err))
	}
	seed, err := seedmodels.Parse(raw)
	if err != nil {
		log.Fatal("Invalid seed file", zap.String("path", *seedFile), zap.Error(err))
	}
	log.Info("Loaded seed data",
		zap.Int("categories", len(seed.Categories)),
		zap.Int("banks", len(seed.Banks)),
		zap.Int("difficulty_levels", len(seed.DifficultyLevels)),
		zap.Int("questions", len(seed.Questions)))

	created, err := run(ctx, db, log, seed, *force)
	if err != nil {
		log.Fatal("Seeding failed, transaction rolled back", zap.Error(err))
	}
	log.Info("Seeding completed", zap.Int("questions_created", created))
}

// run writes the whole document in a single transaction and returns the number of questions inserted.
func run(ctx context.Context, db *sqlx.DB, log *zap.Logger, seed *seedmodels.SeedFile, force bool) (int, error) {
	categories := repository.NewSQLXCategoryRepository(db)
	banks := repository.NewSQLXBankRepository(db)
	difficulties := repository.NewSQLXDifficultyLevelRepository(db)
	questionRepo := repository.NewSQLXQuestionRepository(db)
	questions := service.NewQuestionService(questionRepo, categories, banks, difficulties, nil, nil, 0)

	created := 0
	err := repository.NewTransactionManagerAdapter(db).WithTransaction(ctx, func(ctx context.Context) error {
		for _, sc := range seed.Categories {
			existing, err := categories.GetByName(ctx, sc.Name)
			if err != nil {
				return fmt.Errorf("error checking category %s: %w", sc.Name, err)
			}
			if existing != nil {
				log.Info("Category exists", zap.String("id", existing.ID), zap.String("name", existing.Name))
				continue
			}
			category := domain.NewCategory(sc.Name, sc.Order)
			category.Description = sc.Description
			category.Icon = sc.Icon
			category.Color = sc.Color
			if err := categories.Create(ctx, category); err != nil {
				return fmt.Errorf("failed to save category %s: %w", sc.Name, err)
			}
			log.Info("Created category", zap.String("id", category.ID), zap.String("name", category.Name))
		}

		for _, sb := range seed.Banks {
			existing, err := banks.GetByName(ctx, sb.Name)
			if err != nil {
				return fmt.Errorf("error checking bank %s: %w", sb.Name, err)
			}
			if existing != nil {
				continue
			}
			bank := domain.NewBank(sb.Name)
			bank.Description = sb.Description
			if err := banks.Create(ctx, bank); err != nil {
				return fmt.Errorf("failed to save bank %s: %w", sb.Name, err)
			}
			log.Info("Created bank", zap.String("id", bank.ID), zap.String("name", bank.Name))
		}

		for _, sd := range seed.DifficultyLevels {
			existing, err := difficulties.GetByName(ctx, sd.Name)
			if err != nil {
				return fmt.Errorf("error checking difficulty level %s: %w", sd.Name, err)
			}
			if existing != nil {
				continue
			}
			level := &domain.DifficultyLevel{Name: sd.Name, Level: sd.Level, Color: sd.Color, CreatedAt: time.Now()}
			if err := difficulties.Create(ctx, level); err != nil {
				return fmt.Errorf("failed to save difficulty level %s: %w", sd.Name, err)
			}
			log.Info("Created difficulty level", zap.String("id", level.ID), zap.String("name", level.Name))
		}

		total, err := questionRepo.Count(ctx, domain.QuestionFilter{IncludeInactive: true})
		if err != nil {
			return fmt.Errorf("failed to count questions: %w", err)
		}
		if total > 0 && !force {
			log.Info("Question bank is not empty, skipping questions (use -force to insert anyway)", zap.Int("existing", total))
			return nil
		}

		for i, sq := range seed.Questions {
			q := sq.ToDomain()
			if err := questions.Create(ctx, q); err != nil {
				return fmt.Errorf("failed to save question %d: %w", i, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
