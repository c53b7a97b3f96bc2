package main

import (
	"context"
	"log"
	"os"

	"sales-assistant-be/internal/model"
	"sales-assistant-be/internal/repository/memory"
	"sales-assistant-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Seeding folders...")
	seedFolders(db)

	color.Cyan("Seeding FAQ entries...")
	seedFaqs(db)

	// The in-memory variant is seeded at boot; only Redis persists
	// across processes and needs an explicit seed.
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		color.Cyan("Seeding fast responses into Redis...")
		seedFastResponses(redisURL)
	}

	color.Green("✅ Seed complete")
}

func seedFastResponses(redisURL string) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		color.Yellow("Warn: failed to connect to Redis: %v", err)
		return
	}

	repo := memory.NewFastResponseRepositoryRedis(rdb)
	if err := memory.SeedFastResponses(context.Background(), repo); err != nil {
		color.Yellow("Warn: failed to seed fast responses: %v", err)
	}
}

func seedFolders(db *gorm.DB) {
	folders := []model.Folder{
		{Name: "Clearent", FolderType: "processor"},
		{Name: "TracerPay", FolderType: "processor"},
		{Name: "Micamp", FolderType: "processor"},
		{Name: "Pricing Sheets", FolderType: "pricing"},
		{Name: "Sales Materials", FolderType: "sales"},
		{Name: "Hardware Guides", FolderType: "hardware"},
		{Name: "Contracts", FolderType: "general"},
	}

	for _, folder := range folders {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).
			Where(model.Folder{Name: folder.Name}).
			FirstOrCreate(&folder).Error
		if err != nil {
			color.Yellow("Warn: failed to seed folder %s: %v", folder.Name, err)
		}
	}
}

func seedFaqs(db *gorm.DB) {
	faqs := []model.FaqEntry{
		{
			Question: "What are Clearent's processing rates?",
			Answer:   "Clearent offers interchange-plus pricing starting at interchange + 0.25% + $0.10 per transaction for qualified merchants. Exact rates depend on monthly volume and vertical.",
			Category: "pricing",
			Priority: 10,
			IsActive: true,
		},
		{
			Question: "How long does merchant onboarding take?",
			Answer:   "Standard underwriting completes within 24-48 hours for low-risk verticals. High-risk merchants may need 3-5 business days and additional documentation.",
			Category: "onboarding",
			Priority: 8,
			IsActive: true,
		},
		{
			Question: "Which POS terminals support contactless payments?",
			Answer:   "The Clover Flex, Clover Mini, and Dejavoo QD series all support NFC contactless payments including Apple Pay and Google Pay out of the box.",
			Category: "hardware",
			Priority: 6,
			IsActive: true,
		},
		{
			Question: "What is interchange-plus pricing?",
			Answer:   "Interchange-plus passes the card networks' interchange fees through at cost plus a fixed markup. It is more transparent than tiered or flat-rate pricing and usually cheaper for merchants above $10k monthly volume.",
			Category: "pricing",
			Priority: 9,
			IsActive: true,
		},
		{
			Question: "Does TracerPay support gateway integrations?",
			Answer:   "TracerPay integrates with Authorize.Net, NMI, and Fluidpay gateways. Merchants can keep their existing gateway in most migration scenarios.",
			Category: "gateways",
			Priority: 5,
			IsActive: true,
		},
	}

	for _, faq := range faqs {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).
			Where(model.FaqEntry{Question: faq.Question}).
			FirstOrCreate(&faq).Error
		if err != nil {
			color.Yellow("Warn: failed to seed FAQ %q: %v", faq.Question, err)
		}
	}
}
