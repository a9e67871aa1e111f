// Seed loads the demo catalog and merchants: three restaurants already
// onboarded with their external payout accounts, and a handful of
// deals across the three categories. Running it twice is safe; it
// skips anything already present.
package main

import (
	"context"
	"log"
	"time"

	"campusbites/internal/config"
	"campusbites/internal/models"
	"campusbites/internal/repositories"
)

var demoMerchants = []models.MerchantAccount{
	{
		MerchantID:      "rest_123",
		Email:           "owner@campusgrill.example.com",
		DisplayName:     "Campus Grill",
		StripeAccountID: "acct_123456789",
		OnboardingState: models.OnboardingActive,
	},
	{
		MerchantID:      "rest_456",
		Email:           "hello@thebeanscene.example.com",
		DisplayName:     "The Bean Scene",
		StripeAccountID: "acct_987654321",
		OnboardingState: models.OnboardingActive,
	},
	{
		MerchantID:      "rest_789",
		Email:           "bookings@latenightlanes.example.com",
		DisplayName:     "Late Night Lanes",
		StripeAccountID: "acct_456789123",
		OnboardingState: models.OnboardingActive,
	},
}

func demoDeals(expiry time.Time) []models.Deal {
	return []models.Deal{
		{
			MerchantID:      "rest_123",
			Restaurant:      "Campus Grill",
			Discount:        "Burger Combo for $8.99",
			Description:     "Any signature burger with fries and a drink.",
			LongDescription: "Show your student ID and grab any signature burger with a side of fries and a fountain drink. Valid for dine-in and takeout.",
			Category:        models.CategoryFood,
			ValueCents:      1499,
			PriceCents:      899,
			Expires:         expiry,
			Availability:    "Mon-Fri, 11am-9pm",
			Location:        "2 min from the main quad",
			Terms:           models.StringList{"Valid student ID required", "One voucher per visit", "Not combinable with other offers"},
			Includes:        models.StringList{"Signature burger", "Fries", "Fountain drink"},
			Popular:         true,
		},
		{
			MerchantID:   "rest_456",
			Restaurant:   "The Bean Scene",
			Discount:     "2-for-1 Iced Lattes",
			Description:  "Bring a friend, pay for one latte.",
			Category:     models.CategoryDrinks,
			ValueCents:   1050,
			PriceCents:   525,
			Expires:      expiry,
			Availability: "Daily, 2pm-6pm",
			Location:     "Library corner",
			Terms:        models.StringList{"Valid student ID required", "Happy hour only"},
			Popular:      true,
		},
		{
			MerchantID:   "rest_789",
			Restaurant:   "Late Night Lanes",
			Discount:     "Bowling Night: 2 Games + Shoes",
			Description:  "Two games with shoe rental at half price.",
			Category:     models.CategoryEntertainment,
			ValueCents:   2400,
			PriceCents:   1200,
			Expires:      expiry,
			Availability: "Thu-Sat after 8pm",
			Location:     "Downtown, bus line 7",
			Terms:        models.StringList{"Valid student ID required", "Subject to lane availability"},
		},
		{
			MerchantID:  "rest_123",
			Restaurant:  "Campus Grill",
			Discount:    "Free Milkshake with Any Meal",
			Description: "Classic vanilla, chocolate or strawberry.",
			Category:    models.CategoryFood,
			ValueCents:  499,
			PriceCents:  0,
			Expires:     expiry,
			Terms:       models.StringList{"With any meal purchase", "Valid student ID required"},
		},
	}
}

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	ctx := context.Background()
	merchantRepo := repositories.NewMerchantAccountRepository(repositories.DB)
	dealRepo := repositories.NewDealRepository(repositories.DB, nil)

	for i := range demoMerchants {
		m := demoMerchants[i]
		if _, err := merchantRepo.GetByMerchantID(ctx, m.MerchantID); err == nil {
			log.Printf("Merchant %s already seeded", m.MerchantID)
			continue
		}
		if err := merchantRepo.Create(ctx, &m); err != nil {
			log.Fatalf("Failed to seed merchant %s: %v", m.MerchantID, err)
		}
		log.Printf("Seeded merchant %s (%s)", m.MerchantID, m.StripeAccountID)
	}

	existing, err := dealRepo.List(ctx, "", "")
	if err != nil {
		log.Fatalf("Failed to list deals: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Catalog already has %d deals, skipping", len(existing))
		return
	}

	expiry := time.Now().AddDate(0, 3, 0)
	for _, d := range demoDeals(expiry) {
		deal := d
		if err := dealRepo.Create(&deal); err != nil {
			log.Fatalf("Failed to seed deal %q: %v", deal.Discount, err)
		}
		log.Printf("Seeded deal %d: %s", deal.ID, deal.Discount)
	}

	// Drop any stale cached catalog entries from earlier runs.
	if repositories.CacheService != nil {
		if err := repositories.CacheService.DeleteByPattern(ctx, "deal:*"); err != nil {
			log.Printf("⚠️ Failed to flush deal cache: %v", err)
		}
	}

	log.Println("✅ Seed complete")
}
