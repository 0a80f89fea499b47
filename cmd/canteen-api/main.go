package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"github.com/veronosmani/CanteenOrderingSystem/internal/cart"
	"github.com/veronosmani/CanteenOrderingSystem/internal/checkout"
	"github.com/veronosmani/CanteenOrderingSystem/internal/config"
	"github.com/veronosmani/CanteenOrderingSystem/internal/menu"
	"github.com/veronosmani/CanteenOrderingSystem/internal/notify"
	"github.com/veronosmani/CanteenOrderingSystem/internal/order"
	"github.com/veronosmani/CanteenOrderingSystem/internal/postgres"
	"github.com/veronosmani/CanteenOrderingSystem/internal/user"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var (
		menuRepo  menu.Repository
		orderRepo order.Repository
	)
	if cfg.PostgresDSN != "" {
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("[canteen] %v", err)
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("[canteen] %v", err)
		}
		menuRepo = menu.NewPGRepo(pool)
		orderRepo = order.NewPGRepo(pool)
	} else {
		mem := menu.NewMemoryRepo()
		seedMenu(ctx, mem)
		menuRepo = mem
		orderRepo = order.NewMemoryRepo()
	}

	active := user.New(cfg.ActiveUserID, cfg.ActiveUserName, user.Role(cfg.ActiveUserRole))
	sessionCart := cart.New()

	subject := notify.NewSubject()
	subject.Attach(&notify.LogObserver{})

	svc := checkout.NewService(menuRepo, orderRepo, subject)

	r := newRouter(deps{
		menu:     menuRepo,
		orders:   orderRepo,
		cart:     sessionCart,
		checkout: svc,
		user:     active,
	})
	log.Printf("[canteen] listening on %s user=%s", cfg.Addr, active.ID)
	log.Fatal(r.Run(cfg.Addr))
}

func seedMenu(ctx context.Context, repo menu.Repository) {
	items := []menu.Item{
		{ID: "m1", Name: "Chicken Rice", Price: decimal.RequireFromString("3.50"), Category: "Mains", Tags: []string{"HALAL"}, Available: true},
		{ID: "m2", Name: "Veggie Wrap", Price: decimal.RequireFromString("2.80"), Category: "Mains", Tags: []string{"VEG", "VEGAN"}, Available: true},
		{ID: "m3", Name: "Beef Noodles", Price: decimal.RequireFromString("4.20"), Category: "Mains", Available: true},
		{ID: "m4", Name: "Iced Lemon Tea", Price: decimal.RequireFromString("1.20"), Category: "Drinks", Tags: []string{"VEG"}, Available: true},
		{ID: "m5", Name: "Fruit Cup", Price: decimal.RequireFromString("1.50"), Category: "Sides", Tags: []string{"VEG", "VEGAN"}, Available: false},
	}
	for i := range items {
		if err := repo.Save(ctx, &items[i]); err != nil {
			log.Printf("[canteen] seed %s failed: %v", items[i].ID, err)
		}
	}
}
