package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/Spok95/gym-crm/internal/config"
	"github.com/Spok95/gym-crm/internal/domain/auth"
	"github.com/Spok95/gym-crm/internal/domain/memberships"
	"github.com/Spok95/gym-crm/internal/export"
	"github.com/Spok95/gym-crm/internal/infra/logger"
	"github.com/Spok95/gym-crm/internal/ledger"
	"github.com/Spok95/gym-crm/internal/registry"
	"github.com/Spok95/gym-crm/internal/session"
)

func main() {
	var (
		cfgPath    = flag.String("config", "config/example.yaml", "path to yaml config")
		username   = flag.String("user", "", "login for an export run")
		password   = flag.String("pass", "", "password for an export run")
		unit       = flag.String("unit", "", "unit to export")
		month      = flag.Int("month", 0, "expiry month filter, 1-12 (0 = all)")
		year       = flag.Int("year", 0, "expiry year filter (0 = all)")
		exportPath = flag.String("export", "", "write filtered memberships to this .xlsx")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	reg := registry.New(log, registry.Options{
		Dir:         cfg.Storage.Dir,
		Units:       cfg.Units,
		SeedEnabled: cfg.Seed.Enabled,
		SeedMembers: cfg.Seed.Members,
	})
	defer func() { _ = reg.Close() }()

	ctx := context.Background()
	if err := reg.ProvisionAll(ctx); err != nil {
		log.Error("provisioning failed", "err", err)
		return
	}
	log.Info("stores provisioned", "units", len(reg.Units()))

	// Стартовая сводка: по каждому подразделению — сколько продлений горит.
	today := time.Now()
	for _, u := range reg.Units() {
		repo, err := reg.Store(ctx, u)
		if err != nil {
			log.Error("unit store unavailable", "unit", u, "err", err)
			continue
		}
		entries, err := ledger.NewService(repo).List(ctx, memberships.Filter{}, today)
		if err != nil {
			log.Error("listing failed", "unit", u, "err", err)
			continue
		}
		counts := map[ledger.Status]int{}
		for _, e := range entries {
			counts[e.Status]++
		}
		log.Info("expiry summary",
			"unit", u,
			"total", len(entries),
			"expired", counts[ledger.StatusExpired],
			"expiring_soon", counts[ledger.StatusExpiringSoon],
			"expiring", counts[ledger.StatusExpiring],
			"active", counts[ledger.StatusActive],
		)
	}

	if *exportPath == "" {
		return
	}

	authRepo, err := reg.Auth(ctx)
	if err != nil {
		log.Error("auth store unavailable", "err", err)
		return
	}
	user, err := authRepo.Authenticate(ctx, *username, *password)
	if err != nil {
		if errors.Is(err, auth.ErrAuthFailure) {
			log.Error("login failed", "user", *username)
		} else {
			log.Error("authentication error", "err", err)
		}
		return
	}

	sess := session.New(user, reg.Units())
	if *unit != "" {
		if err := sess.Select(*unit); err != nil {
			log.Error("unit not accessible", "unit", *unit, "user", user.Username)
			return
		}
	}
	if sess.Current() == "" {
		log.Error("no unit selected, use -unit")
		return
	}
	log.Info("logged in", "user", user.Username, "role", user.Role, "session", sess.ID, "unit", sess.Current())

	repo, err := reg.Store(ctx, sess.Current())
	if err != nil {
		log.Error("unit store unavailable", "unit", sess.Current(), "err", err)
		return
	}
	filter := memberships.Filter{Month: *month, Year: *year}
	entries, err := ledger.NewService(repo).List(ctx, filter, today)
	if err != nil {
		log.Error("listing failed", "unit", sess.Current(), "err", err)
		return
	}

	switch err := export.Excel(entries, sess.Current(), filter.String(), *exportPath); {
	case errors.Is(err, export.ErrNoData):
		log.Warn("nothing to export", "unit", sess.Current(), "filter", filter.String())
	case err != nil:
		log.Error("export failed", "err", err)
	default:
		log.Info("export complete", "file", *exportPath, "rows", len(entries))
	}
}
