package registry

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"unicode"

	"github.com/pressly/goose/v3"

	"github.com/Spok95/gym-crm/internal/domain/auth"
	"github.com/Spok95/gym-crm/internal/domain/memberships"
	"github.com/Spok95/gym-crm/internal/infra/db"
)

var ErrUnknownUnit = errors.New("registry: unknown unit")

//go:embed migrations
var migrationsFS embed.FS

type Options struct {
	Dir         string   // каталог с файлами *.db
	Units       []string // фиксированный набор подразделений
	SeedEnabled bool     // демо-посев только по явному флагу
	SeedMembers int
}

// Registry ведёт по одному изолированному хранилищу на подразделение плюс общее
// хранилище учётных записей. Схема и справочные данные накатываются при первом
// обращении; повторный вызов возвращает тот же хэндл и ничего не пересоздаёт.
type Registry struct {
	log  *slog.Logger
	opts Options

	mu     sync.Mutex
	dbs    map[string]*sql.DB
	stores map[string]*memberships.Repo

	authDB   *sql.DB
	authRepo *auth.Repo
}

func New(log *slog.Logger, opts Options) *Registry {
	if opts.SeedMembers <= 0 {
		opts.SeedMembers = 10
	}
	return &Registry{
		log:    log,
		opts:   opts,
		dbs:    make(map[string]*sql.DB),
		stores: make(map[string]*memberships.Repo),
	}
}

// Units — настроенный набор в исходном порядке.
func (g *Registry) Units() []string { return slices.Clone(g.opts.Units) }

// Store возвращает хранилище подразделения, при первом обращении накатывая схему
// и (если включено) демо-посев. Для ненастроенного unit — ErrUnknownUnit.
func (g *Registry) Store(ctx context.Context, unit string) (*memberships.Repo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if repo, ok := g.stores[unit]; ok {
		return repo, nil
	}
	if !slices.Contains(g.opts.Units, unit) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}

	sqlDB, err := db.Open(ctx, filepath.Join(g.opts.Dir, unit+".db"))
	if err != nil {
		return nil, fmt.Errorf("unit %s: %w", unit, err)
	}
	if err := migrate(sqlDB, "migrations/unit"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("unit %s: migrate: %w", unit, err)
	}

	repo := memberships.NewRepo(sqlDB)
	if g.opts.SeedEnabled {
		n, err := repo.MemberCount(ctx)
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("unit %s: %w", unit, err)
		}
		// Посев только в пустое хранилище: рабочие данные не трогаем никогда.
		if n == 0 {
			if err := seedUnit(ctx, repo, g.opts.SeedMembers); err != nil {
				_ = sqlDB.Close()
				return nil, fmt.Errorf("unit %s: seed: %w", unit, err)
			}
			g.log.Info("unit store seeded", "unit", unit, "members", g.opts.SeedMembers)
		}
	}

	g.dbs[unit] = sqlDB
	g.stores[unit] = repo
	return repo, nil
}

// Auth возвращает общее хранилище учётных записей, при первом обращении
// создавая владельца и по одному администратору на подразделение.
func (g *Registry) Auth(ctx context.Context) (*auth.Repo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.authRepo != nil {
		return g.authRepo, nil
	}

	sqlDB, err := db.Open(ctx, filepath.Join(g.opts.Dir, "auth.db"))
	if err != nil {
		return nil, fmt.Errorf("auth store: %w", err)
	}
	if err := migrate(sqlDB, "migrations/auth"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("auth store: migrate: %w", err)
	}

	repo := auth.NewRepo(sqlDB)
	if err := repo.EnsureUser(ctx, "owner", "owner123", auth.RoleOwner, "", "Gym Owner"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("seed owner: %w", err)
	}
	for _, unit := range g.opts.Units {
		if err := repo.EnsureUser(ctx, unit, unit, auth.RoleUnitAdmin, unit, title(unit)+" Admin"); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("seed admin %s: %w", unit, err)
		}
	}

	g.authDB = sqlDB
	g.authRepo = repo
	return repo, nil
}

// ProvisionAll жадно готовит все хранилища на старте, до первого запроса.
func (g *Registry) ProvisionAll(ctx context.Context) error {
	if _, err := g.Auth(ctx); err != nil {
		return err
	}
	for _, unit := range g.opts.Units {
		if _, err := g.Store(ctx, unit); err != nil {
			return err
		}
	}
	return nil
}

func (g *Registry) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var errs []error
	for unit, sqlDB := range g.dbs {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", unit, err))
		}
	}
	clear(g.dbs)
	clear(g.stores)
	if g.authDB != nil {
		if err := g.authDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close auth: %w", err))
		}
		g.authDB = nil
		g.authRepo = nil
	}
	return errors.Join(errs...)
}

func migrate(sqlDB *sql.DB, dir string) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(sqlDB, dir)
}

func title(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
