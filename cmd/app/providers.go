package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/ID-Brains/islam-station/internal/domain/dhikr"
	"github.com/ID-Brains/islam-station/internal/domain/mosque"
	"github.com/ID-Brains/islam-station/internal/domain/prayer"
	"github.com/ID-Brains/islam-station/internal/infra/aladhan"
	"github.com/ID-Brains/islam-station/internal/infra/config"
	"github.com/ID-Brains/islam-station/internal/infra/dhikrrepo"
	"github.com/ID-Brains/islam-station/internal/infra/geocode/nominatim"
	"github.com/ID-Brains/islam-station/internal/infra/mosquerepo"
	"github.com/ID-Brains/islam-station/internal/infra/schedulestore"
	httpiface "github.com/ID-Brains/islam-station/internal/interface/http"
)

func providePrayerConfig(cfg *config.Config) prayer.Config {
	return prayer.Config{
		DefaultMethod: cfg.Prayer.DefaultMethod,
		CacheTTL:      cfg.Prayer.CacheTTL,
		PreferAPI:     cfg.Prayer.PreferAladhan,
	}
}

func provideMosqueConfig(cfg *config.Config) mosque.Config {
	return mosque.Config{
		DefaultRadiusMeters: cfg.Mosque.DefaultRadiusMeters,
		MaxRadiusMeters:     cfg.Mosque.MaxRadiusMeters,
		DefaultLimit:        cfg.Mosque.DefaultLimit,
		MaxLimit:            cfg.Mosque.MaxLimit,
	}
}

// providePgxPool returns nil when Postgres is not configured or unreachable;
// downstream providers fall back to memory repositories.
func providePgxPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres pool ready")
	return pool
}

// provideValkeyClient returns nil when the schedule cache is disabled or the
// server is unreachable.
func provideValkeyClient(cfg *config.Config, logger *slog.Logger) valkey.Client {
	if !cfg.Valkey.Enabled {
		return nil
	}
	opt, err := buildValkeyOptions(cfg.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return nil
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return nil
	}
	logger.Info("valkey schedule cache enabled", "addr", cfg.Valkey.Addr)
	return client
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideScheduleStore(client valkey.Client) prayer.Store {
	if client != nil {
		return schedulestore.NewValkeyStore(client, "islamstation")
	}
	return schedulestore.NewMemoryStore()
}

func provideTimingsClient(cfg *config.Config) prayer.TimingsClient {
	if !cfg.Prayer.PreferAladhan {
		return nil
	}
	return aladhan.NewClient(cfg.Prayer.AladhanBase)
}

func provideGeocoder(cfg *config.Config) prayer.Geocoder {
	if !cfg.Geocode.Enabled {
		return nil
	}
	return nominatim.NewClient(cfg.Geocode.NominatimBase, cfg.Geocode.UserAgent)
}

func provideMosqueRepository(pool *pgxpool.Pool, logger *slog.Logger) mosque.Repository {
	if pool == nil {
		logger.Info("mosque directory using memory repository")
		return mosquerepo.NewMemoryRepository(nil)
	}
	return mosquerepo.NewPostgresRepository(pool)
}

func provideDhikrRepository(pool *pgxpool.Pool, logger *slog.Logger) dhikr.Repository {
	if pool == nil {
		logger.Info("dhikr collection using memory repository")
		return dhikrrepo.NewMemoryRepository(seedDhikr())
	}
	return dhikrrepo.NewPostgresRepository(pool)
}

func provideHealthChecks(pool *pgxpool.Pool, client valkey.Client) []httpiface.HealthCheck {
	var checks []httpiface.HealthCheck
	if pool != nil {
		checks = append(checks, httpiface.HealthCheck{
			Name:  "postgres",
			Probe: pool.Ping,
		})
	}
	if client != nil {
		checks = append(checks, httpiface.HealthCheck{
			Name: "valkey",
			Probe: func(ctx context.Context) error {
				return client.Do(ctx, client.B().Ping().Build()).Error()
			},
		})
	}
	return checks
}

// seedDhikr keeps the dhikr endpoints usable without a database.
func seedDhikr() []dhikr.Dhikr {
	return []dhikr.Dhikr{
		{ID: 1, CategoryID: dhikr.CategoryMorning,
			TextAr: "أصبحنا وأصبح الملك لله والحمد لله",
			TextEn: "We have entered the morning and the dominion belongs to Allah, and praise is due to Allah.",
			Reference: "Muslim 2723"},
		{ID: 2, CategoryID: dhikr.CategoryMorning,
			TextAr: "اللهم بك أصبحنا وبك أمسينا",
			TextEn: "O Allah, by You we enter the morning and by You we enter the evening.",
			Reference: "Tirmidhi 3391"},
		{ID: 3, CategoryID: dhikr.CategoryEvening,
			TextAr: "أمسينا وأمسى الملك لله والحمد لله",
			TextEn: "We have entered the evening and the dominion belongs to Allah, and praise is due to Allah.",
			Reference: "Muslim 2723"},
		{ID: 4, CategoryID: dhikr.CategoryNight,
			TextAr: "باسمك اللهم أموت وأحيا",
			TextEn: "In Your name, O Allah, I die and I live.",
			Reference: "Bukhari 6324"},
		{ID: 5, CategoryID: dhikr.CategoryGeneral,
			TextAr: "سبحان الله وبحمده",
			TextEn: "Glory be to Allah and praise Him.",
			Reference: "Bukhari 6405"},
	}
}
