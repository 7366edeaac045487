// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gatekeeper/config"
	"gatekeeper/internal/domain/lifecycle"
	"gatekeeper/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the primary connection, registers read replicas and hooks
// ping, migrations and pool shutdown into the fx lifecycle.
func New(params Params) (*gorm.DB, error) {
	pgCfg := params.Config.Postgres
	if pgCfg == nil || pgCfg.URI == "" {
		return nil, errors.New("postgres uri is not configured")
	}

	db, err := Open(pgCfg, newGormSlogLogger(params.Logger, params.Config))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			if pgCfg.AutoMigrate {
				if err := Migrate(ctx, sqlDB, params.Logger); err != nil {
					return err
				}
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// Open connects to pgCfg.URI, plus any replicas, through go-lib and applies the
// gorm settings the repositories rely on. It does not ping.
func Open(pgCfg *config.PostgresConfig, gormLogger gormlogger.Interface) (*gorm.DB, error) {
	conn, err := dbConnFromConfig(pgCfg)
	if err != nil {
		return nil, err
	}

	db, err := pgLib.New(conn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	// Maps driver errors such as 23505 onto gorm.ErrDuplicatedKey.
	db.TranslateError = true
	db.NowFunc = func() time.Time {
		return time.Now().UTC()
	}

	return db.Session(&gorm.Session{
		// Explicit transactions go through TransactionManager.Execute.
		SkipDefaultTransaction: true,
		Logger:                 gormLogger,
	}), nil
}

// dbConnFromConfig turns the primary and replica URIs into go-lib's connection
// description. go-lib keeps one database name, ssl mode and search path for every
// connection, so replicas must point at the primary's database.
func dbConnFromConfig(pgCfg *config.PostgresConfig) (*pgLib.DBConn, error) {
	primary, err := pgconn.ParseConfig(pgCfg.URI)
	if err != nil {
		return nil, errors.Wrap(err, "invalid postgres uri")
	}

	params := uriParams(pgCfg.URI)
	runtimeParams := make(map[string]string, len(primary.RuntimeParams))
	for key, value := range primary.RuntimeParams {
		if key == "search_path" {
			continue
		}
		runtimeParams[key] = value
	}

	conn := &pgLib.DBConn{
		Master:          connectionConfig(primary),
		MaxIdleConns:    pgCfg.MaxIdleConns,
		MaxOpenConns:    pgCfg.MaxOpenConns,
		ConnMaxLifetime: pgCfg.ConnMaxLifetime,
		Database:        primary.Database,
		SSLMode:         params["sslmode"],
		SearchPath:      params["search_path"],
		RuntimeParams:   runtimeParams,
	}

	for i, uri := range pgCfg.Replicas {
		replica, err := pgconn.ParseConfig(uri)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid postgres replica uri #%d", i)
		}
		if replica.Database != primary.Database {
			return nil, errors.Errorf("postgres replica #%d uses database %q, primary uses %q",
				i, replica.Database, primary.Database)
		}
		conn.Replicas = append(conn.Replicas, connectionConfig(replica))
	}

	return conn, nil
}

func connectionConfig(cfg *pgconn.Config) pgLib.ConnectionConfig {
	return pgLib.ConnectionConfig{
		Host:     cfg.Host,
		Port:     strconv.Itoa(int(cfg.Port)),
		UserName: cfg.User,
		Password: cfg.Password,
	}
}

// uriParams reads the query of a postgres:// URI or the pairs of a keyword/value DSN.
func uriParams(uri string) map[string]string {
	params := map[string]string{}

	if strings.Contains(uri, "://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return params
		}
		for key, values := range parsed.Query() {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}

		return params
	}

	for _, field := range strings.Fields(uri) {
		if key, value, ok := strings.Cut(field, "="); ok {
			params[key] = strings.Trim(value, "'")
		}
	}

	return params
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
				}
				level := slog.LevelDebug
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					level = slog.LevelWarn
				}
				logger.LogAttrs(ctx, level, "Postgres pool wait", attrs...)
			}

			prev = cur
		}
	}
}
