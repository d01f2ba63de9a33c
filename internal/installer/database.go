package installer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

const dbConnectTimeout = 10 * time.Second

// openCluster connects to the local cluster as a superuser. Used only while
// provisioning; the application itself connects with the vymanager role.
func openCluster(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening cluster connection: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, dbConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging cluster: %w", err)
	}
	return db, nil
}

// ProvisionDatabase ensures the application role, auth database and schema
// privileges exist and carry the freshly generated password. Re-running
// against an already-provisioned cluster is an update, not an error: the
// role's password is rotated to the new value so it stays consistent with
// the env files written in the same run.
func ProvisionDatabase(ctx context.Context, log zerolog.Logger, cfg InstallConfig, creds Credentials) error {
	db, err := openCluster(ctx, cfg.AdminDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := ensureRole(ctx, db, cfg.DBUser, creds.DBPassword); err != nil {
		return err
	}
	log.Info().Str("role", cfg.DBUser).Msg("role provisioned")

	if err := ensureDatabase(ctx, db, cfg.DBName, cfg.DBUser); err != nil {
		return err
	}
	log.Info().Str("database", cfg.DBName).Msg("database provisioned")

	return grantSchema(ctx, cfg)
}

// ensureRole creates the login role, or rotates its password when it already
// exists. Role DDL cannot take bind parameters, so the statement is built
// with pq quoting; the existence check is parameterized.
func ensureRole(ctx context.Context, db *sql.DB, role, password string) error {
	var exists bool
	err := db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = $1)", role).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking role %s: %w", role, err)
	}

	stmt := createRoleStmt(role, password)
	if exists {
		stmt = alterRoleStmt(role, password)
	}
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("provisioning role %s: %w", role, err)
	}
	return nil
}

func ensureDatabase(ctx context.Context, db *sql.DB, name, owner string) error {
	var exists bool
	err := db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking database %s: %w", name, err)
	}
	if exists {
		return nil
	}
	// CREATE DATABASE cannot run inside a transaction; ExecContext issues it
	// as a single implicit-transaction statement, which Postgres allows.
	if _, err := db.ExecContext(ctx, createDatabaseStmt(name, owner)); err != nil {
		return fmt.Errorf("creating database %s: %w", name, err)
	}
	return nil
}

// grantSchema runs the public-schema and default-privilege grants inside the
// auth database itself.
func grantSchema(ctx context.Context, cfg InstallConfig) error {
	db, err := openCluster(ctx, adminDSNForDatabase(cfg.AdminDSN, cfg.DBName))
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range grantStmts(cfg.DBName, cfg.DBUser) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("granting privileges: %w", err)
		}
	}
	return nil
}

// adminDSNForDatabase retargets the admin DSN at the named database. The DSN
// may be in URL form (postgres://...) or libpq keyword form
// (host=... user=...); a dbname appended last overrides any earlier value in
// both forms.
func adminDSNForDatabase(adminDSN, dbname string) string {
	if strings.Contains(adminDSN, "://") {
		sep := "?"
		if strings.Contains(adminDSN, "?") {
			sep = "&"
		}
		return adminDSN + sep + "dbname=" + dbname
	}
	return strings.TrimSpace(adminDSN + " dbname=" + dbname)
}

func createRoleStmt(role, password string) string {
	return fmt.Sprintf("CREATE ROLE %s WITH LOGIN PASSWORD %s",
		pq.QuoteIdentifier(role), pq.QuoteLiteral(password))
}

func alterRoleStmt(role, password string) string {
	return fmt.Sprintf("ALTER ROLE %s WITH LOGIN PASSWORD %s",
		pq.QuoteIdentifier(role), pq.QuoteLiteral(password))
}

func createDatabaseStmt(name, owner string) string {
	return fmt.Sprintf("CREATE DATABASE %s OWNER %s",
		pq.QuoteIdentifier(name), pq.QuoteIdentifier(owner))
}

func grantStmts(database, role string) []string {
	db := pq.QuoteIdentifier(database)
	r := pq.QuoteIdentifier(role)
	return []string{
		fmt.Sprintf("GRANT ALL PRIVILEGES ON DATABASE %s TO %s", db, r),
		fmt.Sprintf("GRANT ALL ON SCHEMA public TO %s", r),
		fmt.Sprintf("ALTER DEFAULT PRIVILEGES IN SCHEMA public GRANT ALL ON TABLES TO %s", r),
		fmt.Sprintf("ALTER DEFAULT PRIVILEGES IN SCHEMA public GRANT ALL ON SEQUENCES TO %s", r),
	}
}
