package installer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateRoleStmt(t *testing.T) {
	got := createRoleStmt("vymanager", "s3cret")
	assert.Equal(t, `CREATE ROLE "vymanager" WITH LOGIN PASSWORD 's3cret'`, got)
}

func TestAlterRoleStmt(t *testing.T) {
	got := alterRoleStmt("vymanager", "s3cret")
	assert.Equal(t, `ALTER ROLE "vymanager" WITH LOGIN PASSWORD 's3cret'`, got)
}

func TestRoleStmts_QuoteHostileInput(t *testing.T) {
	// The generator alphabet makes these impossible for generated values,
	// but quoting must hold even for hand-supplied ones.
	got := createRoleStmt(`vy"manager`, `it's; DROP ROLE postgres`)
	assert.Equal(t, `CREATE ROLE "vy""manager" WITH LOGIN PASSWORD 'it''s; DROP ROLE postgres'`, got)
}

func TestCreateDatabaseStmt(t *testing.T) {
	got := createDatabaseStmt("vymanager_auth", "vymanager")
	assert.Equal(t, `CREATE DATABASE "vymanager_auth" OWNER "vymanager"`, got)
}

func TestAdminDSNForDatabase(t *testing.T) {
	cases := []struct {
		name string
		dsn  string
		want string
	}{
		{
			name: "url with query",
			dsn:  "postgres:///postgres?host=/var/run/postgresql",
			want: "postgres:///postgres?host=/var/run/postgresql&dbname=vymanager_auth",
		},
		{
			name: "url without query",
			dsn:  "postgres://postgres@db.internal:5432/postgres",
			want: "postgres://postgres@db.internal:5432/postgres?dbname=vymanager_auth",
		},
		{
			name: "keyword form",
			dsn:  "host=/var/run/postgresql user=postgres",
			want: "host=/var/run/postgresql user=postgres dbname=vymanager_auth",
		},
		{
			name: "empty",
			dsn:  "",
			want: "dbname=vymanager_auth",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, adminDSNForDatabase(tc.dsn, "vymanager_auth"))
		})
	}
}

func TestGrantStmts(t *testing.T) {
	stmts := grantStmts("vymanager_auth", "vymanager")
	assert.Equal(t, []string{
		`GRANT ALL PRIVILEGES ON DATABASE "vymanager_auth" TO "vymanager"`,
		`GRANT ALL ON SCHEMA public TO "vymanager"`,
		`ALTER DEFAULT PRIVILEGES IN SCHEMA public GRANT ALL ON TABLES TO "vymanager"`,
		`ALTER DEFAULT PRIVILEGES IN SCHEMA public GRANT ALL ON SEQUENCES TO "vymanager"`,
	}, stmts)
}
