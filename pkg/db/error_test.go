package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "gorm", err: gorm.ErrDuplicatedKey, want: true},
		{name: "postgres", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "mysql", err: &mysql.MySQLError{Number: 1062}, want: true},
		{name: "sqlite", err: errors.New("UNIQUE constraint failed: documents.id"), want: true},
		{name: "other", err: errors.New("boom"), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateKeyErr(tc.err))
		})
	}
}

func TestIsUnavailableErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "bad conn", err: fmt.Errorf("query: %w", driver.ErrBadConn), want: true},
		{name: "mysql invalid conn", err: mysql.ErrInvalidConn, want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "pg connect", err: &pgconn.ConnectError{Config: &pgconn.Config{}}, want: true},
		{name: "pg admin shutdown", err: &pgconn.PgError{Code: "57P01"}, want: true},
		{name: "pg connection failure", err: &pgconn.PgError{Code: "08006"}, want: true},
		{name: "pg syntax", err: &pgconn.PgError{Code: "42601"}, want: false},
		{name: "dial", err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}, want: true},
		{name: "record not found", err: gorm.ErrRecordNotFound, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsUnavailableErr(tc.err))
		})
	}
}
