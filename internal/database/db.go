// Package database 提供 PostgreSQL 連線池、嵌入式 migration 以及測試用的 FakeDB
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB 是 store 層需要的最小 pgx 介面，*pgxpool.Pool 與 pgxmock 皆可滿足
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(context.Context) error
	Close()
}

// ErrUnexpectedCall FakeDB 上未設定對應 XxxFn 的方法被呼叫
var ErrUnexpectedCall = errors.New("database: unexpected call")

// FakeDB 測試用 DB；未設定的方法回傳 ErrUnexpectedCall，handler 會因此回 500 而不是讓測試 panic
type FakeDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	PingFn     func(ctx context.Context) error
	CloseFn    func()
}

func unexpected(method string) error {
	return fmt.Errorf("%s: %w", method, ErrUnexpectedCall)
}

// errRow 讓 QueryRow 的錯誤延遲到 Scan 才回傳，與 pgx 行為一致
type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.ExecFn != nil {
		return f.ExecFn(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, unexpected("Exec")
}

func (f *FakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.QueryFn != nil {
		return f.QueryFn(ctx, sql, args...)
	}
	return nil, unexpected("Query")
}

func (f *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.QueryRowFn != nil {
		return f.QueryRowFn(ctx, sql, args...)
	}
	return errRow{err: unexpected("QueryRow")}
}

func (f *FakeDB) Ping(ctx context.Context) error {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	return unexpected("Ping")
}

func (f *FakeDB) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}
