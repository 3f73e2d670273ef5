// createsuperuser 從命令列建立管理員帳號
//
//	go run ./cmd/createsuperuser -email admin@example.com -password secret123
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"notice-board/internal/database"
	"notice-board/internal/service"

	"github.com/joho/godotenv"
)

var (
	loadDotenv      = godotenv.Load
	newPgxPool      = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	createSuperuser = service.CreateSuperuser
	exitFunc        = os.Exit
	stdout          io.Writer = os.Stdout
)

func run(args []string) error {
	fset := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
	email := fset.String("email", "", "管理員 email（必填）")
	password := fset.String("password", "", "管理員密碼（必填）")
	firstName := fset.String("first-name", "", "名字")
	lastName := fset.String("last-name", "", "姓氏")
	phone := fset.String("phone", "", "電話")
	if err := fset.Parse(args); err != nil {
		return err
	}

	if err := loadDotenv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("載入 .env 失敗: %w", err)
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}

	ctx := context.Background()
	db, err := newPgxPool(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	if err := runMigrationsFn(dbURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	in := service.NewUser{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	}
	if *phone != "" {
		in.Phone = phone
	}
	u, err := createSuperuser(ctx, db, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "superuser %s 建立完成 (id=%d)\n", u.Email, u.ID)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
