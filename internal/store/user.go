package store

import (
	"context"
	"fmt"
	"time"

	"notice-board/internal/database"
	"notice-board/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, password_hash, role, first_name, last_name, phone, avatar,
		is_active, is_staff, is_superuser, last_login, date_joined`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	var role string
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&role,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.Avatar,
		&u.IsActive,
		&u.IsStaff,
		&u.IsSuperuser,
		&u.LastLogin,
		&u.DateJoined,
	); err != nil {
		return nil, notFound(err)
	}
	u.Role = model.Role(role)
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int64) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, role, first_name, last_name, phone, avatar,
		                    is_active, is_staff, is_superuser)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, date_joined`,
		u.Email,
		u.PasswordHash,
		string(u.Role),
		u.FirstName,
		u.LastName,
		u.Phone,
		u.Avatar,
		u.IsActive,
		u.IsStaff,
		u.IsSuperuser,
	)
	if err := row.Scan(&u.ID, &u.DateJoined); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// UpdateUserProfile 只更新個人資料欄位
func UpdateUserProfile(ctx context.Context, db database.DB, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, phone = $3, avatar = $4
		 WHERE id = $5`,
		u.FirstName,
		u.LastName,
		u.Phone,
		u.Avatar,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserProfile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserProfile: %w", ErrNotFound)
	}
	return nil
}

// UpdateUserAccess 更新角色與啟用狀態（管理員操作）
func UpdateUserAccess(ctx context.Context, db database.DB, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET role = $1, is_active = $2
		 WHERE id = $3`,
		string(u.Role),
		u.IsActive,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserAccess: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserAccess: %w", ErrNotFound)
	}
	return nil
}

func UpdateUserPassword(ctx context.Context, db database.DB, userID int64, passwordHash string) error {
	_, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1
		 WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserPassword: %w", err)
	}
	return nil
}

func UpdateLastLogin(ctx context.Context, db database.DB, userID int64, at time.Time) error {
	_, err := db.Exec(ctx,
		`UPDATE users SET last_login = $1 WHERE id = $2`,
		at,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateLastLogin: %w", err)
	}
	return nil
}

// DeleteUser 刪除使用者，其 ads 與 comments 由外鍵 cascade 一併刪除
func DeleteUser(ctx context.Context, db database.DB, id int64) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	return nil
}
