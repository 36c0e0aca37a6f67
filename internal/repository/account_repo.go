package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/yusufkecer/body-composition-backend/internal/domain"
)

// ErrDuplicate is returned when an insert violates a unique key.
var ErrDuplicate = errors.New("duplicate entry")

const mysqlDuplicateEntry = 1062

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (email, password_hash) VALUES (?, ?)`,
		email,
		passwordHash,
	)
	if err != nil {
		if isDuplicate(err) {
			return 0, fmt.Errorf("failed to create account: %w", ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to create account: %w", err)
	}
	return result.LastInsertId()
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM accounts WHERE email = ?`,
		email,
	).Scan(&account.ID, &account.Email, &account.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
