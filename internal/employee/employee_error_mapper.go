package employee

import (
	"errors"
	"strings"

	employeeerrors "hr-portal/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// mapRepositoryError turns low-level postgres errors into the module's
// sentinel errors so handlers never expose driver details.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch {
		case strings.Contains(pgErr.ConstraintName, "employee_code"):
			return employeeerrors.ErrEmployeeCodeTaken
		case strings.Contains(pgErr.ConstraintName, "email"):
			return employeeerrors.ErrEmailTaken
		}
	}

	return err
}
