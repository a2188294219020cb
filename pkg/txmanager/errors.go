package txmanager

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrTransaction ошибка начала/фиксации транзакции
	ErrTransaction = errors.New("txmanager: transaction error")

	// ErrRetriesExhausted все попытки сериализуемой транзакции завершились конфликтом
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)

// Коды ошибок PostgreSQL
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeExclusionViolation   = "23P01"
	codeUniqueViolation      = "23505"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// ConstraintName имя нарушенного ограничения, если ошибка пришла от PostgreSQL
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// IsSerializationFailure конфликт сериализации или дедлок: транзакцию можно повторить
func IsSerializationFailure(err error) bool {
	code := pqCode(err)
	return code == codeSerializationFailure || code == codeDeadlockDetected
}

// IsExclusionViolation нарушение exclusion constraint (пересечение диапазонов)
func IsExclusionViolation(err error) bool {
	return pqCode(err) == codeExclusionViolation
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	return pqCode(err) == codeUniqueViolation
}
