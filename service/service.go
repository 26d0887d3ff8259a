package service

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service is the business core. Every command runs inside one
// db.Transaction: preconditions are checked against rows read in that
// transaction, so two concurrent exits can never both pass a stale stock
// check. Controllers only translate HTTP to these methods.
type Service struct {
	db  *gorm.DB
	log *logrus.Logger
}

func New(db *gorm.DB, log *logrus.Logger) *Service {
	return &Service{db: db, log: log}
}

// DB exposes the handle for read-only consumers (reports, notifier).
func (s *Service) DB() *gorm.DB { return s.db }

// lockForUpdate adds SELECT ... FOR UPDATE on stores that support it.
// sqlite serializes writers on its own and rejects the clause.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
