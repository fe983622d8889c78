package domain

import "context"

//go:generate mockgen -source=sent_ledger.go -destination=sent_ledger_mock.go -package=domain

// SentLedger records which (user, notification type, day) triples were
// already dispatched so overlapping or repeated runs do not send twice.
type SentLedger interface {
	// Claim reserves the triple. It returns false when it was already claimed.
	Claim(ctx context.Context, userID string, notificationType NotificationType, day string) (bool, error)
	// Release drops a claim whose dispatch failed.
	Release(ctx context.Context, userID string, notificationType NotificationType, day string) error
}
