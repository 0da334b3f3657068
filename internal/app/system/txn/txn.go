// internal/app/system/txn/txn.go

// Package txn wraps multi-collection writes in a MongoDB session
// transaction, with a sequential fallback for deployments that do not
// support transactions (standalone servers, some DocumentDB tiers).
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WithTransaction runs fn inside a session transaction. When the
// deployment rejects transactions, fn is re-run outside one; the
// fallback is logged because a crash mid-fn then leaves the
// collections inconsistent.
func WithTransaction(ctx context.Context, client *mongo.Client, logger *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logger.Warn("transactions unsupported; running writes sequentially", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logger.Warn("transactions unsupported; running writes sequentially", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the deployment cannot
// run multi-document transactions. Codes 20 (IllegalOperation), 51,
// and 263 cover the server responses; the keyword heuristics catch
// drivers that only surface a message.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}

	s := strings.ToLower(err.Error())
	if !strings.Contains(s, "transaction") && !strings.Contains(s, "session") {
		return false
	}
	for _, kw := range []string{"replica set", "not supported", "illegal operation"} {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return strings.Contains(s, "transaction") && strings.Contains(s, "session")
}
