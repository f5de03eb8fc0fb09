package database

import (
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"syscall"
	"time"
)

// ErrUnavailable is returned once connection-level retries are exhausted.
// Handlers map it to a 503.
var ErrUnavailable = errors.New("database temporarily unavailable")

const maxRetries = 3

// Do runs fn, retrying on connection-level database errors with exponential
// backoff (2s, 4s). Idle pool connections are dropped between attempts so the
// next try dials fresh. Non-connection errors pass through untouched.
func Do(fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = fn()
		if err == nil || !isConnError(err) {
			return err
		}

		slog.Warn("database connection error",
			"attempt", attempt, "max_retries", maxRetries, "error", err)

		if attempt == maxRetries {
			break
		}

		time.Sleep(time.Duration(1<<attempt) * time.Second)
		recyclePool()
	}

	slog.Error("database retries exhausted", "error", err)
	return ErrUnavailable
}

// recyclePool drops idle connections so stale sockets are not reused.
func recyclePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		return
	}
	sqlDB.SetMaxIdleConns(0)
	sqlDB.SetMaxIdleConns(25)
}

func isConnError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "the database system is starting up")
}
