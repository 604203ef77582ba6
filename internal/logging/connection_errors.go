// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"net"
	"strings"
	"syscall"
)

// ConnErrorType represents the category of a database connection failure
type ConnErrorType int

const (
	ConnErrorUnknown ConnErrorType = iota
	ConnErrorRefused
	ConnErrorAuth
	ConnErrorNoDatabase
	ConnErrorTimeout
	ConnErrorDNS
	ConnErrorTLS
)

// ParseConnError categorizes a driver error message
func ParseConnError(errMsg string) ConnErrorType {
	lower := strings.ToLower(errMsg)

	switch {
	case strings.Contains(lower, "connection refused"):
		return ConnErrorRefused
	case strings.Contains(lower, "password authentication failed"),
		strings.Contains(lower, "access denied"),
		strings.Contains(lower, "no password supplied"),
		strings.Contains(lower, "sasl auth"):
		return ConnErrorAuth
	case strings.Contains(lower, "does not exist") && strings.Contains(lower, "database"),
		strings.Contains(lower, "unknown database"),
		strings.Contains(lower, "unable to open database file"):
		return ConnErrorNoDatabase
	case strings.Contains(lower, "deadline"), strings.Contains(lower, "timeout"):
		return ConnErrorTimeout
	case strings.Contains(lower, "no such host"):
		return ConnErrorDNS
	case strings.Contains(lower, "tls"), strings.Contains(lower, "ssl"), strings.Contains(lower, "certificate"):
		return ConnErrorTLS
	}
	return ConnErrorUnknown
}

var connHints = map[ConnErrorType]string{
	ConnErrorRefused:    "Is the database server running and listening on the configured host and port?",
	ConnErrorAuth:       "Check the role's password: run 'catalognav credentials set --role <role>'",
	ConnErrorNoDatabase: "The selected environment does not exist on this server.",
	ConnErrorTimeout:    "The server did not answer in time; check network access to the database host.",
	ConnErrorDNS:        "The database host name could not be resolved.",
	ConnErrorTLS:        "TLS negotiation failed; check the sslmode parameter of the database settings.",
}

// ClassifyConnError categorizes err using the network error types in its
// chain first and the message text second.
func ClassifyConnError(err error) ConnErrorType {
	if err == nil {
		return ConnErrorUnknown
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ConnErrorDNS
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return ConnErrorRefused
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ConnErrorTimeout
	}
	return ParseConnError(err.Error())
}

// HintFor returns the connection hint for err, or "".
func HintFor(err error) string {
	return connHints[ClassifyConnError(err)]
}
