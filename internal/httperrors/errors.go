// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns Fuseki client failures into user-friendly terminal messages.
package httperrors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	"fuseki-manager/internal/logging"
	"fuseki-manager/pkg/fuseki"
)

// Report prints a troubleshooting message for err and returns it wrapped with action.
// server is the base URI the command talked to.
func Report(w io.Writer, err error, action, server string) error {
	if err == nil {
		return nil
	}
	displayErrorMessage(w, err, action, ExtractHostFromURL(server))
	return fmt.Errorf("%s: %w", action, err)
}

// displayErrorMessage shows a formatted error message based on the error kind.
func displayErrorMessage(w io.Writer, err error, action, host string) {
	p := printer{w: w}
	switch fuseki.KindOf(err) {
	case fuseki.KindConnection:
		switch {
		case isTimeoutError(err):
			showTimeoutError(p, action, host)
		case isDNSError(err):
			showDNSError(p, action, host)
		case isConnectionRefusedError(err):
			showConnectionRefusedError(p, action, host)
		case isSSLError(err):
			showSSLError(p, action)
		default:
			showGenericError(p, action, host, err)
		}
	case fuseki.KindDatasetNotFound:
		p.linef("🔎 Dataset not found while %s", action)
		p.line("Run 'fusekictl datasets list' to see the datasets served by %s.", host)
	case fuseki.KindTaskNotFound:
		p.linef("🔎 Task not found while %s", action)
		p.line("Fuseki forgets finished tasks after a while; 'fusekictl tasks list' shows the known ones.")
	case fuseki.KindDatasetExists:
		p.linef("⚠️  Dataset already exists while %s", action)
	case fuseki.KindInvalidFile:
		p.linef("📄 Cannot read upload source while %s", action)
		p.line("Check that every path names a readable regular file.")
	case fuseki.KindEmptyResult:
		p.linef("∅ No result while %s", action)
	case fuseki.KindNotUnique:
		p.linef("⚠️  More than one result while %s", action)
		p.line("Narrow the pattern so that exactly one triple matches.")
	case fuseki.KindArgument:
		p.linef("❌ Invalid input while %s", action)
		p.line("%s", logging.Mask(err.Error()))
	case fuseki.KindResponse:
		if isServerError(err) {
			showServerError(p, action, host)
			return
		}
		if isAuthError(err) {
			showAuthError(p, action)
			return
		}
		showGenericError(p, action, host, err)
	default:
		showGenericError(p, action, host, err)
	}
}

type printer struct {
	w io.Writer
}

func (p printer) linef(format string, args ...any) {
	pterm.Fprintln(p.w, pterm.Sprintf(format, args...))
	pterm.Fprintln(p.w)
}

func (p printer) line(format string, args ...any) {
	pterm.Fprintln(p.w, pterm.Sprintf(format, args...))
}

func statusCode(err error) int {
	var fe *fuseki.Error
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return 0
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate")
}

// isServerError checks if the server answered with a 5xx status.
func isServerError(err error) bool {
	code := statusCode(err)
	return code >= 500 && code < 600
}

// isAuthError checks if the server rejected the credentials.
func isAuthError(err error) bool {
	code := statusCode(err)
	return code == 401 || code == 403
}

func showTimeoutError(p printer, action, host string) {
	p.linef("⏱️  Connection timeout while %s", action)
	p.line("%s took too long to respond. This could mean:", host)
	p.line("  • A long running query or upload (raise the profile timeout)")
	p.line("  • The server is under heavy load")
	p.line("  • A firewall is dropping the connection")
	p.line("")
}

func showDNSError(p printer, action, host string) {
	p.linef("🌐 Cannot resolve server address while %s", action)
	p.line("Unable to look up %s. Please check:", host)
	p.line("  • The --host flag or the profile host")
	p.line("  • DNS settings are correct")
	p.line("")
}

func showConnectionRefusedError(p printer, action, host string) {
	p.linef("🚫 Connection refused while %s", action)
	p.line("Nothing is listening on %s. This could mean:", host)
	p.line("  • Fuseki is not running")
	p.line("  • Wrong port (Fuseki defaults to 3030)")
	p.line("  • A firewall is blocking the connection")
	p.line("")
}

func showSSLError(p printer, action string) {
	p.linef("🔒 Secure connection failed while %s", action)
	p.line("Cannot establish a secure HTTPS connection. Try:")
	p.line("  • Dropping --secure if the server speaks plain HTTP")
	p.line("  • Checking the server certificate and your system clock")
	p.line("")
}

func showServerError(p printer, action, host string) {
	p.linef("⚠️  Server error while %s", action)
	p.line("%s reported an internal error. The Fuseki server log has the details.", host)
	p.line("")
}

func showAuthError(p printer, action string) {
	p.linef("🔑 Access denied while %s", action)
	p.line("Run 'fusekictl login' to store the admin credentials for this profile.")
	p.line("")
}

func showGenericError(p printer, action, host string, err error) {
	p.linef("❌ Request to %s failed while %s", host, action)
	details := logging.Mask(err.Error())
	if len(details) > 200 {
		details = details[:200] + "..."
	}
	p.line("Technical details: %s", details)
	p.line("")
}

// ExtractHostFromURL extracts the host from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
