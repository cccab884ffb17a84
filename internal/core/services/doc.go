// Package services implements the driving port interfaces.
// Services contain the core business logic: request construction,
// response normalization, and orchestration of the single hosted call.
//
// The request builder and response normalizer are pure functions with no
// network access; the hosted endpoint is reached only through the
// driven.SearchProvider port.
package services
