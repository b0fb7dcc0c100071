// Package global holds the running web server reference so lower layers can
// reach cross-cutting facilities (cron, websocket hub) without import cycles.
package global

import (
	"context"

	"github.com/robfig/cron/v3"
)

var webServer WebServer

type WebServer interface {
	GetCron() *cron.Cron
	GetCtx() context.Context
	// GetWSHub returns the websocket hub as any; callers type-assert to
	// avoid an import cycle with the websocket package.
	GetWSHub() any
}

func SetWebServer(s WebServer) {
	webServer = s
}

func GetWebServer() WebServer {
	return webServer
}
