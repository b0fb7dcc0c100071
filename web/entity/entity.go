// Package entity defines data structures shared by the web layer.
package entity

import (
	"math"
	"net"
	"time"

	"github.com/ruvumera/choir-panel/util/common"
)

// Msg is the standard API response envelope.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// AllSetting carries every configurable panel setting as one form/JSON bundle.
type AllSetting struct {
	WebListen     string `json:"webListen" form:"webListen"`
	WebPort       int    `json:"webPort" form:"webPort"`
	WebBasePath   string `json:"webBasePath" form:"webBasePath"`
	SessionMaxAge int    `json:"sessionMaxAge" form:"sessionMaxAge"` // minutes

	// Whether EDITOR accounts may open the dashboard.
	EditorDashboard bool `json:"editorDashboard" form:"editorDashboard"`

	// Scheduled backup; empty cron disables it.
	BackupCron   string `json:"backupCron" form:"backupCron"`
	BackupFolder string `json:"backupFolder" form:"backupFolder"`

	TimeLocation string `json:"timeLocation" form:"timeLocation"`
}

// CheckValid validates listen address, port and time location.
func (s *AllSetting) CheckValid() error {
	if s.WebListen != "" {
		ip := net.ParseIP(s.WebListen)
		if ip == nil {
			return common.NewError("web listen is not valid ip:", s.WebListen)
		}
	}

	if s.WebPort <= 0 || s.WebPort > math.MaxUint16 {
		return common.NewError("web port is not a valid port:", s.WebPort)
	}

	if _, err := time.LoadLocation(s.TimeLocation); err != nil {
		return common.NewError("time location not exist:", s.TimeLocation)
	}

	return nil
}
