package service

import (
	"github.com/ruvumera/choir-panel/database"
	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/logger"
)

// DashboardStats is the landing page summary.
type DashboardStats struct {
	Songs    int64 `json:"songs"`
	Members  int64 `json:"members"`
	Users    int64 `json:"users"`
	Messages int64 `json:"messages"`
}

// DashboardService aggregates entity counts for the landing page.
type DashboardService struct{}

// GetStats counts each collection. A failed count degrades to zero with a
// warning instead of failing the whole page.
func (s *DashboardService) GetStats() *DashboardStats {
	stats := &DashboardStats{}
	stats.Songs = s.count(model.Song{}, "songs")
	stats.Members = s.count(model.Member{}, "members")
	stats.Users = s.count(model.User{}, "users")
	stats.Messages = s.count(model.Message{}, "messages")
	return stats
}

func (s *DashboardService) count(m any, name string) int64 {
	db := database.GetDB()
	var count int64
	if err := db.Model(m).Count(&count).Error; err != nil {
		logger.Warningf("dashboard: counting %s failed: %v", name, err)
		return 0
	}
	return count
}
