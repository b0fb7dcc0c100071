package job

import (
	"github.com/ruvumera/choir-panel/logger"
	"github.com/ruvumera/choir-panel/web/service"
)

// trimKeep leaves headroom above the served history so a restore from an
// older export cannot immediately re-trim fresh messages.
const trimKeep = 5 * service.ChatHistoryLimit

// TrimChatHistoryJob bounds the messages table; the panel only ever serves
// the most recent ChatHistoryLimit entries anyway.
type TrimChatHistoryJob struct {
	chatService service.ChatService
}

func NewTrimChatHistoryJob() *TrimChatHistoryJob {
	return new(TrimChatHistoryJob)
}

func (j *TrimChatHistoryJob) Run() {
	removed, err := j.chatService.TrimHistory(trimKeep)
	if err != nil {
		logger.Warning("chat history trim failed:", err)
		return
	}
	if removed > 0 {
		logger.Infof("chat history trimmed, %d old messages removed", removed)
	}
}
