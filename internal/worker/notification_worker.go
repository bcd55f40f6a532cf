package worker

import (
	"github.com/supportdesk/ticket-triage/internal/service"
)

// StartNotificationWorker subscribes run notifications to the dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
