package worker

import (
	"github.com/spec-kit/hr-portal/internal/service"
)

// StartChangeNotifier registers the staff change relay handlers.
func StartChangeNotifier(notifier *service.ChangeNotifier) {
	if notifier == nil {
		return
	}
	notifier.RegisterHandlers()
}
