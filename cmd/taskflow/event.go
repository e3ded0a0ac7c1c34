package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/viant/taskflow/progress"
	"github.com/viant/taskflow/service/event"
)

func logEvent(evt *event.Event[event.StatusChange]) error {
	log.WithFields(log.Fields{
		"task_id":    evt.Context.TaskID,
		"event_type": evt.Context.EventType,
		"status":     evt.Data.Status,
		"created_at": evt.CreatedAt,
	}).Info("status changed")
	return nil
}

func logProgress(counters progress.Counters) {
	progressFields(counters).Debug("progress")
}

func progressFields(counters progress.Counters) *log.Entry {
	return log.WithFields(log.Fields{
		"created":     counters.CreatedTasks,
		"approved":    counters.ApprovedTasks,
		"rejected":    counters.RejectedTasks,
		"rolled_back": counters.RolledBackTasks,
	})
}
