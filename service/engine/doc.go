// Package engine owns the task set and orchestrates the task lifecycle.
//
// Every mutating call saves the current status into the task's snapshot
// store before changing it, so each process can be undone by exactly one
// rollback:
//
//	eng := engine.New()
//	task, _ := eng.CreateTask(ctx, "Deploy service", model.PriorityHigh, user)
//	_, _ = eng.ProcessTask(ctx, task, true, "")  // Approved by Senior
//	_, _ = eng.RollbackTask(ctx, task)           // Pending
package engine
