// Package taskflow provides an in-process task approval engine.
//
// Tasks carry a priority (Low, Medium, High) that routes them through an
// approval chain of Junior, Manager and Senior approvers. Every decision
// saves the previous status so it can be rolled back, and status changes are
// broadcast to the users watching a task.
//
// Service wires the engine together with registration, the approval policy,
// notifications and an optional status-change event feed:
//
//	srv, err := taskflow.New(taskflow.WithConfig(cfg))
//	if err != nil {
//		return err
//	}
//	user, _ := srv.Register(ctx, "alice", "secret", "Senior")
//	task, _ := srv.CreateTask(ctx, user, "Deploy service", model.PriorityHigh)
//	decision, _ := srv.ProcessTask(ctx, user, task.ID, true, "")
//	fmt.Println(decision.Status) // Approved by Senior
package taskflow
